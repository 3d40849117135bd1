// Package model defines core domain types shared across the service.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Category is the waste type of a reported dump site.
type Category string

const (
	CategoryOrganic Category = "organic"
	CategoryPlastic Category = "plastic"
	CategoryMixed   Category = "mixed"
)

// Categories lists all categories in display order.
func Categories() []Category {
	return []Category{CategoryOrganic, CategoryPlastic, CategoryMixed}
}

// ParseCategory accepts both the API vocabulary and the source dataset
// vocabulary (Jenis_Samp values).
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "organic", "organik":
		return CategoryOrganic, nil
	case "plastic", "plastik":
		return CategoryPlastic, nil
	case "mixed", "campuran":
		return CategoryMixed, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// SourceName returns the dataset vocabulary used by the GeoJSON documents.
func (c Category) SourceName() string {
	switch c {
	case CategoryOrganic:
		return "Organik"
	case CategoryPlastic:
		return "Plastik"
	case CategoryMixed:
		return "Campuran"
	}
	return string(c)
}

// VolumeClass is the coarse three-bucket size of a reported dump.
type VolumeClass string

const (
	VolumeSmall  VolumeClass = "small"
	VolumeMedium VolumeClass = "medium"
	VolumeLarge  VolumeClass = "large"
)

func VolumeClasses() []VolumeClass {
	return []VolumeClass{VolumeSmall, VolumeMedium, VolumeLarge}
}

// ParseVolumeClass accepts both the API vocabulary and the source dataset
// vocabulary (Volume___L values).
func ParseVolumeClass(s string) (VolumeClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small", "kecil":
		return VolumeSmall, nil
	case "medium", "sedang":
		return VolumeMedium, nil
	case "large", "besar":
		return VolumeLarge, nil
	}
	return "", fmt.Errorf("unknown volume class %q", s)
}

func (v VolumeClass) SourceName() string {
	switch v {
	case VolumeSmall:
		return "Kecil"
	case VolumeMedium:
		return "Sedang"
	case VolumeLarge:
		return "Besar"
	}
	return string(v)
}

// Coordinate is a WGS84 point. A record either has a full coordinate or
// none at all; half-specified positions are rejected at the boundary.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return ValidationError{Field: "latitude", Reason: "must be in [-90,90]"}
	}
	if c.Lon < -180 || c.Lon > 180 {
		return ValidationError{Field: "longitude", Reason: "must be in [-180,180]"}
	}
	return nil
}

// DayFormat is the day-granularity layout used by observation dates.
const DayFormat = "2006-01-02"

// ParseDay parses an ISO day string in UTC.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// WasteRecord is one reported illegal dumping site.
type WasteRecord struct {
	ID        string      `json:"id"`
	Category  Category    `json:"category"`
	Volume    VolumeClass `json:"volume"`
	Proximity string      `json:"proximity"`
	District  string      `json:"district"`

	// ObservedAt is day granularity; the zero value means the source
	// document carried no observation date.
	ObservedAt time.Time `json:"observedAt"`

	// Coord is nil for records without geo data; such records stay in
	// tabular views but are excluded from geo-derived views.
	Coord *Coordinate `json:"coord,omitempty"`
}

// Day returns the ISO day string of the observation, or "" when undated.
func (r WasteRecord) Day() string {
	if r.ObservedAt.IsZero() {
		return ""
	}
	return r.ObservedAt.Format(DayFormat)
}

// Validate checks the invariants enforced before any store mutation.
func (r WasteRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ValidationError{Field: "id", Reason: "required"}
	}
	if _, err := ParseCategory(string(r.Category)); err != nil {
		return ValidationError{Field: "category", Reason: "must be one of organic|plastic|mixed"}
	}
	if _, err := ParseVolumeClass(string(r.Volume)); err != nil {
		return ValidationError{Field: "volume", Reason: "must be one of small|medium|large"}
	}
	if strings.TrimSpace(r.Proximity) == "" {
		return ValidationError{Field: "proximity", Reason: "required"}
	}
	if strings.TrimSpace(r.District) == "" {
		return ValidationError{Field: "district", Reason: "required"}
	}
	if r.Coord != nil {
		if err := r.Coord.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidationError reports a malformed or missing field; it is raised at
// the boundary, before the store is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
