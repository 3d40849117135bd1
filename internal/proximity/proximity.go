// Package proximity ranks geo-tagged records by great-circle distance
// from a reference point, typically the user's reported position.
package proximity

import (
	"fmt"
	"math"
	"sort"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("invalid direction %q (want asc|desc)", s)
}

// Ranked is one entry of a proximity ranking. DistanceKm is nil when no
// reference point was supplied.
type Ranked struct {
	Record     model.WasteRecord `json:"record"`
	DistanceKm *float64          `json:"distanceKm,omitempty"`

	// Nearest marks the head of an ascending ranking for UI highlighting.
	Nearest bool `json:"nearest"`
}

// Rank filters out records without coordinates, computes distances from
// ref and sorts by distance. A nil ref yields the records unranked in
// their original order.
func Rank(ref *model.Coordinate, records []model.WasteRecord, dir Direction) []Ranked {
	out := make([]Ranked, 0, len(records))
	for _, r := range records {
		if r.Coord == nil {
			continue
		}
		e := Ranked{Record: r}
		if ref != nil {
			d := Haversine(*ref, *r.Coord)
			e.DistanceKm = &d
		}
		out = append(out, e)
	}

	if ref == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return *out[i].DistanceKm > *out[j].DistanceKm
		}
		return *out[i].DistanceKm < *out[j].DistanceKm
	})

	if dir == Ascending && len(out) > 0 {
		out[0].Nearest = true
	}
	return out
}

// Haversine returns the great-circle distance between two points in km.
func Haversine(a, b model.Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// NavigationURL builds the external mapping hand-off for a destination.
func NavigationURL(c model.Coordinate) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f", c.Lat, c.Lon)
}
