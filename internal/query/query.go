// Package query derives filtered views over the record store.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

// FacetAll is the wildcard value accepted for the faceted filters.
const FacetAll = "all"

// Filters selects a view. Empty (or "all") fields match everything; all
// populated filters compose conjunctively.
type Filters struct {
	// TextSearch is a case-insensitive substring match against district,
	// category and id.
	TextSearch string

	District string
	Category string
	Volume   string

	// DayWindow keeps records observed within the last N days; 0 means no
	// window. When the window empties the view entirely, the engine falls
	// back to the unfiltered set so the dashboard never shows nothing.
	DayWindow int
}

// Canonical returns a normalized key string for view caching.
func (f Filters) Canonical() string {
	return fmt.Sprintf("q=%s|d=%s|c=%s|v=%s|w=%d",
		strings.ToLower(strings.TrimSpace(f.TextSearch)),
		normFacet(f.District),
		normFacet(f.Category),
		normFacet(f.Volume),
		f.DayWindow,
	)
}

func normFacet(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == FacetAll {
		return ""
	}
	return s
}

// Engine computes views from store snapshots. The clock is injectable so
// day-window tests are deterministic.
type Engine struct {
	now func() time.Time
}

func New() *Engine {
	return &Engine{now: time.Now}
}

func NewWithClock(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Apply returns a new ordered view of base matching the filters. The base
// slice is never mutated.
func (e *Engine) Apply(base []model.WasteRecord, f Filters) []model.WasteRecord {
	text := strings.ToLower(strings.TrimSpace(f.TextSearch))
	district := normFacet(f.District)
	category := normFacet(f.Category)
	volume := normFacet(f.Volume)

	var cutoff time.Time
	now := e.now()
	if f.DayWindow > 0 {
		cutoff = now.AddDate(0, 0, -f.DayWindow)
	}

	out := make([]model.WasteRecord, 0, len(base))
	for _, r := range base {
		if text != "" && !matchText(r, text) {
			continue
		}
		if district != "" && !strings.EqualFold(r.District, district) {
			continue
		}
		if category != "" && !matchCategory(r.Category, category) {
			continue
		}
		if volume != "" && !matchVolume(r.Volume, volume) {
			continue
		}
		if f.DayWindow > 0 {
			if r.ObservedAt.IsZero() || r.ObservedAt.Before(cutoff) || r.ObservedAt.After(now) {
				continue
			}
		}
		out = append(out, r)
	}

	// Quirk preserved from the source dashboard: an empty day-window result
	// falls back to the full unfiltered set instead of showing zero rows.
	if f.DayWindow > 0 && len(out) == 0 {
		out = make([]model.WasteRecord, len(base))
		copy(out, base)
	}
	return out
}

func matchText(r model.WasteRecord, text string) bool {
	return strings.Contains(strings.ToLower(r.District), text) ||
		strings.Contains(strings.ToLower(string(r.Category)), text) ||
		strings.Contains(strings.ToLower(r.Category.SourceName()), text) ||
		strings.Contains(strings.ToLower(r.ID), text)
}

// facet values arrive in either API or source vocabulary
func matchCategory(c model.Category, want string) bool {
	parsed, err := model.ParseCategory(want)
	if err != nil {
		return false
	}
	return c == parsed
}

func matchVolume(v model.VolumeClass, want string) bool {
	parsed, err := model.ParseVolumeClass(want)
	if err != nil {
		return false
	}
	return v == parsed
}
