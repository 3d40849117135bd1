// Package grid buckets record coordinates into H3 cells to produce a
// density grid suitable for map shading layers.
package grid

import (
	"fmt"
	"sort"

	h3 "github.com/uber/h3-go/v4"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

// DefaultResolution is a good city-scale cell size (~0.7 km across).
const DefaultResolution = 8

// CellCount is the number of records whose coordinate falls in one cell.
type CellCount struct {
	Cell  string `json:"cell"`
	Count int    `json:"count"`
}

func validateRes(res int) error {
	if res < 0 || res > 15 {
		return fmt.Errorf("invalid H3 resolution %d (must be 0..15)", res)
	}
	return nil
}

// CellCounts assigns every located record to a cell at the given resolution.
// Records without coordinates are skipped. Results are sorted by count
// descending, then by cell for determinism.
func CellCounts(records []model.WasteRecord, res int) ([]CellCount, error) {
	if err := validateRes(res); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range records {
		if r.Coord == nil {
			continue
		}
		// v4 returns (h3.Cell, error)
		cell, err := h3.LatLngToCell(h3.LatLng{Lat: r.Coord.Lat, Lng: r.Coord.Lon}, res)
		if err != nil {
			return nil, fmt.Errorf("h3 cell for %q: %w", r.ID, err)
		}
		counts[cell.String()]++
	}

	out := make([]CellCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CellCount{Cell: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Cell < out[j].Cell
	})
	return out, nil
}
