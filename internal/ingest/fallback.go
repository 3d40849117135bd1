package ingest

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

// DefaultFallbackSize matches the source dashboard's generated set.
const DefaultFallbackSize = 100

var fallbackDistricts = []string{
	"Pekanbaru Kota",
	"Sukajadi",
	"Marpoyan Damai",
	"Tampan",
}

// Fallback generates a randomized dataset spread over the two weeks before
// now, around the source region's coordinates. The seed makes tests
// deterministic.
func Fallback(n int, now time.Time, seed uint64) []model.WasteRecord {
	if n <= 0 {
		n = DefaultFallbackSize
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	cats := model.Categories()
	vols := model.VolumeClasses()

	out := make([]model.WasteRecord, 0, n)
	for i := 0; i < n; i++ {
		y, m, d := now.AddDate(0, 0, -rng.IntN(14)).Date()
		out = append(out, model.WasteRecord{
			ID:         fmt.Sprintf("dt%d", i+1),
			Category:   cats[rng.IntN(len(cats))],
			Volume:     vols[rng.IntN(len(vols))],
			Proximity:  "Dekat (<50 m)",
			District:   fallbackDistricts[rng.IntN(len(fallbackDistricts))],
			ObservedAt: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Coord: &model.Coordinate{
				Lat: 0.5 + rng.Float64()*0.05,
				Lon: 101.4 + rng.Float64()*0.1,
			},
		})
	}
	return out
}
