package query

import (
	"testing"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func fixedEngine() *Engine {
	return NewWithClock(func() time.Time { return testNow })
}

func rec(id, district string, cat model.Category, vol model.VolumeClass, daysAgo int) model.WasteRecord {
	r := model.WasteRecord{
		ID:        id,
		Category:  cat,
		Volume:    vol,
		Proximity: "Dekat (<50 m)",
		District:  district,
	}
	if daysAgo >= 0 {
		r.ObservedAt = testNow.AddDate(0, 0, -daysAgo)
	}
	return r
}

func baseSet() []model.WasteRecord {
	return []model.WasteRecord{
		rec("dt1", "Sukajadi", model.CategoryOrganic, model.VolumeSmall, 1),
		rec("dt2", "Tampan", model.CategoryPlastic, model.VolumeMedium, 5),
		rec("dt3", "Sukajadi", model.CategoryPlastic, model.VolumeLarge, 20),
		rec("dt4", "Marpoyan Damai", model.CategoryMixed, model.VolumeMedium, -1), // undated
	}
}

func ids(view []model.WasteRecord) []string {
	out := make([]string, 0, len(view))
	for _, r := range view {
		out = append(out, r.ID)
	}
	return out
}

func TestApply_NoFiltersKeepsOrder(t *testing.T) {
	base := baseSet()
	got := fixedEngine().Apply(base, Filters{})
	if len(got) != len(base) {
		t.Fatalf("len=%d want %d", len(got), len(base))
	}
	for i := range base {
		if got[i].ID != base[i].ID {
			t.Fatalf("order changed at %d: %v", i, ids(got))
		}
	}
}

func TestApply_TextSearch(t *testing.T) {
	e := fixedEngine()
	base := baseSet()

	// district, case-insensitive
	got := e.Apply(base, Filters{TextSearch: "sukaJADI"})
	if len(got) != 2 || got[0].ID != "dt1" || got[1].ID != "dt3" {
		t.Fatalf("district search: %v", ids(got))
	}

	// id substring
	got = e.Apply(base, Filters{TextSearch: "dt4"})
	if len(got) != 1 || got[0].ID != "dt4" {
		t.Fatalf("id search: %v", ids(got))
	}

	// source vocabulary matches the category too
	got = e.Apply(base, Filters{TextSearch: "plastik"})
	if len(got) != 2 {
		t.Fatalf("source vocab search: %v", ids(got))
	}
}

func TestApply_FacetsAndAllWildcard(t *testing.T) {
	e := fixedEngine()
	base := baseSet()

	got := e.Apply(base, Filters{District: "Sukajadi", Category: "plastic"})
	if len(got) != 1 || got[0].ID != "dt3" {
		t.Fatalf("conjunctive facets: %v", ids(got))
	}

	// "all" behaves as no filter
	got = e.Apply(base, Filters{District: "all", Category: "ALL", Volume: "all"})
	if len(got) != len(base) {
		t.Fatalf("all wildcard: %v", ids(got))
	}

	// facet values in source vocabulary
	got = e.Apply(base, Filters{Volume: "Sedang"})
	if len(got) != 2 {
		t.Fatalf("source vocab facet: %v", ids(got))
	}
}

func TestApply_DayWindow(t *testing.T) {
	e := fixedEngine()
	base := baseSet()

	got := e.Apply(base, Filters{DayWindow: 7})
	if len(got) != 2 || got[0].ID != "dt1" || got[1].ID != "dt2" {
		t.Fatalf("7-day window: %v", ids(got))
	}

	// undated records never match a window
	for _, r := range got {
		if r.ObservedAt.IsZero() {
			t.Fatalf("undated record matched a window")
		}
	}
}

func TestApply_EmptyWindowFallsBackToFullSet(t *testing.T) {
	e := fixedEngine()
	base := []model.WasteRecord{
		rec("dt1", "Sukajadi", model.CategoryOrganic, model.VolumeSmall, 30),
		rec("dt2", "Tampan", model.CategoryPlastic, model.VolumeMedium, 40),
	}

	got := e.Apply(base, Filters{DayWindow: 7})
	if len(got) != len(base) {
		t.Fatalf("empty window should fall back to full set, got %v", ids(got))
	}

	// the fallback is a copy, not the base slice itself
	got[0].District = "scribbled"
	if base[0].District == "scribbled" {
		t.Fatalf("fallback aliases the base slice")
	}
}

func TestCanonical_NormalizesEquivalentFilters(t *testing.T) {
	a := Filters{TextSearch: " Plastik ", District: "all", Category: "Plastic", DayWindow: 7}
	b := Filters{TextSearch: "plastik", District: "", Category: "plastic", DayWindow: 7}
	if a.Canonical() != b.Canonical() {
		t.Fatalf("canonical mismatch: %q vs %q", a.Canonical(), b.Canonical())
	}
	c := Filters{TextSearch: "plastik", Category: "plastic", DayWindow: 14}
	if a.Canonical() == c.Canonical() {
		t.Fatalf("different windows share a canonical key")
	}
}
