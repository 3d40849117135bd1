package stats

import (
	"sort"
	"testing"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

func rec(cat model.Category, vol model.VolumeClass, day string) model.WasteRecord {
	r := model.WasteRecord{
		ID:        "x",
		Category:  cat,
		Volume:    vol,
		Proximity: "Dekat (<50 m)",
		District:  "Tampan",
	}
	if day != "" {
		t, _ := time.Parse(model.DayFormat, day)
		r.ObservedAt = t
	}
	return r
}

func TestAggregate_VolumeCounts(t *testing.T) {
	view := []model.WasteRecord{
		rec(model.CategoryOrganic, model.VolumeSmall, "2026-08-01"),
		rec(model.CategoryPlastic, model.VolumeMedium, "2026-08-01"),
		rec(model.CategoryPlastic, model.VolumeMedium, "2026-08-02"),
		rec(model.CategoryMixed, model.VolumeLarge, "2026-08-03"),
	}
	s := Aggregate(view)

	if s.Total != 4 {
		t.Fatalf("Total=%d want 4", s.Total)
	}
	want := map[model.VolumeClass]int{
		model.VolumeSmall:  1,
		model.VolumeMedium: 2,
		model.VolumeLarge:  1,
	}
	for k, v := range want {
		if s.VolumeCounts[k] != v {
			t.Fatalf("VolumeCounts[%s]=%d want %d", k, s.VolumeCounts[k], v)
		}
	}
}

func TestAggregate_VolumeBucketsZeroFilled(t *testing.T) {
	s := Aggregate([]model.WasteRecord{
		rec(model.CategoryOrganic, model.VolumeSmall, ""),
	})
	for _, v := range model.VolumeClasses() {
		if _, ok := s.VolumeCounts[v]; !ok {
			t.Fatalf("bucket %s missing from VolumeCounts", v)
		}
	}
	if s.VolumeCounts[model.VolumeLarge] != 0 {
		t.Fatalf("empty bucket should be zero")
	}
}

func TestAggregate_CategoryPercent(t *testing.T) {
	view := []model.WasteRecord{
		rec(model.CategoryOrganic, model.VolumeSmall, ""),
		rec(model.CategoryOrganic, model.VolumeSmall, ""),
		rec(model.CategoryPlastic, model.VolumeSmall, ""),
	}
	s := Aggregate(view)

	if s.CategoryPercent[model.CategoryOrganic] != 67 {
		t.Fatalf("organic=%d want 67", s.CategoryPercent[model.CategoryOrganic])
	}
	if s.CategoryPercent[model.CategoryPlastic] != 33 {
		t.Fatalf("plastic=%d want 33", s.CategoryPercent[model.CategoryPlastic])
	}
	if s.CategoryPercent[model.CategoryMixed] != 0 {
		t.Fatalf("mixed=%d want 0", s.CategoryPercent[model.CategoryMixed])
	}
}

func TestAggregate_EmptyView(t *testing.T) {
	s := Aggregate(nil)
	if s.Total != 0 {
		t.Fatalf("Total=%d want 0", s.Total)
	}
	for _, c := range model.Categories() {
		if s.CategoryPercent[c] != 0 {
			t.Fatalf("percent on empty view should be 0, got %d for %s", s.CategoryPercent[c], c)
		}
	}
	if len(s.Histogram) != 0 {
		t.Fatalf("histogram on empty view: %v", s.Histogram)
	}
}

func TestAggregate_HistogramSortedAndSkipsUndated(t *testing.T) {
	view := []model.WasteRecord{
		rec(model.CategoryOrganic, model.VolumeSmall, "2026-08-03"),
		rec(model.CategoryOrganic, model.VolumeSmall, "2026-08-01"),
		rec(model.CategoryOrganic, model.VolumeSmall, "2026-08-03"),
		rec(model.CategoryOrganic, model.VolumeSmall, ""),
	}
	s := Aggregate(view)

	if len(s.Histogram) != 2 {
		t.Fatalf("histogram len=%d want 2", len(s.Histogram))
	}
	if !sort.SliceIsSorted(s.Histogram, func(i, j int) bool {
		return s.Histogram[i].Day < s.Histogram[j].Day
	}) {
		t.Fatalf("histogram not sorted: %v", s.Histogram)
	}
	if s.Histogram[1].Day != "2026-08-03" || s.Histogram[1].Count != 2 {
		t.Fatalf("histogram tail=%+v", s.Histogram[1])
	}
}
