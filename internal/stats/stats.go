// Package stats computes the aggregate figures shown on the dashboard.
package stats

import (
	"math"
	"sort"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

// DayCount is one point of the per-day time series.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type Stats struct {
	Total int `json:"total"`

	// VolumeCounts always carries all three buckets, zero-filled.
	VolumeCounts map[model.VolumeClass]int `json:"volumeCounts"`

	// CategoryPercent holds integer percentages of Total per category,
	// rounded to nearest; all zero when the view is empty.
	CategoryPercent map[model.Category]int `json:"categoryPercent"`

	// Histogram is sorted ascending by ISO day string; undated records do
	// not contribute.
	Histogram []DayCount `json:"histogram"`
}

func Aggregate(view []model.WasteRecord) Stats {
	s := Stats{
		Total:           len(view),
		VolumeCounts:    make(map[model.VolumeClass]int, 3),
		CategoryPercent: make(map[model.Category]int, 3),
	}
	for _, v := range model.VolumeClasses() {
		s.VolumeCounts[v] = 0
	}

	catCounts := make(map[model.Category]int, 3)
	dayCounts := make(map[string]int)
	for _, r := range view {
		s.VolumeCounts[r.Volume]++
		catCounts[r.Category]++
		if d := r.Day(); d != "" {
			dayCounts[d]++
		}
	}

	for _, c := range model.Categories() {
		// percentages are defined as 0 on an empty view
		if s.Total == 0 {
			s.CategoryPercent[c] = 0
			continue
		}
		s.CategoryPercent[c] = int(math.Round(float64(catCounts[c]) / float64(s.Total) * 100))
	}

	days := make([]string, 0, len(dayCounts))
	for d := range dayCounts {
		days = append(days, d)
	}
	sort.Strings(days)
	s.Histogram = make([]DayCount, 0, len(days))
	for _, d := range days {
		s.Histogram = append(s.Histogram, DayCount{Day: d, Count: dayCounts[d]})
	}
	return s
}
