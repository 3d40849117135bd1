package proximity

import (
	"math"
	"strings"
	"testing"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

func located(id string, lat, lon float64) model.WasteRecord {
	return model.WasteRecord{
		ID:        id,
		Category:  model.CategoryMixed,
		Volume:    model.VolumeSmall,
		Proximity: "Dekat (<50 m)",
		District:  "Tampan",
		Coord:     &model.Coordinate{Lat: lat, Lon: lon},
	}
}

func TestHaversine_OneDegreeOfLatitude(t *testing.T) {
	d := Haversine(model.Coordinate{Lat: 0, Lon: 0}, model.Coordinate{Lat: 1, Lon: 0})
	// one degree of latitude on the mean-radius sphere
	if math.Abs(d-111.19) > 0.05 {
		t.Fatalf("distance=%f want ~111.19", d)
	}
	if Haversine(model.Coordinate{Lat: 0.5, Lon: 101.4}, model.Coordinate{Lat: 0.5, Lon: 101.4}) != 0 {
		t.Fatalf("identical points should be 0 km apart")
	}
}

func TestRank_AscendingOrderAndNearestFlag(t *testing.T) {
	ref := &model.Coordinate{Lat: 0, Lon: 0}
	recs := []model.WasteRecord{
		located("far", 0, 2),
		located("near", 0, 1),
	}

	got := Rank(ref, recs, Ascending)
	if len(got) != 2 {
		t.Fatalf("len=%d want 2", len(got))
	}
	if got[0].Record.ID != "near" || got[1].Record.ID != "far" {
		t.Fatalf("order: %s, %s", got[0].Record.ID, got[1].Record.ID)
	}
	if !got[0].Nearest || got[1].Nearest {
		t.Fatalf("nearest flag misplaced")
	}
	if got[0].DistanceKm == nil || math.Abs(*got[0].DistanceKm-111.19) > 0.05 {
		t.Fatalf("near distance=%v", got[0].DistanceKm)
	}
	if math.Abs(*got[1].DistanceKm-222.38) > 0.1 {
		t.Fatalf("far distance=%v", *got[1].DistanceKm)
	}
}

func TestRank_DescendingHasNoNearestFlag(t *testing.T) {
	ref := &model.Coordinate{Lat: 0, Lon: 0}
	recs := []model.WasteRecord{
		located("near", 0, 1),
		located("far", 0, 2),
	}

	got := Rank(ref, recs, Descending)
	if got[0].Record.ID != "far" {
		t.Fatalf("descending order wrong: %s first", got[0].Record.ID)
	}
	for _, e := range got {
		if e.Nearest {
			t.Fatalf("nearest flag set on descending ranking")
		}
	}
}

func TestRank_SkipsRecordsWithoutCoordinates(t *testing.T) {
	recs := []model.WasteRecord{
		located("a", 0, 1),
		{ID: "nogeo", Category: model.CategoryMixed, Volume: model.VolumeSmall, Proximity: "x", District: "Tampan"},
	}
	got := Rank(&model.Coordinate{Lat: 0, Lon: 0}, recs, Ascending)
	if len(got) != 1 || got[0].Record.ID != "a" {
		t.Fatalf("unlocated record survived ranking: %+v", got)
	}
}

func TestRank_NilReferenceKeepsOrder(t *testing.T) {
	recs := []model.WasteRecord{
		located("b", 0, 2),
		located("a", 0, 1),
	}
	got := Rank(nil, recs, Ascending)
	if got[0].Record.ID != "b" || got[1].Record.ID != "a" {
		t.Fatalf("nil ref changed order")
	}
	for _, e := range got {
		if e.DistanceKm != nil {
			t.Fatalf("distance computed without a reference")
		}
		if e.Nearest {
			t.Fatalf("nearest flag set without a reference")
		}
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection(""); err != nil || d != Ascending {
		t.Fatalf("empty direction")
	}
	if d, err := ParseDirection("desc"); err != nil || d != Descending {
		t.Fatalf("desc direction")
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("expected error for invalid direction")
	}
}

func TestNavigationURL(t *testing.T) {
	u := NavigationURL(model.Coordinate{Lat: 0.51, Lon: 101.45})
	if !strings.HasPrefix(u, "https://www.google.com/maps/dir/?api=1&destination=") {
		t.Fatalf("unexpected url %q", u)
	}
	if !strings.Contains(u, "0.51") || !strings.Contains(u, "101.45") {
		t.Fatalf("coordinates missing from url %q", u)
	}
}
