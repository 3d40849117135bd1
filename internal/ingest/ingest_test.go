package ingest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

const sampleDoc = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {
        "ID_data": "dt1",
        "Jenis_Samp": "Organik",
        "Volume___L": "Kecil",
        "Kondisi_Li": "Dekat (<50 m)",
        "Kecamatan": "Sukajadi",
        "Waktu_temp": "2026-08-10 14:30:00",
        "X": 101.45,
        "Y": 0.51
      }
    },
    {
      "type": "Feature",
      "properties": {
        "ID_data": "dt2",
        "Jenis_Samp": "Campuran",
        "Volume___L": "Besar",
        "Kondisi_Li": "Jauh (>100 m)",
        "Kecamatan": "Tampan",
        "Waktu_temp": "not-a-date",
        "X": 101.40
      }
    },
    {
      "type": "Feature",
      "properties": {
        "ID_data": "",
        "Jenis_Samp": "Plastik",
        "Volume___L": "Sedang",
        "Kondisi_Li": "x",
        "Kecamatan": "Tampan"
      }
    }
  ]
}`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse_FieldMapping(t *testing.T) {
	records, skipped, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("skipped=%d want 1 (blank id feature)", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("records=%d want 2", len(records))
	}

	r := records[0]
	if r.ID != "dt1" || r.Category != model.CategoryOrganic || r.Volume != model.VolumeSmall {
		t.Fatalf("mapped record: %+v", r)
	}
	if r.District != "Sukajadi" || r.Proximity != "Dekat (<50 m)" {
		t.Fatalf("mapped record: %+v", r)
	}
	// time component after the space is dropped
	if r.Day() != "2026-08-10" {
		t.Fatalf("Day=%q want 2026-08-10", r.Day())
	}
	if r.Coord == nil || r.Coord.Lat != 0.51 || r.Coord.Lon != 101.45 {
		t.Fatalf("coord: %+v", r.Coord)
	}
}

func TestParse_HalfCoordinateAndBadDate(t *testing.T) {
	records, _, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := records[1]
	// only X was present
	if r.Coord != nil {
		t.Fatalf("half-specified coordinate kept: %+v", r.Coord)
	}
	if !r.ObservedAt.IsZero() {
		t.Fatalf("unparseable date should yield undated record")
	}
}

func TestParse_RejectsMalformedDocument(t *testing.T) {
	if _, _, err := Parse([]byte(`{"type":"FeatureCollection"}`)); err == nil {
		t.Fatalf("expected error for missing features array")
	}
	if _, _, err := Parse([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed json")
	}
}

func TestFallback_DeterministicAndValid(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	a := Fallback(100, now, 7)
	b := Fallback(100, now, 7)
	if len(a) != 100 {
		t.Fatalf("len=%d want 100", len(a))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].District != b[i].District {
			t.Fatalf("same seed produced different records at %d", i)
		}
	}

	cutoff := now.AddDate(0, 0, -14)
	for i, r := range a {
		if err := r.Validate(); err != nil {
			t.Fatalf("record %d invalid: %v", i, err)
		}
		if r.Coord == nil {
			t.Fatalf("record %d has no coordinate", i)
		}
		if r.Coord.Lat < 0.5 || r.Coord.Lat > 0.55 || r.Coord.Lon < 101.4 || r.Coord.Lon > 101.5 {
			t.Fatalf("record %d coordinate out of area: %+v", i, r.Coord)
		}
		if r.ObservedAt.Before(cutoff.AddDate(0, 0, -1)) || r.ObservedAt.After(now) {
			t.Fatalf("record %d date out of window: %v", i, r.ObservedAt)
		}
	}
	if a[0].ID != "dt1" || a[99].ID != "dt100" {
		t.Fatalf("ids: %s..%s", a[0].ID, a[99].ID)
	}
}

func TestLoad_FileAndFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.geojson")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	got := Load(context.Background(), path, 10, 1, discard())
	if len(got) != 2 {
		t.Fatalf("loaded %d records from file, want 2", len(got))
	}

	// missing file falls back to the generated set
	got = Load(context.Background(), filepath.Join(dir, "missing.geojson"), 10, 1, discard())
	if len(got) != 10 {
		t.Fatalf("fallback size=%d want 10", len(got))
	}
}
