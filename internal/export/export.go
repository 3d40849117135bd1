// Package export reconstructs downloadable documents from a view: the
// source GeoJSON shape and a flat CSV table.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
	"github.com/RahmadZikry/geodump/internal/ingest"
)

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type feature struct {
	Type       string            `json:"type"`
	ID         int               `json:"id"`
	Properties ingest.Properties `json:"properties"`
	Geometry   *geometry         `json:"geometry,omitempty"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// FeatureCollection rebuilds the source document shape from the view,
// restoring the external field names and vocabulary.
func FeatureCollection(view []model.WasteRecord) ([]byte, error) {
	fc := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, len(view)),
	}
	for i, r := range view {
		f := feature{
			Type: "Feature",
			ID:   i,
			Properties: ingest.Properties{
				ID:         r.ID,
				Category:   r.Category.SourceName(),
				Volume:     r.Volume.SourceName(),
				Proximity:  r.Proximity,
				District:   r.District,
				ObservedAt: r.Day(),
			},
		}
		if r.Coord != nil {
			lon, lat := r.Coord.Lon, r.Coord.Lat
			f.Properties.Lon = &lon
			f.Properties.Lat = &lat
			f.Geometry = &geometry{Type: "Point", Coordinates: []float64{lon, lat}}
		}
		fc.Features = append(fc.Features, f)
	}

	buf, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feature collection: %w", err)
	}
	return buf, nil
}

// CSVHeader is the fixed column order of the tabular export.
var CSVHeader = []string{
	"No",
	"ID",
	"Kecamatan",
	"Jenis Sampah",
	"Volume",
	"Kondisi Lingkungan",
	"Waktu Pengamatan",
	"Latitude",
	"Longitude",
}

// CSV renders the view as a comma-separated table with the fixed header.
// Missing values are written as "-", matching the source export.
func CSV(view []model.WasteRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range view {
		lat, lon := "-", "-"
		if r.Coord != nil {
			lat = strconv.FormatFloat(r.Coord.Lat, 'f', -1, 64)
			lon = strconv.FormatFloat(r.Coord.Lon, 'f', -1, 64)
		}
		row := []string{
			strconv.Itoa(i + 1),
			orDash(r.ID),
			orDash(r.District),
			orDash(r.Category.SourceName()),
			orDash(r.Volume.SourceName()),
			orDash(r.Proximity),
			orDash(r.Day()),
			lat,
			lon,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Filename builds the dated download name, e.g. geodump_data_2026-08-28.json.
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format(model.DayFormat), ext)
}
