// Package ingest loads the waste-report dataset from its GeoJSON-like
// source document and converts the external field names into typed
// records once, at the boundary.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
)

// Properties mirrors the source document's per-feature attribute names.
type Properties struct {
	ID         string   `json:"ID_data"`
	Category   string   `json:"Jenis_Samp"`
	Volume     string   `json:"Volume___L"`
	Proximity  string   `json:"Kondisi_Li"`
	District   string   `json:"Kecamatan"`
	ObservedAt string   `json:"Waktu_temp"`
	Lon        *float64 `json:"X"`
	Lat        *float64 `json:"Y"`
}

type Feature struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
}

type Document struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Parse converts a source document into records. Features with unusable
// attributes are skipped and counted rather than failing the whole load.
func Parse(data []byte) ([]model.WasteRecord, int, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parse dataset: %w", err)
	}
	if doc.Features == nil {
		return nil, 0, errors.New(`parse dataset: missing "features" array`)
	}

	records := make([]model.WasteRecord, 0, len(doc.Features))
	skipped := 0
	for _, f := range doc.Features {
		r, err := fromProperties(f.Properties)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

func fromProperties(p Properties) (model.WasteRecord, error) {
	cat, err := model.ParseCategory(p.Category)
	if err != nil {
		return model.WasteRecord{}, err
	}
	vol, err := model.ParseVolumeClass(p.Volume)
	if err != nil {
		return model.WasteRecord{}, err
	}

	r := model.WasteRecord{
		ID:         strings.TrimSpace(p.ID),
		Category:   cat,
		Volume:     vol,
		Proximity:  strings.TrimSpace(p.Proximity),
		District:   strings.TrimSpace(p.District),
		ObservedAt: parseDay(p.ObservedAt),
	}

	// both coordinates or none; half-specified positions lose geo features
	if p.Lat != nil && p.Lon != nil {
		r.Coord = &model.Coordinate{Lat: *p.Lat, Lon: *p.Lon}
	}

	if err := r.Validate(); err != nil {
		return model.WasteRecord{}, err
	}
	return r, nil
}

// parseDay keeps only the date portion; a trailing time component after a
// space is dropped. Unparseable dates yield the zero time (undated).
func parseDay(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(model.DayFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Load reads the dataset from a local path or an http(s) URL. A missing
// or malformed source is not fatal: the caller receives the synthetic
// fallback set so the dashboard stays populated.
func Load(ctx context.Context, source string, fallbackSize int, fallbackSeed uint64, log *slog.Logger) []model.WasteRecord {
	data, err := read(ctx, source)
	if err == nil {
		records, skipped, perr := Parse(data)
		if perr == nil {
			if skipped > 0 {
				log.Warn("dataset features skipped", "source", source, "skipped", skipped)
			}
			log.Info("dataset loaded", "source", source, "records", len(records))
			return records
		}
		err = perr
	}

	log.Warn("dataset load failed, using generated fallback",
		"source", source,
		"size", fallbackSize,
		"err", err)
	if fallbackSeed == 0 {
		fallbackSeed = uint64(time.Now().UnixNano())
	}
	return Fallback(fallbackSize, time.Now(), fallbackSeed)
}

func read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	return data, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read dataset body: %w", err)
	}
	return body, nil
}
