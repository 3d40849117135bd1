package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
	"github.com/RahmadZikry/geodump/internal/export"
	"github.com/RahmadZikry/geodump/internal/grid"
	"github.com/RahmadZikry/geodump/internal/proximity"
	"github.com/RahmadZikry/geodump/internal/stats"
	"github.com/RahmadZikry/geodump/internal/viewcache"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeError(w, err)
		return
	}

	key := viewcache.KeyFor(s.store.Version(), "stats|"+f.Canonical())
	if cached, ok := s.statsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	out := stats.Aggregate(s.view(f))
	s.statsCache.Add(key, out)
	writeJSON(w, http.StatusOK, out)
}

type nearestEntry struct {
	proximity.Ranked
	NavigationURL string `json:"navigationUrl,omitempty"`
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	rawLat := strings.TrimSpace(q.Get("lat"))
	rawLon := strings.TrimSpace(q.Get("lon"))
	if (rawLat == "") != (rawLon == "") {
		badRequest(w, "lat and lon must be supplied together")
		return
	}

	var ref *model.Coordinate
	if rawLat != "" {
		lat, err := strconv.ParseFloat(rawLat, 64)
		if err != nil {
			badRequest(w, "lat must be a number")
			return
		}
		lon, err := strconv.ParseFloat(rawLon, 64)
		if err != nil {
			badRequest(w, "lon must be a number")
			return
		}
		c := model.Coordinate{Lat: lat, Lon: lon}
		if err := c.Validate(); err != nil {
			writeError(w, err)
			return
		}
		ref = &c
	}

	dir, err := proximity.ParseDirection(strings.TrimSpace(q.Get("dir")))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	ranked := proximity.Rank(ref, s.view(f), dir)
	out := make([]nearestEntry, 0, len(ranked))
	for _, e := range ranked {
		entry := nearestEntry{Ranked: e}
		if e.Record.Coord != nil {
			entry.NavigationURL = proximity.NavigationURL(*e.Record.Coord)
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "total": len(out)})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	res := s.cfg.GridRes
	if raw := strings.TrimSpace(r.URL.Query().Get("res")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, "res must be an integer")
			return
		}
		res = n
	}

	key := viewcache.KeyFor(s.store.Version(), fmt.Sprintf("grid|res=%d", res))
	if cached, ok := s.gridCache.Get(key); ok {
		writeJSON(w, http.StatusOK, map[string]any{"resolution": res, "cells": cached})
		return
	}

	cells, err := grid.CellCounts(s.store.All(), res)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	s.gridCache.Add(key, cells)
	writeJSON(w, http.StatusOK, map[string]any{"resolution": res, "cells": cells})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeError(w, err)
		return
	}
	view := s.view(f)

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "", "geojson":
		buf, err := export.FeatureCollection(view)
		if err != nil {
			writeError(w, err)
			return
		}
		name := export.Filename("geodump_data", "json", time.Now())
		w.Header().Set("Content-Type", "application/geo+json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_, _ = w.Write(buf)
	case "csv":
		buf, err := export.CSV(view)
		if err != nil {
			writeError(w, err)
			return
		}
		name := export.Filename("geodump_data", "csv", time.Now())
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_, _ = w.Write(buf)
	default:
		badRequest(w, "format must be geojson or csv")
	}
}
