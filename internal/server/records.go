package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/RahmadZikry/geodump/internal/core/model"
	"github.com/RahmadZikry/geodump/internal/events"
	"github.com/RahmadZikry/geodump/internal/paginate"
	"github.com/RahmadZikry/geodump/internal/query"
	"github.com/RahmadZikry/geodump/internal/store"
)

// parseFilters reads the shared filter query parameters.
func parseFilters(r *http.Request) (query.Filters, error) {
	q := r.URL.Query()
	f := query.Filters{
		TextSearch: q.Get("search"),
		District:   q.Get("district"),
		Category:   q.Get("category"),
		Volume:     q.Get("volume"),
	}
	if raw := strings.TrimSpace(q.Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return query.Filters{}, model.ValidationError{Field: "days", Reason: "must be a non-negative integer"}
		}
		f.DayWindow = n
	}
	return f, nil
}

// view computes the filtered record view for a request.
func (s *Server) view(f query.Filters) []model.WasteRecord {
	return s.engine.Apply(s.store.All(), f)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	page := 1
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, "page must be an integer")
			return
		}
		page = n
	}
	size := s.cfg.PageSize
	if raw := strings.TrimSpace(q.Get("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(w, "size must be a positive integer")
			return
		}
		size = n
	}

	writeJSON(w, http.StatusOK, paginate.Paginate(s.view(f), size, page))
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type recordRequest struct {
	ID        string   `json:"id"`
	Category  string   `json:"category"`
	Volume    string   `json:"volume"`
	Proximity string   `json:"proximity"`
	District  string   `json:"district"`
	Date      string   `json:"date"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
}

func (req recordRequest) toRecord() (model.WasteRecord, error) {
	rec := model.WasteRecord{
		ID:        strings.TrimSpace(req.ID),
		Proximity: strings.TrimSpace(req.Proximity),
		District:  strings.TrimSpace(req.District),
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	cat, err := model.ParseCategory(req.Category)
	if err != nil {
		return model.WasteRecord{}, model.ValidationError{Field: "category", Reason: "must be one of organic|plastic|mixed"}
	}
	rec.Category = cat

	vol, err := model.ParseVolumeClass(req.Volume)
	if err != nil {
		return model.WasteRecord{}, model.ValidationError{Field: "volume", Reason: "must be one of small|medium|large"}
	}
	rec.Volume = vol

	if d := strings.TrimSpace(req.Date); d != "" {
		t, err := model.ParseDay(d)
		if err != nil {
			return model.WasteRecord{}, model.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
		rec.ObservedAt = t
	}

	if (req.Lat == nil) != (req.Lon == nil) {
		return model.WasteRecord{}, model.ValidationError{Field: "coordinates", Reason: "lat and lon must be supplied together"}
	}
	if req.Lat != nil {
		c := model.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
		if err := c.Validate(); err != nil {
			return model.WasteRecord{}, err
		}
		rec.Coord = &c
	}
	return rec, nil
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	rec, err := req.toRecord()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Insert(rec); err != nil {
		writeError(w, err)
		return
	}
	s.publish(r, events.OpInsert, rec.ID, rec.District)
	s.log.InfoContext(r.Context(), "record created", "id", rec.ID, "district", rec.District)
	writeJSON(w, http.StatusCreated, rec)
}

type recordPatch struct {
	Category  *string `json:"category"`
	Volume    *string `json:"volume"`
	Proximity *string `json:"proximity"`
	District  *string `json:"district"`
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req recordPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	var u store.Update
	if req.Category != nil {
		cat, err := model.ParseCategory(*req.Category)
		if err != nil {
			writeError(w, model.ValidationError{Field: "category", Reason: "must be one of organic|plastic|mixed"})
			return
		}
		u.Category = &cat
	}
	if req.Volume != nil {
		vol, err := model.ParseVolumeClass(*req.Volume)
		if err != nil {
			writeError(w, model.ValidationError{Field: "volume", Reason: "must be one of small|medium|large"})
			return
		}
		u.Volume = &vol
	}
	u.Proximity = req.Proximity
	u.District = req.District

	rec, err := s.store.Apply(id, u)
	if err != nil {
		writeError(w, err)
		return
	}
	s.publish(r, events.OpUpdate, rec.ID, rec.District)
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	s.publish(r, events.OpDelete, id, "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDistricts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"districts": s.store.Districts()})
}

func (s *Server) publish(r *http.Request, op, id, district string) {
	actor := ""
	if u, ok := userFrom(r.Context()); ok {
		actor = u.Email
	}
	s.events.Publish(events.Event{Op: op, RecordID: id, District: district, Actor: actor})
}
