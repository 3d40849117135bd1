package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RahmadZikry/geodump/internal/core/model"
	"github.com/RahmadZikry/geodump/internal/observability"
	"github.com/RahmadZikry/geodump/internal/session"
	"github.com/RahmadZikry/geodump/internal/store"
)

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// instrument records request count and latency under a fixed route label so
// path parameters do not explode the cardinality.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next(sw, r)
		observability.ObserveHTTP(r.Method, route, sw.code, time.Since(start).Seconds())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type apiError struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var ve model.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, apiError{Error: ve.Error()})
	case errors.Is(err, store.ErrDuplicateID):
		writeJSON(w, http.StatusConflict, apiError{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
	case errors.Is(err, session.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, apiError{Error: err.Error()})
	case errors.Is(err, session.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, apiError{Error: err.Error()})
	case errors.Is(err, session.ErrNoSession):
		writeJSON(w, http.StatusUnauthorized, apiError{Error: err.Error()})
	case errors.Is(err, session.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, apiError{Error: msg})
}
