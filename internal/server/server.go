// Package server wires the HTTP API on top of the record store and its
// derived views.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RahmadZikry/geodump/internal/core/config"
	"github.com/RahmadZikry/geodump/internal/events"
	"github.com/RahmadZikry/geodump/internal/grid"
	"github.com/RahmadZikry/geodump/internal/health"
	"github.com/RahmadZikry/geodump/internal/middleware"
	"github.com/RahmadZikry/geodump/internal/query"
	"github.com/RahmadZikry/geodump/internal/session"
	"github.com/RahmadZikry/geodump/internal/stats"
	"github.com/RahmadZikry/geodump/internal/store"
	"github.com/RahmadZikry/geodump/internal/viewcache"
)

type Server struct {
	cfg      config.Config
	log      *slog.Logger
	store    *store.Store
	engine   *query.Engine
	sessions *session.Store
	events   *events.Publisher

	statsCache *viewcache.Cache[stats.Stats]
	gridCache  *viewcache.Cache[[]grid.CellCount]

	metricsHandler http.Handler
}

func New(cfg config.Config, log *slog.Logger, st *store.Store, eng *query.Engine, sess *session.Store, pub *events.Publisher, metricsHandler http.Handler) (*Server, error) {
	sc, err := viewcache.New[stats.Stats](cfg.ViewCacheSize)
	if err != nil {
		return nil, err
	}
	gc, err := viewcache.New[[]grid.CellCount](cfg.ViewCacheSize)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:            cfg,
		log:            log,
		store:          st,
		engine:         eng,
		sessions:       sess,
		events:         pub,
		statsCache:     sc,
		gridCache:      gc,
		metricsHandler: metricsHandler,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover())
	r.Use(middleware.Logging(s.log))
	r.Use(middleware.CORS())

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(s.sessions.Ping))
	if s.metricsHandler != nil {
		r.Get("/metrics", s.metricsHandler.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.instrument("/api/register", s.handleRegister))
		r.Post("/login", s.instrument("/api/login", s.handleLogin))
		r.Post("/logout", s.instrument("/api/logout", s.handleLogout))
		r.Get("/me", s.instrument("/api/me", s.requireSession(s.handleMe)))

		r.Get("/records", s.instrument("/api/records", s.handleListRecords))
		r.Get("/records/{id}", s.instrument("/api/records/{id}", s.handleGetRecord))
		r.Post("/records", s.instrument("/api/records", s.requireSession(s.handleCreateRecord)))
		r.Patch("/records/{id}", s.instrument("/api/records/{id}", s.requireSession(s.handleUpdateRecord)))
		r.Delete("/records/{id}", s.instrument("/api/records/{id}", s.requireSession(s.handleDeleteRecord)))

		r.Get("/districts", s.instrument("/api/districts", s.handleDistricts))
		r.Get("/stats", s.instrument("/api/stats", s.handleStats))
		r.Get("/nearest", s.instrument("/api/nearest", s.handleNearest))
		r.Get("/grid", s.instrument("/api/grid", s.handleGrid))
		r.Get("/export", s.instrument("/api/export", s.handleExport))
	})

	return r
}

// sets up http and starts serving
func Run(ctx context.Context, cfg config.Config, log *slog.Logger, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http listen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
