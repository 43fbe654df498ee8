package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"SignalScout/internal/scanner"
	"SignalScout/internal/store"
)

// Server exposes the manual scan trigger and the thin CRUD routes over the
// store. All handlers are glue: decode, call the store or scanner, encode.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	store   *store.Store
	scanner *scanner.Scanner
	secret  string
}

// New creates the HTTP server. secret gates the manual scan trigger; an
// empty secret leaves the trigger open (local use).
func New(addr string, st *store.Store, sc *scanner.Scanner, secret string) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		store:   st,
		scanner: sc,
		secret:  secret,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(120 * time.Second))

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 125 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/scan", s.handleScanHint)
		r.Post("/scan", s.handleScan)

		r.Get("/assets", s.handleListAssets)
		r.Post("/assets", s.handleCreateAsset)
		r.Patch("/assets", s.handleUpdateAsset)

		r.Get("/notifications", s.handleListNotifications)
		r.Patch("/notifications", s.handleUpdateNotification)

		r.Get("/settings", s.handleGetSettings)
		r.Patch("/settings", s.handleUpdateSettings)

		r.Get("/positions", s.handleListPositions)
		r.Post("/positions", s.handleOpenPosition)
		r.Patch("/positions", s.handleUpdatePosition)
	})
}

// Start starts the HTTP server. Blocks until shutdown.
func (s *Server) Start() error {
	log.Printf("[INFO] http server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
