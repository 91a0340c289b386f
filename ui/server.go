// Package ui is the presentation collaborator: a JSON HTTP surface for
// loading datasets, inspecting column statistics, fetching chart
// suggestions, and validating a final chart choice.
package ui

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"chartscout/app"
	"chartscout/domain/column"
	"chartscout/internal"
)

// Server hosts the HTTP API. Loaded datasets are kept in memory for the
// lifetime of the process; analysis results are never persisted and are
// recomputed per request.
type Server struct {
	router  *chi.Mux
	service *app.AnalysisService
	log     *internal.Logger

	mu       sync.RWMutex
	datasets map[uuid.UUID]*column.Dataset
}

// NewServer creates the HTTP server around the analysis service.
func NewServer(service *app.AnalysisService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:   chi.NewRouter(),
		service:  service,
		log:      logger,
		datasets: make(map[uuid.UUID]*column.Dataset),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/charts", s.handleListCharts)
		r.Post("/datasets", s.handleLoadDataset)
		r.Route("/datasets/{datasetID}", func(r chi.Router) {
			r.Get("/analysis", s.handleAnalysis)
			r.Post("/suggestions", s.handleSuggestions)
			r.Post("/validate", s.handleValidate)
		})
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server on the given port.
func (s *Server) ListenAndServe(port string) error {
	s.log.Info("listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

func (s *Server) storeDataset(ds *column.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.ID] = ds
}

func (s *Server) dataset(id uuid.UUID) (*column.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	return ds, ok
}
