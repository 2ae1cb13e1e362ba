// Package server provides the HTTP API for the summarizer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/divyamb08/multilingual-summarizer/internal/config"
	"github.com/divyamb08/multilingual-summarizer/internal/extract"
	"github.com/divyamb08/multilingual-summarizer/internal/language"
	"github.com/divyamb08/multilingual-summarizer/internal/store"
	"github.com/divyamb08/multilingual-summarizer/internal/summarize"
)

// Server is the HTTP server for the summarizer API.
type Server struct {
	extractor  *extract.Extractor
	detector   *language.Detector
	summarizer *summarize.Service
	store      *store.Store
	config     *config.Config
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	extractor *extract.Extractor,
	detector *language.Detector,
	summarizer *summarize.Service,
	st *store.Store,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		extractor:  extractor,
		detector:   detector,
		summarizer: summarizer,
		store:      st,
		config:     cfg,
		logger:     logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/extract", s.handleExtract)
	r.Post("/api/v1/summarize", s.handleSummarize)
	r.Post("/api/v1/detect", s.handleDetect)
	r.Get("/api/v1/history", s.handleHistoryList)
	r.Delete("/api/v1/history/{id}", s.handleHistoryDelete)
	r.Delete("/api/v1/history", s.handleHistoryClear)
	r.Get("/api/v1/preferences", s.handlePreferencesGet)
	r.Put("/api/v1/preferences", s.handlePreferencesPut)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
