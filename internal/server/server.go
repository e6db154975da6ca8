// Package server exposes the pedigree pipeline over HTTP.
//
// Routes:
//
//	GET /health                   liveness probe
//	GET /pedigree/{id}            row-span HTML table
//	GET /pedigree/{id}/wheel.svg  radial wheel SVG
//	GET /pedigree/{id}/graph.svg  node-link diagram SVG
//	GET /pedigree/{id}/report     inbreeding report JSON
//
// Every pedigree route accepts a ?gen=N query parameter for the generation
// count; it is clamped to the recorded ancestry like everywhere else.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
	"github.com/bloodline-tools/bloodline/pkg/pipeline"
)

// Server serves rendered pedigrees from one loaded record store.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around the given runner. If logger is nil, the
// default logger is used.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with request-id, logging, and panic-recovery
// middleware installed.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Route("/pedigree/{id}", func(r chi.Router) {
		r.Get("/", s.handleTable)
		r.Get("/wheel.svg", s.handleWheel)
		r.Get("/graph.svg", s.handleGraph)
		r.Get("/report", s.handleReport)
	})
	return r
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.VizTable, pipeline.FormatHTML, "text/html; charset=utf-8")
}

func (s *Server) handleWheel(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.VizWheel, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.VizGraph, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.VizTable, pipeline.FormatJSON, "application/json")
}

// render runs the pipeline for one route and writes the single requested
// artifact.
func (s *Server) render(w http.ResponseWriter, r *http.Request, viz, format, contentType string) {
	opts := pipeline.Options{
		Subject: chi.URLParam(r, "id"),
		VizType: viz,
		Formats: []string{format},
		Logger:  s.logger,
	}

	if gen := r.URL.Query().Get("gen"); gen != "" {
		n, err := strconv.Atoi(gen)
		if err != nil || n < 1 {
			http.Error(w, "gen must be a positive integer", http.StatusBadRequest)
			return
		}
		opts.Generations = n
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, pedigree.ErrEmptyID) || errors.Is(err, pedigree.ErrInvalidGenerations) || errors.Is(err, pedigree.ErrInvalidBound) {
		status = http.StatusBadRequest
	}
	s.logger.Error("request failed",
		"request_id", GetRequestID(r.Context()),
		"path", r.URL.Path,
		"err", err)
	http.Error(w, err.Error(), status)
}
