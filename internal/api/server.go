// Package api exposes the read-only HTTP interface over the pipeline.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/pipeline"
)

// PipelineSource is the slice of the pipeline manager the server reads.
type PipelineSource interface {
	Status() pipeline.Status
	ProgressReport() string
}

// Server wires HTTP handlers to the pipeline state.
type Server struct {
	router chi.Router
	pl     PipelineSource
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(pl PipelineSource, logger *zap.Logger) *Server {
	s := &Server{pl: pl, logger: logger}

	r := chi.NewRouter()
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/pipeline", func(r chi.Router) {
			r.Get("/status", s.getStatus)
			r.Get("/report", s.getReport)
		})
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.pl.Status())
}

func (s *Server) getReport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(s.pl.ProgressReport())); err != nil {
		s.logger.Warn("report write failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
