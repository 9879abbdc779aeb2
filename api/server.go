package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"chargecast/aggregator"
	"chargecast/metrics"
	"chargecast/models"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generator is the core the API exposes. Satisfied by aggregator.Aggregator.
type Generator interface {
	ThreeDayAverages(ctx context.Context) ([]models.DailySummary, error)
	OptimalChargingWindow(ctx context.Context, hours int) (models.ChargingWindow, error)
}

// Server represents the API server
type Server struct {
	generator Generator
	logger    *slog.Logger
	server    *http.Server
}

// NewServer creates a new API server
func NewServer(generator Generator, logger *slog.Logger, addr string, metricsEnabled bool) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		generator: generator,
		logger:    logger,
	}

	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/api/v1/generation/three-days", s.handleThreeDays)
	router.HandlerFunc(http.MethodGet, "/api/v1/charge-window", s.handleChargeWindow)
	router.HandlerFunc(http.MethodGet, "/api/health", s.handleHealthCheck)
	if metricsEnabled {
		router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	}

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.instrument(router),
	}

	return s
}

// Start begins the API server
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the API server, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// handleThreeDays handles requests for the three-day clean-energy averages
func (s *Server) handleThreeDays(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.generator.ThreeDayAverages(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// handleChargeWindow handles requests for the optimal charging window
func (s *Server) handleChargeWindow(w http.ResponseWriter, r *http.Request) {
	hoursParam := r.URL.Query().Get("hours")
	hours, err := strconv.Atoi(hoursParam)
	if err != nil {
		s.writeErrorBody(w, r, http.StatusBadRequest, "hours query parameter must be an integer")
		return
	}

	window, err := s.generator.OptimalChargingWindow(r.Context(), hours)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, window)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeError maps a core failure to an HTTP status and error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalidWindow *aggregator.InvalidWindowError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &invalidWindow):
		status = http.StatusBadRequest
	case errors.Is(err, aggregator.ErrNoData), errors.Is(err, aggregator.ErrInsufficientData):
		// Data-side failures, not client mistakes
		status = http.StatusInternalServerError
	case errors.Is(err, aggregator.ErrProviderUnavailable):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Warn("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}

	s.writeErrorBody(w, r, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// instrument wraps the router with request IDs, request logging and metrics
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start),
			"request_id", requestID)
		metrics.ObserveRequest(r.URL.Path, recorder.status)
	})
}

// statusRecorder captures the response status for logging and metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}
