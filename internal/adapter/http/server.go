package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// BeachStore persists beaches per user.
type BeachStore interface {
	Create(ctx context.Context, beach domain.Beach) (domain.Beach, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Beach, error)
	Delete(ctx context.Context, userID, id string) error
}

// ForecastProcessor builds the rated forecast for a set of beaches.
type ForecastProcessor interface {
	ProcessForecastForBeaches(ctx context.Context, beaches []domain.Beach) ([]domain.TimeForecast, error)
}

// ForecastPublisher receives every forecast served to a user. May be nil.
type ForecastPublisher interface {
	PublishForecast(ctx context.Context, userID string, forecast []domain.TimeForecast) error
}

// Server exposes the beach and forecast API alongside health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	beaches    BeachStore
	forecasts  ForecastProcessor
	publisher  ForecastPublisher
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, ready ReadinessChecker, beaches BeachStore, forecasts ForecastProcessor, publisher ForecastPublisher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: mux,
			// Forecasts make one StormGlass call per beach, so writes get more room.
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		beaches:   beaches,
		forecasts: forecasts,
		publisher: publisher,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /beaches", s.requireUser(s.handleCreateBeach))
	mux.HandleFunc("GET /beaches", s.requireUser(s.handleListBeaches))
	mux.HandleFunc("DELETE /beaches/{id}", s.requireUser(s.handleDeleteBeach))
	mux.HandleFunc("GET /forecast", s.requireUser(s.handleForecast))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
