package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pushpak1497/swift/internal/domain"
)

// HealthHandler serves liveness and readiness on the admin port
type HealthHandler struct {
	store  domain.Store
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store domain.Store, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthHandler{
		store:  store,
		logger: logger,
	}
}

// ReadinessResponse represents the readiness check response
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /healthz. It only says the process is up.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Ready handles GET /readyz and pings the store
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"store": "ok"}
	status := "ready"
	statusCode := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		checks["store"] = "error: " + err.Error()
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
		h.logger.Warn("readiness check failed", slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ReadinessResponse{Status: status, Checks: checks})
}

// NewAdminRouter serves health, readiness and Prometheus metrics
func NewAdminRouter(h *HealthHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	return r
}
