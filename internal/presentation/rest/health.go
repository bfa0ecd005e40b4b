package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// pingTimeout bounds a readiness probe's dependency checks.
const pingTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides HTTP health check endpoints for the assessment service.
type HealthHandler struct {
	repository   Pinger
	modelVersion string
	logger       *slog.Logger
	startTime    time.Time
}

// NewHealthHandler creates a new health check handler. Readiness pings the
// assessment repository.
func NewHealthHandler(repository Pinger, modelVersion string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		repository:   repository,
		modelVersion: modelVersion,
		logger:       logger,
		startTime:    time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status       string `json:"status"`
	Service      string `json:"service"`
	Uptime       string `json:"uptime"`
	ModelVersion string `json:"model_version"`
	ModelLoaded  bool   `json:"model_loaded"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests. The process only listens once
// the artifacts have loaded, so a live process always has a model.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		Service:      ServiceName,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		ModelVersion: h.modelVersion,
		ModelLoaded:  h.modelVersion != "",
	})
}

// Readyz handles readiness probe requests.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	checks := map[string]string{"model": "ok"}
	status, code := "ready", http.StatusOK

	if err := h.repository.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "readiness check failed", "check", "repository", "error", err)
		checks["repository"] = err.Error()
		status, code = "not ready", http.StatusServiceUnavailable
	} else {
		checks["repository"] = "ok"
	}

	writeJSON(w, code, ReadinessResponse{
		Status:  status,
		Service: ServiceName,
		Checks:  checks,
	})
}
