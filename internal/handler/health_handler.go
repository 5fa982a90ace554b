package handler

import (
	"net/http"
	"time"

	"votepulse/internal/container"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{
		container: container,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health. The document store is required; the cache is
// reported but never fails the check.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	ctx := r.Context()

	checks := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.container.GetMongo().Health(ctx); err != nil {
		logger.WithError(err).Error("Document store health check failed")
		checks["mongo"] = "unavailable"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["mongo"] = "ok"
	}

	if cache := h.container.GetRedis(); cache != nil {
		if err := cache.Health(ctx); err != nil {
			logger.WithError(err).Warn("Cache health check failed")
			checks["redis"] = "unavailable"
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "disabled"
	}

	respondJSON(w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   "votepulse",
		Checks:    checks,
	})
}
