package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Check probes one dependency. A nil Check reports the dependency as
// disabled.
type Check func(ctx context.Context) error

type HealthHandler struct {
	serviceName string
	version     string
	checks      map[string]Check
}

func NewHealthHandler(serviceName, version string, checks map[string]Check) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		checks:      checks,
	}
}

// Liveness answers uptime monitors with a plain "ok".
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if check == nil {
			deps[name] = "disabled"
			continue
		}

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		if err := check(pingCtx); err != nil {
			deps[name] = "down"
		} else {
			deps[name] = "up"
		}
		cancel()
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		Service:      h.serviceName,
		Version:      h.version,
		Dependencies: deps,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.Liveness)
}
