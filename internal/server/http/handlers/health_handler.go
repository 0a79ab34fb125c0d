package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports readiness of a backing dependency.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler answers readiness probes against the backing stores.
type HealthHandler struct {
	checks []HealthChecker
}

// NewHealthHandler creates HealthHandler instance.
func NewHealthHandler(checks ...HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	for _, check := range h.checks {
		if err := check.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
