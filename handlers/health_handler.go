package handlers

import (
	"net/http"

	"github.com/aurumascend/raisesignal-backend/types"
	"github.com/gin-gonic/gin"
)

// HealthHandler exposes the health and probe endpoints.
type HealthHandler struct {
	healthService HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService HealthChecker) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// DetailedHealth godoc
// @Summary      Detailed health check
// @Description  Reports per-component health for redis and email configuration
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthCheck
// @Failure      503  {object}  types.HealthCheck
// @Router       /health [get]
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	check := h.healthService.CheckHealth(c.Request.Context())

	status := http.StatusOK
	if check.Status == types.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, check)
}

// Liveness responds as long as the process is serving requests.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, types.StatusResponse{Status: "up"})
}

// Readiness reports whether the service can usefully accept submissions.
func (h *HealthHandler) Readiness(c *gin.Context) {
	check := h.healthService.CheckHealth(c.Request.Context())

	if check.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, types.StatusResponse{Status: "down"})
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Status: "ready"})
}
