package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/pkg/health"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	monitor *health.Monitor
}

type HealthCheckResponse struct {
	Status    string               `json:"status"`
	Version   string               `json:"version"`
	Timestamp time.Time            `json:"timestamp"`
	Checks    []health.CheckResult `json:"checks"`
}

func NewHealthHandler(monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// HealthCheck pings every registered dependency. A disabled dependency does
// not make the service unhealthy.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	results, healthy := h.monitor.CheckAll(ctx)

	response := HealthCheckResponse{
		Status:    health.StatusHealthy.String(),
		Version:   constants.AppVersion,
		Timestamp: time.Now(),
		Checks:    results,
	}
	statusCode := http.StatusOK
	if !healthy {
		response.Status = health.StatusUnhealthy.String()
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}
