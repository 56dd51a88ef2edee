package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/internal/adapter/dto/common"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves liveness and readiness endpoints
type Health struct {
	environment string
	checks      map[string]Pinger
	logger      *zap.Logger
}

// NewHealthHandler creates a health handler. Nil pingers are skipped.
func NewHealthHandler(environment string, checks map[string]Pinger, logger *zap.Logger) *Health {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &Health{environment: environment, checks: active, logger: logger}
}

// Root handles GET /
// @Summary      Service banner
// @Tags         Health
// @Produce      json
// @Success      200  {object}  common.MessageResponse
// @Router       / [get]
func (h *Health) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, common.MessageResponse{Message: "Meetly.AI Backend is running 🚀"})
}

// RootHead handles HEAD / for uptime probes
func (h *Health) RootHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// Check handles GET /health
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Failure      503  {object}  common.HealthResponse
// @Router       /health [get]
func (h *Health) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	resp := common.HealthResponse{Status: "ok", Environment: h.environment}
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			if h.logger != nil {
				h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			}
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}
