package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/dogwalk/internal/middleware"
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Client-facing failure texts. The underlying errors are only logged,
// since they can name hosts, ports and users.
const (
	ProvisionFailedMessage = "database provisioning failed"
	CheckFailedMessage     = "dependency unreachable"
)

// CheckResult is one dependency check in the /status body.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the /status body.
type HealthResponse struct {
	Status      string                 `json:"status"`
	State       server.State           `json:"state"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Error       string                 `json:"error,omitempty"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth reports the server state and pings the database (and
// Redis when sessions use it). 503 when degraded or the database check
// fails; a failing Redis only marks its own check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		State:       h.server.State(),
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	healthy := response.State == server.StateReady
	if !healthy {
		response.Error = ProvisionFailedMessage
		logger.Error().Err(h.server.ProvisionErr()).Msg("server is degraded")
	}

	checks := h.server.Config.Observability.HealthChecks
	if checks.Enabled {
		dbCheck, err := h.check(c.Request().Context(), checks.Timeout, h.server.DB.Ping)
		response.Checks["database"] = dbCheck
		if err != nil {
			healthy = false
			logger.Error().Err(err).Msg("database health check failed")
			h.recordFailure("database", dbCheck, err)
		}

		if h.server.Redis != nil {
			redisCheck, err := h.check(c.Request().Context(), checks.Timeout, func(ctx context.Context) error {
				return h.server.Redis.Ping(ctx).Err()
			})
			response.Checks["redis"] = redisCheck
			if err != nil {
				logger.Error().Err(err).Msg("redis health check failed")
				h.recordFailure("redis", redisCheck, err)
			}
		}
	}

	if !healthy {
		response.Status = "unhealthy"
		logger.Warn().
			Str("state", string(response.State)).
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

// check runs ping under timeout. The returned error is for logs only.
func (h *HealthHandler) check(ctx context.Context, timeout time.Duration, ping func(context.Context) error) (CheckResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	result := CheckResult{
		Status:       "healthy",
		ResponseTime: time.Since(start).String(),
	}
	if err != nil {
		result.Status = "unhealthy"
		result.Error = CheckFailedMessage
	}
	return result, err
}

func (h *HealthHandler) recordFailure(checkType string, result CheckResult, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":    checkType,
		"operation":     "health_check",
		"error_type":    checkType + "_unhealthy",
		"response_time": result.ResponseTime,
		"error_message": err.Error(),
	})
}
