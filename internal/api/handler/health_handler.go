package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler handles GET /health — unauthenticated dependency probe.
// Impaired dependencies degrade the reported status but never turn the
// probe into an error response; the process itself is still serving.
type HealthHandler struct {
	serviceName string
	db          *mongo.Database
	redis       *redis.Client
}

// NewHealthHandler creates a HealthHandler. db and rdb may be nil when the
// corresponding dependency was unreachable at startup.
func NewHealthHandler(serviceName string, db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, db: db, redis: rdb}
}

type healthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Database    string `json:"database"`
	RateLimiter string `json:"rate_limiter,omitempty"`
}

// Check reports overall service health.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Service: h.serviceName}

	switch {
	case h.db == nil:
		resp.Database = "not_connected"
		resp.Status = "degraded"
	default:
		if err := h.db.Client().Ping(ctx, nil); err != nil {
			resp.Database = "error: " + err.Error()
			resp.Status = "degraded"
		} else {
			resp.Database = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.RateLimiter = "error: " + err.Error()
			resp.Status = "degraded"
		} else {
			resp.RateLimiter = "ok"
		}
	}

	return c.JSON(http.StatusOK, resp)
}
