package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/api/metrics"
	"github.com/activity-platform/moderation-api/internal/core/ports"
)

// LimitSpec declares a route's admission ceiling. The numbers are policy set
// in the router, not mechanism.
type LimitSpec struct {
	Route  string
	Max    int64
	Window time.Duration
}

// PerMinute builds the common "N requests per minute" spec.
func PerMinute(route string, max int64) LimitSpec {
	return LimitSpec{Route: route, Max: max, Window: time.Minute}
}

// RateLimit rejects requests once a client exceeds spec.Max hits on this
// route within the current window. The admission key prefers the
// authenticated actor and falls back to the remote address, so the limiter
// works on routes checked before authentication resolves an identity.
// A disabled limiter admits everything.
func RateLimit(counter ports.RateCounter, spec LimitSpec, enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}

			count, err := counter.Incr(c.Request().Context(), admissionKey(c, spec.Route), spec.Window)
			if err != nil {
				// A broken counter store must not take the API down with it.
				log := RequestLogger(c)
				log.Warn().Err(err).Str("route", spec.Route).Msg("rate counter unavailable, admitting")
				return next(c)
			}

			if count > spec.Max {
				metrics.RateLimitRejectionsTotal.WithLabelValues(spec.Route).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}

func admissionKey(c echo.Context, route string) string {
	identity := c.RealIP()
	if actor, ok := ActorFrom(c); ok {
		identity = actor.ID
	}
	return fmt.Sprintf("rl:%s:%s", route, identity)
}
