package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireElevated enforces the elevated capability: the actor must hold the
// admin or moderator role. Routes that only need a resolved, verified actor
// simply do not mount this middleware.
func RequireElevated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			if !actor.Elevated() {
				log := RequestLogger(c)
				log.Warn().
					Str("user_id", actor.ID).
					Strs("roles", actor.Roles).
					Msg("insufficient permissions")
				return echo.NewHTTPError(http.StatusForbidden,
					"INSUFFICIENT_PERMISSIONS: Admin or moderator role required")
			}

			return next(c)
		}
	}
}
