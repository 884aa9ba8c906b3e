package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/api/middleware"
	"github.com/activity-platform/moderation-api/internal/core/domain"
)

// ctxActor extracts the Actor injected by the Auth middleware. Its absence
// means the route was wired without authentication; fail closed rather than
// fabricate an anonymous actor.
func ctxActor(c echo.Context) (*domain.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return actor, nil
}
