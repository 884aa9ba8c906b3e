package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/core/ports"
)

// UserHandler handles ban/unban and moderation-history routes.
type UserHandler struct {
	service ports.ModerationService
}

func NewUserHandler(service ports.ModerationService) *UserHandler {
	return &UserHandler{service: service}
}

// Ban handles POST /moderation/users/:user_id/ban. The banned user is
// notified by email after the ban commits; delivery failures never affect
// the response.
//
// @Summary      Ban a user permanently or temporarily
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string          true  "User id"
// @Param        body     body      banUserRequest  true  "Ban details"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /moderation/users/{user_id}/ban [post]
func (h *UserHandler) Ban(c echo.Context) error {
	var req banUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.BanUser(c.Request().Context(), actor.ID, ports.BanUserInput{
		UserID:        c.Param("user_id"),
		BanType:       req.BanType,
		DurationHours: req.BanDurationHours,
		Reason:        req.BanReason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Unban handles POST /moderation/users/:user_id/unban.
//
// @Summary      Remove a ban from a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string            true  "User id"
// @Param        body     body      unbanUserRequest  true  "Unban details"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /moderation/users/{user_id}/unban [post]
func (h *UserHandler) Unban(c echo.Context) error {
	var req unbanUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.UnbanUser(c.Request().Context(), actor.ID, ports.UnbanUserInput{
		UserID: c.Param("user_id"),
		Reason: req.UnbanReason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// History handles GET /moderation/users/:user_id/history.
//
// @Summary      Get a user's complete moderation history
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "User id"
// @Success      200      {object}  map[string]interface{}
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /moderation/users/{user_id}/history [get]
func (h *UserHandler) History(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.UserHistory(c.Request().Context(), actor.ID, c.Param("user_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
