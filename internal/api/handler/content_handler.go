package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/core/ports"
)

// ContentHandler handles content removal.
type ContentHandler struct {
	service ports.ModerationService
}

func NewContentHandler(service ports.ModerationService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Remove handles POST /moderation/content/remove. The content author is
// notified by email when the executor reports one.
//
// @Summary      Remove or hide problematic content
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeContentRequest  true  "Removal details"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /moderation/content/remove [post]
func (h *ContentHandler) Remove(c echo.Context) error {
	var req removeContentRequest
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

	result, err := h.service.RemoveContent(c.Request().Context(), actor.ID, ports.RemoveContentInput{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Reason:      req.RemovalReason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
