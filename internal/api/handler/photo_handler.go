package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/core/ports"
)

// PhotoHandler handles main-photo moderation routes.
type PhotoHandler struct {
	service ports.ModerationService
}

func NewPhotoHandler(service ports.ModerationService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// ListPending handles GET /moderation/photos/pending.
//
// @Summary      List users with a main photo awaiting moderation
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (1-100)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  listPendingPhotosResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /moderation/photos/pending [get]
func (h *PhotoHandler) ListPending(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	limit, offset := pageParams(c)
	photos, err := h.service.ListPendingPhotos(c.Request().Context(), actor.ID, ports.PageInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPendingPhotosResponse{
		Success:       true,
		PendingPhotos: photos,
		Pagination: paginationResponse{
			Limit:  limit,
			Offset: offset,
			Total:  len(photos),
		},
	})
}

// Moderate handles POST /moderation/photos/moderate — approves or rejects a
// user's main profile photo. A rejection with a reason triggers a best-effort
// notification to the photo owner.
//
// @Summary      Approve or reject a user's main photo
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      moderatePhotoRequest  true  "Moderation decision"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /moderation/photos/moderate [post]
func (h *PhotoHandler) Moderate(c echo.Context) error {
	var req moderatePhotoRequest
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

	result, err := h.service.ModeratePhoto(c.Request().Context(), actor.ID, ports.ModeratePhotoInput{
		UserID:           req.UserID,
		ModerationStatus: req.ModerationStatus,
		RejectionReason:  req.RejectionReason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
