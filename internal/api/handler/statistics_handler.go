package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/core/ports"
)

// StatisticsHandler serves aggregate moderation statistics.
type StatisticsHandler struct {
	service ports.ModerationService
}

func NewStatisticsHandler(service ports.ModerationService) *StatisticsHandler {
	return &StatisticsHandler{service: service}
}

// Get handles GET /moderation/statistics.
//
// @Summary      Get moderation statistics for the admin dashboard
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        date_from  query     string  false  "Range start (RFC3339)"
// @Param        date_to    query     string  false  "Range end (RFC3339)"
// @Success      200        {object}  map[string]interface{}
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /moderation/statistics [get]
func (h *StatisticsHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var in ports.StatisticsInput
	if in.DateFrom, err = timeParam(c, "date_from"); err != nil {
		return err
	}
	if in.DateTo, err = timeParam(c, "date_to"); err != nil {
		return err
	}

	result, err := h.service.Statistics(c.Request().Context(), actor.ID, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func timeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be an RFC3339 timestamp")
	}
	return &t, nil
}
