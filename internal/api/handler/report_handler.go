package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/core/ports"
)

// ReportHandler handles HTTP requests for report operations.
type ReportHandler struct {
	service ports.ModerationService
}

func NewReportHandler(service ports.ModerationService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Create handles POST /moderation/reports.
//
// @Summary      Report problematic content or behavior
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Report details"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /moderation/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	var req createReportRequest
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

	result, err := h.service.CreateReport(c.Request().Context(), actor.ID, ports.CreateReportInput{
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		ReportType:  req.ReportType,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

// List handles GET /moderation/reports.
//
// @Summary      List reports with filtering
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Filter by status"       Enums(pending, reviewing, resolved, dismissed)
// @Param        target_type  query     string  false  "Filter by target type"  Enums(user, post, comment, activity, community)
// @Param        report_type  query     string  false  "Filter by report type"  Enums(spam, harassment, inappropriate, fake, no_show, other)
// @Param        limit        query     int     false  "Page size (1-100)"
// @Param        offset       query     int     false  "Page offset"
// @Success      200          {object}  listReportsResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /moderation/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	filters := ports.ReportFilters{
		Status:     enumParam(c, "status", "pending", "reviewing", "resolved", "dismissed"),
		TargetType: enumParam(c, "target_type", "user", "post", "comment", "activity", "community"),
		ReportType: enumParam(c, "report_type", "spam", "harassment", "inappropriate", "fake", "no_show", "other"),
	}
	filters.Limit, filters.Offset = pageParams(c)

	reports, err := h.service.ListReports(c.Request().Context(), actor.ID, filters)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listReportsResponse{
		Success: true,
		Reports: reports,
		Pagination: paginationResponse{
			Limit:  filters.Limit,
			Offset: filters.Offset,
			Total:  len(reports),
		},
	})
}

// Get handles GET /moderation/reports/:report_id.
//
// @Summary      Get a single report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        report_id  path      string  true  "Report id"
// @Success      200        {object}  map[string]interface{}
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /moderation/reports/{report_id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.GetReport(c.Request().Context(), actor.ID, c.Param("report_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// UpdateStatus handles PATCH /moderation/reports/:report_id/status.
//
// @Summary      Update report status with resolution notes
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        report_id  path      string                     true  "Report id"
// @Param        body       body      updateReportStatusRequest  true  "New status"
// @Success      200        {object}  map[string]interface{}
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /moderation/reports/{report_id}/status [patch]
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	var req updateReportStatusRequest
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

	result, err := h.service.UpdateReportStatus(c.Request().Context(), actor.ID, c.Param("report_id"), ports.UpdateReportStatusInput{
		Status:          req.Status,
		ResolutionNotes: req.ResolutionNotes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// pageParams parses limit/offset query params with the usual clamps:
// limit defaults to 50 and caps at 100, offset is never negative.
func pageParams(c echo.Context) (limit, offset int) {
	limit = 50
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 100 {
			limit = n
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// enumParam returns the query param only when it matches one of the allowed
// values; anything else is treated as unset rather than forwarded.
func enumParam(c echo.Context, name string, allowed ...string) string {
	v := c.QueryParam(name)
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return ""
}
