package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/activity-platform/moderation-api/internal/api/middleware"
	"github.com/activity-platform/moderation-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps executor domain errors to their documented HTTP status codes,
//     passing the domain message through verbatim.
//   - Maps echo's own errors (auth rejections, 404s, bind failures) as-is.
//   - Logs anything unexpected with full detail server-side and returns a
//     generic 500 body, never echoing storage internals to the caller.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Pipeline-stage rejections (401/403/429) and router/bind errors.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Executor failures with a stable code → documented status, verbatim
	// message. The detail may leak internal phrasing; that is accepted here
	// in exchange for debuggability.
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		return domErr.HTTPStatus(), domErr.Error()
	}

	// Everything else: log the real cause, answer generically.
	log.Error().
		Err(err).
		Str("error_type", fmt.Sprintf("%T", err)).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("correlation_id", middleware.CorrelationID(c)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "An internal error occurred"
}
