package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// TraceHeader is the correlation header propagated from caller to response.
const TraceHeader = "X-Trace-ID"

const (
	correlationKey = "correlation_id"
	loggerKey      = "request_logger"
)

// Correlation attaches a per-request trace identifier: the inbound X-Trace-ID
// when the caller supplied one, else a fresh UUID. The id is echoed on the
// response and bound to a request-scoped logger so every event emitted while
// handling the request can be cross-referenced.
func Correlation(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(TraceHeader)
			if id == "" {
				id = uuid.NewString()
			}

			c.Response().Header().Set(TraceHeader, id)
			c.Set(correlationKey, id)
			c.Set(loggerKey, log.With().Str("correlation_id", id).Logger())

			return next(c)
		}
	}
}

// CorrelationID returns the trace identifier attached to this request, or ""
// when the Correlation middleware did not run.
func CorrelationID(c echo.Context) string {
	id, _ := c.Get(correlationKey).(string)
	return id
}

// RequestLogger returns the request-scoped logger carrying the correlation
// id. Falls back to a disabled logger when the middleware did not run, so
// callers never need a nil check.
func RequestLogger(c echo.Context) zerolog.Logger {
	if log, ok := c.Get(loggerKey).(zerolog.Logger); ok {
		return log
	}
	return zerolog.Nop()
}
