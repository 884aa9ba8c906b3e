package domain

import (
	"errors"
	"net/http"
	"strings"
)

// ErrActorNotFound is returned by the identity resolver when the token
// subject has no matching account.
var ErrActorNotFound = errors.New("actor not found")

// Error is a structured failure surfaced by the command executor. The Code is
// the only field interpreted programmatically; Detail is diagnostic text
// passed through verbatim to the caller.
type Error struct {
	Code   string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

// statusByCode maps every known executor error code to exactly one HTTP
// status. Codes absent from this table resolve to 500.
var statusByCode = map[string]int{
	// 400 Bad Request
	"INVALID_TARGET_TYPE":       http.StatusBadRequest,
	"INVALID_REPORT_TYPE":       http.StatusBadRequest,
	"INVALID_STATUS":            http.StatusBadRequest,
	"INVALID_MODERATION_STATUS": http.StatusBadRequest,
	"INVALID_BAN_TYPE":          http.StatusBadRequest,
	"INVALID_DURATION":          http.StatusBadRequest,
	"INVALID_CONTENT_TYPE":      http.StatusBadRequest,
	"INVALID_STATUS_TRANSITION": http.StatusBadRequest,
	"INVALID_DATE_RANGE":        http.StatusBadRequest,
	"DURATION_REQUIRED":         http.StatusBadRequest,
	"USER_ALREADY_BANNED":       http.StatusBadRequest,
	"USER_NOT_BANNED":           http.StatusBadRequest,
	"CONTENT_ALREADY_REMOVED":   http.StatusBadRequest,
	"NO_MAIN_PHOTO":             http.StatusBadRequest,
	"CANNOT_SELF_REPORT":        http.StatusBadRequest,
	"CANNOT_SELF_BAN":           http.StatusBadRequest,

	// 403 Forbidden
	"INSUFFICIENT_PERMISSIONS": http.StatusForbidden,
	"ADMIN_INACTIVE":           http.StatusForbidden,

	// 404 Not Found
	"REPORTER_NOT_FOUND": http.StatusNotFound,
	"ADMIN_NOT_FOUND":    http.StatusNotFound,
	"USER_NOT_FOUND":     http.StatusNotFound,
	"TARGET_NOT_FOUND":   http.StatusNotFound,
	"REPORT_NOT_FOUND":   http.StatusNotFound,
	"CONTENT_NOT_FOUND":  http.StatusNotFound,

	// 409 Conflict
	"DUPLICATE_REPORT": http.StatusConflict,
}

// ParseDomainError interprets an executor failure message of the form
// "ERROR_CODE: detail". The whole message is treated as the code when no
// colon is present. Returns nil when the leading token is not a known code,
// meaning the failure is a transport error rather than a domain one.
func ParseDomainError(msg string) *Error {
	code, detail, found := strings.Cut(msg, ":")
	code = strings.TrimSpace(code)
	if _, known := statusByCode[code]; !known {
		return nil
	}
	if !found {
		return &Error{Code: code}
	}
	return &Error{Code: code, Detail: strings.TrimSpace(detail)}
}

// HTTPStatus resolves the error's code to its HTTP status, defaulting to 500
// for codes missing from the mapping table.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
