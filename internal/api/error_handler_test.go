package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/activity-platform/moderation-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/moderation/reports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %s", rec.Body.String())
	}
	return rec.Code, body.Detail
}

func TestErrorHandler_DomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        *domain.Error
		wantStatus int
	}{
		{"duplicate report", &domain.Error{Code: "DUPLICATE_REPORT", Detail: "You have already reported this content"}, http.StatusConflict},
		{"report not found", &domain.Error{Code: "REPORT_NOT_FOUND", Detail: "Report not found"}, http.StatusNotFound},
		{"cannot self report", &domain.Error{Code: "CANNOT_SELF_REPORT", Detail: "You cannot report yourself"}, http.StatusBadRequest},
		{"insufficient permissions", &domain.Error{Code: "INSUFFICIENT_PERMISSIONS", Detail: "Admin or moderator role required"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := handleError(t, tt.err)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			want := tt.err.Code + ": " + tt.err.Detail
			if detail != want {
				t.Fatalf("detail = %q, want verbatim %q", detail, want)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("ban user: %w", &domain.Error{Code: "USER_NOT_FOUND", Detail: "User not found"})

	status, detail := handleError(t, wrapped)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if detail != "USER_NOT_FOUND: User not found" {
		t.Fatalf("detail = %q", detail)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, detail := handleError(t, echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token"))
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if detail != "Invalid or expired token" {
		t.Fatalf("detail = %q", detail)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	status, detail := handleError(t, errors.New("pq: connection reset by peer"))
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if detail != "An internal error occurred" {
		t.Fatalf("internals leaked to the caller: %q", detail)
	}
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/moderation/reports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Response().WriteHeader(http.StatusAccepted)
	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("handler rewrote a committed response: %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler wrote a body after commit: %s", rec.Body.String())
	}
}
