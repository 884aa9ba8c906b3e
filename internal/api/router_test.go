package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/activity-platform/moderation-api/internal/core/ports"
	"github.com/activity-platform/moderation-api/internal/infrastructure/ratelimit"
)

const routerTestSecret = "router-test-secret"

// recordingService counts dispatches so tests can assert that rejected
// requests never reach the service layer.
type recordingService struct {
	calls int
}

func (s *recordingService) record() (ports.Payload, error) {
	s.calls++
	return ports.Payload{"success": true}, nil
}

func (s *recordingService) recordList() ([]ports.Payload, error) {
	s.calls++
	return []ports.Payload{}, nil
}

func (s *recordingService) CreateReport(context.Context, string, ports.CreateReportInput) (ports.Payload, error) {
	return s.record()
}

func (s *recordingService) ListReports(context.Context, string, ports.ReportFilters) ([]ports.Payload, error) {
	return s.recordList()
}

func (s *recordingService) GetReport(context.Context, string, string) (ports.Payload, error) {
	return s.record()
}

func (s *recordingService) UpdateReportStatus(context.Context, string, string, ports.UpdateReportStatusInput) (ports.Payload, error) {
	return s.record()
}

func (s *recordingService) ListPendingPhotos(context.Context, string, ports.PageInput) ([]ports.Payload, error) {
	return s.recordList()
}

func (s *recordingService) ModeratePhoto(context.Context, string, ports.ModeratePhotoInput) (ports.Payload, error) {
	return s.record()
}

func (s *recordingService) BanUser(context.Context, string, ports.BanUserInput) (ports.Payload, error) {
	return s.record()
}

func (s *recordingService) UnbanUser(context.Context, string, ports.UnbanUserInput) (ports.Payload, error) {
	return s.record()
}

func (s *recordingService) UserHistory(context.Context, string, string) (ports.Payload, error) {
	return s.record()
}

func (s *recordingService) RemoveContent(context.Context, string, ports.RemoveContentInput) (ports.Payload, error) {
	return s.record()
}

func (s *recordingService) Statistics(context.Context, string, ports.StatisticsInput) (ports.Payload, error) {
	return s.record()
}

func newTestRouter(svc ports.ModerationService) http.Handler {
	return NewRouter(Deps{
		Service:          svc,
		RateCounter:      ratelimit.NewMemoryCounter(),
		ServiceName:      "moderation-api",
		JWTSecret:        routerTestSecret,
		RateLimitEnabled: true,
		Log:              zerolog.Nop(),
		Registerer:       prometheus.NewRegistry(),
	})
}

func signToken(t *testing.T, sub string, roles []string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.com",
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(routerTestSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func doRequest(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func responseDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %s", rec.Body.String())
	}
	return body.Detail
}

const validReportBody = `{"target_type":"post","target_id":"5bce2b9e-96b5-4c3e-8f4b-0f2a5a9b1c2d","report_type":"spam","description":"spam links"}`

func TestRouter_MissingTokenRejectedBeforeDispatch(t *testing.T) {
	svc := &recordingService{}
	h := newTestRouter(svc)

	rec := doRequest(h, http.MethodPost, "/moderation/reports", "", validReportBody)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("service dispatched despite failed authentication")
	}
}

func TestRouter_NonElevatedActorForbidden(t *testing.T) {
	svc := &recordingService{}
	h := newTestRouter(svc)
	token := signToken(t, "user-1", []string{"user"})

	rec := doRequest(h, http.MethodPost, "/moderation/users/user-2/ban", token,
		`{"ban_type":"permanent","ban_reason":"spam"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if detail := responseDetail(t, rec); !strings.HasPrefix(detail, "INSUFFICIENT_PERMISSIONS") {
		t.Fatalf("detail = %q", detail)
	}
	if svc.calls != 0 {
		t.Fatalf("service dispatched despite failed authorization")
	}
}

func TestRouter_ElevatedActorBansUser(t *testing.T) {
	svc := &recordingService{}
	h := newTestRouter(svc)
	token := signToken(t, "admin-1", []string{"admin"})

	rec := doRequest(h, http.MethodPost, "/moderation/users/user-2/ban", token,
		`{"ban_type":"temporary","ban_duration_hours":72,"ban_reason":"harassment"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.calls != 1 {
		t.Fatalf("expected one dispatch, got %d", svc.calls)
	}
}

func TestRouter_ValidationFailureIs400(t *testing.T) {
	svc := &recordingService{}
	h := newTestRouter(svc)
	token := signToken(t, "user-1", []string{"user"})

	rec := doRequest(h, http.MethodPost, "/moderation/reports", token,
		`{"target_type":"post","target_id":"not-a-uuid","report_type":"spam"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("service dispatched despite invalid payload")
	}
}

func TestRouter_CreateReportRateLimit(t *testing.T) {
	svc := &recordingService{}
	h := newTestRouter(svc)
	token := signToken(t, "user-1", []string{"user"})

	for i := 0; i < 10; i++ {
		rec := doRequest(h, http.MethodPost, "/moderation/reports", token, validReportBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: status = %d, body = %s", i+1, rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(h, http.MethodPost, "/moderation/reports", token, validReportBody)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("11th request: status = %d, want 429", rec.Code)
	}
	if detail := responseDetail(t, rec); detail != "Rate limit exceeded" {
		t.Fatalf("detail = %q", detail)
	}
	if svc.calls != 10 {
		t.Fatalf("dispatches = %d, want 10", svc.calls)
	}

	// Another caller is admitted under its own window.
	other := signToken(t, "user-9", []string{"user"})
	if rec := doRequest(h, http.MethodPost, "/moderation/reports", other, validReportBody); rec.Code != http.StatusCreated {
		t.Fatalf("second actor: status = %d", rec.Code)
	}
}

func TestRouter_HealthIsUnauthenticated(t *testing.T) {
	h := newTestRouter(&recordingService{})

	rec := doRequest(h, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
