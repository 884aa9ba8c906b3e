package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/core/domain"
)

type stubResolver struct {
	actor *domain.Actor
	err   error
	calls int
}

func (r *stubResolver) ResolveSubject(_ context.Context, _ string) (*domain.Actor, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.actor, nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authRequest(token string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestAuth_ClaimsOnlyMode(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":   "user-1",
		"email": "alice@example.com",
		"roles": []string{"moderator"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	_, c, rec := authRequest(signed)

	called := false
	handler := Auth("secret", nil)(func(c echo.Context) error {
		called = true
		actor, ok := ActorFrom(c)
		if !ok {
			t.Fatalf("actor not set")
		}
		if actor.ID != "user-1" || actor.Email != "alice@example.com" {
			t.Fatalf("unexpected actor: %+v", actor)
		}
		if !actor.HasRole("moderator") {
			t.Fatalf("roles not populated from claims: %+v", actor.Roles)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, c, _ := authRequest("")

	err := Auth("secret", nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_WrongScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth("secret", nil)(failNext(t))(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_InvalidToken(t *testing.T) {
	_, c, _ := authRequest("not-a-token")
	err := Auth("secret", nil)(failNext(t))(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, c, _ := authRequest(signed)

	err := Auth("secret", nil)(failNext(t))(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_MissingSubject(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, c, _ := authRequest(signed)

	err := Auth("secret", nil)(failNext(t))(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_DirectoryEnriched_Succeeds(t *testing.T) {
	// Token claims say admin, but the directory is authoritative.
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":   "user-1",
		"roles": []string{"admin"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	_, c, _ := authRequest(signed)

	resolver := &stubResolver{actor: &domain.Actor{
		ID:       "user-1",
		Email:    "alice@example.com",
		Roles:    []string{"user"},
		Verified: true,
		Status:   domain.StatusActive,
	}}

	handler := Auth("secret", resolver)(func(c echo.Context) error {
		actor, _ := ActorFrom(c)
		if actor.HasRole("admin") {
			t.Fatalf("stale token roles must not survive directory enrichment")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected one resolver call, got %d", resolver.calls)
	}
}

func TestAuth_DirectoryEnriched_SubjectNotFound(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub": "ghost",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, c, _ := authRequest(signed)

	resolver := &stubResolver{err: domain.ErrActorNotFound}
	err := Auth("secret", resolver)(failNext(t))(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_DirectoryEnriched_Unverified(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, c, _ := authRequest(signed)

	resolver := &stubResolver{actor: &domain.Actor{
		ID:       "user-1",
		Verified: false,
		Status:   domain.StatusActive,
	}}
	err := Auth("secret", resolver)(failNext(t))(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_DirectoryEnriched_InactiveAccount(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, c, _ := authRequest(signed)

	resolver := &stubResolver{actor: &domain.Actor{
		ID:       "user-1",
		Verified: true,
		Status:   domain.StatusBanned,
	}}
	err := Auth("secret", resolver)(failNext(t))(c)

	he := assertHTTPError(t, err, http.StatusForbidden)
	if he.Message != "Account is banned" {
		t.Fatalf("expected status in message, got %v", he.Message)
	}
}

func failNext(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func assertHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
	return he
}
