package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/activity-platform/moderation-api/internal/api/metrics"
	"github.com/activity-platform/moderation-api/internal/core/domain"
	"github.com/activity-platform/moderation-api/internal/core/ports"
)

const actorKey = "actor"

// Auth validates the bearer JWT and injects the resolved Actor into context.
//
// Two population modes exist. With a resolver, the token only proves the
// subject; the account's current email, roles, verification, and status are
// fetched per request — tokens routinely outlive ban or verification changes,
// so the directory is authoritative. Without a resolver, email and roles are
// trusted straight from the claims.
func Auth(jwtSecret string, resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				log := RequestLogger(c)
				log.Warn().Err(err).Msg("jwt validation failed")
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
			}

			subject, _ := claims["sub"].(string)
			if subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
			}

			actor, err := buildActor(c, resolver, subject, claims)
			if err != nil {
				return err
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func buildActor(c echo.Context, resolver ports.IdentityResolver, subject string, claims jwt.MapClaims) (*domain.Actor, error) {
	if resolver == nil {
		// Claims-only mode for deployments without a reachable directory.
		email, _ := claims["email"].(string)
		return &domain.Actor{
			ID:       subject,
			Email:    email,
			Roles:    rolesClaim(claims),
			Verified: true,
			Status:   domain.StatusActive,
		}, nil
	}

	actor, err := resolver.ResolveSubject(c.Request().Context(), subject)
	if err != nil {
		if errors.Is(err, domain.ErrActorNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
		}
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	if !actor.Verified {
		metrics.AuthFailuresTotal.WithLabelValues("unverified").Inc()
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Email not verified")
	}
	if actor.Status != domain.StatusActive {
		metrics.AuthFailuresTotal.WithLabelValues("inactive").Inc()
		return nil, echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("Account is %s", actor.Status))
	}

	return actor, nil
}

// rolesClaim reads the "roles" claim, tolerating both []string and the
// []interface{} shape JSON unmarshalling produces.
func rolesClaim(claims jwt.MapClaims) []string {
	switch v := claims["roles"].(type) {
	case []string:
		return v
	case []interface{}:
		roles := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	default:
		return []string{}
	}
}

// ActorFrom extracts the Actor injected by Auth. The bool is false when the
// middleware did not run; handlers must treat that as unauthenticated, never
// substitute a default actor.
func ActorFrom(c echo.Context) (*domain.Actor, bool) {
	actor, ok := c.Get(actorKey).(*domain.Actor)
	return actor, ok
}
