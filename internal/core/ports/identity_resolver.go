package ports

import (
	"context"

	"github.com/activity-platform/moderation-api/internal/core/domain"
)

// IdentityResolver turns a token subject into the account's current
// attributes. Tokens can outlive verification or ban changes, so resolving
// per request is authoritative where claims are merely a snapshot.
type IdentityResolver interface {
	// ResolveSubject returns domain.ErrActorNotFound when no account matches.
	ResolveSubject(ctx context.Context, subjectID string) (*domain.Actor, error)
}
