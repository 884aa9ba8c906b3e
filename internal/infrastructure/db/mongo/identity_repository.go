package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/activity-platform/moderation-api/internal/core/domain"
)

const usersCollection = "users"

// IdentityRepository resolves token subjects against the users collection.
// It backs the directory-enriched authentication mode: verification and
// account status are read fresh on every request instead of trusted from
// token claims.
type IdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(usersCollection)}
}

type userRecord struct {
	UserID   string   `bson:"user_id"`
	Email    string   `bson:"email"`
	Roles    []string `bson:"roles"`
	Verified bool     `bson:"is_verified"`
	Status   string   `bson:"status"`
}

func (r *IdentityRepository) ResolveSubject(ctx context.Context, subjectID string) (*domain.Actor, error) {
	var rec userRecord
	if err := r.coll.FindOne(ctx, bson.M{"user_id": subjectID}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrActorNotFound
		}
		return nil, fmt.Errorf("resolve subject: %w", err)
	}

	roles := rec.Roles
	if roles == nil {
		roles = []string{}
	}

	return &domain.Actor{
		ID:       rec.UserID,
		Email:    rec.Email,
		Roles:    roles,
		Verified: rec.Verified,
		Status:   domain.AccountStatus(rec.Status),
	}, nil
}
