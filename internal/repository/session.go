package repository

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"

	"convenience-store/internal/database"
	"convenience-store/internal/models"
)

type SessionRepository struct {
	*Repository[models.Session, *models.Session]
}

func NewSessionRepository(store *database.Store) *SessionRepository {
	return &SessionRepository{New[models.Session](database.Collection[models.Session](store))}
}

// FindActive returns the unrevoked session for tokenHash. Expiry is checked
// by the caller.
func (r *SessionRepository) FindActive(ctx context.Context, tokenHash string) (*models.Session, error) {
	return r.findOne(ctx, bson.M{"tokenHash": tokenHash, "revoked": false})
}

// Revoke marks the session revoked and reports whether an active one matched.
func (r *SessionRepository) Revoke(ctx context.Context, tokenHash string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"tokenHash": tokenHash, "revoked": false},
		bson.M{"$set": bson.M{"revoked": true}},
	)
	if err != nil {
		return false, errors.Wrap(err, "revoke session")
	}
	return res.MatchedCount > 0, nil
}
