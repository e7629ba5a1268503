package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"convenience-store/internal/database"
	"convenience-store/internal/models"
)

type AdminRepository struct {
	*Repository[models.Admin, *models.Admin]
}

func NewAdminRepository(store *database.Store) *AdminRepository {
	return &AdminRepository{New[models.Admin](database.Collection[models.Admin](store))}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (r *AdminRepository) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !models.PasswordMatches(admin.PasswordHash, password) {
		return nil, ErrNotFound
	}
	return admin, nil
}
