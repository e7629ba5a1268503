package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"convenience-store/internal/database"
	"convenience-store/internal/models"
)

type CustomerRepository struct {
	*Repository[models.Customer, *models.Customer]
}

func NewCustomerRepository(store *database.Store) *CustomerRepository {
	return &CustomerRepository{New[models.Customer](database.Collection[models.Customer](store))}
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

// Authenticate returns the customer owning the credential pair. A wrong
// password and an unknown email both yield ErrNotFound.
func (r *CustomerRepository) Authenticate(ctx context.Context, email, password string) (*models.Customer, error) {
	customer, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !models.PasswordMatches(customer.PasswordHash, password) {
		return nil, ErrNotFound
	}
	return customer, nil
}
