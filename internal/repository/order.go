package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"convenience-store/internal/database"
	"convenience-store/internal/models"
)

type OrderRepository struct {
	*Repository[models.Order, *models.Order]
}

func NewOrderRepository(store *database.Store) *OrderRepository {
	return &OrderRepository{New[models.Order](database.Collection[models.Order](store))}
}

func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, newestFirst())
}
