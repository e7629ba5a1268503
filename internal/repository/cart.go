package repository

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"convenience-store/internal/database"
	"convenience-store/internal/models"
)

type CartRepository struct {
	*Repository[models.ShoppingCart, *models.ShoppingCart]
}

func NewCartRepository(store *database.Store) *CartRepository {
	return &CartRepository{New[models.ShoppingCart](database.Collection[models.ShoppingCart](store))}
}

// GetOrCreate returns the customer's cart, inserting an empty one on a miss.
// The upsert and the unique customerId index keep it to one cart per
// customer.
func (r *CartRepository) GetOrCreate(ctx context.Context, customerID primitive.ObjectID) (*models.ShoppingCart, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"items":     bson.A{},
			"createdAt": now,
			"updatedAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.ShoppingCart
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"customerId": customerID}, update, opts).Decode(&cart); err != nil {
		return nil, errors.Wrap(err, "get or create cart")
	}
	if cart.Items == nil {
		cart.Items = []models.OrderItem{}
	}
	return &cart, nil
}

// Save replaces the whole cart document.
func (r *CartRepository) Save(ctx context.Context, cart *models.ShoppingCart) error {
	cart.UpdatedAt = time.Now()
	_, err := r.Update(ctx, cart.ID.Hex(), cart)
	return err
}
