package repository

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"convenience-store/internal/database"
	"convenience-store/internal/models"
)

type ProductRepository struct {
	*Repository[models.Product, *models.Product]
}

func NewProductRepository(store *database.Store) *ProductRepository {
	return &ProductRepository{New[models.Product](database.Collection[models.Product](store))}
}

func byName() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
}

// FindAvailable returns active products with stock on hand.
func (r *ProductRepository) FindAvailable(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{
		"active": true,
		"stock":  bson.M{"$gt": 0},
	}, byName())
}

// FindByCategory matches the category name exactly, ignoring case.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	pattern := "^" + regexp.QuoteMeta(strings.TrimSpace(category)) + "$"
	return r.find(ctx, bson.M{
		"active":   true,
		"category": bson.M{"$regex": pattern, "$options": "i"},
	}, byName())
}

// Search matches text anywhere in the name or the category, ignoring case.
func (r *ProductRepository) Search(ctx context.Context, text string) ([]models.Product, error) {
	pattern := regexp.QuoteMeta(strings.TrimSpace(text))
	return r.find(ctx, bson.M{
		"active": true,
		"$or": []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"category": bson.M{"$regex": pattern, "$options": "i"}},
		},
	}, byName())
}

// Categories returns the distinct categories of active products, sorted.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "category", bson.M{"active": true, "category": bson.M{"$ne": ""}})
	if err != nil {
		return nil, errors.Wrap(err, "distinct categories")
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			categories = append(categories, name)
		}
	}
	slices.Sort(categories)
	return categories, nil
}

// SetStock overwrites the on-hand quantity.
func (r *ProductRepository) SetStock(ctx context.Context, id primitive.ObjectID, stock int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"stock":     stock,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return false, errors.Wrap(err, "set product stock")
	}
	return res.MatchedCount > 0, nil
}
