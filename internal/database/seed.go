package database

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"convenience-store/internal/models"
)

// Seed fills empty products, customers and admins collections with the demo
// catalogue and two demo accounts. Non-empty collections are left alone.
func Seed(ctx context.Context, db *mongo.Database, lg *zap.Logger) error {
	now := time.Now()

	products := []any{
		models.Product{SKU: "SNACK001", Name: "Potato Chips", Description: "Crispy potato chips", Category: "Snacks", Price: 2.99, Stock: 50, Active: true, CreatedAt: now, UpdatedAt: now},
		models.Product{SKU: "DRINK001", Name: "Cola", Description: "Refreshing cola drink", Category: "Drinks", Price: 1.99, Stock: 100, Active: true, CreatedAt: now, UpdatedAt: now},
		models.Product{SKU: "CANDY001", Name: "Chocolate Bar", Description: "Delicious chocolate", Category: "Candy", Price: 1.49, Stock: 75, Active: true, CreatedAt: now, UpdatedAt: now},
		models.Product{SKU: "SNACK002", Name: "Cookies", Description: "Chocolate chip cookies", Category: "Snacks", Price: 3.49, Stock: 30, Active: true, CreatedAt: now, UpdatedAt: now},
		models.Product{SKU: "DRINK002", Name: "Water", Description: "Bottled water", Category: "Drinks", Price: 0.99, Stock: 200, Active: true, CreatedAt: now, UpdatedAt: now},
	}
	if err := seedIfEmpty(ctx, db.Collection("products"), products, lg); err != nil {
		return err
	}

	customer, admin, err := demoAccounts(now)
	if err != nil {
		return err
	}
	if err := seedIfEmpty(ctx, db.Collection("customers"), []any{customer}, lg); err != nil {
		return err
	}
	return seedIfEmpty(ctx, db.Collection("admins"), []any{admin}, lg)
}

// demoAccounts builds the demo customer (password123) and admin (admin123).
func demoAccounts(now time.Time) (models.Customer, models.Admin, error) {
	customerHash, err := models.HashPassword("password123")
	if err != nil {
		return models.Customer{}, models.Admin{}, errors.Wrap(err, "hash demo customer password")
	}
	adminHash, err := models.HashPassword("admin123")
	if err != nil {
		return models.Customer{}, models.Admin{}, errors.Wrap(err, "hash demo admin password")
	}

	customer := models.Customer{
		Email:        "customer@example.com",
		PasswordHash: customerHash,
		Name:         "John Doe",
		Address:      "123 Main St",
		Account:      models.Account{ShippingAddress: "123 Main St", UpdatedAt: now},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	admin := models.Admin{
		Email:        "admin@example.com",
		Name:         "Store Admin",
		PasswordHash: adminHash,
		CreatedAt:    now,
	}
	return customer, admin, nil
}

func seedIfEmpty(ctx context.Context, coll *mongo.Collection, docs []any, lg *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return errors.Wrapf(err, "count %s", coll.Name())
	}
	if count > 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrapf(err, "seed %s", coll.Name())
	}
	lg.Info("Seeded collection", zap.String("collection", coll.Name()), zap.Int("documents", len(docs)))
	return nil
}
