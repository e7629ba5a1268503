package database

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type indexSpec struct {
	collection string
	field      string
	name       string
	unique     bool
}

var indexSpecs = []indexSpec{
	{collection: "customers", field: "email", name: "email_unique", unique: true},
	{collection: "admins", field: "email", name: "email_unique", unique: true},
	{collection: "carts", field: "customerId", name: "customerId_unique", unique: true},
	{collection: "orders", field: "customerId", name: "customerId_index"},
	{collection: "invoices", field: "customerId", name: "customerId_index"},
	{collection: "payments", field: "invoiceId", name: "invoiceId_index"},
	{collection: "receipts", field: "customerId", name: "customerId_index"},
	{collection: "sessions", field: "tokenHash", name: "tokenHash_unique", unique: true},
	{collection: "products", field: "category", name: "category_index"},
}

// EnsureIndexes creates every index the repositories rely on. A failure on
// one index is logged and reported, the remaining indexes are still tried.
func EnsureIndexes(ctx context.Context, db *mongo.Database, lg *zap.Logger) error {
	var firstErr error
	for _, spec := range indexSpecs {
		if err := ensureIndex(ctx, db, spec); err != nil {
			lg.Warn("Index creation failed",
				zap.String("collection", spec.collection),
				zap.String("index", spec.name),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		lg.Debug("Index ensured",
			zap.String("collection", spec.collection),
			zap.String("index", spec.name),
		)
	}
	return firstErr
}

func ensureIndex(ctx context.Context, db *mongo.Database, spec indexSpec) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: spec.field, Value: 1}},
		Options: options.Index().SetName(spec.name).SetUnique(spec.unique),
	}
	if _, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, model); err != nil {
		return errors.Wrapf(err, "create %s.%s", spec.collection, spec.name)
	}
	return nil
}
