package repository

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"convenience-store/internal/models"
)

// ErrNotFound is returned for absent documents and for malformed ids alike.
var ErrNotFound = errors.New("document not found")

const defaultTimeout = 5 * time.Second

type entityPtr[T any] interface {
	*T
	models.Entity
}

// Repository is the CRUD layer over one collection. Every call is a single
// driver operation; nothing spans calls.
type Repository[T any, PT entityPtr[T]] struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func New[T any, PT entityPtr[T]](coll *mongo.Collection) *Repository[T, PT] {
	return &Repository[T, PT]{coll: coll, timeout: defaultTimeout}
}

// SetTimeout bounds every later call on r. Non-positive values are ignored.
func (r *Repository[T, PT]) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

func (r *Repository[T, PT]) Collection() *mongo.Collection {
	return r.coll
}

// GetAll returns every document in the collection.
func (r *Repository[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.M{})
}

func (r *Repository[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

// Create inserts doc and sets its generated id.
func (r *Repository[T, PT]) Create(ctx context.Context, doc PT) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return errors.Wrapf(err, "insert into %s", r.coll.Name())
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.SetID(id)
	}
	return nil
}

// Update replaces the whole document stored under id and reports whether
// anything changed.
func (r *Repository[T, PT]) Update(ctx context.Context, id string, doc PT) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": objectID}, doc)
	if err != nil {
		return false, errors.Wrapf(err, "replace in %s", r.coll.Name())
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes the document stored under id and reports whether one was
// removed.
func (r *Repository[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, errors.Wrapf(err, "delete from %s", r.coll.Name())
	}
	return res.DeletedCount > 0, nil
}

func (r *Repository[T, PT]) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "find in %s", r.coll.Name())
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, errors.Wrapf(err, "decode %s", r.coll.Name())
	}
	return items, nil
}

func (r *Repository[T, PT]) findOne(ctx context.Context, filter any) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc T
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find one in %s", r.coll.Name())
	}
	return &doc, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
