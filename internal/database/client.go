package database

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store wraps the MongoDB client and the application database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var (
	shared     *Store
	sharedErr  error
	sharedOnce sync.Once
)

// Open returns the process-wide Store, connecting on the first call.
// Concurrent first calls connect once; every caller gets the same instance
// or the same connection error.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	sharedOnce.Do(func() {
		client, err := Connect(ctx, uri)
		if err != nil {
			sharedErr = err
			return
		}
		shared = &Store{client: client, db: client.Database(dbName)}
	})
	return shared, sharedErr
}

// New wraps an existing database handle without touching the shared
// instance.
func New(db *mongo.Database) *Store {
	return &Store{client: db.Client(), db: db}
}

// Connect dials MongoDB and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping mongo")
	}
	return client, nil
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping reports whether the primary answers within two seconds.
func (s *Store) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return s.client.Ping(checkCtx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CollectionNamer lets an entity type choose its backing collection.
type CollectionNamer interface {
	CollectionName() string
}

// Collection returns the handle backing entity type T. The name is taken
// from explicit when given, else from T's CollectionName, else from the
// lower-cased type name.
func Collection[T any](s *Store, explicit ...string) *mongo.Collection {
	return s.db.Collection(CollectionNameFor[T](explicit...))
}

func CollectionNameFor[T any](explicit ...string) string {
	for _, name := range explicit {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}

	var zero T
	if namer, ok := any(zero).(CollectionNamer); ok {
		return namer.CollectionName()
	}
	if namer, ok := any(&zero).(CollectionNamer); ok {
		return namer.CollectionName()
	}
	return strings.ToLower(reflect.TypeOf(zero).Name())
}
