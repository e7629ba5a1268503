package service

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"convenience-store/internal/models"
	"convenience-store/internal/repository"
)

type stockLevel struct {
	OnHand   int
	Reserved int
	// stale levels keep Reserved and reload OnHand on next use.
	stale bool
}

func (l stockLevel) available() int {
	return l.OnHand - l.Reserved
}

// InventoryService tracks reservations on top of product stock. Levels are
// loaded lazily per product and live in this process only.
type InventoryService struct {
	products ProductStore
	lg       *zap.Logger

	mu     sync.Mutex
	levels map[primitive.ObjectID]*stockLevel
	loads  singleflight.Group
}

func NewInventoryService(products ProductStore, lg *zap.Logger) *InventoryService {
	return &InventoryService{
		products: products,
		lg:       lg.Named("inventory"),
		levels:   make(map[primitive.ObjectID]*stockLevel),
	}
}

// ensure loads the level for id unless a fresh one is cached. Concurrent
// misses for the same product share one load.
func (s *InventoryService) ensure(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	level, ok := s.levels[id]
	fresh := ok && !level.stale
	s.mu.Unlock()
	if fresh {
		return nil
	}

	_, err, _ := s.loads.Do(id.Hex(), func() (any, error) {
		product, err := s.products.GetByID(ctx, id.Hex())
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		switch level, ok := s.levels[id]; {
		case !ok:
			s.levels[id] = &stockLevel{OnHand: product.Stock}
		case level.stale:
			level.OnHand = product.Stock
			level.stale = false
		}
		return nil, nil
	})
	return err
}

// Available is on-hand stock minus outstanding reservations.
func (s *InventoryService) Available(ctx context.Context, id primitive.ObjectID) (int, error) {
	if err := s.ensure(ctx, id); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	level, ok := s.levels[id]
	if !ok {
		return 0, reject("stock level changed, please retry")
	}
	return level.available(), nil
}

// Reserve holds qty units of the product. It fails with a RejectedError
// when fewer are available.
func (s *InventoryService) Reserve(ctx context.Context, id primitive.ObjectID, qty int) error {
	if qty <= 0 {
		return reject("quantity must be positive")
	}
	if err := s.ensure(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	level, ok := s.levels[id]
	if !ok {
		// Invalidated between load and lock.
		return reject("stock level changed, please retry")
	}
	if level.available() < qty {
		return reject("only %d left in stock", level.available())
	}
	level.Reserved += qty
	return nil
}

// Release drops a reservation without touching stock.
func (s *InventoryService) Release(id primitive.ObjectID, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level, ok := s.levels[id]
	if !ok {
		return
	}
	level.Reserved -= qty
	if level.Reserved < 0 {
		level.Reserved = 0
	}
}

// Commit turns a reservation into a stock reduction and writes the new
// on-hand quantity to the product. A level invalidated since the
// reservation is reloaded first.
func (s *InventoryService) Commit(ctx context.Context, id primitive.ObjectID, qty int) error {
	if err := s.ensure(ctx, id); err != nil {
		return errors.Wrap(err, "reload stock")
	}

	s.mu.Lock()
	level, ok := s.levels[id]
	if !ok || level.Reserved < qty {
		s.mu.Unlock()
		return errors.Errorf("no reservation for product %s", id.Hex())
	}
	level.OnHand -= qty
	level.Reserved -= qty
	onHand := level.OnHand
	s.mu.Unlock()

	if _, err := s.products.SetStock(ctx, id, onHand); err != nil {
		s.Invalidate(id)
		return errors.Wrap(err, "write stock")
	}
	s.lg.Debug("Stock committed",
		zap.String("product_id", id.Hex()),
		zap.Int("quantity", qty),
		zap.Int("on_hand", onHand),
	)
	return nil
}

// Invalidate makes the next call reload on-hand stock. Outstanding
// reservations are kept.
func (s *InventoryService) Invalidate(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level, ok := s.levels[id]
	if !ok {
		return
	}
	if level.Reserved == 0 {
		delete(s.levels, id)
		return
	}
	level.stale = true
}

// reserveLines reserves every line or none of them.
func (s *InventoryService) reserveLines(ctx context.Context, items []models.OrderItem) error {
	for i, item := range items {
		if err := s.Reserve(ctx, item.ProductID, item.Quantity); err != nil {
			s.releaseLines(items[:i])
			var rejected *RejectedError
			if errors.As(err, &rejected) {
				return reject("%s: %s", item.ProductName, rejected.Reason)
			}
			if errors.Is(err, repository.ErrNotFound) {
				return reject("%s is no longer available", item.ProductName)
			}
			return err
		}
	}
	return nil
}

func (s *InventoryService) releaseLines(items []models.OrderItem) {
	for _, item := range items {
		s.Release(item.ProductID, item.Quantity)
	}
}
