package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"convenience-store/internal/repository"
)

func TestReserveCommitRelease(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	cola := s.addProduct(t, "Cola", 1.99, 10)

	require.NoError(t, s.inventory.Reserve(ctx, cola.ID, 4))
	available, err := s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, available)
	assert.Equal(t, 10, s.stockOf(t, cola.ID), "reservations do not touch stored stock")

	requireRejected(t, s.inventory.Reserve(ctx, cola.ID, 7))

	require.NoError(t, s.inventory.Commit(ctx, cola.ID, 3))
	assert.Equal(t, 7, s.stockOf(t, cola.ID))

	s.inventory.Release(cola.ID, 1)
	available, err = s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, available)

	s.inventory.Release(cola.ID, 5)
	available, err = s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, available, "over-release never creates stock")
}

func TestReserveUnknownProduct(t *testing.T) {
	s := newStore(t)

	err := s.inventory.Reserve(context.Background(), primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	requireRejected(t, s.inventory.Reserve(context.Background(), primitive.NewObjectID(), 0))
}

func TestInvalidateReloadsStock(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	cola := s.addProduct(t, "Cola", 1.99, 10)

	_, err := s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)

	_, err = s.products.SetStock(ctx, cola.ID, 2)
	require.NoError(t, err)
	available, err := s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, available, "cached until invalidated")

	s.inventory.Invalidate(cola.ID)
	available, err = s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, available)
}

func TestConcurrentReservationsNeverOversell(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	chips := s.addProduct(t, "Potato Chips", 2.99, 25)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		reserved int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.inventory.Reserve(ctx, chips.ID, 1) == nil {
				mu.Lock()
				reserved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, reserved)
	available, err := s.inventory.Available(ctx, chips.ID)
	require.NoError(t, err)
	assert.Zero(t, available)
	assert.LessOrEqual(t, int(s.products.loads.Load()), 50)
}

func TestInvalidateKeepsOutstandingReservations(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	cola := s.addProduct(t, "Cola", 1.99, 5)

	require.NoError(t, s.inventory.Reserve(ctx, cola.ID, 2))

	_, err := s.admin.UpdateStock(ctx, cola.ID.Hex(), 10)
	require.NoError(t, err)

	available, err := s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, available, "new stock minus the held units")

	require.NoError(t, s.inventory.Commit(ctx, cola.ID, 2))
	assert.Equal(t, 8, s.stockOf(t, cola.ID))

	available, err = s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, available)
}

func TestCommitAfterProductEditReloadsStock(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	chips := s.addProduct(t, "Potato Chips", 2.99, 5)

	require.NoError(t, s.inventory.Reserve(ctx, chips.ID, 3))

	stock := 4
	_, err := s.admin.UpdateProduct(ctx, chips.ID.Hex(), ProductPatch{Stock: &stock})
	require.NoError(t, err)

	require.NoError(t, s.inventory.Commit(ctx, chips.ID, 3))
	assert.Equal(t, 1, s.stockOf(t, chips.ID))
}

func TestCommitWithoutReservationFails(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	water := s.addProduct(t, "Water", 0.99, 5)

	assert.Error(t, s.inventory.Commit(ctx, water.ID, 1))
	assert.Equal(t, 5, s.stockOf(t, water.ID))
}
