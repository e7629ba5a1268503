package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"convenience-store/internal/repository"
)

func TestAdminProductLifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	product, err := s.admin.CreateProduct(ctx, ProductInput{
		SKU: "SNACK002", Name: " Cookies ", Category: "Snacks", Price: 3.49, Stock: 30, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cookies", product.Name)
	assert.False(t, product.ID.IsZero())

	_, err = s.admin.CreateProduct(ctx, ProductInput{Name: "", Price: 1})
	requireRejected(t, err)
	_, err = s.admin.CreateProduct(ctx, ProductInput{Name: "Gum", Price: -1})
	requireRejected(t, err)

	active := false
	updated, err := s.admin.UpdateProduct(ctx, product.ID.Hex(), ProductPatch{Active: &active})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 3.49, updated.Price, "unset fields are kept")

	products, err := s.admin.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1, "inactive products are listed for admins")

	require.NoError(t, s.admin.DeleteProduct(ctx, product.ID.Hex()))
	assert.ErrorIs(t, s.admin.DeleteProduct(ctx, product.ID.Hex()), repository.ErrNotFound)

	_, err = s.admin.UpdateProduct(ctx, primitive.NewObjectID().Hex(), ProductPatch{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdminUpdateStockRefreshesInventory(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	cola := s.addProduct(t, "Cola", 1.99, 10)

	available, err := s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, available)

	product, err := s.admin.UpdateStock(ctx, cola.ID.Hex(), 40)
	require.NoError(t, err)
	assert.Equal(t, 40, product.Stock)
	assert.Equal(t, 40, s.stockOf(t, cola.ID))

	available, err = s.inventory.Available(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, available)

	_, err = s.admin.UpdateStock(ctx, cola.ID.Hex(), -1)
	requireRejected(t, err)
}

func TestAdminOrdersAndInvoices(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	customerID := primitive.NewObjectID()
	checkout := placeOrder(t, s, customerID, 3.00, 1)

	orders, err := s.admin.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order, err := s.admin.UpdateOrderStatus(ctx, checkout.Order.ID.Hex(), "Shipped")
	require.NoError(t, err)
	assert.Equal(t, "Shipped", string(order.Status))

	invoices, err := s.admin.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, checkout.Invoice.ID, invoices[0].ID)
}
