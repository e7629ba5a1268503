package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"convenience-store/internal/models"
	"convenience-store/internal/repository"
)

type ProductInput struct {
	SKU         string
	Name        string
	Description string
	Category    string
	Price       float64
	Stock       int
	Active      bool
}

// ProductPatch is a partial product update. Nil fields are left as is.
type ProductPatch struct {
	SKU         *string
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Stock       *int
	Active      *bool
}

// AdminService backs the store management screens. It is a thin layer over
// the repositories and the other services.
type AdminService struct {
	products  ProductStore
	orders    *OrderService
	invoices  *InvoiceService
	inventory *InventoryService
	now       func() time.Time
	lg        *zap.Logger
}

func NewAdminService(products ProductStore, orders *OrderService, invoices *InvoiceService, inventory *InventoryService, lg *zap.Logger) *AdminService {
	return &AdminService{
		products:  products,
		orders:    orders,
		invoices:  invoices,
		inventory: inventory,
		now:       time.Now,
		lg:        lg.Named("admin"),
	}
}

// ListProducts returns the whole catalogue, inactive products included.
func (s *AdminService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(products, func(a, b models.Product) int {
		return strings.Compare(a.Name, b.Name)
	})
	return products, nil
}

func (s *AdminService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Stock:       in.Stock,
		Active:      in.Active,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	now := s.now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.products.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "create product")
	}

	s.lg.Info("Product created", zap.String("product_id", product.ID.Hex()), zap.String("name", product.Name))
	return product, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.SKU != nil {
		product.SKU = strings.TrimSpace(*patch.SKU)
	}
	if patch.Name != nil {
		product.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		product.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		product.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.Active != nil {
		product.Active = *patch.Active
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = s.now()

	if _, err := s.products.Update(ctx, product.ID.Hex(), product); err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	s.inventory.Invalidate(product.ID)
	return product, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	removed, err := s.products.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if !removed {
		return repository.ErrNotFound
	}
	s.inventory.Invalidate(product.ID)

	s.lg.Info("Product deleted", zap.String("product_id", product.ID.Hex()))
	return nil
}

// UpdateStock overwrites the on-hand quantity and marks the cached level for
// reload.
func (s *AdminService) UpdateStock(ctx context.Context, id string, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, reject("stock cannot be negative")
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.SetStock(ctx, product.ID, stock); err != nil {
		return nil, err
	}
	s.inventory.Invalidate(product.ID)

	product.Stock = stock
	product.UpdatedAt = s.now()
	return product, nil
}

func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *AdminService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return s.invoices.ListAll(ctx)
}

func validateProduct(p *models.Product) error {
	switch {
	case p.Name == "":
		return reject("product name is required")
	case p.Price < 0:
		return reject("price cannot be negative")
	case p.Stock < 0:
		return reject("stock cannot be negative")
	}
	return nil
}
