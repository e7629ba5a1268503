package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"convenience-store/internal/models"
	"convenience-store/internal/repository"
)

// CatalogueService is the read-only product view shown to customers.
type CatalogueService struct {
	products ProductStore
	lg       *zap.Logger
}

func NewCatalogueService(products ProductStore, lg *zap.Logger) *CatalogueService {
	return &CatalogueService{products: products, lg: lg.Named("catalogue")}
}

func (s *CatalogueService) ListAvailable(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAvailable(ctx)
}

// Search matches q against product names and categories. A blank query
// lists everything available.
func (s *CatalogueService) Search(ctx context.Context, q string) ([]models.Product, error) {
	if strings.TrimSpace(q) == "" {
		return s.ListAvailable(ctx)
	}
	products, err := s.products.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	s.lg.Debug("Product search", zap.String("q", q), zap.Int("results", len(products)))
	return products, nil
}

func (s *CatalogueService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if strings.TrimSpace(category) == "" {
		return s.ListAvailable(ctx)
	}
	return s.products.FindByCategory(ctx, category)
}

func (s *CatalogueService) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

// Get returns an active product. Deactivated products are reported as
// missing.
func (s *CatalogueService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, repository.ErrNotFound
	}
	return product, nil
}
