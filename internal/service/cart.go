package service

import (
	"context"
	"slices"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"convenience-store/internal/models"
	"convenience-store/internal/repository"
)

// CartSummary is the cart as rendered to the customer.
type CartSummary struct {
	CartID    primitive.ObjectID `json:"cart_id"`
	Items     []models.OrderItem `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
}

func summarize(cart *models.ShoppingCart) *CartSummary {
	items := cart.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return &CartSummary{
		CartID:    cart.ID,
		Items:     items,
		Total:     models.ToFloat(models.ItemsTotal(items)),
		ItemCount: models.ItemsCount(items),
	}
}

// CartService edits the customer's single cart. Every change loads the
// cart, mutates it in memory and saves the whole document back.
type CartService struct {
	carts    CartStore
	products ProductStore
	lg       *zap.Logger
}

func NewCartService(carts CartStore, products ProductStore, lg *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, lg: lg.Named("cart")}
}

func (s *CartService) Get(ctx context.Context, customerID primitive.ObjectID) (*CartSummary, error) {
	cart, err := s.carts.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return summarize(cart), nil
}

// AddItem adds qty units of the product, merging with an existing line for
// the same product. The merged quantity may not exceed stock.
func (s *CartService) AddItem(ctx context.Context, customerID primitive.ObjectID, productID string, qty int) (*CartSummary, error) {
	if qty <= 0 {
		return nil, reject("quantity must be positive")
	}

	product, err := s.products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, reject("product not found")
	}
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, reject("%s is not available", product.Name)
	}

	cart, err := s.carts.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	idx := cart.LineForProduct(product.ID)
	merged := qty
	if idx >= 0 {
		merged += cart.Items[idx].Quantity
	}
	if merged > product.Stock {
		return nil, reject("only %d of %s in stock", product.Stock, product.Name)
	}

	if idx >= 0 {
		line := &cart.Items[idx]
		line.Quantity = merged
		line.UnitPrice = product.Price
		line.ProductName = product.Name
	} else {
		cart.Items = append(cart.Items, models.OrderItem{
			ItemID:      uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			SKU:         product.SKU,
			UnitPrice:   product.Price,
			Quantity:    qty,
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return summarize(cart), nil
}

// RemoveItem drops the line addressed by ref, a line id or a product id.
func (s *CartService) RemoveItem(ctx context.Context, customerID primitive.ObjectID, ref string) (*CartSummary, error) {
	cart, err := s.carts.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	idx := cart.Line(ref)
	if idx < 0 {
		return nil, reject("item not in cart")
	}
	cart.Items = slices.Delete(cart.Items, idx, idx+1)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return summarize(cart), nil
}

// UpdateQuantity sets the quantity of the line addressed by ref. Zero or
// less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, customerID primitive.ObjectID, ref string, qty int) (*CartSummary, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, customerID, ref)
	}

	cart, err := s.carts.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	idx := cart.Line(ref)
	if idx < 0 {
		return nil, reject("item not in cart")
	}
	line := &cart.Items[idx]

	product, err := s.products.GetByID(ctx, line.ProductID.Hex())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, reject("%s is no longer available", line.ProductName)
	}
	if err != nil {
		return nil, err
	}
	if qty > product.Stock {
		return nil, reject("only %d of %s in stock", product.Stock, product.Name)
	}
	line.Quantity = qty

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return summarize(cart), nil
}

func (s *CartService) Clear(ctx context.Context, customerID primitive.ObjectID) error {
	cart, err := s.carts.GetOrCreate(ctx, customerID)
	if err != nil {
		return err
	}
	if len(cart.Items) == 0 {
		return nil
	}
	cart.Items = []models.OrderItem{}
	if err := s.carts.Save(ctx, cart); err != nil {
		return errors.Wrap(err, "save cart")
	}
	return nil
}
