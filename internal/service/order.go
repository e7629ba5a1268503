package service

import (
	"context"
	"slices"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"convenience-store/internal/models"
	"convenience-store/internal/repository"
)

type CheckoutResult struct {
	Order   *models.Order   `json:"order"`
	Invoice *models.Invoice `json:"invoice"`
}

type OrderService struct {
	orders    OrderStore
	carts     CartStore
	invoices  *InvoiceService
	inventory *InventoryService
	now       func() time.Time
	lg        *zap.Logger
}

func NewOrderService(orders OrderStore, carts CartStore, invoices *InvoiceService, inventory *InventoryService, lg *zap.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		invoices:  invoices,
		inventory: inventory,
		now:       time.Now,
		lg:        lg.Named("order"),
	}
}

// Checkout turns the customer's cart into a placed order with an unpaid
// invoice. Stock is reserved first and only written back once the order and
// its invoice exist. The cart is emptied last.
func (s *OrderService) Checkout(ctx context.Context, customerID primitive.ObjectID) (*CheckoutResult, error) {
	cart, err := s.carts.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := slices.Clone(cart.Items)
	if err := s.inventory.reserveLines(ctx, items); err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		CustomerID: customerID,
		Items:      items,
		ItemCount:  models.ItemsCount(items),
		Total:      models.ToFloat(models.ItemsTotal(items)),
		Status:     models.OrderPlaced,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.inventory.releaseLines(items)
		return nil, errors.Wrap(err, "create order")
	}

	invoice, err := s.invoices.Create(ctx, order)
	if err != nil {
		s.abandon(ctx, order, nil)
		return nil, err
	}

	order.InvoiceID = &invoice.ID
	if _, err := s.orders.Update(ctx, order.ID.Hex(), order); err != nil {
		s.abandon(ctx, order, invoice)
		return nil, errors.Wrap(err, "link invoice")
	}

	for _, item := range items {
		if err := s.inventory.Commit(ctx, item.ProductID, item.Quantity); err != nil {
			s.lg.Error("Stock write-back failed",
				zap.String("order_id", order.ID.Hex()),
				zap.String("product_id", item.ProductID.Hex()),
				zap.Error(err),
			)
		}
	}

	cart.Items = []models.OrderItem{}
	if err := s.carts.Save(ctx, cart); err != nil {
		s.lg.Error("Clear cart after checkout failed",
			zap.String("order_id", order.ID.Hex()),
			zap.Error(err),
		)
	}

	s.lg.Info("Order placed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("customer_id", customerID.Hex()),
		zap.Float64("total", order.Total),
	)
	return &CheckoutResult{Order: order, Invoice: invoice}, nil
}

// abandon undoes a partially written checkout.
func (s *OrderService) abandon(ctx context.Context, order *models.Order, invoice *models.Invoice) {
	s.inventory.releaseLines(order.Items)
	if invoice != nil {
		s.invoices.discard(ctx, invoice.ID)
	}
	if _, err := s.orders.Delete(ctx, order.ID.Hex()); err != nil {
		s.lg.Error("Abandon order failed", zap.String("order_id", order.ID.Hex()), zap.Error(err))
		return
	}
	s.lg.Warn("Checkout rolled back", zap.String("order_id", order.ID.Hex()))
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByCustomer(ctx, customerID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(orders, func(a, b models.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// GetForCustomer reports orders of other customers as missing.
func (s *OrderService) GetForCustomer(ctx context.Context, id string, customerID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, repository.ErrNotFound
	}
	return order, nil
}

// UpdateStatus sets any of the known statuses, in any order.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	next, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := order.Status
	order.Status = next
	order.UpdatedAt = s.now()

	if _, err := s.orders.Update(ctx, order.ID.Hex(), order); err != nil {
		return nil, errors.Wrap(err, "update order status")
	}

	s.lg.Info("Order status changed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)
	return order, nil
}
