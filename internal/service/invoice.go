package service

import (
	"context"
	"slices"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"convenience-store/internal/models"
	"convenience-store/internal/repository"
)

type InvoiceService struct {
	invoices InvoiceStore
	now      func() time.Time
	lg       *zap.Logger
}

func NewInvoiceService(invoices InvoiceStore, lg *zap.Logger) *InvoiceService {
	return &InvoiceService{invoices: invoices, now: time.Now, lg: lg.Named("invoice")}
}

// Create issues an unpaid invoice for the order total.
func (s *InvoiceService) Create(ctx context.Context, order *models.Order) (*models.Invoice, error) {
	now := s.now()
	invoice := &models.Invoice{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		AmountDue:  order.Total,
		PaymentIDs: []primitive.ObjectID{},
		Status:     models.InvoiceUnpaid,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, errors.Wrap(err, "create invoice")
	}
	return invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvoiceNotFound
	}
	return invoice, err
}

// GetForCustomer hides invoices owned by someone else.
func (s *InvoiceService) GetForCustomer(ctx context.Context, id string, customerID primitive.ObjectID) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.CustomerID != customerID {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *InvoiceService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Invoice, error) {
	return s.invoices.FindByCustomer(ctx, customerID)
}

func (s *InvoiceService) ListAll(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := s.invoices.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(invoices, func(a, b models.Invoice) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return invoices, nil
}

// ApplyPayment records amount against the invoice and derives its status.
func (s *InvoiceService) ApplyPayment(ctx context.Context, invoiceID, paymentID primitive.ObjectID, amount decimal.Decimal) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, invoiceID.Hex())
	if err != nil {
		return nil, err
	}

	paid := models.Money(invoice.AmountPaid).Add(amount)
	invoice.AmountPaid = models.ToFloat(paid)
	invoice.PaymentIDs = append(invoice.PaymentIDs, paymentID)
	invoice.Status = invoiceStatus(models.Money(invoice.AmountDue), paid)
	invoice.UpdatedAt = s.now()

	if _, err := s.invoices.Update(ctx, invoice.ID.Hex(), invoice); err != nil {
		return nil, errors.Wrap(err, "apply payment")
	}
	return invoice, nil
}

func invoiceStatus(due, paid decimal.Decimal) models.InvoiceStatus {
	switch {
	case paid.GreaterThanOrEqual(due):
		return models.InvoicePaid
	case paid.IsPositive():
		return models.InvoicePartiallyPaid
	default:
		return models.InvoiceUnpaid
	}
}

// discard removes an invoice whose order could not be completed.
func (s *InvoiceService) discard(ctx context.Context, id primitive.ObjectID) {
	if _, err := s.invoices.Delete(ctx, id.Hex()); err != nil {
		s.lg.Error("Discard invoice failed", zap.String("invoice_id", id.Hex()), zap.Error(err))
	}
}
