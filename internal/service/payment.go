package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"convenience-store/internal/models"
)

var errPaymentDeclined = errors.New("payment declined")

// PaymentMethod is one way of settling an invoice.
type PaymentMethod interface {
	// Tag is the short name used in requests, e.g. "wallet".
	Tag() string
	// Label describes the method on payments and receipts.
	Label() string
	Charge(ctx context.Context, amount decimal.Decimal) error
}

// MethodFactory builds a method from the free-form details the customer
// entered.
type MethodFactory func(details string) (PaymentMethod, error)

// DigitalWallet settles through a wallet provider.
type DigitalWallet struct {
	Provider string
}

func (DigitalWallet) Tag() string { return "wallet" }

func (w DigitalWallet) Label() string {
	return fmt.Sprintf("Digital Wallet (%s)", w.Provider)
}

func (DigitalWallet) Charge(_ context.Context, amount decimal.Decimal) error {
	return chargeStub(amount)
}

// BankDebit keeps only the last four digits of the account.
type BankDebit struct {
	Last4 string
}

func (BankDebit) Tag() string { return "bank" }

func (b BankDebit) Label() string {
	return fmt.Sprintf("Bank Debit (****%s)", b.Last4)
}

func (BankDebit) Charge(_ context.Context, amount decimal.Decimal) error {
	return chargeStub(amount)
}

// PayPal redirects to the payer's PayPal account.
type PayPal struct {
	Email string
}

func (PayPal) Tag() string { return "paypal" }

func (p PayPal) Label() string {
	return fmt.Sprintf("PayPal (%s)", p.Email)
}

func (PayPal) Charge(_ context.Context, amount decimal.Decimal) error {
	return chargeStub(amount)
}

// chargeStub stands in for a payment rail: positive amounts go through.
func chargeStub(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errPaymentDeclined
	}
	return nil
}

func defaultMethods() map[string]MethodFactory {
	return map[string]MethodFactory{
		"wallet": func(details string) (PaymentMethod, error) {
			provider := strings.TrimSpace(details)
			if provider == "" {
				return nil, reject("wallet provider is required")
			}
			return DigitalWallet{Provider: provider}, nil
		},
		"bank": func(details string) (PaymentMethod, error) {
			account := strings.TrimSpace(details)
			if len(account) < 4 {
				return nil, reject("bank account number is too short")
			}
			return BankDebit{Last4: account[len(account)-4:]}, nil
		},
		"paypal": func(details string) (PaymentMethod, error) {
			email := strings.TrimSpace(details)
			if !strings.Contains(email, "@") {
				return nil, reject("paypal email is invalid")
			}
			return PayPal{Email: email}, nil
		},
	}
}

type PaymentOption func(*PaymentService)

// WithMethod registers or replaces the factory for tag.
func WithMethod(tag string, factory MethodFactory) PaymentOption {
	return func(s *PaymentService) {
		s.methods[strings.ToLower(tag)] = factory
	}
}

type PaymentRequest struct {
	InvoiceID  string
	CustomerID primitive.ObjectID
	Method     string
	Details    string
	// Amount defaults to the outstanding balance when nil.
	Amount *decimal.Decimal
}

type PaymentResult struct {
	Payment *models.Payment `json:"payment"`
	Receipt *models.Receipt `json:"receipt,omitempty"`
	Invoice *models.Invoice `json:"invoice"`
}

type PaymentService struct {
	payments PaymentStore
	receipts ReceiptStore
	invoices *InvoiceService
	methods  map[string]MethodFactory
	now      func() time.Time
	lg       *zap.Logger
}

func NewPaymentService(payments PaymentStore, receipts ReceiptStore, invoices *InvoiceService, lg *zap.Logger, opts ...PaymentOption) *PaymentService {
	s := &PaymentService{
		payments: payments,
		receipts: receipts,
		invoices: invoices,
		methods:  defaultMethods(),
		now:      time.Now,
		lg:       lg.Named("payment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Method builds the payment method registered under tag.
func (s *PaymentService) Method(tag, details string) (PaymentMethod, error) {
	factory, ok := s.methods[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return nil, ErrUnknownPaymentMethod
	}
	return factory(details)
}

// Process charges an invoice. A declined charge is still recorded, as a
// failed payment without receipt, and reported as a RejectedError.
func (s *PaymentService) Process(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	invoice, err := s.invoices.GetForCustomer(ctx, req.InvoiceID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if invoice.IsPaid() {
		return nil, reject("invoice is already paid")
	}

	method, err := s.Method(req.Method, req.Details)
	if err != nil {
		return nil, err
	}

	outstanding := invoice.Outstanding()
	amount := outstanding
	if req.Amount != nil {
		amount = req.Amount.Round(2)
	}
	if !amount.IsPositive() {
		return nil, reject("amount must be positive")
	}
	if amount.GreaterThan(outstanding) {
		return nil, reject("amount exceeds outstanding balance of %s", outstanding.StringFixed(2))
	}

	payment := &models.Payment{
		InvoiceID:   invoice.ID,
		CustomerID:  invoice.CustomerID,
		Amount:      models.ToFloat(amount),
		Method:      method.Tag(),
		MethodLabel: method.Label(),
		Status:      models.PaymentCompleted,
		CreatedAt:   s.now(),
	}

	chargeErr := method.Charge(ctx, amount)
	if chargeErr != nil {
		payment.Status = models.PaymentFailed
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "record payment")
	}
	if chargeErr != nil {
		s.lg.Warn("Payment failed",
			zap.String("invoice_id", invoice.ID.Hex()),
			zap.String("payment_id", payment.ID.Hex()),
			zap.String("method", payment.Method),
			zap.Error(chargeErr),
		)
		return &PaymentResult{Payment: payment, Invoice: invoice}, &RejectedError{Reason: "payment failed"}
	}

	invoice, err = s.invoices.ApplyPayment(ctx, invoice.ID, payment.ID, amount)
	if err != nil {
		return nil, err
	}

	receipt := &models.Receipt{
		PaymentID:  payment.ID,
		InvoiceID:  invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     payment.Amount,
		IssuedAt:   s.now(),
	}
	if err := s.receipts.Create(ctx, receipt); err != nil {
		return nil, errors.Wrap(err, "issue receipt")
	}

	payment.ReceiptID = &receipt.ID
	if _, err := s.payments.Update(ctx, payment.ID.Hex(), payment); err != nil {
		return nil, errors.Wrap(err, "link receipt")
	}

	s.lg.Info("Payment completed",
		zap.String("invoice_id", invoice.ID.Hex()),
		zap.String("payment_id", payment.ID.Hex()),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("invoice_status", string(invoice.Status)),
	)
	return &PaymentResult{Payment: payment, Receipt: receipt, Invoice: invoice}, nil
}

func (s *PaymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *PaymentService) ListForInvoice(ctx context.Context, invoiceID primitive.ObjectID) ([]models.Payment, error) {
	return s.payments.FindByInvoice(ctx, invoiceID)
}

func (s *PaymentService) Receipt(ctx context.Context, id string) (*models.Receipt, error) {
	return s.receipts.GetByID(ctx, id)
}

// ReceiptForPayment returns the receipt of a completed payment.
func (s *PaymentService) ReceiptForPayment(ctx context.Context, paymentID primitive.ObjectID) (*models.Receipt, error) {
	return s.receipts.FindByPayment(ctx, paymentID)
}

func (s *PaymentService) ReceiptsForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Receipt, error) {
	return s.receipts.FindByCustomer(ctx, customerID)
}
