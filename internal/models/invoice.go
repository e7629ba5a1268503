package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "Unpaid"
	InvoicePartiallyPaid InvoiceStatus = "PartiallyPaid"
	InvoicePaid          InvoiceStatus = "Paid"
)

type Invoice struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderID    primitive.ObjectID   `bson:"orderId" json:"orderId"`
	CustomerID primitive.ObjectID   `bson:"customerId" json:"customerId"`
	AmountDue  float64              `bson:"amountDue" json:"amountDue"`
	AmountPaid float64              `bson:"amountPaid" json:"amountPaid"`
	PaymentIDs []primitive.ObjectID `bson:"paymentIds" json:"paymentIds"`
	Status     InvoiceStatus        `bson:"status" json:"status"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Outstanding is the amount still due, never negative.
func (i Invoice) Outstanding() decimal.Decimal {
	left := Money(i.AmountDue).Sub(Money(i.AmountPaid))
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

func (i Invoice) IsPaid() bool {
	return i.Status == InvoicePaid
}
