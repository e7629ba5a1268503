package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// Payment records one payment attempt against an invoice. ReceiptID is set
// only for completed payments.
type Payment struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InvoiceID   primitive.ObjectID  `bson:"invoiceId" json:"invoiceId"`
	CustomerID  primitive.ObjectID  `bson:"customerId" json:"customerId"`
	Amount      float64             `bson:"amount" json:"amount"`
	Method      string              `bson:"method" json:"method"`
	MethodLabel string              `bson:"methodLabel" json:"methodLabel"`
	Status      PaymentStatus       `bson:"status" json:"status"`
	ReceiptID   *primitive.ObjectID `bson:"receiptId,omitempty" json:"receiptId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}

type Receipt struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PaymentID  primitive.ObjectID `bson:"paymentId" json:"paymentId"`
	InvoiceID  primitive.ObjectID `bson:"invoiceId" json:"invoiceId"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	Amount     float64            `bson:"amount" json:"amount"`
	IssuedAt   time.Time          `bson:"issuedAt" json:"issuedAt"`
}
