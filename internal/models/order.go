package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem represents a single product line within a cart or an order.
type OrderItem struct {
	ItemID      string             `bson:"itemId" json:"itemId"`
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName"`
	SKU         string             `bson:"sku,omitempty" json:"sku,omitempty"`
	UnitPrice   float64            `bson:"unitPrice" json:"unitPrice"`
	Quantity    int                `bson:"quantity" json:"quantity"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return Money(i.UnitPrice).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// MatchesRef reports whether ref addresses this line, either by line id or
// by product id.
func (i OrderItem) MatchesRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	return i.ItemID == ref || i.ProductID.Hex() == ref
}

// ItemsTotal sums line totals.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total.Round(2)
}

// ItemsCount sums quantities.
func ItemsCount(items []OrderItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

type OrderStatus string

const (
	OrderPlaced     OrderStatus = "Placed"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

var orderStatuses = []OrderStatus{OrderPlaced, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

// ParseOrderStatus accepts any of the known statuses, ignoring case.
func ParseOrderStatus(value string) (OrderStatus, bool) {
	value = strings.TrimSpace(value)
	for _, status := range orderStatuses {
		if strings.EqualFold(string(status), value) {
			return status, true
		}
	}
	return "", false
}

// Order defines the persisted order document. Items is a copy of the cart
// lines at checkout and is never modified afterwards.
type Order struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CustomerID primitive.ObjectID  `bson:"customerId" json:"customerId"`
	Items      []OrderItem         `bson:"items" json:"items"`
	ItemCount  int                 `bson:"itemCount" json:"itemCount"`
	Total      float64             `bson:"total" json:"total"`
	Status     OrderStatus         `bson:"status" json:"status"`
	InvoiceID  *primitive.ObjectID `bson:"invoiceId,omitempty" json:"invoiceId,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}
