package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShoppingCart is the single cart owned by a customer. It is cleared after
// checkout, never deleted.
type ShoppingCart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	Items      []OrderItem        `bson:"items" json:"items"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Line returns the index of the line addressed by ref, or -1.
func (c *ShoppingCart) Line(ref string) int {
	for i, item := range c.Items {
		if item.MatchesRef(ref) {
			return i
		}
	}
	return -1
}

// LineForProduct returns the index of the line holding productID, or -1.
func (c *ShoppingCart) LineForProduct(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
