package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is embedded in the customer document and holds checkout
// preferences.
type Account struct {
	ShippingAddress string    `bson:"shippingAddress" json:"shippingAddress"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Customer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Account      Account            `bson:"account" json:"account"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
