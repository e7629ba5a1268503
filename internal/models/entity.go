package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Entity is implemented by every persisted document so repositories can
// hand back the generated primary key.
type Entity interface {
	GetID() primitive.ObjectID
	SetID(id primitive.ObjectID)
}

func (c *Customer) GetID() primitive.ObjectID   { return c.ID }
func (c *Customer) SetID(id primitive.ObjectID) { c.ID = id }
func (Customer) CollectionName() string         { return "customers" }

func (a *Admin) GetID() primitive.ObjectID   { return a.ID }
func (a *Admin) SetID(id primitive.ObjectID) { a.ID = id }
func (Admin) CollectionName() string         { return "admins" }

func (p *Product) GetID() primitive.ObjectID   { return p.ID }
func (p *Product) SetID(id primitive.ObjectID) { p.ID = id }
func (Product) CollectionName() string         { return "products" }

func (c *ShoppingCart) GetID() primitive.ObjectID   { return c.ID }
func (c *ShoppingCart) SetID(id primitive.ObjectID) { c.ID = id }
func (ShoppingCart) CollectionName() string         { return "carts" }

func (o *Order) GetID() primitive.ObjectID   { return o.ID }
func (o *Order) SetID(id primitive.ObjectID) { o.ID = id }
func (Order) CollectionName() string         { return "orders" }

func (i *Invoice) GetID() primitive.ObjectID   { return i.ID }
func (i *Invoice) SetID(id primitive.ObjectID) { i.ID = id }
func (Invoice) CollectionName() string         { return "invoices" }

func (p *Payment) GetID() primitive.ObjectID   { return p.ID }
func (p *Payment) SetID(id primitive.ObjectID) { p.ID = id }
func (Payment) CollectionName() string         { return "payments" }

func (r *Receipt) GetID() primitive.ObjectID   { return r.ID }
func (r *Receipt) SetID(id primitive.ObjectID) { r.ID = id }
func (Receipt) CollectionName() string         { return "receipts" }

func (s *Session) GetID() primitive.ObjectID   { return s.ID }
func (s *Session) SetID(id primitive.ObjectID) { s.ID = id }
func (Session) CollectionName() string         { return "sessions" }
