package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"convenience-store/internal/models"
)

// The stores below are satisfied by the repository package. Services only
// see the calls they make.

type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, product *models.Product) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindAvailable(ctx context.Context) ([]models.Product, error)
	FindByCategory(ctx context.Context, category string) ([]models.Product, error)
	Search(ctx context.Context, text string) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	SetStock(ctx context.Context, id primitive.ObjectID, stock int) (bool, error)
}

type CustomerStore interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, id string, customer *models.Customer) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Authenticate(ctx context.Context, email, password string) (*models.Customer, error)
}

type AdminStore interface {
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	Authenticate(ctx context.Context, email, password string) (*models.Admin, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindActive(ctx context.Context, tokenHash string) (*models.Session, error)
	Revoke(ctx context.Context, tokenHash string) (bool, error)
}

type CartStore interface {
	GetOrCreate(ctx context.Context, customerID primitive.ObjectID) (*models.ShoppingCart, error)
	Save(ctx context.Context, cart *models.ShoppingCart) error
}

type OrderStore interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, id string, order *models.Order) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error)
}

type InvoiceStore interface {
	GetAll(ctx context.Context) ([]models.Invoice, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, id string, invoice *models.Invoice) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Invoice, error)
}

type PaymentStore interface {
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, id string, payment *models.Payment) (bool, error)
	FindByInvoice(ctx context.Context, invoiceID primitive.ObjectID) ([]models.Payment, error)
}

type ReceiptStore interface {
	GetByID(ctx context.Context, id string) (*models.Receipt, error)
	Create(ctx context.Context, receipt *models.Receipt) error
	FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Receipt, error)
	FindByPayment(ctx context.Context, paymentID primitive.ObjectID) (*models.Receipt, error)
}
