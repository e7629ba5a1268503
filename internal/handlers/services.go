package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"convenience-store/internal/middleware"
	"convenience-store/internal/models"
	"convenience-store/internal/service"
)

// The interfaces below list what each handler group calls. The service
// package provides the implementations.

type AuthService interface {
	middleware.SessionResolver
	Login(ctx context.Context, email, password string, role models.Role) (*models.Principal, error)
	Register(ctx context.Context, in service.RegisterInput) (*models.Customer, error)
	StartSession(ctx context.Context, p models.Principal) (string, error)
	Logout(ctx context.Context, token string) error
	Customer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, in service.ProfileInput) (*models.Customer, error)
	UpdateAccount(ctx context.Context, id primitive.ObjectID, shippingAddress string) (*models.Customer, error)
}

type CatalogueService interface {
	ListAvailable(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, q string) ([]models.Product, error)
	ByCategory(ctx context.Context, category string) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*models.Product, error)
}

type CartService interface {
	Get(ctx context.Context, customerID primitive.ObjectID) (*service.CartSummary, error)
	AddItem(ctx context.Context, customerID primitive.ObjectID, productID string, qty int) (*service.CartSummary, error)
	RemoveItem(ctx context.Context, customerID primitive.ObjectID, ref string) (*service.CartSummary, error)
	UpdateQuantity(ctx context.Context, customerID primitive.ObjectID, ref string, qty int) (*service.CartSummary, error)
	Clear(ctx context.Context, customerID primitive.ObjectID) error
}

type OrderService interface {
	Checkout(ctx context.Context, customerID primitive.ObjectID) (*service.CheckoutResult, error)
	ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	GetForCustomer(ctx context.Context, id string, customerID primitive.ObjectID) (*models.Order, error)
}

type InvoiceService interface {
	ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Invoice, error)
}

type PaymentService interface {
	Process(ctx context.Context, req service.PaymentRequest) (*service.PaymentResult, error)
	ReceiptsForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Receipt, error)
}

type AdminService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in service.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch service.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, id string, stock int) (*models.Product, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
