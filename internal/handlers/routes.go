package handlers

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"convenience-store/internal/middleware"
)

// Services bundles everything the routes call.
type Services struct {
	Auth      AuthService
	Catalogue CatalogueService
	Cart      CartService
	Orders    OrderService
	Invoices  InvoiceService
	Payments  PaymentService
	Admin     AdminService
	DB        Pinger
}

// Frontend is the embedded browser client.
type Frontend struct {
	Index  []byte
	Static fs.FS
}

func RegisterRoutes(r *gin.Engine, s Services, ui Frontend) {
	r.GET("/", Home(ui.Index))
	r.StaticFS("/static", http.FS(ui.Static))
	r.GET("/healthz", Health(s.DB))

	api := r.Group("/api")
	{
		api.POST("/register", Register(s.Auth))
		api.POST("/login", Login(s.Auth))
		api.POST("/logout", Logout(s.Auth))

		api.GET("/products", GetProducts(s.Catalogue))
		api.GET("/products/:id", GetProduct(s.Catalogue))
		api.GET("/categories", GetCategories(s.Catalogue))
	}

	signedIn := api.Group("")
	signedIn.Use(middleware.AuthGuard(s.Auth))
	{
		signedIn.GET("/me", GetMe(s.Auth))
		signedIn.GET("/orders", GetOrders(s.Orders))
		signedIn.GET("/orders/:id", GetOrder(s.Orders))
	}

	customer := api.Group("")
	customer.Use(middleware.CustomerAuth(s.Auth))
	{
		customer.PUT("/me", UpdateMe(s.Auth))
		customer.PUT("/me/account", UpdateAccount(s.Auth))

		customer.GET("/cart", GetCart(s.Cart))
		customer.POST("/cart/add", AddToCart(s.Cart))
		customer.PUT("/cart/update", UpdateCartItem(s.Cart))
		customer.DELETE("/cart/remove/:productId", RemoveFromCart(s.Cart))
		customer.DELETE("/cart", ClearCart(s.Cart))

		customer.POST("/checkout", Checkout(s.Orders, s.Payments))
		customer.GET("/invoices", GetInvoices(s.Invoices))
		customer.POST("/invoices/:id/pay", PayInvoice(s.Payments))
		customer.GET("/receipts", GetReceipts(s.Payments))
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(s.Auth))
	{
		admin.GET("/products", GetAllProducts(s.Admin))
		admin.POST("/products", CreateProduct(s.Admin))
		admin.PUT("/products/:id", UpdateProduct(s.Admin))
		admin.DELETE("/products/:id", DeleteProduct(s.Admin))
		admin.PUT("/products/:id/stock", UpdateProductStock(s.Admin))

		admin.GET("/orders", GetAllOrders(s.Admin))
		admin.PUT("/orders/:id/status", UpdateOrderStatus(s.Admin))
		admin.GET("/invoices", GetAllInvoices(s.Admin))
	}
}
