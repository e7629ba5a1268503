package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"convenience-store/internal/models"
	"convenience-store/internal/service"
)

const (
	customerToken = "customer-token"
	adminToken    = "admin-token"
)

var (
	customerPrincipal = models.Principal{ID: primitive.NewObjectID(), Email: "jane@example.com", Name: "Jane", Role: models.RoleCustomer}
	adminPrincipal    = models.Principal{ID: primitive.NewObjectID(), Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin}
)

// Each stub embeds its interface so calls nobody configured panic.

type stubAuth struct {
	AuthService
	register func(in service.RegisterInput) (*models.Customer, error)
	login    func(email, password string, role models.Role) (*models.Principal, error)
}

func (s *stubAuth) Resolve(_ context.Context, token string) (*models.Principal, error) {
	switch token {
	case customerToken:
		p := customerPrincipal
		return &p, nil
	case adminToken:
		p := adminPrincipal
		return &p, nil
	}
	return nil, service.ErrSessionInvalid
}

func (s *stubAuth) Register(_ context.Context, in service.RegisterInput) (*models.Customer, error) {
	return s.register(in)
}

func (s *stubAuth) Login(_ context.Context, email, password string, role models.Role) (*models.Principal, error) {
	return s.login(email, password, role)
}

func (s *stubAuth) StartSession(context.Context, models.Principal) (string, error) {
	return "new-session", nil
}

func (s *stubAuth) Logout(context.Context, string) error { return nil }

type stubCatalogue struct {
	CatalogueService
	products []models.Product
	err      error
	lastCall string
}

func (s *stubCatalogue) Search(_ context.Context, q string) ([]models.Product, error) {
	s.lastCall = "search:" + q
	return s.products, s.err
}

func (s *stubCatalogue) ByCategory(_ context.Context, category string) ([]models.Product, error) {
	s.lastCall = "category:" + category
	return s.products, s.err
}

func (s *stubCatalogue) Categories(context.Context) ([]string, error) {
	return []string{"Drinks", "Snacks"}, s.err
}

func (s *stubCatalogue) Get(_ context.Context, id string) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Product{Name: "Cola", Price: 1.99, Stock: 3, Active: true}, nil
}

type stubCart struct {
	CartService
	added   int
	updated string
	err     error
}

func (s *stubCart) Get(context.Context, primitive.ObjectID) (*service.CartSummary, error) {
	return &service.CartSummary{Items: []models.OrderItem{}}, s.err
}

func (s *stubCart) AddItem(_ context.Context, _ primitive.ObjectID, _ string, qty int) (*service.CartSummary, error) {
	s.added = qty
	return &service.CartSummary{ItemCount: qty}, s.err
}

func (s *stubCart) UpdateQuantity(_ context.Context, _ primitive.ObjectID, ref string, _ int) (*service.CartSummary, error) {
	s.updated = ref
	return &service.CartSummary{}, s.err
}

type stubOrders struct {
	OrderService
	checkoutErr error
	all         bool
}

func (s *stubOrders) Checkout(_ context.Context, customerID primitive.ObjectID) (*service.CheckoutResult, error) {
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	return &service.CheckoutResult{
		Order:   &models.Order{ID: primitive.NewObjectID(), CustomerID: customerID, Total: 6, Status: models.OrderPlaced},
		Invoice: &models.Invoice{ID: primitive.NewObjectID(), CustomerID: customerID, AmountDue: 6, Status: models.InvoiceUnpaid},
	}, nil
}

func (s *stubOrders) ListAll(context.Context) ([]models.Order, error) {
	s.all = true
	return []models.Order{}, nil
}

func (s *stubOrders) ListForCustomer(context.Context, primitive.ObjectID) ([]models.Order, error) {
	s.all = false
	return []models.Order{}, nil
}

type stubPayments struct {
	PaymentService
	last service.PaymentRequest
	err  error
}

func (s *stubPayments) Process(_ context.Context, req service.PaymentRequest) (*service.PaymentResult, error) {
	s.last = req
	if s.err != nil {
		return &service.PaymentResult{Payment: &models.Payment{Status: models.PaymentFailed}}, s.err
	}
	return &service.PaymentResult{
		Payment: &models.Payment{Status: models.PaymentCompleted},
		Invoice: &models.Invoice{Status: models.InvoicePaid},
		Receipt: &models.Receipt{},
	}, nil
}

type stubAdmin struct {
	AdminService
	products []models.Product
	status   string
	created  service.ProductInput
	patch    service.ProductPatch
}

func (s *stubAdmin) ListProducts(context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubAdmin) CreateProduct(_ context.Context, in service.ProductInput) (*models.Product, error) {
	s.created = in
	return &models.Product{ID: primitive.NewObjectID(), Name: in.Name}, nil
}

func (s *stubAdmin) UpdateProduct(_ context.Context, _ string, patch service.ProductPatch) (*models.Product, error) {
	s.patch = patch
	return &models.Product{}, nil
}

func (s *stubAdmin) UpdateOrderStatus(_ context.Context, _ string, status string) (*models.Order, error) {
	s.status = status
	if _, ok := models.ParseOrderStatus(status); !ok {
		return nil, service.ErrInvalidStatus
	}
	return &models.Order{Status: models.OrderStatus(status)}, nil
}

type stubDB struct{ err error }

func (s stubDB) Ping(context.Context) error { return s.err }

type fixture struct {
	auth      *stubAuth
	catalogue *stubCatalogue
	cart      *stubCart
	orders    *stubOrders
	payments  *stubPayments
	admin     *stubAdmin
	db        *stubDB
	router    *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		auth:      &stubAuth{},
		catalogue: &stubCatalogue{},
		cart:      &stubCart{},
		orders:    &stubOrders{},
		payments:  &stubPayments{},
		admin:     &stubAdmin{},
		db:        &stubDB{},
		router:    gin.New(),
	}
	RegisterRoutes(f.router, Services{
		Auth:      f.auth,
		Catalogue: f.catalogue,
		Cart:      f.cart,
		Orders:    f.orders,
		Payments:  f.payments,
		Admin:     f.admin,
		DB:        f.db,
	}, Frontend{
		Index:  []byte("<html>store</html>"),
		Static: fstest.MapFS{"app.js": {Data: []byte("console.log(1)")}},
	})
	return f
}

// do sends form as an urlencoded body, with the session in the query
// string when token is set.
func (f *fixture) do(method, path, token string, form url.Values) *httptest.ResponseRecorder {
	if token != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + "session_id=" + token
	}

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func newRequest(method, path string) (*http.Request, *httptest.ResponseRecorder) {
	return httptest.NewRequest(method, path, nil), httptest.NewRecorder()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
