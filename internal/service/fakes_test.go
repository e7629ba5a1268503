package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"

	"convenience-store/internal/models"
	"convenience-store/internal/repository"
)

// memStore keeps documents as encoded BSON so callers never share memory
// with what is stored, as with a real collection.
type memStore[T any, PT interface {
	*T
	models.Entity
}] struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID][]byte
	ids       []primitive.ObjectID
	createErr error
	updateErr error
}

func newMemStore[T any, PT interface {
	*T
	models.Entity
}]() *memStore[T, PT] {
	return &memStore[T, PT]{docs: make(map[primitive.ObjectID][]byte)}
}

func (m *memStore[T, PT]) decode(raw []byte) T {
	var doc T
	if err := bson.Unmarshal(raw, PT(&doc)); err != nil {
		panic(err)
	}
	return doc
}

func (m *memStore[T, PT]) GetAll(context.Context) ([]T, error) {
	return m.filter(func(*T) bool { return true }), nil
}

func (m *memStore[T, PT]) GetByID(_ context.Context, id string) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.docs[objectID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	doc := m.decode(raw)
	return &doc, nil
}

func (m *memStore[T, PT]) Create(_ context.Context, doc PT) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if doc.GetID().IsZero() {
		doc.SetID(primitive.NewObjectID())
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	m.docs[doc.GetID()] = raw
	m.ids = append(m.ids, doc.GetID())
	return nil
}

func (m *memStore[T, PT]) Update(_ context.Context, id string, doc PT) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return false, m.updateErr
	}
	if _, ok := m.docs[objectID]; !ok {
		return false, nil
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return false, err
	}
	m.docs[objectID] = raw
	return true, nil
}

func (m *memStore[T, PT]) Delete(_ context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[objectID]; !ok {
		return false, nil
	}
	delete(m.docs, objectID)
	return true, nil
}

func (m *memStore[T, PT]) filter(keep func(*T) bool) []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0)
	for _, id := range m.ids {
		raw, ok := m.docs[id]
		if !ok {
			continue
		}
		doc := m.decode(raw)
		if keep(&doc) {
			out = append(out, doc)
		}
	}
	return out
}

func (m *memStore[T, PT]) first(keep func(*T) bool) (*T, error) {
	docs := m.filter(keep)
	if len(docs) == 0 {
		return nil, repository.ErrNotFound
	}
	return &docs[0], nil
}

func (m *memStore[T, PT]) count() int {
	return len(m.filter(func(*T) bool { return true }))
}

type fakeProducts struct {
	*memStore[models.Product, *models.Product]
	loads atomic.Int32
}

func (f *fakeProducts) GetByID(ctx context.Context, id string) (*models.Product, error) {
	f.loads.Add(1)
	return f.memStore.GetByID(ctx, id)
}

func (f *fakeProducts) FindAvailable(context.Context) ([]models.Product, error) {
	return f.filter(func(p *models.Product) bool { return p.IsAvailable() }), nil
}

func (f *fakeProducts) FindByCategory(_ context.Context, category string) ([]models.Product, error) {
	return f.filter(func(p *models.Product) bool {
		return p.Active && strings.EqualFold(p.Category, strings.TrimSpace(category))
	}), nil
}

func (f *fakeProducts) Search(_ context.Context, text string) ([]models.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	return f.filter(func(p *models.Product) bool {
		return p.Active && (strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle))
	}), nil
}

func (f *fakeProducts) Categories(context.Context) ([]string, error) {
	seen := map[string]bool{}
	categories := make([]string, 0)
	for _, p := range f.filter(func(p *models.Product) bool { return p.Active && p.Category != "" }) {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	slices.Sort(categories)
	return categories, nil
}

func (f *fakeProducts) SetStock(ctx context.Context, id primitive.ObjectID, stock int) (bool, error) {
	product, err := f.memStore.GetByID(ctx, id.Hex())
	if err != nil {
		return false, nil
	}
	product.Stock = stock
	return f.Update(ctx, id.Hex(), product)
}

type fakeCustomers struct {
	*memStore[models.Customer, *models.Customer]
}

func (f *fakeCustomers) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	email = repository.NormalizeEmail(email)
	return f.first(func(c *models.Customer) bool { return c.Email == email })
}

func (f *fakeCustomers) Authenticate(ctx context.Context, email, password string) (*models.Customer, error) {
	customer, err := f.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !models.PasswordMatches(customer.PasswordHash, password) {
		return nil, repository.ErrNotFound
	}
	return customer, nil
}

type fakeAdmins struct {
	*memStore[models.Admin, *models.Admin]
}

func (f *fakeAdmins) Authenticate(_ context.Context, email, password string) (*models.Admin, error) {
	email = repository.NormalizeEmail(email)
	admin, err := f.first(func(a *models.Admin) bool { return a.Email == email })
	if err != nil {
		return nil, err
	}
	if !models.PasswordMatches(admin.PasswordHash, password) {
		return nil, repository.ErrNotFound
	}
	return admin, nil
}

type fakeSessions struct {
	*memStore[models.Session, *models.Session]
}

func (f *fakeSessions) FindActive(_ context.Context, tokenHash string) (*models.Session, error) {
	return f.first(func(s *models.Session) bool { return s.TokenHash == tokenHash && !s.Revoked })
}

func (f *fakeSessions) Revoke(ctx context.Context, tokenHash string) (bool, error) {
	session, err := f.FindActive(ctx, tokenHash)
	if err != nil {
		return false, nil
	}
	session.Revoked = true
	return f.Update(ctx, session.ID.Hex(), session)
}

type fakeCarts struct {
	*memStore[models.ShoppingCart, *models.ShoppingCart]
	saveErr error
}

func (f *fakeCarts) GetOrCreate(ctx context.Context, customerID primitive.ObjectID) (*models.ShoppingCart, error) {
	cart, err := f.first(func(c *models.ShoppingCart) bool { return c.CustomerID == customerID })
	if err == nil {
		if cart.Items == nil {
			cart.Items = []models.OrderItem{}
		}
		return cart, nil
	}
	cart = &models.ShoppingCart{CustomerID: customerID, Items: []models.OrderItem{}}
	if err := f.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (f *fakeCarts) Save(ctx context.Context, cart *models.ShoppingCart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	_, err := f.Update(ctx, cart.ID.Hex(), cart)
	return err
}

type fakeOrders struct {
	*memStore[models.Order, *models.Order]
}

func (f *fakeOrders) FindByCustomer(_ context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	return f.filter(func(o *models.Order) bool { return o.CustomerID == customerID }), nil
}

type fakeInvoices struct {
	*memStore[models.Invoice, *models.Invoice]
}

func (f *fakeInvoices) FindByCustomer(_ context.Context, customerID primitive.ObjectID) ([]models.Invoice, error) {
	return f.filter(func(i *models.Invoice) bool { return i.CustomerID == customerID }), nil
}

type fakePayments struct {
	*memStore[models.Payment, *models.Payment]
}

func (f *fakePayments) FindByInvoice(_ context.Context, invoiceID primitive.ObjectID) ([]models.Payment, error) {
	return f.filter(func(p *models.Payment) bool { return p.InvoiceID == invoiceID }), nil
}

type fakeReceipts struct {
	*memStore[models.Receipt, *models.Receipt]
}

func (f *fakeReceipts) FindByCustomer(_ context.Context, customerID primitive.ObjectID) ([]models.Receipt, error) {
	return f.filter(func(r *models.Receipt) bool { return r.CustomerID == customerID }), nil
}

func (f *fakeReceipts) FindByPayment(_ context.Context, paymentID primitive.ObjectID) (*models.Receipt, error) {
	return f.first(func(r *models.Receipt) bool { return r.PaymentID == paymentID })
}

// store wires every service on top of fresh fakes.
type store struct {
	products  *fakeProducts
	customers *fakeCustomers
	admins    *fakeAdmins
	sessions  *fakeSessions
	carts     *fakeCarts
	orders    *fakeOrders
	invoices  *fakeInvoices
	payments  *fakePayments
	receipts  *fakeReceipts

	auth      *AuthService
	catalogue *CatalogueService
	inventory *InventoryService
	cart      *CartService
	invoice   *InvoiceService
	order     *OrderService
	payment   *PaymentService
	admin     *AdminService
}

func newStore(t *testing.T, opts ...PaymentOption) *store {
	t.Helper()
	lg := zaptest.NewLogger(t)

	s := &store{
		products:  &fakeProducts{memStore: newMemStore[models.Product]()},
		customers: &fakeCustomers{newMemStore[models.Customer]()},
		admins:    &fakeAdmins{newMemStore[models.Admin]()},
		sessions:  &fakeSessions{newMemStore[models.Session]()},
		carts:     &fakeCarts{memStore: newMemStore[models.ShoppingCart]()},
		orders:    &fakeOrders{newMemStore[models.Order]()},
		invoices:  &fakeInvoices{newMemStore[models.Invoice]()},
		payments:  &fakePayments{newMemStore[models.Payment]()},
		receipts:  &fakeReceipts{newMemStore[models.Receipt]()},
	}
	s.auth = NewAuthService(s.customers, s.admins, s.sessions, "test-secret", time.Hour, lg)
	s.catalogue = NewCatalogueService(s.products, lg)
	s.inventory = NewInventoryService(s.products, lg)
	s.cart = NewCartService(s.carts, s.products, lg)
	s.invoice = NewInvoiceService(s.invoices, lg)
	s.order = NewOrderService(s.orders, s.carts, s.invoice, s.inventory, lg)
	s.payment = NewPaymentService(s.payments, s.receipts, s.invoice, lg, opts...)
	s.admin = NewAdminService(s.products, s.order, s.invoice, s.inventory, lg)
	return s
}

func (s *store) addProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "Snacks", Price: price, Stock: stock, Active: true}
	require.NoError(t, s.products.Create(context.Background(), product))
	return product
}

func (s *store) addCustomer(t *testing.T, email, password string) *models.Customer {
	t.Helper()
	hash, err := models.HashPassword(password)
	require.NoError(t, err)
	customer := &models.Customer{Email: email, PasswordHash: hash, Name: "John Doe"}
	require.NoError(t, s.customers.Create(context.Background(), customer))
	return customer
}

func (s *store) addAdmin(t *testing.T, email, password string) *models.Admin {
	t.Helper()
	hash, err := models.HashPassword(password)
	require.NoError(t, err)
	admin := &models.Admin{Email: email, PasswordHash: hash, Name: "Store Admin"}
	require.NoError(t, s.admins.Create(context.Background(), admin))
	return admin
}

func (s *store) stockOf(t *testing.T, id primitive.ObjectID) int {
	t.Helper()
	product, err := s.products.memStore.GetByID(context.Background(), id.Hex())
	require.NoError(t, err)
	return product.Stock
}
