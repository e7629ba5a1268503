package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"convenience-store/internal/models"
	"convenience-store/internal/repository"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
}

// ProfileInput carries a partial profile update. Nil fields are left as is.
type ProfileInput struct {
	Name    *string
	Phone   *string
	Address *string
}

type sessionClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	customers CustomerStore
	admins    AdminStore
	sessions  SessionStore
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
	lg        *zap.Logger
}

func NewAuthService(customers CustomerStore, admins AdminStore, sessions SessionStore, secret string, ttl time.Duration, lg *zap.Logger) *AuthService {
	return &AuthService{
		customers: customers,
		admins:    admins,
		sessions:  sessions,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
		lg:        lg.Named("auth"),
	}
}

// Login checks the credentials against the collection selected by role
// only. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string, role models.Role) (*models.Principal, error) {
	if role == models.RoleAdmin {
		admin, err := s.admins.Authenticate(ctx, email, password)
		if err != nil {
			return nil, credentialsError(err)
		}
		return adminPrincipal(admin), nil
	}

	customer, err := s.customers.Authenticate(ctx, email, password)
	if err != nil {
		return nil, credentialsError(err)
	}
	return customerPrincipal(customer), nil
}

func credentialsError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidCredentials
	}
	return errors.Wrap(err, "authenticate")
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.Customer, error) {
	email := repository.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, reject("email, password and name are required")
	}

	_, err := s.customers.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		return nil, errors.Wrap(err, "check email")
	}

	hash, err := models.HashPassword(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	now := s.now()
	address := strings.TrimSpace(in.Address)
	customer := &models.Customer{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      address,
		Account: models.Account{
			ShippingAddress: address,
			UpdatedAt:       now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, errors.Wrap(err, "create customer")
	}

	s.lg.Info("Customer registered", zap.String("customer_id", customer.ID.Hex()))
	return customer, nil
}

func (s *AuthService) Customer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id.Hex())
}

func (s *AuthService) UpdateProfile(ctx context.Context, customerID primitive.ObjectID, in ProfileInput) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID.Hex())
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, reject("name cannot be empty")
		}
		customer.Name = name
	}
	if in.Phone != nil {
		customer.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		customer.Address = strings.TrimSpace(*in.Address)
	}
	customer.UpdatedAt = s.now()

	if _, err := s.customers.Update(ctx, customer.ID.Hex(), customer); err != nil {
		return nil, errors.Wrap(err, "update profile")
	}
	return customer, nil
}

// UpdateAccount changes the preferred shipping address.
func (s *AuthService) UpdateAccount(ctx context.Context, customerID primitive.ObjectID, shippingAddress string) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID.Hex())
	if err != nil {
		return nil, err
	}

	now := s.now()
	customer.Account.ShippingAddress = strings.TrimSpace(shippingAddress)
	customer.Account.UpdatedAt = now
	customer.UpdatedAt = now

	if _, err := s.customers.Update(ctx, customer.ID.Hex(), customer); err != nil {
		return nil, errors.Wrap(err, "update account")
	}
	return customer, nil
}

// StartSession signs a session token for p and records its hash. The
// returned token is the session id handed to the browser.
func (s *AuthService) StartSession(ctx context.Context, p models.Principal) (string, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session")
	}

	session := &models.Session{
		PrincipalID: p.ID,
		Role:        p.Role,
		TokenHash:   hashToken(token),
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", errors.Wrap(err, "store session")
	}
	return token, nil
}

// Resolve maps a session token back to its principal. Bad signatures,
// expired tokens, revoked sessions and deleted accounts all yield
// ErrSessionInvalid.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrSessionInvalid
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	session, err := s.sessions.FindActive(ctx, hashToken(token))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "find session")
	}
	if !session.ExpiresAt.After(s.now()) {
		return nil, ErrSessionInvalid
	}

	var principal *models.Principal
	switch session.Role {
	case models.RoleAdmin:
		admin, err := s.admins.GetByID(ctx, session.PrincipalID.Hex())
		if err != nil {
			return nil, principalError(err)
		}
		principal = adminPrincipal(admin)
	default:
		customer, err := s.customers.GetByID(ctx, session.PrincipalID.Hex())
		if err != nil {
			return nil, principalError(err)
		}
		principal = customerPrincipal(customer)
	}
	return principal, nil
}

func principalError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionInvalid
	}
	return errors.Wrap(err, "load principal")
}

// Logout revokes the session. Revoking an unknown or already revoked
// session is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if _, err := s.sessions.Revoke(ctx, hashToken(strings.TrimSpace(token))); err != nil {
		return errors.Wrap(err, "revoke session")
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func customerPrincipal(c *models.Customer) *models.Principal {
	return &models.Principal{ID: c.ID, Email: c.Email, Name: c.Name, Role: models.RoleCustomer}
}

func adminPrincipal(a *models.Admin) *models.Principal {
	return &models.Principal{ID: a.ID, Email: a.Email, Name: a.Name, Role: models.RoleAdmin}
}
