package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"convenience-store/internal/models"
	"convenience-store/internal/service"
)

type resolverFunc func(ctx context.Context, token string) (*models.Principal, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (*models.Principal, error) {
	return f(ctx, token)
}

var (
	customer = &models.Principal{ID: primitive.NewObjectID(), Role: models.RoleCustomer}
	admin    = &models.Principal{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
)

func testResolver(_ context.Context, token string) (*models.Principal, error) {
	switch token {
	case "customer-token":
		return customer, nil
	case "admin-token":
		return admin, nil
	case "broken":
		return nil, errors.New("connection reset")
	default:
		return nil, service.ErrSessionInvalid
	}
}

func newRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()), Recovery())
	r.GET("/guarded", guard, func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID.Hex()})
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func TestAuthGuard(t *testing.T) {
	resolver := resolverFunc(testResolver)

	cases := []struct {
		name   string
		guard  gin.HandlerFunc
		target string
		header string
		want   int
	}{
		{"missing session", CustomerAuth(resolver), "/guarded", "", http.StatusUnauthorized},
		{"invalid session", CustomerAuth(resolver), "/guarded?session_id=expired", "", http.StatusUnauthorized},
		{"customer via query", CustomerAuth(resolver), "/guarded?session_id=customer-token", "", http.StatusOK},
		{"customer via bearer", CustomerAuth(resolver), "/guarded", "Bearer customer-token", http.StatusOK},
		{"malformed header", CustomerAuth(resolver), "/guarded", "Token customer-token", http.StatusUnauthorized},
		{"customer on admin route", AdminAuth(resolver), "/guarded?session_id=customer-token", "", http.StatusForbidden},
		{"admin on admin route", AdminAuth(resolver), "/guarded?session_id=admin-token", "", http.StatusOK},
		{"admin on customer route", CustomerAuth(resolver), "/guarded?session_id=admin-token", "", http.StatusForbidden},
		{"any role", AuthGuard(resolver), "/guarded?session_id=admin-token", "", http.StatusOK},
		{"resolver failure", AuthGuard(resolver), "/guarded?session_id=broken", "", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(tc.guard)
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newRouter(AuthGuard(resolverFunc(testResolver)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := newRouter(AuthGuard(resolverFunc(testResolver)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
