package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"convenience-store/internal/models"
	"convenience-store/internal/service"
)

const principalKey = "principal"

// SessionResolver maps a session token to the caller it was issued to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Principal, error)
}

// SessionToken reads the session id from the session_id query parameter,
// falling back to an Authorization bearer token.
func SessionToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.Query("session_id")); token != "" {
		return token
	}

	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.Fields(raw)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// AuthGuard resolves the session and stores the principal on the context.
// With allowedRoles set, other roles get 403.
func AuthGuard(resolver SessionResolver, allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}

		principal, err := resolver.Resolve(c.Request.Context(), token)
		if errors.Is(err, service.ErrSessionInvalid) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if err != nil {
			Logger(c).Error("Session lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, principal.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func CustomerAuth(resolver SessionResolver) gin.HandlerFunc {
	return AuthGuard(resolver, models.RoleCustomer)
}

func AdminAuth(resolver SessionResolver) gin.HandlerFunc {
	return AuthGuard(resolver, models.RoleAdmin)
}

// Principal returns the caller stored by AuthGuard.
func Principal(c *gin.Context) (*models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*models.Principal)
	return p, ok
}
