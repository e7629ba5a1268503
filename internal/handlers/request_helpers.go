package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"convenience-store/internal/middleware"
	"convenience-store/internal/models"
	"convenience-store/internal/repository"
	"convenience-store/internal/service"
)

func respondWithError(c *gin.Context, status int, route string, message string) {
	middleware.Logger(c).Warn("Returning error",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("message", message),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondServiceError maps a service error onto a status code. Unexpected
// errors are logged in full and reported without detail.
func respondServiceError(c *gin.Context, route string, err error) {
	if rejected, ok := service.IsRejected(err); ok {
		respondWithError(c, http.StatusBadRequest, route, rejected.Reason)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrUnknownPaymentMethod):
		respondWithError(c, http.StatusBadRequest, route, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionInvalid):
		respondWithError(c, http.StatusUnauthorized, route, err.Error())
	case errors.Is(err, service.ErrInvoiceNotFound):
		respondWithError(c, http.StatusNotFound, route, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondWithError(c, http.StatusNotFound, route, "not found")
	case errors.Is(err, service.ErrDuplicateEmail):
		respondWithError(c, http.StatusConflict, route, err.Error())
	case isUnavailable(err):
		middleware.Logger(c).Error("Database unavailable", zap.String("route", route), zap.Error(err))
		respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
	default:
		middleware.Logger(c).Error("Request failed", zap.String("route", route), zap.Error(err))
		respondWithError(c, http.StatusInternalServerError, route, "internal server error")
	}
}

func isUnavailable(err error) bool {
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mongo.ErrClientDisconnected)
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := snakeCase(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form", "details": err.Error()})
}

// snakeCase turns a Go field name into the form field name, ProductID to
// product_id.
func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prev := rune(field[i-1])
			nextLower := i+1 < len(field) && field[i+1] >= 'a' && field[i+1] <= 'z'
			if prev >= 'a' && prev <= 'z' || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// currentPrincipal returns the caller set by the auth middleware and
// answers 401 when there is none.
func currentPrincipal(c *gin.Context, route string) (*models.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
		return nil, false
	}
	return p, true
}
