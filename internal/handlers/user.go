package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"convenience-store/internal/models"
	"convenience-store/internal/service"
)

type profileRequest struct {
	Name    *string `form:"name"`
	Phone   *string `form:"phone"`
	Address *string `form:"address"`
}

type accountRequest struct {
	ShippingAddress string `form:"shipping_address" binding:"required"`
}

// GetMe returns the caller. Customers get their full profile, admins the
// session principal.
func GetMe(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/me"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}
		if principal.Role != models.RoleCustomer {
			c.JSON(http.StatusOK, gin.H{"user": principal})
			return
		}

		customer, err := auth.Customer(c.Request.Context(), principal.ID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": principal, "profile": customer})
	}
}

func UpdateMe(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/me"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		var req profileRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		customer, err := auth.UpdateProfile(c.Request.Context(), principal.ID, service.ProfileInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": customer})
	}
}

func UpdateAccount(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/me/account"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		var req accountRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		customer, err := auth.UpdateAccount(c.Request.Context(), principal.ID, req.ShippingAddress)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": customer})
	}
}
