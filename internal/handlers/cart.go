package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID string `form:"product_id" binding:"required"`
	Quantity  int    `form:"quantity,default=1"`
}

type updateCartRequest struct {
	ProductID string `form:"product_id"`
	ItemID    string `form:"item_id"`
	Quantity  int    `form:"quantity"`
}

func GetCart(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}
		summary, err := carts.Get(c.Request.Context(), principal.ID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func AddToCart(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart/add"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		var req addToCartRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		summary, err := carts.AddItem(c.Request.Context(), principal.ID, req.ProductID, req.Quantity)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item added to cart", "cart": summary})
	}
}

// UpdateCartItem sets a line quantity. The line is addressed by item_id or
// product_id; a quantity of zero or less removes it.
func UpdateCartItem(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/cart/update"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		var req updateCartRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		ref := strings.TrimSpace(req.ItemID)
		if ref == "" {
			ref = strings.TrimSpace(req.ProductID)
		}
		if ref == "" {
			respondWithError(c, http.StatusBadRequest, route, "item_id or product_id is required")
			return
		}

		summary, err := carts.UpdateQuantity(c.Request.Context(), principal.ID, ref, req.Quantity)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart updated", "cart": summary})
	}
}

func RemoveFromCart(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/remove/:productId"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		summary, err := carts.RemoveItem(c.Request.Context(), principal.ID, c.Param("productId"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item removed from cart", "cart": summary})
	}
}

func ClearCart(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}
		if err := carts.Clear(c.Request.Context(), principal.ID); err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
