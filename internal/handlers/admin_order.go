package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func GetAllOrders(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/orders"

		orders, err := admin.ListOrders(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		body, err := paginatedResponse(c, orders)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

// UpdateOrderStatus takes the status from the form, or from the query
// string when the form has none.
func UpdateOrderStatus(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/orders/:id/status"

		status := strings.TrimSpace(c.PostForm("status"))
		if status == "" {
			status = strings.TrimSpace(c.Query("status"))
		}
		if status == "" {
			respondWithError(c, http.StatusBadRequest, route, "status is required")
			return
		}

		order, err := admin.UpdateOrderStatus(c.Request.Context(), c.Param("id"), status)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order status updated", "order": order})
	}
}

func GetAllInvoices(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/invoices"

		invoices, err := admin.ListInvoices(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		body, err := paginatedResponse(c, invoices)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		c.JSON(http.StatusOK, body)
	}
}
