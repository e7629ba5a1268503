package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"convenience-store/internal/middleware"
	"convenience-store/internal/models"
	"convenience-store/internal/service"
)

type checkoutRequest struct {
	PaymentMethod  string `form:"payment_method"`
	PaymentDetails string `form:"payment_details"`
}

// Checkout places an order from the cart. With payment_method set, the new
// invoice is paid in full right away; a failed payment leaves the order
// placed and the invoice unpaid.
func Checkout(orders OrderService, payments PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/checkout"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		var req checkoutRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		result, err := orders.Checkout(c.Request.Context(), principal.ID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		body := gin.H{
			"message": "order placed",
			"order":   result.Order,
			"invoice": result.Invoice,
		}

		if method := strings.TrimSpace(req.PaymentMethod); method != "" {
			paid, err := payments.Process(c.Request.Context(), service.PaymentRequest{
				InvoiceID:  result.Invoice.ID.Hex(),
				CustomerID: principal.ID,
				Method:     method,
				Details:    req.PaymentDetails,
			})
			switch {
			case err == nil:
				body["invoice"] = paid.Invoice
				body["payment"] = paid.Payment
				body["receipt"] = paid.Receipt
			default:
				middleware.Logger(c).Warn("Payment at checkout failed",
					zap.String("order_id", result.Order.ID.Hex()),
					zap.Error(err),
				)
				body["payment_error"] = paymentErrorMessage(err)
				if paid != nil {
					body["payment"] = paid.Payment
				}
			}
		}

		c.JSON(http.StatusCreated, body)
	}
}

func paymentErrorMessage(err error) string {
	if rejected, ok := service.IsRejected(err); ok {
		return rejected.Reason
	}
	if errors.Is(err, service.ErrUnknownPaymentMethod) {
		return service.ErrUnknownPaymentMethod.Error()
	}
	return "payment failed"
}

// GetOrders lists the caller's orders, or every order for admins.
func GetOrders(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		var (
			list []models.Order
			err  error
		)
		if principal.IsAdmin() {
			list, err = orders.ListAll(c.Request.Context())
		} else {
			list, err = orders.ListForCustomer(c.Request.Context(), principal.ID)
		}
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		page, err := paginate(c, list)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func GetOrder(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:id"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		var (
			order *models.Order
			err   error
		)
		if principal.IsAdmin() {
			order, err = orders.Get(c.Request.Context(), c.Param("id"))
		} else {
			order, err = orders.GetForCustomer(c.Request.Context(), c.Param("id"), principal.ID)
		}
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
