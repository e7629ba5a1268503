package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"convenience-store/internal/service"
)

type payInvoiceRequest struct {
	PaymentMethod  string `form:"payment_method" binding:"required"`
	PaymentDetails string `form:"payment_details"`
	Amount         string `form:"amount"`
}

func GetInvoices(invoices InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/invoices"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}
		list, err := invoices.ListForCustomer(c.Request.Context(), principal.ID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// PayInvoice charges the invoice. Without amount the outstanding balance is
// charged.
func PayInvoice(payments PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/invoices/:id/pay"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}

		var req payInvoiceRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		payment := service.PaymentRequest{
			InvoiceID:  c.Param("id"),
			CustomerID: principal.ID,
			Method:     req.PaymentMethod,
			Details:    req.PaymentDetails,
		}
		if raw := strings.TrimSpace(req.Amount); raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "amount is invalid")
				return
			}
			if !amount.IsPositive() {
				respondWithError(c, http.StatusBadRequest, route, "amount must be positive")
				return
			}
			payment.Amount = &amount
		}

		result, err := payments.Process(c.Request.Context(), payment)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetReceipts(payments PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/receipts"

		principal, ok := currentPrincipal(c, route)
		if !ok {
			return
		}
		receipts, err := payments.ReceiptsForCustomer(c.Request.Context(), principal.ID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, receipts)
	}
}
