package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"convenience-store/internal/middleware"
	"convenience-store/internal/service"
)

type createProductRequest struct {
	SKU         string  `form:"sku"`
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description"`
	Category    string  `form:"category"`
	Price       float64 `form:"price" binding:"gte=0"`
	Stock       int     `form:"stock" binding:"gte=0"`
	Active      bool    `form:"active,default=true"`
}

type updateProductRequest struct {
	SKU         *string  `form:"sku"`
	Name        *string  `form:"name"`
	Description *string  `form:"description"`
	Category    *string  `form:"category"`
	Price       *float64 `form:"price" binding:"omitempty,gte=0"`
	Stock       *int     `form:"stock" binding:"omitempty,gte=0"`
	Active      *bool    `form:"active"`
}

type updateStockRequest struct {
	Stock *int `form:"stock" binding:"required,gte=0"`
}

/* =======================
   GET (ADMIN) – LIST
======================= */

func GetAllProducts(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/products"

		products, err := admin.ListProducts(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		body, err := paginatedResponse(c, products)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

/* =======================
   CREATE
======================= */

func CreateProduct(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/products"

		var req createProductRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		product, err := admin.CreateProduct(c.Request.Context(), service.ProductInput{
			SKU:         req.SKU,
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Price:       req.Price,
			Stock:       req.Stock,
			Active:      req.Active,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		middleware.Logger(c).Info("Product created", zap.String("product_id", product.ID.Hex()))
		c.JSON(http.StatusCreated, product)
	}
}

/* =======================
   UPDATE
======================= */

// UpdateProduct applies only the fields present in the form.
func UpdateProduct(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id"

		var req updateProductRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		product, err := admin.UpdateProduct(c.Request.Context(), c.Param("id"), service.ProductPatch{
			SKU:         req.SKU,
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Price:       req.Price,
			Stock:       req.Stock,
			Active:      req.Active,
		})
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func UpdateProductStock(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id/stock"

		var req updateStockRequest
		if err := c.ShouldBind(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		product, err := admin.UpdateStock(c.Request.Context(), c.Param("id"), *req.Stock)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/products/:id"

		if err := admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
