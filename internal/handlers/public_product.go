package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"convenience-store/internal/middleware"
	"convenience-store/internal/models"
)

/*
GET /api/products
- q: name or category search
- category: exact category, ignoring case
- neither: everything available
- page + limit optional
*/
func GetProducts(catalogue CatalogueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"

		q := strings.TrimSpace(c.Query("q"))
		category := strings.TrimSpace(c.Query("category"))
		middleware.Logger(c).Debug("Product listing",
			zap.String("q", q),
			zap.String("category", category),
		)

		var (
			products []models.Product
			err      error
		)
		switch {
		case category != "":
			products, err = catalogue.ByCategory(c.Request.Context(), category)
		default:
			products, err = catalogue.Search(c.Request.Context(), q)
		}
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		page, err := paginate(c, products)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func GetProduct(catalogue CatalogueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:id"

		product, err := catalogue.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
