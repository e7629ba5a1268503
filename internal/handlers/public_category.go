package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetCategories(catalogue CatalogueService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/categories"

		categories, err := catalogue.Categories(c.Request.Context())
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
