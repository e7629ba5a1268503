package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
)

var errInvalidPagination = errors.New("invalid pagination params")

const maxPageLimit = 100

func parsePaginationParams(pageStr, limitStr string) (int, int, error) {
	page := 1
	limit := 20

	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > maxPageLimit {
			return 0, 0, errInvalidPagination
		}
		limit = l
	}

	// Keeps (page-1)*limit within int.
	if page > math.MaxInt/limit {
		return 0, 0, errInvalidPagination
	}
	return page, limit, nil
}

func pageSlice[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}

// paginate applies page and limit from the query when both are present and
// returns items untouched otherwise.
func paginate[T any](c *gin.Context, items []T) ([]T, error) {
	pageStr, limitStr := c.Query("page"), c.Query("limit")
	if pageStr == "" || limitStr == "" {
		return items, nil
	}

	page, limit, err := parsePaginationParams(pageStr, limitStr)
	if err != nil {
		return nil, err
	}
	return pageSlice(items, page, limit), nil
}

// paginatedResponse always pages, defaulting to the first 20 items, and
// wraps the page with its position.
func paginatedResponse[T any](c *gin.Context, items []T) (gin.H, error) {
	page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
	if err != nil {
		return nil, err
	}

	total := len(items)
	return gin.H{
		"data": pageSlice(items, page, limit),
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + limit - 1) / limit,
		},
	}, nil
}
