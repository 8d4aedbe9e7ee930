package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard-api/internal/constants"
)

// PaginationParams holds the validated page-based query parameters.
type PaginationParams struct {
	Page     int
	PageSize int
}

// GetPaginationParams reads page and page_size from the query string,
// clamping both to the configured bounds.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if size < constants.MinPageSize || size > constants.MaxPageSize {
		size = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: size,
	}
}
