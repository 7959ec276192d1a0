package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/shared/constants"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
)

// ParsePagination reads page and page_size from the query string. Missing or
// malformed values fall back to the defaults; page_size is capped.
func ParsePagination(c *gin.Context) query.PageFilter {
	f := query.PageFilter{
		Page:     positiveQuery(c, "page"),
		PageSize: positiveQuery(c, "page_size"),
	}
	if f.Page == 0 {
		f.Page = constants.DefaultPage
	}
	f.PageSize = f.Limit()
	return f
}

// positiveQuery returns 0 unless the parameter is a positive integer.
func positiveQuery(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
