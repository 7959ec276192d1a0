package query

// DefaultPageSize matches the page size the helpdesk API has always served.
const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return f.PageSize
}

// Pages is the number of pages needed for total rows; never less than one.
func (f PageFilter) Pages(total int64) int {
	size := int64(f.Limit())
	if total <= 0 {
		return 1
	}
	return int((total + size - 1) / size)
}
