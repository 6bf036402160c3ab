package repository

// Fixed page sizes for the list screens.
const (
	DefaultPageSize = 10
	MarkPageSize    = 12
	MyMarksPageSize = 20
)

// Pagination describes one page of a larger result set. Requested page
// numbers outside the valid range are clamped to the nearest valid page.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination clamps the requested page against the total count.
func NewPagination(page, pageSize int, total int64) Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// Offset returns the row offset for the clamped page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
