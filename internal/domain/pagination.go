package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageParams carries normalized pagination query parameters.
type PageParams struct {
	Page     int
	PageSize int
}

// NewPageParams clamps raw query values to sane bounds. Pages are 1-based;
// page size is capped at MaxPageSize.
func NewPageParams(page, pageSize int) PageParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageParams{Page: page, PageSize: pageSize}
}

// Offset returns the row offset for this page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageMeta describes the window a paginated response covers.
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// NewPageMeta derives response metadata from the request window and the
// total row count.
func NewPageMeta(p PageParams, totalCount int64) PageMeta {
	totalPages := int((totalCount + int64(p.PageSize) - 1) / int64(p.PageSize))
	return PageMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasMore:    p.Page < totalPages,
	}
}
