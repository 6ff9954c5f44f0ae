package domain

// MaxPageSize caps how many rows one list page may return.
const MaxPageSize = 100

// PaginationParams holds 1-based offset pagination for list queries such as participants.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Limit returns the page size clamped to 1..MaxPageSize.
func (p PaginationParams) Limit() int {
	switch {
	case p.PageSize < 1:
		return 1
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return p.PageSize
}

// Offset returns the number of rows before the current page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}
