package domain

// Tour listings are paged; these bound what GET /tours will return per page.
const (
	DefaultTourPageSize = 20
	MaxTourPageSize     = 100
)

// PaginationParams is the page window for a tour listing, 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams resolves the optional page and limit query values of a
// tour listing. Missing or non-positive values take the defaults and limit is
// clamped to MaxTourPageSize.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultTourPageSize}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxTourPageSize)
	}
	return p
}

// Offset is the number of tours to skip before this page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
