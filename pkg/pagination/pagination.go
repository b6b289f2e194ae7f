package pagination

import "math"

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Pagination describes the page returned to the client
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{
		Page:    1,
		PerPage: defaultPerPage,
	}
}

// Validate clamps the parameters into their valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Offset is the index of the first item of the page. It saturates at
// math.MaxInt instead of overflowing on very large page numbers.
func (p *PaginationParams) Offset() int {
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}

// Paginate cuts the requested page out of items, which are already filtered
// and ordered. A nil params value selects the default page.
func Paginate[T any](items []T, params *PaginationParams) ([]T, *Pagination) {
	if params == nil {
		params = DefaultPagination()
	}
	params.Validate()

	total := len(items)
	start := min(params.Offset(), total)
	end := min(start+params.PerPage, total)

	page := make([]T, end-start)
	copy(page, items[start:end])
	return page, NewPagination(params.Page, params.PerPage, int64(total))
}
