package entity

// SortField is a column books may be ordered by
type SortField string

const (
	SortNone   SortField = ""
	SortPrice  SortField = "price"
	SortRating SortField = "rating"
)

// BookFilter holds listing predicates. Empty strings and a nil Rating impose no constraint.
type BookFilter struct {
	Author   string
	Category string
	Title    string
	Rating   *float64
}

type BookSort struct {
	Field SortField
	Desc  bool
}

// BookQuery is the store-facing form of a listing request
type BookQuery struct {
	Filter BookFilter
	Sort   BookSort
	Page   int
	Limit  int
}

// Skip is the number of matching books before the requested page
func (q BookQuery) Skip() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Pagination is returned alongside a page of books
type Pagination struct {
	TotalBooks  int64 `json:"totalBooks"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

// BookPage is one page of listing results
type BookPage struct {
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}
