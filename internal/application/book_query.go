package application

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxPageLimit = 100
)

// ParseBookQuery turns listing query parameters into a store query.
// Unusable values are ignored rather than rejected.
func ParseBookQuery(v url.Values) entity.BookQuery {
	q := entity.BookQuery{
		Filter: entity.BookFilter{
			Author:   strings.TrimSpace(v.Get("author")),
			Category: strings.TrimSpace(v.Get("category")),
			Title:    strings.TrimSpace(v.Get("search")),
		},
		Page:  positiveInt(v.Get("page"), DefaultPage),
		Limit: positiveInt(v.Get("limit"), DefaultLimit),
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	// keep (Page-1)*Limit within int; such a page is past any real result set
	if q.Page-1 > math.MaxInt/q.Limit {
		q.Page = math.MaxInt/q.Limit + 1
	}

	if raw := strings.TrimSpace(v.Get("rating")); raw != "" {
		if r, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(r) && !math.IsInf(r, 0) {
			q.Filter.Rating = &r
		}
	}

	switch field := entity.SortField(v.Get("sortBy")); field {
	case entity.SortPrice, entity.SortRating:
		q.Sort = entity.BookSort{Field: field, Desc: v.Get("order") == "desc"}
	}

	return q
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// NewPagination derives page totals for a listing
func NewPagination(total int64, q entity.BookQuery) entity.Pagination {
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return entity.Pagination{
		TotalBooks:  total,
		TotalPages:  pages,
		CurrentPage: q.Page,
		Limit:       q.Limit,
	}
}
