package application

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
)

func TestParseBookQuery_Defaults(t *testing.T) {
	q := ParseBookQuery(url.Values{})

	assert.Equal(t, entity.BookFilter{}, q.Filter)
	assert.Equal(t, entity.BookSort{}, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 0, q.Skip())
}

func TestParseBookQuery_Filters(t *testing.T) {
	q := ParseBookQuery(url.Values{
		"author":   {"herbert"},
		"category": {"Sci"},
		"search":   {"dune"},
		"rating":   {"4.5"},
	})

	assert.Equal(t, "herbert", q.Filter.Author)
	assert.Equal(t, "Sci", q.Filter.Category)
	assert.Equal(t, "dune", q.Filter.Title)
	require.NotNil(t, q.Filter.Rating)
	assert.Equal(t, 4.5, *q.Filter.Rating)
}

func TestParseBookQuery_InvalidRatingIgnored(t *testing.T) {
	for _, raw := range []string{"abc", "", "NaN", "Inf", "4.5stars"} {
		q := ParseBookQuery(url.Values{"rating": {raw}})
		assert.Nil(t, q.Filter.Rating, "rating=%q", raw)
	}
}

func TestParseBookQuery_Pagination(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
		wantSkip            int
	}{
		{"3", "5", 3, 5, 10},
		{"0", "0", 1, 10, 0},
		{"-2", "-7", 1, 10, 0},
		{"x", "y", 1, 10, 0},
		{"2", "1000", 2, MaxPageLimit, MaxPageLimit},
		{"99999999999999999999", "5", 1, 5, 0},
		{strconv.Itoa(math.MaxInt), "64", math.MaxInt/64 + 1, 64, math.MaxInt / 64 * 64},
		{strconv.Itoa(math.MaxInt/64 + 2), "64", math.MaxInt/64 + 1, 64, math.MaxInt / 64 * 64},
		{strconv.Itoa(math.MaxInt), "1", math.MaxInt, 1, math.MaxInt - 1},
	}
	for _, tt := range tests {
		q := ParseBookQuery(url.Values{"page": {tt.page}, "limit": {tt.limit}})
		assert.Equal(t, tt.wantPage, q.Page, "page=%s", tt.page)
		assert.Equal(t, tt.wantLimit, q.Limit, "limit=%s", tt.limit)
		assert.Equal(t, tt.wantSkip, q.Skip())
		assert.GreaterOrEqual(t, q.Skip(), 0)
	}
}

func TestParseBookQuery_Sort(t *testing.T) {
	tests := []struct {
		sortBy, order string
		want          entity.BookSort
	}{
		{"price", "desc", entity.BookSort{Field: entity.SortPrice, Desc: true}},
		{"price", "", entity.BookSort{Field: entity.SortPrice}},
		{"rating", "asc", entity.BookSort{Field: entity.SortRating}},
		{"rating", "DESC", entity.BookSort{Field: entity.SortRating}},
		{"title", "desc", entity.BookSort{}},
		{"", "desc", entity.BookSort{}},
	}
	for _, tt := range tests {
		q := ParseBookQuery(url.Values{"sortBy": {tt.sortBy}, "order": {tt.order}})
		assert.Equal(t, tt.want, q.Sort, "sortBy=%s order=%s", tt.sortBy, tt.order)
	}
}

func TestNewPagination(t *testing.T) {
	q := entity.BookQuery{Page: 2, Limit: 10}

	assert.Equal(t, entity.Pagination{TotalBooks: 21, TotalPages: 3, CurrentPage: 2, Limit: 10}, NewPagination(21, q))
	assert.Equal(t, 2, NewPagination(20, q).TotalPages)
	assert.Equal(t, 0, NewPagination(0, q).TotalPages)
}
