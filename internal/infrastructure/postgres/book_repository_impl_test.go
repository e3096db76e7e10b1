package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
	"github.com/oksasatya/bookstore-api/internal/domain/repository"
)

var bookCols = []string{"id", "title", "author", "category", "price", "rating", "published_date", "created_at", "updated_at"}

func bookRow(rows *sqlmock.Rows, id string, price float64) *sqlmock.Rows {
	now := time.Now()
	published := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Dune", "Frank Herbert", "Sci-Fi", price, 4.5, published, now, now)
}

func TestBookRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)
	now := time.Now()
	published := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books (title,author,category,price,rating,published_date) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at")).
		WithArgs("Dune", "Frank Herbert", "Sci-Fi", 9.99, 0.0, published).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("b-1", now, now))

	b := &entity.Book{Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Price: 9.99, PublishedDate: published}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, "b-1", b.ID)
}

func TestBookRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + bookColumns + " FROM books WHERE id = $1")).
		WithArgs("b-1").
		WillReturnRows(bookRow(sqlmock.NewRows(bookCols), "b-1", 9.99))

	b, err := repo.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, 4.5, b.Rating)
}

func TestBookRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery("FROM books WHERE id").
		WithArgs("b-404").
		WillReturnRows(sqlmock.NewRows(bookCols))

	_, err := repo.GetByID(context.Background(), "b-404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookRepository_Update_OnlyPatchedFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)
	price := 12.5

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE books SET price = $1, updated_at = NOW() WHERE id = $2 RETURNING "+bookColumns)).
		WithArgs(price, "b-1").
		WillReturnRows(bookRow(sqlmock.NewRows(bookCols), "b-1", price))

	b, err := repo.Update(context.Background(), "b-1", entity.BookPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, price, b.Price)
}

func TestBookRepository_Update_EmptyPatchReads(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + bookColumns + " FROM books WHERE id = $1")).
		WithArgs("b-1").
		WillReturnRows(bookRow(sqlmock.NewRows(bookCols), "b-1", 9.99))

	b, err := repo.Update(context.Background(), "b-1", entity.BookPatch{})
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ID)
}

func TestBookRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)
	title := "New"

	mock.ExpectQuery("UPDATE books SET title").
		WithArgs(title, "b-404").
		WillReturnRows(sqlmock.NewRows(bookCols))

	_, err := repo.Update(context.Background(), "b-404", entity.BookPatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM books WHERE id = $1 RETURNING " + bookColumns)).
		WithArgs("b-1").
		WillReturnRows(bookRow(sqlmock.NewRows(bookCols), "b-1", 9.99))

	b, err := repo.Delete(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
}

func TestBookRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery("DELETE FROM books").
		WithArgs("b-404").
		WillReturnRows(sqlmock.NewRows(bookCols))

	_, err := repo.Delete(context.Background(), "b-404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookRepository_Count_AppliesFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)
	rating := 4.5

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books WHERE author ILIKE $1 AND title ILIKE $2 AND rating = $3")).
		WithArgs("%herbert%", `%100\%%`, rating).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := repo.Count(context.Background(), entity.BookFilter{Author: "herbert", Title: "100%", Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestBookRepository_Count_NoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	total, err := repo.Count(context.Background(), entity.BookFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBookRepository_Find(t *testing.T) {
	tests := []struct {
		name  string
		query entity.BookQuery
		want  string
		args  []driver.Value
	}{
		{
			name:  "default order",
			query: entity.BookQuery{Page: 1, Limit: 10},
			want:  "FROM books ORDER BY created_at, id LIMIT 10 OFFSET 0",
		},
		{
			name: "price desc with category filter",
			query: entity.BookQuery{
				Filter: entity.BookFilter{Category: "sci"},
				Sort:   entity.BookSort{Field: entity.SortPrice, Desc: true},
				Page:   3, Limit: 5,
			},
			want: "FROM books WHERE category ILIKE $1 ORDER BY price DESC, id LIMIT 5 OFFSET 10",
			args: []driver.Value{"%sci%"},
		},
		{
			name: "rating asc",
			query: entity.BookQuery{
				Sort: entity.BookSort{Field: entity.SortRating},
				Page: 2, Limit: 20,
			},
			want: "FROM books ORDER BY rating ASC, id LIMIT 20 OFFSET 20",
		},
		{
			name: "unknown sort field falls back to default order",
			query: entity.BookQuery{
				Sort: entity.BookSort{Field: entity.SortField("title; DROP TABLE books")},
				Page: 1, Limit: 10,
			},
			want: "FROM books ORDER BY created_at, id LIMIT 10 OFFSET 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewBookRepository(db)

			exp := mock.ExpectQuery(regexp.QuoteMeta(tt.want))
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(bookRow(bookRow(sqlmock.NewRows(bookCols), "b-1", 20), "b-2", 10))

			books, err := repo.Find(context.Background(), tt.query)
			require.NoError(t, err)
			require.Len(t, books, 2)
			assert.Equal(t, "b-1", books[0].ID)
		})
	}
}

func TestBookRepository_Find_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery("FROM books").WillReturnError(errors.New("conn reset"))

	_, err := repo.Find(context.Background(), entity.BookQuery{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conn reset")
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%dune%", containsPattern("dune"))
	assert.Equal(t, `%50\% off\_now\\%`, containsPattern(`50% off_now\`))
}
