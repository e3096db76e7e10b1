package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
	"github.com/oksasatya/bookstore-api/internal/domain/repository"
)

const bookColumns = "id, title, author, category, price, rating, published_date, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	query, args, err := psql.Insert("books").
		Columns("title", "author", "category", "price", "rating", "published_date").
		Values(b.Title, b.Author, b.Category, b.Price, b.Rating, b.PublishedDate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert book: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	query, args, err := psql.Select(bookColumns).From("books").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select book: %w", err)
	}
	return r.queryOne(ctx, "select book", query, args)
}

// Update applies the non-nil patch fields and returns the stored record.
// An empty patch only reads the current record.
func (r *BookRepository) Update(ctx context.Context, id string, patch entity.BookPatch) (*entity.Book, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	b := psql.Update("books")
	if patch.Title != nil {
		b = b.Set("title", *patch.Title)
	}
	if patch.Author != nil {
		b = b.Set("author", *patch.Author)
	}
	if patch.Category != nil {
		b = b.Set("category", *patch.Category)
	}
	if patch.Price != nil {
		b = b.Set("price", *patch.Price)
	}
	if patch.Rating != nil {
		b = b.Set("rating", *patch.Rating)
	}
	if patch.PublishedDate != nil {
		b = b.Set("published_date", *patch.PublishedDate)
	}

	query, args, err := b.Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + bookColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update book: %w", err)
	}
	return r.queryOne(ctx, "update book", query, args)
}

// Delete removes the book and returns it as it was stored
func (r *BookRepository) Delete(ctx context.Context, id string) (*entity.Book, error) {
	query, args, err := psql.Delete("books").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + bookColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete book: %w", err)
	}
	return r.queryOne(ctx, "delete book", query, args)
}

func (r *BookRepository) Count(ctx context.Context, filter entity.BookFilter) (int64, error) {
	query, args, err := applyBookFilter(psql.Select("COUNT(*)").From("books"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count books: %w", err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

// Find returns one page of books matching q.Filter in q.Sort order
func (r *BookRepository) Find(ctx context.Context, q entity.BookQuery) ([]entity.Book, error) {
	b := applyBookFilter(psql.Select(bookColumns).From("books"), q.Filter).
		OrderBy(orderBy(q.Sort)...).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Skip()))

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find books: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer rows.Close()

	books := make([]entity.Book, 0, q.Limit)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *BookRepository) queryOne(ctx context.Context, op, query string, args []any) (*entity.Book, error) {
	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return book, nil
}

func scanBook(row rowScanner) (*entity.Book, error) {
	b := &entity.Book{}
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Price, &b.Rating,
		&b.PublishedDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

func applyBookFilter(b sq.SelectBuilder, f entity.BookFilter) sq.SelectBuilder {
	if f.Author != "" {
		b = b.Where(sq.ILike{"author": containsPattern(f.Author)})
	}
	if f.Category != "" {
		b = b.Where(sq.ILike{"category": containsPattern(f.Category)})
	}
	if f.Title != "" {
		b = b.Where(sq.ILike{"title": containsPattern(f.Title)})
	}
	if f.Rating != nil {
		b = b.Where(sq.Eq{"rating": *f.Rating})
	}
	return b
}

func orderBy(s entity.BookSort) []string {
	switch s.Field {
	case entity.SortPrice, entity.SortRating:
	default:
		return []string{"created_at", "id"}
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return []string{string(s.Field) + " " + dir, "id"}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

var _ repository.BookRepository = (*BookRepository)(nil)
