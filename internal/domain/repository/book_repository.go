package repository

import (
	"context"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
)

// BookRepository is the document-store surface the books resource needs.
// Lookups that match nothing return ErrNotFound.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	Update(ctx context.Context, id string, patch entity.BookPatch) (*entity.Book, error)
	Delete(ctx context.Context, id string) (*entity.Book, error)
	Count(ctx context.Context, filter entity.BookFilter) (int64, error)
	Find(ctx context.Context, q entity.BookQuery) ([]entity.Book, error)
}
