package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
	repo "github.com/oksasatya/bookstore-api/internal/domain/repository"
	"github.com/oksasatya/bookstore-api/pkg/apperror"
)

const (
	MsgInvalidBookID = "Invalid book ID"
	MsgBookNotFound  = "Book not found"
	MsgNoResults     = "No results found for the given query"
)

// ErrNoResults is raised for a listing that matched nothing. The page is still returned.
var ErrNoResults = apperror.NotFound(MsgNoResults)

type BookService struct {
	Repo   repo.BookRepository
	Logger *logrus.Logger
}

func NewBookService(repo repo.BookRepository, logger *logrus.Logger) *BookService {
	return &BookService{Repo: repo, Logger: logger}
}

func (s *BookService) Create(ctx context.Context, b *entity.Book) (*entity.Book, error) {
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, apperror.Internal("create book", err)
	}
	s.Logger.WithField("book_id", b.ID).Debug("book created")
	return b, nil
}

// List returns one page of books. When nothing matches it returns the empty page
// together with ErrNoResults.
func (s *BookService) List(ctx context.Context, q entity.BookQuery) (*entity.BookPage, error) {
	total, err := s.Repo.Count(ctx, q.Filter)
	if err != nil {
		return nil, apperror.Internal("count books", err)
	}

	books := []entity.Book{}
	if total > 0 && int64(q.Skip()) < total {
		books, err = s.Repo.Find(ctx, q)
		if err != nil {
			return nil, apperror.Internal("find books", err)
		}
	}

	page := &entity.BookPage{Books: books, Pagination: NewPagination(total, q)}
	if len(books) == 0 {
		return page, ErrNoResults
	}
	return page, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*entity.Book, error) {
	id, err := validateBookID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, id)
	return b, mapBookErr("get book", err)
}

func (s *BookService) Update(ctx context.Context, id string, patch entity.BookPatch) (*entity.Book, error) {
	id, err := validateBookID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.Repo.Update(ctx, id, patch)
	if err == nil {
		s.Logger.WithField("book_id", id).Debug("book updated")
	}
	return b, mapBookErr("update book", err)
}

func (s *BookService) Delete(ctx context.Context, id string) (*entity.Book, error) {
	id, err := validateBookID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.Repo.Delete(ctx, id)
	if err == nil {
		s.Logger.WithField("book_id", id).Debug("book deleted")
	}
	return b, mapBookErr("delete book", err)
}

// validateBookID accepts only the hyphenated 36-character form and returns it
// lowercased. uuid.Parse on its own also takes urn:uuid:, braced and unhyphenated ids.
func validateBookID(id string) (string, error) {
	if len(id) != 36 {
		return "", apperror.Validation(MsgInvalidBookID)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperror.Validation(MsgInvalidBookID)
	}
	return parsed.String(), nil
}

func mapBookErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return apperror.NotFound(MsgBookNotFound)
	default:
		return apperror.Internal(op, err)
	}
}
