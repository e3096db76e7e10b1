// Package memstore holds in-memory repositories for tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
	repo "github.com/oksasatya/bookstore-api/internal/domain/repository"
)

// Users implements repository.UserRepository. Set Err to fail every call.
type Users struct {
	mu      sync.Mutex
	ByEmail map[string]entity.User
	Err     error
}

func NewUsers() *Users {
	return &Users{ByEmail: map[string]entity.User{}}
}

func (m *Users) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.ByEmail[u.Email]; ok {
		return repo.ErrDuplicate
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.ByEmail[u.Email] = *u
	return nil
}

func (m *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.ByEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

// Books implements repository.BookRepository with store-like filtering and ordering.
type Books struct {
	mu    sync.Mutex
	books map[string]entity.Book
	seq   int
	Err   error
}

func NewBooks() *Books {
	return &Books{books: map[string]entity.Book{}}
}

func (m *Books) Create(_ context.Context, b *entity.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.seq++
	b.ID = uuid.NewString()
	b.CreatedAt = time.Unix(int64(m.seq), 0)
	b.UpdatedAt = b.CreatedAt
	m.books[b.ID] = *b
	return nil
}

func (m *Books) GetByID(_ context.Context, id string) (*entity.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	b, ok := m.books[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &b, nil
}

func (m *Books) Update(_ context.Context, id string, p entity.BookPatch) (*entity.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	b, ok := m.books[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	if p.PublishedDate != nil {
		b.PublishedDate = *p.PublishedDate
	}
	m.books[id] = b
	return &b, nil
}

func (m *Books) Delete(_ context.Context, id string) (*entity.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	b, ok := m.books[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	delete(m.books, id)
	return &b, nil
}

func (m *Books) Count(_ context.Context, f entity.BookFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.match(f))), nil
}

func (m *Books) Find(_ context.Context, q entity.BookQuery) ([]entity.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := m.match(q.Filter)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch q.Sort.Field {
		case entity.SortPrice:
			if q.Sort.Desc {
				return a.Price > b.Price
			}
			return a.Price < b.Price
		case entity.SortRating:
			if q.Sort.Desc {
				return a.Rating > b.Rating
			}
			return a.Rating < b.Rating
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	skip := q.Skip()
	if skip >= len(out) {
		return []entity.Book{}, nil
	}
	out = out[skip:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *Books) match(f entity.BookFilter) []entity.Book {
	contains := func(field, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(field), strings.ToLower(sub))
	}
	out := make([]entity.Book, 0, len(m.books))
	for _, b := range m.books {
		if !contains(b.Author, f.Author) || !contains(b.Category, f.Category) || !contains(b.Title, f.Title) {
			continue
		}
		if f.Rating != nil && b.Rating != *f.Rating {
			continue
		}
		out = append(out, b)
	}
	return out
}

var (
	_ repo.UserRepository = (*Users)(nil)
	_ repo.BookRepository = (*Books)(nil)
)
