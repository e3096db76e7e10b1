package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
	"github.com/oksasatya/bookstore-api/internal/domain/repository"
)

var userColumns = []string{"id", "email", "password_hash", "created_at", "updated_at"}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u and fills the store-assigned fields.
// A taken email yields repository.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query, args, err := psql.Insert("users").
		Columns("email", "password_hash").
		Values(u.Email, u.Password).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		Where("email = ?", email).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	u := &entity.User{}
	if err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
