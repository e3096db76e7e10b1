package application

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookstore-api/internal/domain/entity"
	repo "github.com/oksasatya/bookstore-api/internal/domain/repository"
	"github.com/oksasatya/bookstore-api/pkg/apperror"
	"github.com/oksasatya/bookstore-api/pkg/helpers"
)

const (
	MsgCredentialsRequired = "Email and password are required"
	MsgPasswordTooShort    = "password must be at least 6 characters long"
	MsgPasswordTooLong     = "password must be at most 72 bytes long"
	MsgEmailTaken          = "User with this email already exists"
	MsgInvalidCredentials  = "Invalid email or password"
)

type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

// AuthResult is returned by signup and login
type AuthResult struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"-"`
}

// Signup registers a new user and issues an access token for it
func (s *AuthService) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, apperror.Validation(MsgCredentialsRequired)
	}
	if utf8.RuneCountInString(password) < helpers.MinPasswordLength {
		return nil, apperror.Validation(MsgPasswordTooShort, apperror.FieldError{
			Field:   "password",
			Message: "must be at least 6 characters long",
		})
	}
	if len(password) > helpers.MaxPasswordBytes {
		return nil, apperror.Validation(MsgPasswordTooLong, apperror.FieldError{
			Field:   "password",
			Message: "must be at most 72 bytes long",
		})
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, apperror.Conflict(MsgEmailTaken)
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, apperror.Internal("lookup user", err)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}

	u := &entity.User{Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict(MsgEmailTaken)
		}
		return nil, apperror.Internal("create user", err)
	}

	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return s.issue(u)
}

// Login verifies credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, apperror.Validation(MsgCredentialsRequired)
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Auth(MsgInvalidCredentials)
		}
		return nil, apperror.Internal("lookup user", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperror.Auth(MsgInvalidCredentials)
	}

	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, apperror.Internal("generate access token", err)
	}
	return &AuthResult{ID: u.ID, Email: u.Email, Token: token, ExpiresAt: exp}, nil
}
