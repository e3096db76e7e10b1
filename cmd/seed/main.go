package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookstore-api/config"
	"github.com/oksasatya/bookstore-api/internal/domain/entity"
	"github.com/oksasatya/bookstore-api/internal/domain/repository"
	pginfra "github.com/oksasatya/bookstore-api/internal/infrastructure/postgres"
	"github.com/oksasatya/bookstore-api/pkg/helpers"
)

type seedBook struct {
	title, author, category string
	price, rating           float64
	published               string
}

var demoBooks = []seedBook{
	{"Dune", "Frank Herbert", "Science Fiction", 9.99, 4.5, "1965-08-01"},
	{"Neuromancer", "William Gibson", "Science Fiction", 8.5, 4, "1984-07-01"},
	{"Pride and Prejudice", "Jane Austen", "Classic", 5.25, 4.5, "1813-01-28"},
	{"The Pragmatic Programmer", "Andrew Hunt", "Software", 39.9, 5, "1999-10-20"},
	{"The Hobbit", "J. R. R. Tolkien", "Fantasy", 7.75, 4.5, "1937-09-21"},
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Hour)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	email := "demo@bookstore.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	user := &entity.User{Email: email, Password: hash}
	switch err := pginfra.NewUserRepository(db).Create(ctx, user); {
	case err == nil:
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", user.ID, email, password)
	case errors.Is(err, repository.ErrDuplicate):
		fmt.Printf("user %s already exists\n", email)
	default:
		logger.WithError(err).Fatal("failed to seed user")
	}

	books := pginfra.NewBookRepository(db)
	for _, sb := range demoBooks {
		published, err := entity.ParseDate(sb.published)
		if err != nil {
			logger.WithError(err).Fatal("bad seed date")
		}
		b := &entity.Book{
			Title: sb.title, Author: sb.author, Category: sb.category,
			Price: sb.price, Rating: sb.rating, PublishedDate: published,
		}
		if err := books.Create(ctx, b); err != nil {
			logger.WithError(err).WithField("title", sb.title).Fatal("failed to seed book")
		}
		fmt.Printf("seeded book: id=%s title=%q\n", b.ID, b.Title)
	}
}
