package entity

import (
	"time"
)

// User is the aggregate root for the auth domain.
// Password holds the bcrypt hash and never leaves the server.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
