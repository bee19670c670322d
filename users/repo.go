package users

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create would violate email uniqueness.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repo is the credential store. Email lookups are case-insensitive.
type Repo interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, error)
	UpdateBalance(ctx context.Context, id int64, credit float64, ecoPoints int) error
}
