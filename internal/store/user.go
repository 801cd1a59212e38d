package store

import (
	"context"

	"github.com/avolkov/stash-api/internal/domain"
)

// Paging defaults for List.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create persists a new user from the given command and returns the
	// stored record with its generated ID.
	// The command must carry an already-hashed password.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, cmd domain.CreateUserCommand) (*domain.User, error)

	// GetByID retrieves a user, including their items, by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user, including their items, by email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns a page of users in storage order. Negative skip and
	// non-positive limit fall back to DefaultSkip/DefaultLimit.
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)

	// Delete removes a user and, through the schema's cascade, their items.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error
}
