package store

import (
	"context"

	"github.com/avolkov/stash-api/internal/domain"
)

// ItemStore defines the interface for item persistence.
type ItemStore interface {
	// CreateForUser persists a new item under the command's owner and
	// returns the stored record with its generated ID.
	// Returns ErrUserNotFound if the owner does not exist.
	CreateForUser(ctx context.Context, cmd domain.CreateItemCommand) (*domain.Item, error)

	// ListForUser returns all items owned by the given user.
	// Returns ErrUserNotFound if the user does not exist.
	ListForUser(ctx context.Context, userID int64) ([]*domain.Item, error)

	// ListAll returns every item across all users, unpaginated.
	ListAll(ctx context.Context) ([]*domain.Item, error)
}
