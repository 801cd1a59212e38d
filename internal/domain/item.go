package domain

import "errors"

var (
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrEmptyOwnerID = errors.New("owner ID cannot be empty")
)

// Item is a single belonging of a user. Items always have exactly one
// owner and are never reassigned.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     int64  `json:"owner_id"`
}

// CreateItemCommand carries the data needed to create an item under an
// existing user.
type CreateItemCommand struct {
	OwnerID     int64
	Title       string
	Description string
}

// Validate checks the command for structurally valid input.
func (c CreateItemCommand) Validate() error {
	if c.OwnerID <= 0 {
		return ErrEmptyOwnerID
	}
	if c.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}
