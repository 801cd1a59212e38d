package domain

import "errors"

// Common validation errors
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// User represents a registered user and the items they own.
// The hashed password never appears in JSON output.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
	IsActive       bool   `json:"is_active"`
	Items          []Item `json:"items"`
}

// CreateUserCommand carries the data needed to create a new user.
// The password is plaintext at this boundary; hashing happens in the
// service layer before the command reaches a store.
type CreateUserCommand struct {
	Email          string
	Password       string
	HashedPassword string
}

// Validate checks the command invariants. Email format is checked at
// the API boundary by the request validator, not here.
func (c CreateUserCommand) Validate() error {
	if c.Email == "" {
		return ErrEmptyEmail
	}
	if c.Password == "" && c.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}
