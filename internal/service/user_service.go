package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/stash-api/internal/domain"
	"github.com/avolkov/stash-api/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers returns a page of users.
	ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error)

	// CreateUser hashes the command's password and creates the user.
	CreateUser(ctx context.Context, cmd domain.CreateUserCommand) (*domain.User, error)

	// DeleteUser deletes a user by their ID.
	DeleteUser(ctx context.Context, userID int64) error
}

// userService implements UserService on top of a store.UserStore.
type userService struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, log *slog.Logger) UserService {
	if log == nil {
		log = slog.Default()
	}
	return &userService{
		userStore: userStore,
		logger:    log.With(slog.String("component", "user_service")),
	}
}

// GetUser retrieves a user by their ID.
func (s *userService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// ListUsers returns a page of users.
func (s *userService) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser hashes the plaintext password with bcrypt and delegates to
// the store. The plaintext never crosses the port.
func (s *userService) CreateUser(ctx context.Context, cmd domain.CreateUserCommand) (*domain.User, error) {
	if cmd.Password == "" {
		return nil, domain.ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	cmd.Password = ""
	cmd.HashedPassword = string(hashed)

	user, err := s.userStore.Create(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("user created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))
	return user, nil
}

// DeleteUser deletes a user by their ID.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
