package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/avolkov/stash-api/internal/domain"
	"github.com/avolkov/stash-api/internal/platform/logger"
	"github.com/avolkov/stash-api/internal/store"
)

// UserStore implements the store.UserStore interface using PostgreSQL as
// the storage backend.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface. The database handle is initialized and managed by the caller.
// If log is nil, the slog default is used.
func NewUserStore(db store.DBTX, log *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
// The insert relies on the unique index on users.email: a concurrent
// duplicate create degrades to a constraint violation rather than a
// silent duplicate, and is reported as store.ErrEmailExists.
func (s *UserStore) Create(ctx context.Context, cmd domain.CreateUserCommand) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := cmd.Validate(); err != nil {
		log.Warn("user command validation failed",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO users (email, hashed_password, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING id, email, hashed_password, is_active
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, cmd.Email, cmd.HashedPassword).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsActive,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("email already registered",
				slog.String("email", cmd.Email))
			return nil, fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("email", cmd.Email))
		return nil, MapError(err)
	}

	user.Items = []domain.Item{}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))
	return &user, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, is_active
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, err
	}

	items, err := listItemsByOwner(ctx, s.db, user.ID)
	if err != nil {
		log.Error("failed to load user items",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, err
	}
	user.Items = items

	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, is_active
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("email", email))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return nil, err
	}

	items, err := listItemsByOwner(ctx, s.db, user.ID)
	if err != nil {
		log.Error("failed to load user items",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return nil, err
	}
	user.Items = items

	return &user, nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if skip < 0 {
		skip = store.DefaultSkip
	}
	if limit <= 0 {
		limit = store.DefaultLimit
	}

	query := `
		SELECT id, email, hashed_password, is_active
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.IsActive); err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	for _, user := range users {
		items, err := listItemsByOwner(ctx, s.db, user.ID)
		if err != nil {
			log.Error("failed to load user items",
				slog.String("error", err.Error()),
				slog.Int64("user_id", user.ID))
			return nil, err
		}
		user.Items = items
	}

	return users, nil
}

// Delete implements store.UserStore.Delete. The items schema cascades the
// delete to the user's items.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found for delete", slog.Int64("user_id", id))
		}
		return err
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
