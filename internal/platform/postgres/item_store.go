package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avolkov/stash-api/internal/domain"
	"github.com/avolkov/stash-api/internal/platform/logger"
	"github.com/avolkov/stash-api/internal/store"
)

// ItemStore implements the store.ItemStore interface using PostgreSQL as
// the storage backend.
type ItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewItemStore creates a new PostgreSQL implementation of the ItemStore
// interface. The database handle is initialized and managed by the caller.
// If log is nil, the slog default is used.
func NewItemStore(db store.DBTX, log *slog.Logger) *ItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ItemStore{
		db:     db,
		logger: log.With(slog.String("component", "item_store")),
	}
}

// Ensure ItemStore implements store.ItemStore
var _ store.ItemStore = (*ItemStore)(nil)

// CreateForUser implements store.ItemStore.CreateForUser.
// A missing owner surfaces as a foreign key violation on items.owner_id
// and is reported as store.ErrUserNotFound.
func (s *ItemStore) CreateForUser(ctx context.Context, cmd domain.CreateItemCommand) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := cmd.Validate(); err != nil {
		log.Warn("item command validation failed",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO items (title, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, description, owner_id
	`

	var item domain.Item
	err := s.db.QueryRowContext(ctx, query, cmd.Title, cmd.Description, cmd.OwnerID).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.OwnerID,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("owner does not exist",
				slog.Int64("owner_id", cmd.OwnerID))
			return nil, fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
		}
		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", cmd.OwnerID))
		return nil, MapError(err)
	}

	log.Info("item created",
		slog.Int64("item_id", item.ID),
		slog.Int64("owner_id", item.OwnerID))
	return &item, nil
}

// ListForUser implements store.ItemStore.ListForUser.
func (s *ItemStore) ListForUser(ctx context.Context, userID int64) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		log.Error("failed to check user existence",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, err
	}
	if !exists {
		log.Debug("user not found", slog.Int64("user_id", userID))
		return nil, store.ErrUserNotFound
	}

	items, err := listItemsByOwner(ctx, s.db, userID)
	if err != nil {
		log.Error("failed to list user items",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, err
	}

	result := make([]*domain.Item, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}

// ListAll implements store.ItemStore.ListAll.
func (s *ItemStore) ListAll(ctx context.Context) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, owner_id
		FROM items
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list items", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []*domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.OwnerID); err != nil {
			log.Error("failed to scan item row", slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return items, nil
}

// listItemsByOwner loads the items owned by a user in storage order.
// Shared between the item store and the user store, which embeds items
// into the user records it returns.
func listItemsByOwner(ctx context.Context, db store.DBTX, ownerID int64) ([]domain.Item, error) {
	query := `
		SELECT id, title, description, owner_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.OwnerID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
