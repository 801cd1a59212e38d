package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avolkov/stash-api/internal/domain"
	"github.com/avolkov/stash-api/internal/store"
)

// ItemService provides item-related operations.
type ItemService interface {
	// CreateUserItem creates an item under the command's owner.
	CreateUserItem(ctx context.Context, cmd domain.CreateItemCommand) (*domain.Item, error)

	// GetUserItems returns all items owned by the given user.
	GetUserItems(ctx context.Context, userID int64) ([]*domain.Item, error)

	// GetAllItems returns every item across all users.
	GetAllItems(ctx context.Context) ([]*domain.Item, error)
}

// itemService implements ItemService on top of a store.ItemStore.
type itemService struct {
	itemStore store.ItemStore
	logger    *slog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(itemStore store.ItemStore, log *slog.Logger) ItemService {
	if log == nil {
		log = slog.Default()
	}
	return &itemService{
		itemStore: itemStore,
		logger:    log.With(slog.String("component", "item_service")),
	}
}

// CreateUserItem creates an item under the command's owner.
func (s *itemService) CreateUserItem(ctx context.Context, cmd domain.CreateItemCommand) (*domain.Item, error) {
	item, err := s.itemStore.CreateForUser(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Debug("item created",
		slog.Int64("item_id", item.ID),
		slog.Int64("owner_id", item.OwnerID))
	return item, nil
}

// GetUserItems returns all items owned by the given user.
func (s *itemService) GetUserItems(ctx context.Context, userID int64) ([]*domain.Item, error) {
	items, err := s.itemStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user items: %w", err)
	}
	return items, nil
}

// GetAllItems returns every item across all users.
func (s *itemService) GetAllItems(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.itemStore.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}
