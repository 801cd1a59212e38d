// Package mocks provides test doubles for the store ports. The central
// one is an in-memory Store implementing both UserStore and ItemStore
// with the same semantics as the postgres adapters, letting service and
// handler tests run without a database.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/avolkov/stash-api/internal/domain"
	"github.com/avolkov/stash-api/internal/store"
)

// Store is an in-memory implementation of store.UserStore and
// store.ItemStore. IDs are sequential starting at 1, matching the
// database's BIGSERIAL behavior. When Err is set, every method returns
// it, which tests use to exercise internal-error paths.
type Store struct {
	mu         sync.Mutex
	nextUserID int64
	nextItemID int64
	users      map[int64]domain.User
	items      map[int64]domain.Item

	Err error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users: make(map[int64]domain.User),
		items: make(map[int64]domain.Item),
	}
}

var (
	_ store.UserStore = (*Store)(nil)
	_ store.ItemStore = (*Store)(nil)
)

// Create implements store.UserStore.Create.
func (s *Store) Create(ctx context.Context, cmd domain.CreateUserCommand) (*domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == cmd.Email {
			return nil, store.ErrEmailExists
		}
	}

	s.nextUserID++
	user := domain.User{
		ID:             s.nextUserID,
		Email:          cmd.Email,
		HashedPassword: cmd.HashedPassword,
		IsActive:       true,
	}
	s.users[user.ID] = user

	user.Items = []domain.Item{}
	return &user, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	user.Items = s.itemsByOwner(id)
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			user.Items = s.itemsByOwner(user.ID)
			return &user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements store.UserStore.List.
func (s *Store) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if skip < 0 {
		skip = store.DefaultSkip
	}
	if limit <= 0 {
		limit = store.DefaultLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := []*domain.User{}
	for i, id := range ids {
		if i < skip {
			continue
		}
		if len(users) == limit {
			break
		}
		user := s.users[id]
		user.Items = s.itemsByOwner(id)
		users = append(users, &user)
	}
	return users, nil
}

// Delete implements store.UserStore.Delete, cascading to the user's items.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	for itemID, item := range s.items {
		if item.OwnerID == id {
			delete(s.items, itemID)
		}
	}
	return nil
}

// CreateForUser implements store.ItemStore.CreateForUser.
func (s *Store) CreateForUser(ctx context.Context, cmd domain.CreateItemCommand) (*domain.Item, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[cmd.OwnerID]; !ok {
		return nil, store.ErrUserNotFound
	}

	s.nextItemID++
	item := domain.Item{
		ID:          s.nextItemID,
		Title:       cmd.Title,
		Description: cmd.Description,
		OwnerID:     cmd.OwnerID,
	}
	s.items[item.ID] = item
	return &item, nil
}

// ListForUser implements store.ItemStore.ListForUser.
func (s *Store) ListForUser(ctx context.Context, userID int64) ([]*domain.Item, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, store.ErrUserNotFound
	}

	owned := s.itemsByOwner(userID)
	items := make([]*domain.Item, len(owned))
	for i := range owned {
		item := owned[i]
		items[i] = &item
	}
	return items, nil
}

// ListAll implements store.ItemStore.ListAll.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Item, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := []*domain.Item{}
	for _, id := range ids {
		item := s.items[id]
		items = append(items, &item)
	}
	return items, nil
}

// itemsByOwner returns the items of a user ordered by ID.
// Callers must hold s.mu.
func (s *Store) itemsByOwner(ownerID int64) []domain.Item {
	items := []domain.Item{}
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
