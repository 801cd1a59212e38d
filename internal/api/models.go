package api

import "github.com/avolkov/stash-api/internal/domain"

// Request/response schemas for the HTTP surface. Responses are a field
// subset of the domain records; the password hash is never echoed.

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateItemRequest is the payload for POST /users/{id}/items.
type CreateItemRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	ID    int64          `json:"id"`
	Email string         `json:"email"`
	Items []ItemResponse `json:"items"`
}

// ItemResponse is the API representation of an item.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     int64  `json:"owner_id"`
}

func userToResponse(user *domain.User) UserResponse {
	items := make([]ItemResponse, 0, len(user.Items))
	for i := range user.Items {
		items = append(items, itemToResponse(&user.Items[i]))
	}
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Items: items,
	}
}

func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		OwnerID:     item.OwnerID,
	}
}
