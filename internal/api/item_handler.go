package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avolkov/stash-api/internal/api/shared"
	"github.com/avolkov/stash-api/internal/domain"
	"github.com/avolkov/stash-api/internal/service"
	"github.com/avolkov/stash-api/internal/store"
)

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemService service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService, log *slog.Logger) *ItemHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ItemHandler{
		itemService: itemService,
		logger:      log.With(slog.String("component", "item_handler")),
	}
}

// CreateUserItem handles POST /users/{id}/items.
func (h *ItemHandler) CreateUserItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondAPIError(w, r, NewInvalidRequest("Request body is not valid JSON"))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondAPIError(w, r, NewInvalidRequest("Invalid item payload"))
		return
	}

	item, err := h.itemService.CreateUserItem(r.Context(), domain.CreateItemCommand{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondAPIError(w, r, NewUserNotFound(userID))
			return
		}
		h.logger.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		respondAPIError(w, r, NewInternalError())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// GetUserItems handles GET /users/{id}/items.
func (h *ItemHandler) GetUserItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	items, err := h.itemService.GetUserItems(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondAPIError(w, r, NewUserNotFound(userID))
			return
		}
		h.logger.Error("failed to list user items",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		respondAPIError(w, r, NewInternalError())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponses(items))
}

// GetAllItems handles GET /items.
func (h *ItemHandler) GetAllItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.GetAllItems(r.Context())
	if err != nil {
		h.logger.Error("failed to list items", slog.String("error", err.Error()))
		respondAPIError(w, r, NewInternalError())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponses(items))
}

func itemsToResponses(items []*domain.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemToResponse(item))
	}
	return responses
}
