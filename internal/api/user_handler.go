package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/stash-api/internal/api/shared"
	"github.com/avolkov/stash-api/internal/domain"
	"github.com/avolkov/stash-api/internal/service"
	"github.com/avolkov/stash-api/internal/store"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      log.With(slog.String("component", "user_handler")),
	}
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondAPIError(w, r, NewInvalidRequest("Request body is not valid JSON"))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondAPIError(w, r, NewInvalidRequest("Invalid user payload"))
		return
	}

	user, err := h.userService.CreateUser(r.Context(), domain.CreateUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			respondAPIError(w, r, NewUserAlreadyExists(req.Email))
			return
		}
		h.logger.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("email", req.Email))
		respondAPIError(w, r, NewInternalError())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondAPIError(w, r, NewUserNotFound(userID))
			return
		}
		h.logger.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		respondAPIError(w, r, NewInternalError())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListUsers handles GET /users. Paging uses the skip/limit query
// parameters with the store defaults when absent or malformed.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", store.DefaultSkip)
	limit := queryInt(r, "limit", store.DefaultLimit)

	users, err := h.userService.ListUsers(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("failed to list users", slog.String("error", err.Error()))
		respondAPIError(w, r, NewInternalError())
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, userToResponse(user))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// DeleteUser handles DELETE /users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondAPIError(w, r, NewUserNotFound(userID))
			return
		}
		h.logger.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		respondAPIError(w, r, NewInternalError())
		return
	}

	shared.RespondNoContent(w, r)
}

// respondAPIError writes a typed API error as the standard envelope.
func respondAPIError(w http.ResponseWriter, r *http.Request, apiErr *Error) {
	shared.RespondWithError(w, r, apiErr.Status, apiErr.Code, apiErr.Detail)
}

// parseUserID extracts the {id} route parameter. Only non-integer
// values are rejected here with a 400; ids that never match a user,
// zero and negative ones included, fall through to the store lookup
// and surface as a 404.
func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondAPIError(w, r, NewInvalidRequest("User id must be an integer"))
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back to def when
// the parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
