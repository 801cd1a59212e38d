package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/stash-api/internal/mocks"
	"github.com/avolkov/stash-api/internal/service"
)

// newTestApplication wires the full router over the in-memory store,
// exercising the same middleware chain as production.
func newTestApplication() *application {
	st := mocks.NewStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &application{
		logger:      log,
		userService: service.NewUserService(st, log),
		itemService: service.NewItemService(st, log),
	}
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUserCRUDScenario(t *testing.T) {
	router := newTestApplication().setupRouter()

	// Empty listing before any user exists.
	rec := do(t, router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// First creation succeeds.
	rec = do(t, router, http.MethodPost, "/users",
		`{"email":"bob@email.com","password":"bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "bob@email.com", created.Email)

	// Repeating the same registration conflicts.
	rec = do(t, router, http.MethodPost, "/users",
		`{"email":"bob@email.com","password":"bob"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t,
		`{"error":"USER.0002","detail":"User with email:bob@email.com was already registered"}`,
		rec.Body.String())

	// The listing now has exactly one entry.
	rec = do(t, router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 1)

	// Delete succeeds once, then reports not found.
	rec = do(t, router, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, router, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t,
		`{"error":"USER.0001","detail":"User with id:1 was not found"}`,
		rec.Body.String())
}

func TestItemScenario(t *testing.T) {
	router := newTestApplication().setupRouter()

	rec := do(t, router, http.MethodPost, "/users",
		`{"email":"bob@email.com","password":"bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Items under a missing user are rejected.
	rec = do(t, router, http.MethodPost, "/users/42/items",
		`{"title":"hammer","description":""}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/users/1/items",
		`{"title":"hammer","description":"claw hammer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var item struct {
		ID      int64 `json:"id"`
		OwnerID int64 `json:"owner_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, int64(1), item.OwnerID)

	rec = do(t, router, http.MethodGet, "/users/1/items", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 1)
}

func TestResponsesCarryRequestID(t *testing.T) {
	router := newTestApplication().setupRouter()

	rec := do(t, router, http.MethodGet, "/users", "")
	assert.NotEmpty(t, rec.Header().Get("x-request-id"))

	// An inbound correlation ID is echoed back unchanged.
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("x-request-id", "upstream-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get("x-request-id"))
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestApplication().setupRouter()

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
