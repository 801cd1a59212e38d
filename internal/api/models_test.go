package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/stash-api/internal/domain"
)

func TestUserResponseRoundTrip(t *testing.T) {
	user := &domain.User{
		ID:             7,
		Email:          "bob@email.com",
		HashedPassword: "$2a$10$secret",
		IsActive:       true,
		Items: []domain.Item{
			{ID: 1, Title: "hammer", Description: "claw hammer", OwnerID: 7},
		},
	}

	encoded, err := json.Marshal(userToResponse(user))
	require.NoError(t, err)

	// id and email survive the round trip; the hash never appears.
	var decoded UserResponse
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, user.ID, decoded.ID)
	assert.Equal(t, user.Email, decoded.Email)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, user.Items[0].Title, decoded.Items[0].Title)

	assert.NotContains(t, string(encoded), "secret")
	assert.NotContains(t, string(encoded), "password")
}

func TestUserResponseEmptyItems(t *testing.T) {
	user := &domain.User{ID: 1, Email: "bob@email.com"}

	encoded, err := json.Marshal(userToResponse(user))
	require.NoError(t, err)

	// items serializes as an empty array, not null.
	assert.JSONEq(t, `{"id":1,"email":"bob@email.com","items":[]}`, string(encoded))
}
