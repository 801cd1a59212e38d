package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/avolkov/stash-api/internal/store"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "no rows maps to not found",
			err:      sql.ErrNoRows,
			sentinel: store.ErrNotFound,
		},
		{
			name:     "unique violation maps to duplicate",
			err:      pgError(uniqueViolationCode, "idx_users_email"),
			sentinel: store.ErrDuplicate,
		},
		{
			name:     "foreign key violation maps to not found",
			err:      pgError(foreignKeyViolationCode, "items_owner_id_fkey"),
			sentinel: store.ErrNotFound,
		},
		{
			name:     "wrapped pg error still maps",
			err:      fmt.Errorf("exec: %w", pgError(uniqueViolationCode, "idx_users_email")),
			sentinel: store.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			assert.True(t, errors.Is(mapped, tt.sentinel),
				"expected %v to map onto %v", mapped, tt.sentinel)
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	assert.Nil(t, MapError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, MapError(plain))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode, "")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("exec: %w", pgError(uniqueViolationCode, ""))))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode, "")))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(pgError(foreignKeyViolationCode, "")))
	assert.False(t, IsForeignKeyViolation(pgError(uniqueViolationCode, "")))
	assert.False(t, IsForeignKeyViolation(nil))
}

type fakeResult struct {
	rows int64
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, nil }

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrUserNotFound))

	err := CheckRowsAffected(fakeResult{rows: 0}, store.ErrUserNotFound)
	assert.True(t, errors.Is(err, store.ErrUserNotFound))
}
