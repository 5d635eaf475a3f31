package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-admin/models"
)

// ── buildListUsersQuery ──────────────────────────────────────────────────────

func TestBuildListUsersQuery_Defaults(t *testing.T) {
	query, args, err := buildListUsersQuery(models.ListUsersFilter{})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM users")
	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC")
	assert.Contains(t, query, "LIMIT 10")
	assert.Contains(t, query, "OFFSET 0")
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestBuildListUsersQuery_SearchAndFilters(t *testing.T) {
	query, args, err := buildListUsersQuery(models.ListUsersFilter{
		Search: "ali",
		Role:   models.RoleAdmin,
		Status: models.StatusActive,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "name ILIKE $1 OR email ILIKE $2")
	assert.Contains(t, query, "role = $3")
	assert.Contains(t, query, "status = $4")
	assert.Equal(t, []any{"%ali%", "%ali%", models.RoleAdmin, models.StatusActive}, args)
}

func TestBuildListUsersQuery_SortWhitelist(t *testing.T) {
	query, _, err := buildListUsersQuery(models.ListUsersFilter{SortBy: "email", SortAsc: true})
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY email ASC, id ASC")

	// unknown sort keys never reach the SQL text
	query, _, err = buildListUsersQuery(models.ListUsersFilter{SortBy: "password_hash; DROP TABLE users"})
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC")
	assert.NotContains(t, query, "DROP TABLE")
}

func TestBuildListUsersQuery_Pagination(t *testing.T) {
	query, _, err := buildListUsersQuery(models.ListUsersFilter{Page: 3, Limit: 25})
	require.NoError(t, err)

	assert.Contains(t, query, "LIMIT 25")
	assert.Contains(t, query, "OFFSET 50")
}

func TestBuildListUsersQuery_ClampsLimit(t *testing.T) {
	query, _, err := buildListUsersQuery(models.ListUsersFilter{Limit: 100000})
	require.NoError(t, err)

	assert.Contains(t, query, "LIMIT 100")
}

// ── buildCountUsersQuery ─────────────────────────────────────────────────────

func TestBuildCountUsersQuery(t *testing.T) {
	query, args, err := buildCountUsersQuery(models.ListUsersFilter{Role: models.RoleUser})
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT COUNT(*) FROM users")
	assert.Contains(t, query, "role = $1")
	assert.NotContains(t, query, "LIMIT", "count must ignore pagination")
	assert.Equal(t, []any{models.RoleUser}, args)
}

// ── buildUpdateUserQuery ─────────────────────────────────────────────────────

func TestBuildUpdateUserQuery_Empty(t *testing.T) {
	_, _, err := buildUpdateUserQuery(models.UserUpdate{ID: uuid.New()})
	require.True(t, errors.Is(err, ErrNothingToUpdate))
}

func TestBuildUpdateUserQuery_PartialFields(t *testing.T) {
	name := "Renamed"
	role := models.RoleAdmin

	query, args, err := buildUpdateUserQuery(models.UserUpdate{
		ID:   uuid.New(),
		Name: &name,
		Role: &role,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE users")
	assert.Contains(t, query, "updated_at = NOW()")
	assert.Contains(t, query, "name = $1")
	assert.Contains(t, query, "role = $2")
	assert.NotContains(t, query, "email =")
	assert.NotContains(t, query, "status =")
	assert.Contains(t, query, "RETURNING")
	assert.Len(t, args, 3, "name, role, and the id in the WHERE clause")
}

func TestBuildUpdateUserQuery_NormalizesEmail(t *testing.T) {
	email := " New@Example.COM "

	_, args, err := buildUpdateUserQuery(models.UserUpdate{ID: uuid.New(), Email: &email})
	require.NoError(t, err)

	assert.Contains(t, args, "new@example.com")
}
