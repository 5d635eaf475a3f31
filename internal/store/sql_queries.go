// SPDX-License-Identifier: Apache-2.0

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-admin/models"
)

const (
	createUser = `
		INSERT INTO users (name, email, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, role, status,
			reset_token_hash, reset_token_expires_at, created_at, updated_at;`

	findUserByID = `
		SELECT id, name, email, password_hash, role, status,
			reset_token_hash, reset_token_expires_at, created_at, updated_at
		FROM users
		WHERE id = $1;`

	findUserByEmail = `
		SELECT id, name, email, password_hash, role, status,
			reset_token_hash, reset_token_expires_at, created_at, updated_at
		FROM users
		WHERE email = $1;`

	findUserByResetHash = `
		SELECT id, name, email, password_hash, role, status,
			reset_token_hash, reset_token_expires_at, created_at, updated_at
		FROM users
		WHERE reset_token_hash = $1;`

	setResetSecret = `
		UPDATE users SET
			reset_token_hash       = $2,
			reset_token_expires_at = $3,
			updated_at             = NOW()
		WHERE id = $1;`

	consumeResetSecret = `
		UPDATE users SET
			password_hash          = $2,
			reset_token_hash       = NULL,
			reset_token_expires_at = NULL,
			updated_at             = NOW()
		WHERE reset_token_hash = $1 AND reset_token_expires_at > NOW()
		RETURNING id, name, email, password_hash, role, status,
			reset_token_hash, reset_token_expires_at, created_at, updated_at;`

	updatePassword = `
		UPDATE users SET
			password_hash          = $2,
			reset_token_hash       = NULL,
			reset_token_expires_at = NULL,
			updated_at             = NOW()
		WHERE id = $1;`

	deleteUser = `DELETE FROM users WHERE id = $1;`

	adminExists = `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1);`

	purgeExpiredResetSecrets = `
		UPDATE users SET
			reset_token_hash       = NULL,
			reset_token_expires_at = NULL
		WHERE reset_token_hash IS NOT NULL AND reset_token_expires_at <= NOW();`
)

// userColumns is the canonical column order used by every SELECT and
// RETURNING clause above and by scanUser.
var userColumns = []string{
	"id", "name", "email", "password_hash", "role", "status",
	"reset_token_hash", "reset_token_expires_at", "created_at", "updated_at",
}

// psql is the statement builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// listSortColumns maps accepted sort keys to real columns. Anything else
// falls back to created_at so client input never reaches the SQL text.
var listSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizeListFilter clamps pagination bounds and resolves the sort column.
func normalizeListFilter(filter models.ListUsersFilter) (models.ListUsersFilter, string) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	sortColumn, ok := listSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "created_at"
	}

	return filter, sortColumn
}

// listUsersConditions builds the WHERE conditions shared by the list and
// count queries.
func listUsersConditions(filter models.ListUsersFilter) []sq.Sqlizer {
	conditions := make([]sq.Sqlizer, 0, 3)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
		})
	}
	if filter.Role != "" {
		conditions = append(conditions, sq.Eq{"role": filter.Role})
	}
	if filter.Status != "" {
		conditions = append(conditions, sq.Eq{"status": filter.Status})
	}

	return conditions
}

// buildListUsersQuery builds the paginated SELECT for ListUsers.
// The secondary sort on id keeps page boundaries stable when the primary
// sort column has duplicates.
func buildListUsersQuery(filter models.ListUsersFilter) (string, []any, error) {
	filter, sortColumn := normalizeListFilter(filter)

	order := sortColumn + " DESC"
	if filter.SortAsc {
		order = sortColumn + " ASC"
	}

	builder := psql.
		Select(userColumns...).
		From("users").
		OrderBy(order, "id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))

	for _, condition := range listUsersConditions(filter) {
		builder = builder.Where(condition)
	}

	return builder.ToSql()
}

// buildCountUsersQuery builds the COUNT(*) companion of buildListUsersQuery.
func buildCountUsersQuery(filter models.ListUsersFilter) (string, []any, error) {
	builder := psql.
		Select("COUNT(*)").
		From("users")

	for _, condition := range listUsersConditions(filter) {
		builder = builder.Where(condition)
	}

	return builder.ToSql()
}

// buildUpdateUserQuery builds a partial UPDATE touching only the fields set
// on update. Returns ErrNothingToUpdate when the update is empty.
func buildUpdateUserQuery(update models.UserUpdate) (string, []any, error) {
	if update.Empty() {
		return "", nil, ErrNothingToUpdate
	}

	builder := psql.
		Update("users").
		Set("updated_at", sq.Expr("NOW()"))

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Email != nil {
		builder = builder.Set("email", models.NormalizeEmail(*update.Email))
	}
	if update.Role != nil {
		builder = builder.Set("role", *update.Role)
	}
	if update.Status != nil {
		builder = builder.Set("status", *update.Status)
	}

	builder = builder.
		Where(sq.Eq{"id": update.ID}).
		Suffix(`RETURNING id, name, email, password_hash, role, status,
			reset_token_hash, reset_token_expires_at, created_at, updated_at`)

	return builder.ToSql()
}
