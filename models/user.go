package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of authorization roles a user can hold.
type Role string

// Status is the closed set of account states.
type Status string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"

	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Valid reports whether s is one of the known account states.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusDisabled
}

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user, assigned at creation.
	ID uuid.UUID `json:"id"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Email is the unique login key, always stored lowercase.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This value is never plaintext and never serialized to JSON.
	PasswordHash string `json:"-"`

	// Role determines access level. Defaults to RoleUser; the only
	// elevation path is an explicit administrative mutation (or the
	// one-time bootstrap rule at registration).
	Role Role `json:"role"`

	// Status controls whether the account may authenticate.
	// StatusDisabled blocks login and any already-issued session token.
	Status Status `json:"status"`

	// ResetTokenHash holds the SHA-256 hash of the currently outstanding
	// password-reset secret, never the raw secret. Nil when no reset is
	// outstanding. Never exposed via JSON.
	ResetTokenHash *string `json:"-"`

	// ResetTokenExpiresAt is the absolute expiry of the outstanding reset
	// secret. Nil when no reset is outstanding. Never exposed via JSON.
	ResetTokenExpiresAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last mutation, maintained by the store.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Sanitized returns a copy of the user with every credential and secret
// field cleared. Anything that crosses the HTTP boundary or enters a
// request context must be sanitized first.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
	return u
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserUpdate describes a partial administrative mutation of a user record.
// Nil fields are left untouched by the store.
type UserUpdate struct {
	ID     uuid.UUID `json:"-"`
	Name   *string   `json:"name,omitempty"`
	Email  *string   `json:"email,omitempty"`
	Role   *Role     `json:"role,omitempty"`
	Status *Status   `json:"status,omitempty"`
}

// Empty reports whether the update carries no fields to change.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil && u.Status == nil
}

// ListUsersFilter describes pagination, search, and filter criteria for
// administrative user listing.
type ListUsersFilter struct {
	// Page is 1-based; values below 1 are clamped to 1.
	Page int

	// Limit is clamped to the range [1, 100]; zero means the default of 10.
	Limit int

	// Search matches name or email case-insensitively when non-empty.
	Search string

	// Role filters by role when non-empty.
	Role Role

	// Status filters by status when non-empty.
	Status Status

	// SortBy is one of "name", "email", "created_at"; anything else falls
	// back to "created_at".
	SortBy string

	// SortAsc selects ascending order; the default is descending.
	SortAsc bool
}

// UserPage is one page of an administrative user listing.
type UserPage struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}
