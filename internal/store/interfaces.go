package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-user-admin/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_user_repository.go -package=mocks

// UserRepository is the persistence contract for user records. The core
// services depend only on this interface; the PostgreSQL implementation
// lives in [userRepository].
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields populated (ID, CreatedAt, UpdatedAt).
	// Returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID retrieves a user by primary key.
	// Returns ErrNoUserWasFound when no such user exists.
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)

	// FindUserByEmail retrieves a user by normalized email, including the
	// password hash for credential verification.
	// Returns ErrNoUserWasFound when no such user exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByResetHash retrieves the user whose outstanding reset-secret
	// hash equals hash. Returns ErrNoUserWasFound when no row matches.
	FindUserByResetHash(ctx context.Context, hash string) (models.User, error)

	// SetResetSecret stores a new reset-secret hash and expiry on the user,
	// overwriting any previously outstanding pair.
	SetResetSecret(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error

	// ConsumeResetSecret atomically sets a new password hash and clears the
	// reset fields, guarded by the stored hash still matching and not being
	// expired. Returns ErrNoUserWasFound when the secret was already
	// consumed, superseded, or has expired.
	ConsumeResetSecret(ctx context.Context, hash string, newPasswordHash string) (models.User, error)

	// UpdatePassword replaces the password hash and clears any outstanding
	// reset-secret pair in a single statement.
	UpdatePassword(ctx context.Context, id uuid.UUID, newPasswordHash string) error

	// UpdateUser applies a partial mutation (name/email/role/status) and
	// returns the updated record. Returns ErrNothingToUpdate for an empty
	// update, ErrNoUserWasFound for an unknown id, and
	// ErrEmailAlreadyExists on an email collision.
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)

	// DeleteUser removes a user record.
	// Returns ErrNoUserWasFound for an unknown id.
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// ListUsers returns one page of users matching the filter.
	ListUsers(ctx context.Context, filter models.ListUsersFilter) ([]models.User, error)

	// CountUsers returns the total number of users matching the filter,
	// ignoring pagination.
	CountUsers(ctx context.Context, filter models.ListUsersFilter) (int64, error)

	// AdminExists reports whether any user currently holds the admin role.
	AdminExists(ctx context.Context) (bool, error)

	// PurgeExpiredResetSecrets clears reset fields on all rows whose secret
	// has expired and returns the number of affected rows. Purely hygienic:
	// expiry is always re-checked at verification time.
	PurgeExpiredResetSecrets(ctx context.Context) (int64, error)
}
