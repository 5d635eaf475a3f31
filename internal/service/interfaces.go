package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-user-admin/models"
)

// ResetRequest is the outcome of [AuthService.RequestPasswordReset].
//
// Issued is false when no account matched the email; the HTTP layer must
// still answer with the same generic message in that case
// (anti-enumeration). RawSecret is only populated when Issued is true and
// the secret was NOT delivered by email, so a non-production deployment can
// echo it for testability.
type ResetRequest struct {
	Issued    bool
	Delivered bool
	RawSecret string
}

// AuthService orchestrates the user-facing credential operations: signup,
// login, password change, and the password-reset lifecycle.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) (ResetRequest, error)
	ResetPassword(ctx context.Context, rawSecret, newPassword string) (models.User, error)

	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserAdminService performs administrative mutations on other users.
// Role gating happens at the transport layer; the self-action guards are
// enforced here, before any store write.
type UserAdminService interface {
	ListUsers(ctx context.Context, filter models.ListUsersFilter) (models.UserPage, error)
	UpdateUser(ctx context.Context, actorID uuid.UUID, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
}

// Mailer delivers password-reset messages out-of-band. Implementations that
// have no transport configured must report Configured() == false rather
// than silently dropping mail.
type Mailer interface {
	Configured() bool
	SendPasswordReset(ctx context.Context, to string, rawSecret string) error
}
