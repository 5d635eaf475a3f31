package service

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-user-admin/internal/auth"
	"github.com/MKhiriev/go-user-admin/internal/config"
	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/store"
	"github.com/MKhiriev/go-user-admin/models"
)

// authService is the concrete implementation of AuthService.
// It composes the [store.UserRepository] for persistence, the
// [auth.PasswordHasher] and [auth.TokenService] credential primitives, and a
// [Mailer] for out-of-band reset delivery.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher performs bcrypt hashing and verification of user passwords.
	hasher *auth.PasswordHasher

	// tokens issues and verifies session tokens and reset secrets.
	tokens *auth.TokenService

	// mailer delivers reset secrets out-of-band. May be unconfigured in
	// development; RequestPasswordReset then falls back to returning the
	// raw secret to the caller.
	mailer Mailer

	// passwordMinLength and passwordComplexity define the strength policy
	// applied to every new password.
	passwordMinLength  int
	passwordComplexity bool

	// bootstrapAdminEmail, when non-empty, promotes the first matching
	// registration to the admin role while no admin exists.
	bootstrapAdminEmail string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repository,
// credential primitives, and mailer, with policy values from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	userRepository store.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
	mailer Mailer,
	cfg config.Auth,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:      userRepository,
		hasher:              hasher,
		tokens:              tokens,
		mailer:              mailer,
		passwordMinLength:   cfg.PasswordMinLength,
		passwordComplexity:  cfg.PasswordComplexity,
		bootstrapAdminEmail: models.NormalizeEmail(cfg.BootstrapAdminEmail),
		logger:              logger,
	}
}

// validatePassword applies the configured strength policy.
func (a *authService) validatePassword(password string) error {
	if len(password) < a.passwordMinLength {
		return ErrWeakPassword
	}

	if !a.passwordComplexity {
		return nil
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit {
		return ErrWeakPassword
	}

	return nil
}

// Register creates a new user account.
//
// The email is normalised to lowercase before the uniqueness check so two
// spellings of the same address cannot coexist. The password must pass the
// strength policy and is stored only as a bcrypt hash.
//
// The new account gets the default role and active status — unless the
// one-time bootstrap rule applies: the configured bootstrap email, and no
// admin exists yet. The AdminExists guard means the rule can fire at most
// once over the lifetime of the deployment.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if name, email, or password is empty.
//   - ErrWeakPassword if the password fails the strength policy.
//   - store.ErrEmailAlreadyExists if the email is taken.
func (a *authService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = models.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		log.Error().Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if err := a.validatePassword(password); err != nil {
		return models.User{}, err
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	role := models.RoleUser
	if a.bootstrapAdminEmail != "" && email == a.bootstrapAdminEmail {
		adminExists, err := a.userRepository.AdminExists(ctx)
		if err != nil {
			log.Err(err).Msg("bootstrap admin check failed")
			return models.User{}, fmt.Errorf("bootstrap admin check failed: %w", err)
		}
		if !adminExists {
			log.Info().Str("email", email).Msg("bootstrap admin rule applied")
			role = models.RoleAdmin
		}
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       models.StatusActive,
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// A missing account and a wrong password both yield ErrInvalidCredentials so
// the response never reveals which factor failed. A disabled account is
// rejected with ErrAccountDisabled even when the password is correct.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		log.Error().Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Str("email", email).Msg("login attempt for unknown email")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(password, foundUser.PasswordHash) {
		log.Debug().Str("user_id", foundUser.ID.String()).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if foundUser.Status == models.StatusDisabled {
		log.Debug().Str("user_id", foundUser.ID.String()).Msg("login attempt for disabled account")
		return models.User{}, ErrAccountDisabled
	}

	return foundUser, nil
}

// ChangePassword replaces the password of an authenticated user after
// verifying the current one.
func (a *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if currentPassword == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	if err := a.validatePassword(newPassword); err != nil {
		return err
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID.String()).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !a.hasher.Verify(currentPassword, foundUser.PasswordHash) {
		log.Debug().Str("user_id", userID.String()).Msg("current password mismatch")
		return ErrInvalidCredentials
	}

	newHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		log.Err(err).Str("user_id", userID.String()).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// RequestPasswordReset issues a fresh reset secret for the account behind
// email, superseding any previously outstanding secret.
//
// When no account matches, the method reports Issued == false with a nil
// error: the HTTP layer answers with the exact same generic message either
// way, so responses cannot be used to enumerate accounts.
//
// Delivery: when the mailer is configured the raw secret is emailed and
// never returned. Otherwise it is handed back to the caller (and logged),
// so the flow stays usable in development — the transport decides whether
// echoing it to the client is permitted.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) (ResetRequest, error) {
	log := logger.FromContext(ctx)

	email = models.NormalizeEmail(email)
	if email == "" {
		return ResetRequest{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Str("email", email).Msg("reset requested for unknown email")
			return ResetRequest{}, nil
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return ResetRequest{}, fmt.Errorf("user search by email failed: %w", err)
	}

	secret, err := a.tokens.IssueResetSecret()
	if err != nil {
		log.Err(err).Msg("reset secret generation failed")
		return ResetRequest{}, fmt.Errorf("reset secret generation failed: %w", err)
	}

	if err := a.userRepository.SetResetSecret(ctx, foundUser.ID, secret.Hash, secret.ExpiresAt); err != nil {
		log.Err(err).Str("user_id", foundUser.ID.String()).Msg("storing reset secret failed")
		return ResetRequest{}, fmt.Errorf("storing reset secret failed: %w", err)
	}

	if a.mailer != nil && a.mailer.Configured() {
		if err := a.mailer.SendPasswordReset(ctx, foundUser.Email, secret.Raw); err != nil {
			log.Err(err).Str("user_id", foundUser.ID.String()).Msg("sending reset mail failed")
			return ResetRequest{}, fmt.Errorf("sending reset mail failed: %w", err)
		}
		return ResetRequest{Issued: true, Delivered: true}, nil
	}

	log.Warn().Str("user_id", foundUser.ID.String()).Msg("mailer not configured, returning raw reset secret to transport")
	return ResetRequest{Issued: true, RawSecret: secret.Raw}, nil
}

// ResetPassword consumes a raw reset secret and sets a new password.
//
// The user is located by the SHA-256 hash of the raw secret; the stored
// hash and expiry are then verified in constant time, and the final update
// is a single atomic statement guarded by the same hash. A secret that was
// already consumed, superseded by a newer request, or expired fails with
// ErrTokenIsExpiredOrInvalid at one of those three gates.
func (a *authService) ResetPassword(ctx context.Context, rawSecret, newPassword string) (models.User, error) {
	log := logger.FromContext(ctx)

	if rawSecret == "" {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	if err := a.validatePassword(newPassword); err != nil {
		return models.User{}, err
	}

	secretHash := auth.HashResetSecret(rawSecret)

	foundUser, err := a.userRepository.FindUserByResetHash(ctx, secretHash)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Msg("user search by reset hash failed")
		return models.User{}, fmt.Errorf("user search by reset hash failed: %w", err)
	}

	if foundUser.ResetTokenHash == nil || foundUser.ResetTokenExpiresAt == nil ||
		!a.tokens.VerifyResetSecret(rawSecret, *foundUser.ResetTokenHash, *foundUser.ResetTokenExpiresAt) {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	newHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	updatedUser, err := a.userRepository.ConsumeResetSecret(ctx, secretHash, newHash)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// Lost the race against a concurrent consume or supersede.
			return models.User{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Str("user_id", foundUser.ID.String()).Msg("consuming reset secret failed")
		return models.User{}, fmt.Errorf("consuming reset secret failed: %w", err)
	}

	return updatedUser, nil
}

// GetUser retrieves a user by id.
func (a *authService) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	return a.userRepository.FindUserByID(ctx, id)
}

// CreateToken issues a signed session JWT for the given user.
//
// Returns the token model on success or a wrapped error if JWT generation
// fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := a.tokens.IssueSession(user.ID)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw session JWT string.
//
// It delegates to the token service, verifying the signature, issuer, and
// expiry. Any validation failure is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := a.tokens.ParseSession(tokenString)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
