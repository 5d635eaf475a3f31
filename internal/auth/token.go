package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-user-admin/models"
)

// resetSecretSize is the number of random bytes in a password-reset secret.
// 32 bytes gives 256 bits of entropy.
const resetSecretSize = 32

// TokenService issues and verifies signed, time-limited session tokens and
// independently generates single-use, time-limited password-reset secrets.
//
// The two credential kinds are deliberately distinct: session tokens are
// stateless HMAC-SHA256 JWTs, while reset secrets are opaque random values
// whose SHA-256 hash is persisted by the caller. A database leak therefore
// never grants reset capability — only possession of the raw emailed value
// does.
//
// All state is read-only after construction; the service is safe for
// concurrent use.
type TokenService struct {
	// signKey is the HMAC secret used to sign and verify session JWTs.
	signKey []byte

	// issuer is the "iss" claim embedded in every issued JWT. Tokens whose
	// issuer does not match are rejected during parsing.
	issuer string

	// sessionTTL controls how long a newly issued session token remains valid.
	sessionTTL time.Duration

	// resetTTL controls how long a newly issued reset secret remains valid.
	resetTTL time.Duration
}

// NewTokenService constructs a [TokenService] from the given signing secret,
// issuer name, and lifetimes.
func NewTokenService(signKey, issuer string, sessionTTL, resetTTL time.Duration) (*TokenService, error) {
	if signKey == "" || issuer == "" || sessionTTL <= 0 || resetTTL <= 0 {
		return nil, ErrInvalidTokenParams
	}

	return &TokenService{
		signKey:    []byte(signKey),
		issuer:     issuer,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}, nil
}

// IssueSession creates a signed HMAC-SHA256 JWT for the given user.
//
// The token includes the following standard claims:
//   - Issuer    (iss): the configured issuer name
//   - Subject   (sub): the user ID in canonical UUID form
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus the session lifetime
//
// Returns the token model (with SignedString populated) or a wrapped error
// if signing fails.
func (s *TokenService) IssueSession(userID uuid.UUID) (models.Token, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ParseSession validates a raw session JWT and extracts the subject.
//
// Validation includes:
//   - Signature verification against the configured sign key
//   - Issuer (iss) claim check
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to a UUID
//
// Verification is pure and stateless — no store lookup — so revocation
// before natural expiry is not supported. Any validation failure is
// normalised to [ErrTokenInvalidOrExpired] so callers never need to inspect
// low-level JWT errors.
func (s *TokenService) ParseSession(tokenString string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return s.signKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, ErrTokenInvalidOrExpired
	}

	userIDStr, err := token.Claims.GetSubject()
	if err != nil || userIDStr == "" {
		return models.Token{}, ErrTokenInvalidOrExpired
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return models.Token{}, ErrTokenInvalidOrExpired
	}

	return models.Token{Token: token, UserID: userID, SignedString: tokenString}, nil
}

// ResetSecret is the result of [TokenService.IssueResetSecret].
type ResetSecret struct {
	// Raw is the high-entropy value delivered to the user out-of-band.
	// It is never persisted.
	Raw string

	// Hash is the hex-encoded SHA-256 digest of Raw, to be stored on the
	// user record.
	Hash string

	// ExpiresAt is the absolute expiry of the secret.
	ExpiresAt time.Time
}

// IssueResetSecret generates a fresh password-reset secret.
//
// The raw value holds 256 bits of randomness encoded as base64url. The
// caller persists only Hash and ExpiresAt; the raw value is delivered to
// the user by email (or echoed in dev mode).
func (s *TokenService) IssueResetSecret() (ResetSecret, error) {
	raw := make([]byte, resetSecretSize)
	if _, err := rand.Read(raw); err != nil {
		return ResetSecret{}, fmt.Errorf("error generating reset secret: %w", err)
	}

	rawString := base64.RawURLEncoding.EncodeToString(raw)

	return ResetSecret{
		Raw:       rawString,
		Hash:      HashResetSecret(rawString),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}, nil
}

// VerifyResetSecret reports whether rawSecret matches storedHash and the
// secret has not yet expired.
//
// The hash comparison is constant-time so the check never leaks how many
// characters of the digest matched. The expiry check is performed
// separately; both must pass.
func (s *TokenService) VerifyResetSecret(rawSecret, storedHash string, storedExpiry time.Time) bool {
	computed := HashResetSecret(rawSecret)
	hashesMatch := subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
	notExpired := !time.Now().After(storedExpiry)
	return hashesMatch && notExpired
}

// HashResetSecret returns the hex-encoded SHA-256 digest of a raw reset
// secret. This is the only form in which reset secrets are ever stored.
func HashResetSecret(rawSecret string) string {
	sum := sha256.Sum256([]byte(rawSecret))
	return hex.EncodeToString(sum[:])
}
