package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/service"
	"github.com/MKhiriev/go-user-admin/internal/store"
	"github.com/MKhiriev/go-user-admin/internal/utils"
	"github.com/MKhiriev/go-user-admin/models"
)

// sessionCookieName is the cookie under which the session JWT travels for
// browser clients. API clients may send the same token as a bearer header.
const sessionCookieName = "token"

// auth is an HTTP middleware that enforces JWT-based session authentication.
//
// It extracts the session token from the "token" cookie, falling back to the
// "Authorization: Bearer" header, validates it via
// [service.AuthService.ParseToken], loads the account it names, and — on
// success — stores the authenticated [models.User] in the request context
// under [utils.IdentityCtxKey] before delegating to the next handler.
//
// The middleware rejects requests in the following cases:
//   - No token is present in either carrier (401, [ErrNotAuthenticated]).
//   - The token is expired, tampered with, or otherwise unparsable (401).
//   - The token is valid but its subject no longer exists (401). A deleted
//     account invalidates all of its outstanding sessions this way.
//   - The account is disabled (403, [service.ErrAccountDisabled]).
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString := sessionTokenFromRequest(r)
		if tokenString == "" {
			log.Err(ErrNotAuthenticated).Send()
			respondError(w, ErrNotAuthenticated)
			return
		}

		ctx := r.Context()

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("session token rejected")
			respondErrorStatus(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		user, err := h.services.AuthService.GetUser(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				log.Err(err).Str("user_id", token.UserID.String()).Msg("session subject no longer exists")
				respondErrorStatus(w, ErrNotAuthenticated.Error(), http.StatusUnauthorized)
				return
			}
			log.Err(err).Msg("error occurred during loading session subject")
			respondError(w, err)
			return
		}

		if user.Status == models.StatusDisabled {
			log.Warn().Str("user_id", user.ID.String()).Msg("disabled account presented a valid session")
			respondError(w, service.ErrAccountDisabled)
			return
		}

		// Store the authenticated user in the context so that downstream
		// handlers can act on the caller's identity and role without a
		// second lookup. Credential fields are stripped first; nothing
		// downstream needs them.
		ctx = utils.WithIdentity(ctx, user.Sanitized())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates a route group to callers whose authenticated identity
// carries the admin role. It must be mounted after [Handler.auth].
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		identity, ok := utils.IdentityFromContext(r.Context())
		if !ok {
			log.Err(ErrNotAuthenticated).Msg("admin gate reached without identity in context")
			respondError(w, ErrNotAuthenticated)
			return
		}

		if identity.Role != models.RoleAdmin {
			log.Warn().Str("user_id", identity.ID.String()).Msg("non-admin attempted an admin operation")
			respondError(w, ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sessionTokenFromRequest extracts the session JWT from the request,
// preferring the session cookie over the "Authorization" header. It returns
// an empty string when neither carrier holds a token.
func sessionTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if token, err := utils.ParseBearerToken(r.Header.Get("Authorization")); err == nil {
		return token
	}

	return ""
}
