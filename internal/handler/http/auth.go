package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/service"
	"github.com/MKhiriev/go-user-admin/internal/store"
	"github.com/MKhiriev/go-user-admin/internal/utils"
	"github.com/MKhiriev/go-user-admin/models"
)

// genericResetMessage is returned by forgot-password regardless of whether
// the email matched an account, so the endpoint cannot be used to probe
// which addresses are registered.
const genericResetMessage = "If that email exists, a reset link has been sent."

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondErrorStatus(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid registration data provided")
			respondError(w, err)
			return
		case errors.Is(err, service.ErrWeakPassword):
			log.Err(err).Msg("registration password below strength policy")
			respondError(w, err)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			respondError(w, err)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sanitized := registeredUser.Sanitized()
	h.setSessionCookie(w, token.SignedString)
	utils.WriteJSON(w, models.Response{
		Success: true,
		Message: "User registered successfully",
		User:    &sanitized,
		Token:   token.SignedString,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondErrorStatus(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid login data provided")
			respondError(w, err)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("login rejected")
			respondError(w, err)
			return
		case errors.Is(err, service.ErrAccountDisabled):
			log.Warn().Msg("disabled account attempted to log in")
			respondError(w, err)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("user_id", foundUser.ID.String()).Msg("user successfully logged in")

	sanitized := foundUser.Sanitized()
	h.setSessionCookie(w, token.SignedString)
	utils.WriteJSON(w, models.Response{
		Success: true,
		Message: "Login successful",
		User:    &sanitized,
		Token:   token.SignedString,
	}, http.StatusOK)
}

// logout clears the session cookie. It is intentionally unauthenticated and
// idempotent: stateless JWT sessions cannot be revoked server-side, so the
// only meaningful action is removing the cookie from the browser.
func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.Response{
		Success: true,
		Message: "Logged out successfully",
	}, http.StatusOK)
}

// me returns the authenticated caller's own sanitized profile.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		log.Err(ErrNotAuthenticated).Msg("me endpoint reached without identity in context")
		respondError(w, ErrNotAuthenticated)
		return
	}

	sanitized := identity.Sanitized()
	utils.WriteJSON(w, models.Response{
		Success: true,
		User:    &sanitized,
	}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		log.Err(ErrNotAuthenticated).Msg("change-password reached without identity in context")
		respondError(w, ErrNotAuthenticated)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondErrorStatus(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	err := h.services.AuthService.ChangePassword(ctx, identity.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided),
			errors.Is(err, service.ErrWeakPassword):
			log.Err(err).Msg("change-password rejected")
			respondError(w, err)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("current password did not match")
			respondErrorStatus(w, "current password is incorrect", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during password change")
			respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.Response{
		Success: true,
		Message: "Password changed successfully",
	}, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondErrorStatus(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		log.Err(service.ErrInvalidDataProvided).Msg("forgot-password called without an email")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	result, err := h.services.AuthService.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during password-reset request")
		respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	response := models.Response{
		Success: true,
		Message: genericResetMessage,
	}

	// Outside production, when no mail transport is configured, the raw
	// secret is echoed so the reset flow remains testable end-to-end.
	if !h.cfg.Production && result.Issued && !result.Delivered {
		response.ResetToken = result.RawSecret
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondErrorStatus(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	resetUser, err := h.services.AuthService.ResetPassword(ctx, req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided),
			errors.Is(err, service.ErrWeakPassword):
			log.Err(err).Msg("reset-password rejected")
			respondError(w, err)
			return
		case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
			log.Err(err).Msg("reset secret rejected")
			respondError(w, err)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during password reset")
			respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Info().Str("user_id", resetUser.ID.String()).Msg("password reset completed")

	utils.WriteJSON(w, models.Response{
		Success: true,
		Message: "Password has been reset successfully",
	}, http.StatusOK)
}
