package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/service"
	"github.com/MKhiriev/go-user-admin/internal/store"
	"github.com/MKhiriev/go-user-admin/models"
)

// ── register ─────────────────────────────────────────────────────────────────

func TestHandler_Register_Success(t *testing.T) {
	userID := uuid.New()
	authSvc := &mockAuthService{
		registerFunc: func(_ context.Context, name, email, password string) (models.User, error) {
			assert.Equal(t, "Alice", name)
			assert.Equal(t, "alice@example.com", email)
			return models.User{ID: userID, Name: name, Email: email, Role: models.RoleUser, Status: models.StatusActive}, nil
		},
	}
	h := newTestHandler(t, authSvc, nil)

	body := `{"name":"Alice","email":"alice@example.com","password":"Sup3r-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, "signed-session-token", resp.Token)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "register must set the session cookie")
	assert.Equal(t, "signed-session-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestHandler_Register_EmailTaken(t *testing.T) {
	authSvc := &mockAuthService{
		registerFunc: func(context.Context, string, string, string) (models.User, error) {
			// services wrap sentinels with operation context
			return models.User{}, fmt.Errorf("user creation ended with error: %w", store.ErrEmailAlreadyExists)
		},
	}
	h := newTestHandler(t, authSvc, nil)

	body := `{"name":"Alice","email":"taken@example.com","password":"Sup3r-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, store.ErrEmailAlreadyExists.Error(), resp.Message,
		"clients must see the stable sentinel message, not the wrap chain")
}

func TestHandler_Register_WeakPassword(t *testing.T) {
	authSvc := &mockAuthService{
		registerFunc: func(context.Context, string, string, string) (models.User, error) {
			return models.User{}, service.ErrWeakPassword
		},
	}
	h := newTestHandler(t, authSvc, nil)

	body := `{"name":"Alice","email":"alice@example.com","password":"weak"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Register_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── login ────────────────────────────────────────────────────────────────────

func TestHandler_Login_Success(t *testing.T) {
	userID := uuid.New()
	authSvc := &mockAuthService{
		loginFunc: func(_ context.Context, email, password string) (models.User, error) {
			return models.User{ID: userID, Email: email, Status: models.StatusActive}, nil
		},
	}
	h := newTestHandler(t, authSvc, nil)

	body := `{"email":"alice@example.com","password":"Sup3r-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, sessionCookie(rec))
}

func TestHandler_Login_IndistinguishableFailures(t *testing.T) {
	// unknown email and wrong password produce byte-identical responses
	responses := make([]string, 0, 2)

	for i := 0; i < 2; i++ {
		authSvc := &mockAuthService{
			loginFunc: func(context.Context, string, string) (models.User, error) {
				return models.User{}, service.ErrInvalidCredentials
			},
		}
		h := newTestHandler(t, authSvc, nil)

		body := `{"email":"whoever@example.com","password":"whatever1A"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Init().ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		responses = append(responses, rec.Body.String())
	}

	assert.Equal(t, responses[0], responses[1])
}

func TestHandler_Login_DisabledAccount(t *testing.T) {
	authSvc := &mockAuthService{
		loginFunc: func(context.Context, string, string) (models.User, error) {
			return models.User{}, service.ErrAccountDisabled
		},
	}
	h := newTestHandler(t, authSvc, nil)

	body := `{"email":"alice@example.com","password":"Sup3r-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, sessionCookie(rec), "no session may be issued for a disabled account")
}

// ── logout ───────────────────────────────────────────────────────────────────

func TestHandler_Logout_ClearsCookieWithoutSession(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge, "logout must expire the cookie")
}

// ── forgot-password ──────────────────────────────────────────────────────────

func TestHandler_ForgotPassword_GenericMessageForBothOutcomes(t *testing.T) {
	cases := []struct {
		name   string
		result service.ResetRequest
	}{
		{"known email", service.ResetRequest{Issued: true, Delivered: true}},
		{"unknown email", service.ResetRequest{}},
	}

	bodies := make(map[string]string, len(cases))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			authSvc := &mockAuthService{
				requestPasswordResetFunc: func(context.Context, string) (service.ResetRequest, error) {
					return tc.result, nil
				},
			}
			h := newTestHandler(t, authSvc, nil)

			body := `{"email":"whoever@example.com"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", strings.NewReader(body))
			rec := httptest.NewRecorder()

			h.Init().ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			resp := decodeResponse(t, rec)
			assert.True(t, resp.Success)
			assert.Equal(t, genericResetMessage, resp.Message)

			bodies[tc.name] = rec.Body.String()
		})
	}

	assert.Equal(t, bodies["known email"], bodies["unknown email"],
		"responses must not reveal whether the email is registered")
}

func TestHandler_ForgotPassword_DevModeEchoesSecret(t *testing.T) {
	authSvc := &mockAuthService{
		requestPasswordResetFunc: func(context.Context, string) (service.ResetRequest, error) {
			return service.ResetRequest{Issued: true, RawSecret: "raw-reset-secret"}, nil
		},
	}
	h := newTestHandler(t, authSvc, nil) // Production: false

	body := `{"email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "raw-reset-secret", decodeResponse(t, rec).ResetToken)
}

func TestHandler_ForgotPassword_ProductionNeverEchoesSecret(t *testing.T) {
	authSvc := &mockAuthService{
		requestPasswordResetFunc: func(context.Context, string) (service.ResetRequest, error) {
			return service.ResetRequest{Issued: true, RawSecret: "raw-reset-secret"}, nil
		},
	}

	cfg := testHandlerConfig()
	cfg.Production = true
	h := NewHandler(&service.Services{AuthService: authSvc}, cfg, logger.Nop())

	body := `{"email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeResponse(t, rec).ResetToken)
}

func TestHandler_ForgotPassword_MissingEmail(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── reset-password ───────────────────────────────────────────────────────────

func TestHandler_ResetPassword_Success(t *testing.T) {
	authSvc := &mockAuthService{
		resetPasswordFunc: func(_ context.Context, rawSecret, newPassword string) (models.User, error) {
			assert.Equal(t, "raw-reset-secret", rawSecret)
			assert.Equal(t, "New-secret1", newPassword)
			return models.User{ID: uuid.New()}, nil
		},
	}
	h := newTestHandler(t, authSvc, nil)

	body := `{"token":"raw-reset-secret","newPassword":"New-secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/reset-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}

func TestHandler_ResetPassword_InvalidSecret(t *testing.T) {
	authSvc := &mockAuthService{
		resetPasswordFunc: func(context.Context, string, string) (models.User, error) {
			return models.User{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(t, authSvc, nil)

	body := `{"token":"stale","newPassword":"New-secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/reset-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
