package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/service"
	"github.com/MKhiriev/go-user-admin/models"
)

// mockAuthService is a hand-rolled service.AuthService double with pluggable
// behaviour per method.
type mockAuthService struct {
	registerFunc             func(ctx context.Context, name, email, password string) (models.User, error)
	loginFunc                func(ctx context.Context, email, password string) (models.User, error)
	changePasswordFunc       func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	requestPasswordResetFunc func(ctx context.Context, email string) (service.ResetRequest, error)
	resetPasswordFunc        func(ctx context.Context, rawSecret, newPassword string) (models.User, error)
	getUserFunc              func(ctx context.Context, id uuid.UUID) (models.User, error)
	createTokenFunc          func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFunc           func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return m.registerFunc(ctx, name, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	return m.changePasswordFunc(ctx, userID, currentPassword, newPassword)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) (service.ResetRequest, error) {
	return m.requestPasswordResetFunc(ctx, email)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, rawSecret, newPassword string) (models.User, error) {
	return m.resetPasswordFunc(ctx, rawSecret, newPassword)
}

func (m *mockAuthService) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	return m.getUserFunc(ctx, id)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFunc != nil {
		return m.createTokenFunc(ctx, user)
	}
	return models.Token{SignedString: "signed-session-token", UserID: user.ID}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFunc(ctx, tokenString)
}

// mockUserAdminService is a hand-rolled service.UserAdminService double.
type mockUserAdminService struct {
	listUsersFunc  func(ctx context.Context, filter models.ListUsersFilter) (models.UserPage, error)
	updateUserFunc func(ctx context.Context, actorID uuid.UUID, update models.UserUpdate) (models.User, error)
	deleteUserFunc func(ctx context.Context, actorID, targetID uuid.UUID) error
}

func (m *mockUserAdminService) ListUsers(ctx context.Context, filter models.ListUsersFilter) (models.UserPage, error) {
	return m.listUsersFunc(ctx, filter)
}

func (m *mockUserAdminService) UpdateUser(ctx context.Context, actorID uuid.UUID, update models.UserUpdate) (models.User, error) {
	return m.updateUserFunc(ctx, actorID, update)
}

func (m *mockUserAdminService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	return m.deleteUserFunc(ctx, actorID, targetID)
}

func testHandlerConfig() HandlerConfig {
	return HandlerConfig{
		Production:     false,
		TokenDuration:  3600,
		AuthRateLimit:  100,
		AuthRateWindow: 60,
	}
}

func newTestHandler(t *testing.T, authSvc service.AuthService, adminSvc service.UserAdminService) *Handler {
	t.Helper()

	return NewHandler(&service.Services{
		AuthService:      authSvc,
		UserAdminService: adminSvc,
	}, testHandlerConfig(), logger.Nop())
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}
