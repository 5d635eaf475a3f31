package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/store"
	"github.com/MKhiriev/go-user-admin/internal/store/mocks"
	"github.com/MKhiriev/go-user-admin/models"
)

func newTestUserAdminSvc(t *testing.T, ctrl *gomock.Controller) (*userAdminService, *mocks.MockUserRepository) {
	t.Helper()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserAdminService(mockRepo, logger.Nop()).(*userAdminService)

	return svc, mockRepo
}

func rolePtr(r models.Role) *models.Role       { return &r }
func statusPtr(s models.Status) *models.Status { return &s }
func strPtr(s string) *string                  { return &s }

// ── ListUsers ────────────────────────────────────────────────────────────────

func TestUserAdminService_ListUsers_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()

	users := []models.User{
		{ID: uuid.New(), Name: "Alice", PasswordHash: "$2a$12$secret"},
		{ID: uuid.New(), Name: "Bob", PasswordHash: "$2a$12$secret"},
	}

	mockRepo.EXPECT().CountUsers(ctx, gomock.Any()).Return(int64(12), nil)
	mockRepo.EXPECT().ListUsers(ctx, gomock.Any()).Return(users, nil)

	page, err := svc.ListUsers(ctx, models.ListUsersFilter{Page: 2, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Users, 2)
	for _, u := range page.Users {
		assert.Empty(t, u.PasswordHash, "listed users must be sanitized")
	}
}

func TestUserAdminService_ListUsers_ClampsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().CountUsers(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, filter models.ListUsersFilter) (int64, error) {
			assert.Equal(t, 1, filter.Page)
			assert.Equal(t, 10, filter.Limit)
			return 0, nil
		},
	)
	mockRepo.EXPECT().ListUsers(ctx, gomock.Any()).Return(nil, nil)

	page, err := svc.ListUsers(ctx, models.ListUsersFilter{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages, "an empty listing still reports one page")
}

func TestUserAdminService_ListUsers_InvalidEnums(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.ListUsers(ctx, models.ListUsersFilter{Role: "superadmin"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.ListUsers(ctx, models.ListUsersFilter{Status: "banned"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── UpdateUser ───────────────────────────────────────────────────────────────

func TestUserAdminService_UpdateUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()

	actorID := uuid.New()
	targetID := uuid.New()
	update := models.UserUpdate{ID: targetID, Name: strPtr("Renamed"), Role: rolePtr(models.RoleAdmin)}

	mockRepo.EXPECT().UpdateUser(ctx, update).Return(models.User{ID: targetID, Name: "Renamed", Role: models.RoleAdmin}, nil)

	updated, err := svc.UpdateUser(ctx, actorID, update)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestUserAdminService_UpdateUser_SelfDemotionRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()
	actorID := uuid.New()

	_, err := svc.UpdateUser(ctx, actorID, models.UserUpdate{ID: actorID, Role: rolePtr(models.RoleUser)})
	require.ErrorIs(t, err, ErrSelfAction)
}

func TestUserAdminService_UpdateUser_SelfDisableRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()
	actorID := uuid.New()

	_, err := svc.UpdateUser(ctx, actorID, models.UserUpdate{ID: actorID, Status: statusPtr(models.StatusDisabled)})
	require.ErrorIs(t, err, ErrSelfAction)
}

func TestUserAdminService_UpdateUser_SelfNoOpMutationsAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()
	actorID := uuid.New()

	// keeping one's own admin role or active status changes nothing and passes
	update := models.UserUpdate{ID: actorID, Role: rolePtr(models.RoleAdmin), Status: statusPtr(models.StatusActive)}
	mockRepo.EXPECT().UpdateUser(ctx, update).Return(models.User{ID: actorID, Role: models.RoleAdmin}, nil)

	_, err := svc.UpdateUser(ctx, actorID, update)
	require.NoError(t, err)
}

func TestUserAdminService_UpdateUser_EmptyUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestUserAdminSvc(t, ctrl)

	_, err := svc.UpdateUser(context.Background(), uuid.New(), models.UserUpdate{ID: uuid.New()})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserAdminService_UpdateUser_InvalidRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestUserAdminSvc(t, ctrl)

	_, err := svc.UpdateUser(context.Background(), uuid.New(), models.UserUpdate{ID: uuid.New(), Role: rolePtr("root")})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserAdminService_UpdateUser_TargetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()

	update := models.UserUpdate{ID: uuid.New(), Name: strPtr("Ghost")}
	mockRepo.EXPECT().UpdateUser(ctx, update).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.UpdateUser(ctx, uuid.New(), update)
	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}

// ── DeleteUser ───────────────────────────────────────────────────────────────

func TestUserAdminService_DeleteUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()
	targetID := uuid.New()

	mockRepo.EXPECT().DeleteUser(ctx, targetID).Return(nil)

	require.NoError(t, svc.DeleteUser(ctx, uuid.New(), targetID))
}

func TestUserAdminService_DeleteUser_SelfDeleteRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestUserAdminSvc(t, ctrl)
	actorID := uuid.New()

	err := svc.DeleteUser(context.Background(), actorID, actorID)
	require.ErrorIs(t, err, ErrSelfAction)
}

func TestUserAdminService_DeleteUser_TargetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestUserAdminSvc(t, ctrl)
	ctx := context.Background()
	targetID := uuid.New()

	mockRepo.EXPECT().DeleteUser(ctx, targetID).Return(store.ErrNoUserWasFound)

	err := svc.DeleteUser(ctx, uuid.New(), targetID)
	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}
