package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/store"
	"github.com/MKhiriev/go-user-admin/models"
)

// userAdminService is the concrete implementation of UserAdminService.
type userAdminService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserAdminService constructs a UserAdminService over the given
// repository.
func NewUserAdminService(userRepository store.UserRepository, logger *logger.Logger) UserAdminService {
	return &userAdminService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ListUsers returns one page of users matching the filter together with the
// total count.
func (s *userAdminService) ListUsers(ctx context.Context, filter models.ListUsersFilter) (models.UserPage, error) {
	log := logger.FromContext(ctx)

	if filter.Role != "" && !filter.Role.Valid() {
		return models.UserPage{}, ErrInvalidDataProvided
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return models.UserPage{}, ErrInvalidDataProvided
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	total, err := s.userRepository.CountUsers(ctx, filter)
	if err != nil {
		log.Err(err).Msg("counting users failed")
		return models.UserPage{}, fmt.Errorf("counting users failed: %w", err)
	}

	users, err := s.userRepository.ListUsers(ctx, filter)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		return models.UserPage{}, fmt.Errorf("listing users failed: %w", err)
	}

	for i := range users {
		users[i] = users[i].Sanitized()
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return models.UserPage{
		Users:      users,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages,
	}, nil
}

// UpdateUser applies a partial mutation (name/email/role/status) to the
// target user.
//
// Self-action guards run before any store write: an actor can never remove
// their own admin role or disable their own account through this path.
// Setting their own role to admin or status to active is a no-op and is
// allowed.
func (s *userAdminService) UpdateUser(ctx context.Context, actorID uuid.UUID, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Role != nil && !update.Role.Valid() {
		return models.User{}, ErrInvalidDataProvided
	}
	if update.Status != nil && !update.Status.Valid() {
		return models.User{}, ErrInvalidDataProvided
	}
	if update.Empty() {
		return models.User{}, ErrInvalidDataProvided
	}

	if update.ID == actorID {
		if update.Role != nil && *update.Role != models.RoleAdmin {
			log.Debug().Str("actor_id", actorID.String()).Msg("self-demotion rejected")
			return models.User{}, ErrSelfAction
		}
		if update.Status != nil && *update.Status == models.StatusDisabled {
			log.Debug().Str("actor_id", actorID.String()).Msg("self-disable rejected")
			return models.User{}, ErrSelfAction
		}
	}

	updatedUser, err := s.userRepository.UpdateUser(ctx, update)
	if err != nil {
		log.Err(err).Str("user_id", update.ID.String()).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return updatedUser, nil
}

// DeleteUser removes the target user. Deleting the acting identity is
// rejected before the store is touched.
func (s *userAdminService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	log := logger.FromContext(ctx)

	if targetID == actorID {
		log.Debug().Str("actor_id", actorID.String()).Msg("self-delete rejected")
		return ErrSelfAction
	}

	if err := s.userRepository.DeleteUser(ctx, targetID); err != nil {
		log.Err(err).Str("user_id", targetID.String()).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}
