package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/service"
	"github.com/MKhiriev/go-user-admin/internal/store"
	"github.com/MKhiriev/go-user-admin/internal/utils"
	"github.com/MKhiriev/go-user-admin/models"
)

// listUsers returns one page of the user directory. Pagination, search, and
// filter criteria arrive as query parameters; out-of-range values are
// clamped by the service layer rather than rejected.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter := listFilterFromQuery(r)

	page, err := h.services.UserAdminService.ListUsers(ctx, filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid list filter provided")
			respondError(w, err)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user listing")
			respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.ListUsersResponse{
		Success:    true,
		Users:      page.Users,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		log.Err(ErrNotAuthenticated).Msg("update-user reached without identity in context")
		respondError(w, ErrNotAuthenticated)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("malformed user id in path")
		respondErrorStatus(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondErrorStatus(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}
	update.ID = targetID

	updatedUser, err := h.services.UserAdminService.UpdateUser(ctx, identity.ID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided),
			errors.Is(err, store.ErrNothingToUpdate):
			log.Err(err).Msg("invalid update provided")
			respondError(w, err)
			return
		case errors.Is(err, service.ErrSelfAction):
			log.Warn().Str("user_id", identity.ID.String()).Msg("admin attempted a self-targeting mutation")
			respondError(w, err)
			return
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Str("target_id", targetID.String()).Msg("update target not found")
			respondError(w, err)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			respondError(w, err)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user update")
			respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	sanitized := updatedUser.Sanitized()
	utils.WriteJSON(w, models.Response{
		Success: true,
		Message: "User updated successfully",
		User:    &sanitized,
	}, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.IdentityFromContext(ctx)
	if !ok {
		log.Err(ErrNotAuthenticated).Msg("delete-user reached without identity in context")
		respondError(w, ErrNotAuthenticated)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("malformed user id in path")
		respondErrorStatus(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.UserAdminService.DeleteUser(ctx, identity.ID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfAction):
			log.Warn().Str("user_id", identity.ID.String()).Msg("admin attempted to delete their own account")
			respondError(w, err)
			return
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Str("target_id", targetID.String()).Msg("delete target not found")
			respondError(w, err)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user deletion")
			respondErrorStatus(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.Response{
		Success: true,
		Message: "User deleted successfully",
	}, http.StatusOK)
}

// listFilterFromQuery decodes the listing query parameters. Unparsable
// numbers fall back to zero and are clamped downstream.
func listFilterFromQuery(r *http.Request) models.ListUsersFilter {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return models.ListUsersFilter{
		Page:    page,
		Limit:   limit,
		Search:  q.Get("search"),
		Role:    models.Role(q.Get("role")),
		Status:  models.Status(q.Get("status")),
		SortBy:  q.Get("sortBy"),
		SortAsc: q.Get("sortOrder") == "asc",
	}
}
