package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-admin/internal/service"
	"github.com/MKhiriev/go-user-admin/internal/store"
)

var errorStatusMap = map[error]int{
	ErrBadRequest:       http.StatusBadRequest,
	ErrNotAuthenticated: http.StatusUnauthorized,
	ErrForbidden:        http.StatusForbidden,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWeakPassword:            http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrAccountDisabled:         http.StatusForbidden,
	service.ErrSelfAction:              http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusBadRequest,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrNothingToUpdate:    http.StatusBadRequest,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	status, _ := mapError(err)
	return status
}

// mapError resolves err to the matched sentinel and its HTTP status. The
// sentinel is what clients see: wrap prefixes and driver detail stay in the
// logs. Unmatched errors surface as a generic 500.
func mapError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, ErrInternal
}
