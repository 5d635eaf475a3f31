package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-admin/internal/store"
)

func TestStatusFromError_MatchesThroughWraps(t *testing.T) {
	err := fmt.Errorf("user deletion failed: %w", store.ErrNoUserWasFound)
	assert.Equal(t, http.StatusNotFound, statusFromError(err))
}

func TestRespondError_SurfacesSentinelMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	respondError(rec, fmt.Errorf("user creation ended with error: %w", store.ErrEmailAlreadyExists))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, store.ErrEmailAlreadyExists.Error(), decodeResponse(t, rec).Message)
}

func TestRespondError_UnmappedErrorStaysGeneric(t *testing.T) {
	rec := httptest.NewRecorder()

	respondError(rec, errors.New("pq: connection reset by peer"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, ErrInternal.Error(), resp.Message, "driver detail must never reach the client")
}
