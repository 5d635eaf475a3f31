package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-admin/internal/utils"
	"github.com/MKhiriev/go-user-admin/models"
)

// respondError writes the standard JSON failure envelope. The status code
// and the client-facing message both come from the sentinel matched in the
// error chain, so messages stay stable no matter how deep the wrap is.
func respondError(w http.ResponseWriter, err error) {
	status, sentinel := mapError(err)
	utils.WriteJSON(w, models.Response{Success: false, Message: sentinel.Error()}, status)
}

// respondErrorStatus writes the failure envelope with an explicit status
// and message, for cases where the error chain must not leak to the client.
func respondErrorStatus(w http.ResponseWriter, message string, statusCode int) {
	utils.WriteJSON(w, models.Response{Success: false, Message: message}, statusCode)
}
