package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-admin/internal/utils"
)

type healthResponse struct {
	Status string `json:"status"`
	Env    string `json:"env"`
}

// health answers liveness probes. No auth, no rate limit.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	env := "development"
	if h.cfg.Production {
		env = "production"
	}

	utils.WriteJSON(w, healthResponse{Status: "ok", Env: env}, http.StatusOK)
}
