package api

import (
	"net/http"

	"github.com/okian/aura/internal/domain/aura"
)

type modesResponse struct {
	Modes []aura.Info `json:"modes"`
}

// ModesHandler lists the render modes.
type ModesHandler struct {
	body modesResponse
}

// NewModesHandler creates a new modes handler.
func NewModesHandler() *ModesHandler {
	return &ModesHandler{body: modesResponse{Modes: aura.DescribeAll()}}
}

// HandleModes handles GET /modes requests.
func (h *ModesHandler) HandleModes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.body)
}
