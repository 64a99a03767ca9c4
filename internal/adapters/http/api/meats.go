package api

import "net/http"

// MeatsHandler serves the meat profile table.
type MeatsHandler struct {
	deps Dependencies
}

// NewMeatsHandler creates a new meats handler.
func NewMeatsHandler(deps Dependencies) *MeatsHandler {
	return &MeatsHandler{deps: deps}
}

// HandleGetMeats handles GET /meats requests.
func (h *MeatsHandler) HandleGetMeats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.MeatTypes())
}
