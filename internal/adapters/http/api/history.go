package api

import (
	"net/http"
	"strings"

	"github.com/okian/smokehouse/internal/domain/model"
)

// HistoryHandler handles historical session requests.
type HistoryHandler struct {
	deps Dependencies
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps Dependencies) *HistoryHandler {
	return &HistoryHandler{deps: deps}
}

type historyResponse struct {
	MeatType string          `json:"meat_type"`
	Count    int             `json:"count"`
	Sessions []model.Session `json:"sessions"`
}

// HandleGetHistory handles GET /history?meat_type=... requests.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	meatType := strings.TrimSpace(r.URL.Query().Get("meat_type"))
	if meatType == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, ErrMissingMeatType))
		return
	}

	sessions, err := h.deps.History(r.Context(), meatType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	writeJSON(w, http.StatusOK, historyResponse{MeatType: meatType, Count: len(sessions), Sessions: sessions})
}
