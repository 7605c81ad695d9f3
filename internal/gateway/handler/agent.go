package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"labvoice/internal/agent"
	"labvoice/internal/store"
)

type askRequest struct {
	ReportID string `json:"report_id"`
	Question string `json:"question"`
}

// Ask answers a patient question about a stored report via the agent.
// POST /api/agent/ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.ask.Ask(r.Context(), req.ReportID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusNotFound, "Report not found")
		case errors.Is(err, agent.ErrInvalidJSON):
			respondError(w, http.StatusBadGateway, "Agent returned an unusable answer")
		default:
			log.Printf("[ERROR] agent ask for %s: %v", req.ReportID, err)
			respondError(w, http.StatusInternalServerError, "Failed to answer question")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"answer":  answer,
	})
}
