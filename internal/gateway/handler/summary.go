package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"labvoice/internal/store"
	"labvoice/internal/transcript"
)

type createSummaryRequest struct {
	ReportID   string               `json:"report_id"`
	Transcript []transcript.Message `json:"transcript"`
}

// CreateSummary derives and stores a session summary from a voice transcript.
// POST /api/summaries
func (h *Handler) CreateSummary(w http.ResponseWriter, r *http.Request) {
	var req createSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ReportID == "" {
		respondError(w, http.StatusBadRequest, "report_id is required")
		return
	}

	summary, err := h.summaries.Generate(r.Context(), req.ReportID, req.Transcript)
	if err != nil {
		log.Printf("[ERROR] generate summary for %s: %v", req.ReportID, err)
		respondError(w, http.StatusInternalServerError, "Failed to generate summary")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"summary": summary,
	})
}

// GetSummary returns the stored summary for a report id.
// GET /api/summaries/{id}
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	summary, err := h.summaries.Get(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Summary not found")
			return
		}
		log.Printf("[ERROR] get summary %s: %v", reportID, err)
		respondError(w, http.StatusInternalServerError, "Failed to load summary")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"summary": summary,
	})
}
