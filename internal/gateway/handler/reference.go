package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"labvoice/internal/report"
)

// ListReferenceRanges returns the canonical reference table.
// GET /api/reference-ranges
func (h *Handler) ListReferenceRanges(w http.ResponseWriter, r *http.Request) {
	refs := report.AllReferences()
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"ranges":  refs,
		"count":   len(refs),
	})
}

// GetReferenceRange looks up one canonical range by lab name. The name is
// normalized before lookup, so "Vitamin D" and "vitamin_d" both resolve.
// GET /api/reference-ranges/{name}
func (h *Handler) GetReferenceRange(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	normalized := report.NormalizeLabName(name)
	ref, ok := report.LookupReference(normalized)
	if !ok {
		respondError(w, http.StatusNotFound, "No reference range for lab value")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"name":        normalized,
		"range":       ref,
		"description": report.DescribeLab(normalized),
	})
}
