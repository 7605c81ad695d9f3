package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"labvoice/internal/agent"
	"labvoice/internal/store"
)

// maxUploadBytes bounds a single report payload.
const maxUploadBytes = 4 << 20

// UploadReport accepts a raw report payload, validates it and runs the
// insight pipeline.
// POST /api/reports
func (h *Handler) UploadReport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result, validation, err := h.upload.Upload(r.Context(), raw)
	if err != nil {
		log.Printf("[ERROR] upload report: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to process report")
		return
	}
	if !validation.Valid {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success":  false,
			"errors":   validation.Errors,
			"warnings": validation.Warnings,
		})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"report_id": result.ReportID,
		"patient":   result.Insights.PatientName,
		"test_date": result.Insights.TestDate,
		"insights": map[string]any{
			"headline_insights": result.Insights.HeadlineInsights,
			"risk_tags":         result.Insights.RiskTags,
			"flagged_count":     len(result.Insights.FlaggedValues),
		},
		"warnings": result.Warnings,
	})
}

// GetReport returns a stored report with its derived insights.
// GET /api/reports/{id}
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	rec, err := h.upload.Get(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Report not found")
			return
		}
		log.Printf("[ERROR] get report %s: %v", reportID, err)
		respondError(w, http.StatusInternalServerError, "Failed to load report")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"report":   rec.Report,
		"insights": rec.Insights,
	})
}

// ListReports lists stored report ids.
// GET /api/reports
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ids, err := h.upload.ListIDs(r.Context())
	if err != nil {
		log.Printf("[ERROR] list reports: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"report_ids": ids,
		"count":      len(ids),
	})
}

// GetReportContext returns the plain-text context block the agent sees for a
// report. Useful for debugging prompt inputs.
// GET /api/reports/{id}/context
func (h *Handler) GetReportContext(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	rec, err := h.upload.Get(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Report not found")
			return
		}
		log.Printf("[ERROR] get report %s: %v", reportID, err)
		respondError(w, http.StatusInternalServerError, "Failed to load report")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"context": agent.FormatReportContext(rec.Report),
	})
}

// GetRawPayloadURL returns a presigned link to the archived upload bytes.
// GET /api/reports/{id}/raw-url
func (h *Handler) GetRawPayloadURL(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	url, err := h.upload.RawPayloadURL(r.Context(), reportID)
	if err != nil {
		log.Printf("[ERROR] raw payload url for %s: %v", reportID, err)
		respondError(w, http.StatusNotFound, "Raw payload not available")
		return
	}
	if url == "" {
		respondError(w, http.StatusNotFound, "Raw payload not available")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     url,
	})
}
