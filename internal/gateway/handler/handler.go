// Package handler exposes the report pipeline over HTTP: uploads, stored
// report reads, session summaries, reference ranges, agent Q&A and the voice
// session relay.
package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"labvoice/internal/gateway/service"
	"labvoice/internal/gateway/voice"
)

type Handler struct {
	upload    *service.UploadService
	summaries *service.SummaryService
	ask       *service.AskService
	hub       *voice.Hub
}

func NewHandler(upload *service.UploadService, summaries *service.SummaryService, ask *service.AskService, hub *voice.Hub) *Handler {
	return &Handler{
		upload:    upload,
		summaries: summaries,
		ask:       ask,
		hub:       hub,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/reports", h.UploadReport).Methods("POST")
	api.HandleFunc("/reports", h.ListReports).Methods("GET")
	api.HandleFunc("/reports/{id}", h.GetReport).Methods("GET")
	api.HandleFunc("/reports/{id}/context", h.GetReportContext).Methods("GET")
	api.HandleFunc("/reports/{id}/raw-url", h.GetRawPayloadURL).Methods("GET")

	api.HandleFunc("/summaries", h.CreateSummary).Methods("POST")
	api.HandleFunc("/summaries/{id}", h.GetSummary).Methods("GET")

	api.HandleFunc("/reference-ranges", h.ListReferenceRanges).Methods("GET")
	api.HandleFunc("/reference-ranges/{name}", h.GetReferenceRange).Methods("GET")

	api.HandleFunc("/agent/ask", h.Ask).Methods("POST")

	api.HandleFunc("/voice/ws", h.VoiceSession).Methods("GET")

	router.HandleFunc("/health", h.Health).Methods("GET")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
