// Package service orchestrates the report pipeline behind the HTTP boundary:
// validate, derive insights, persist, archive. All derivation is pure; the
// services only add ids, timestamps and storage.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"labvoice/internal/archive"
	"labvoice/internal/report"
	"labvoice/internal/store"
)

// rawPayloadName is the blob name the original upload bytes are archived
// under, per report id.
const rawPayloadName = "raw.json"

type UploadService struct {
	reports store.ReportStore
	archive archive.Store
}

func NewUploadService(reports store.ReportStore, archiveStore archive.Store) *UploadService {
	return &UploadService{reports: reports, archive: archiveStore}
}

// UploadResult is what an accepted upload returns to the client.
type UploadResult struct {
	ReportID string
	Insights report.ReportInsights
	Warnings []string
}

// Upload validates the raw payload and, when it is accepted, runs the insight
// pipeline and persists the result under a fresh report id. A failed
// validation halts everything: no id is assigned, nothing is written.
func (s *UploadService) Upload(ctx context.Context, raw []byte) (UploadResult, report.ValidationResult, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return UploadResult{}, report.ValidationResult{
			Valid:    false,
			Errors:   []string{"Report must be a valid JSON object"},
			Warnings: []string{},
		}, nil
	}

	validation := report.Validate(payload)
	if !validation.Valid {
		return UploadResult{}, validation, nil
	}

	var healthReport report.HealthReport
	if err := json.Unmarshal(raw, &healthReport); err != nil {
		return UploadResult{}, validation, fmt.Errorf("decode report: %w", err)
	}

	healthReport.ReportID = NewReportID()
	healthReport.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	insights := report.GenerateInsights(healthReport)

	if err := s.reports.PutReport(ctx, healthReport.ReportID, store.StoredReport{
		Report:   healthReport,
		Insights: insights,
	}); err != nil {
		return UploadResult{}, validation, fmt.Errorf("store report: %w", err)
	}

	if s.archive != nil {
		// Best effort: losing the raw copy never fails the upload.
		if err := s.archive.Put(ctx, healthReport.ReportID, rawPayloadName, raw); err != nil {
			log.Printf("archive raw payload for %s: %v", healthReport.ReportID, err)
		}
	}

	return UploadResult{
		ReportID: healthReport.ReportID,
		Insights: insights,
		Warnings: validation.Warnings,
	}, validation, nil
}

// Get returns a stored report with its insights.
func (s *UploadService) Get(ctx context.Context, reportID string) (store.StoredReport, error) {
	return s.reports.GetReport(ctx, strings.TrimSpace(reportID))
}

// ListIDs lists every stored report id.
func (s *UploadService) ListIDs(ctx context.Context) ([]string, error) {
	return s.reports.ListReportIDs(ctx)
}

// RawPayloadURL returns a presigned link to the archived raw payload, when
// the archive backend supports links.
func (s *UploadService) RawPayloadURL(ctx context.Context, reportID string) (string, error) {
	if s.archive == nil {
		return "", nil
	}
	return s.archive.GetURL(ctx, strings.TrimSpace(reportID), rawPayloadName)
}

// NewReportID generates an opaque, unique id for an accepted upload.
func NewReportID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("report_%d_%s", time.Now().UnixMilli(), suffix)
}
