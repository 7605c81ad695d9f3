// Package store holds the report and summary persistence boundary. The core
// pipeline treats it as an opaque collaborator with put/get semantics keyed by
// report id; each id is generated fresh and written exactly once, so no
// backend implements locking.
package store

import (
	"context"
	"errors"

	"labvoice/internal/report"
	"labvoice/internal/transcript"
)

var ErrNotFound = errors.New("store: not found")

// StoredReport is the unit owned by the report store: the accepted report and
// the insights computed once at upload time. Immutable after creation.
type StoredReport struct {
	Report   report.HealthReport   `json:"report"`
	Insights report.ReportInsights `json:"insights"`
}

// ReportStore persists accepted reports with their derived insights.
type ReportStore interface {
	PutReport(ctx context.Context, id string, rec StoredReport) error
	GetReport(ctx context.Context, id string) (StoredReport, error)
	ListReportIDs(ctx context.Context) ([]string, error)
}

// SummaryStore persists session summaries keyed by report id.
type SummaryStore interface {
	PutSummary(ctx context.Context, id string, summary transcript.SessionSummary) error
	GetSummary(ctx context.Context, id string) (transcript.SessionSummary, error)
}
