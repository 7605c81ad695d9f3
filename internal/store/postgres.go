package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"labvoice/internal/transcript"
)

// PostgresStore keeps reports and summaries as JSONB documents. The schema is
// created lazily on first use.
type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) ensureSchema() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS health_reports (
    report_id TEXT PRIMARY KEY,
    doc JSONB NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS session_summaries (
    report_id TEXT PRIMARY KEY,
    doc JSONB NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) PutReport(ctx context.Context, id string, rec StoredReport) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("report id is required")
	}
	if err := s.ensureSchema(); err != nil {
		return err
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	// Reports are written exactly once per id; the upsert only guards
	// against retried requests carrying the same fresh id.
	_, err = s.db.ExecContext(ctx, `
INSERT INTO health_reports (report_id, doc)
VALUES ($1, $2)
ON CONFLICT (report_id) DO NOTHING
`, id, doc)
	return err
}

func (s *PostgresStore) GetReport(ctx context.Context, id string) (StoredReport, error) {
	if s == nil {
		return StoredReport{}, fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return StoredReport{}, fmt.Errorf("report id is required")
	}
	if err := s.ensureSchema(); err != nil {
		return StoredReport{}, err
	}
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM health_reports WHERE report_id=$1`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return StoredReport{}, ErrNotFound
	}
	if err != nil {
		return StoredReport{}, err
	}
	var rec StoredReport
	if err := json.Unmarshal(doc, &rec); err != nil {
		return StoredReport{}, fmt.Errorf("unmarshal report: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) ListReportIDs(ctx context.Context) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT report_id FROM health_reports ORDER BY report_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *PostgresStore) PutSummary(ctx context.Context, id string, summary transcript.SessionSummary) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("report id is required")
	}
	if err := s.ensureSchema(); err != nil {
		return err
	}
	doc, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO session_summaries (report_id, doc, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (report_id)
DO UPDATE SET doc=EXCLUDED.doc, updated_at=EXCLUDED.updated_at
`, id, doc, time.Now())
	return err
}

func (s *PostgresStore) GetSummary(ctx context.Context, id string) (transcript.SessionSummary, error) {
	if s == nil {
		return transcript.SessionSummary{}, fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return transcript.SessionSummary{}, fmt.Errorf("report id is required")
	}
	if err := s.ensureSchema(); err != nil {
		return transcript.SessionSummary{}, err
	}
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM session_summaries WHERE report_id=$1`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return transcript.SessionSummary{}, ErrNotFound
	}
	if err != nil {
		return transcript.SessionSummary{}, err
	}
	var summary transcript.SessionSummary
	if err := json.Unmarshal(doc, &summary); err != nil {
		return transcript.SessionSummary{}, fmt.Errorf("unmarshal summary: %w", err)
	}
	return summary, nil
}
