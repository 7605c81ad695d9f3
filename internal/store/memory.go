package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"labvoice/internal/transcript"
)

// MemoryStore keeps reports and summaries in process memory. It is the
// default backend for local runs and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	reports   map[string]StoredReport
	summaries map[string]transcript.SessionSummary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports:   make(map[string]StoredReport),
		summaries: make(map[string]transcript.SessionSummary),
	}
}

func (s *MemoryStore) PutReport(_ context.Context, id string, rec StoredReport) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	if id == "" {
		return fmt.Errorf("report id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[id] = rec
	return nil
}

func (s *MemoryStore) GetReport(_ context.Context, id string) (StoredReport, error) {
	if s == nil {
		return StoredReport{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.reports[id]
	if !ok {
		return StoredReport{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) ListReportIDs(_ context.Context) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.reports))
	for id := range s.reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) PutSummary(_ context.Context, id string, summary transcript.SessionSummary) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	if id == "" {
		return fmt.Errorf("report id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[id] = summary
	return nil
}

func (s *MemoryStore) GetSummary(_ context.Context, id string) (transcript.SessionSummary, error) {
	if s == nil {
		return transcript.SessionSummary{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[id]
	if !ok {
		return transcript.SessionSummary{}, ErrNotFound
	}
	return summary, nil
}
