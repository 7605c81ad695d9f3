package store

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"labvoice/internal/transcript"
)

// CacheMetrics is a point-in-time view of cache effectiveness.
type CacheMetrics struct {
	ReportHits    uint64
	ReportMisses  uint64
	SummaryHits   uint64
	SummaryMisses uint64
	OriginReads   uint64
	OriginWrites  uint64
}

// CachedStore is a read-through, write-through LRU wrapper around a slower
// origin store. Reports and summaries are immutable per id, so cached entries
// never go stale; eviction is purely about memory.
type CachedStore struct {
	origin interface {
		ReportStore
		SummaryStore
	}

	reports   *lru.Cache[string, StoredReport]
	summaries *lru.Cache[string, transcript.SessionSummary]

	reportHits    atomic.Uint64
	reportMisses  atomic.Uint64
	summaryHits   atomic.Uint64
	summaryMisses atomic.Uint64
	originReads   atomic.Uint64
	originWrites  atomic.Uint64
}

func NewCachedStore(origin interface {
	ReportStore
	SummaryStore
}, maxEntries int) (*CachedStore, error) {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	reports, err := lru.New[string, StoredReport](maxEntries)
	if err != nil {
		return nil, err
	}
	summaries, err := lru.New[string, transcript.SessionSummary](maxEntries)
	if err != nil {
		return nil, err
	}
	return &CachedStore{
		origin:    origin,
		reports:   reports,
		summaries: summaries,
	}, nil
}

func (s *CachedStore) PutReport(ctx context.Context, id string, rec StoredReport) error {
	s.originWrites.Add(1)
	if err := s.origin.PutReport(ctx, id, rec); err != nil {
		return err
	}
	s.reports.Add(id, rec)
	return nil
}

func (s *CachedStore) GetReport(ctx context.Context, id string) (StoredReport, error) {
	if rec, ok := s.reports.Get(id); ok {
		s.reportHits.Add(1)
		return rec, nil
	}
	s.reportMisses.Add(1)
	s.originReads.Add(1)

	rec, err := s.origin.GetReport(ctx, id)
	if err != nil {
		return StoredReport{}, err
	}
	s.reports.Add(id, rec)
	return rec, nil
}

func (s *CachedStore) ListReportIDs(ctx context.Context) ([]string, error) {
	s.originReads.Add(1)
	return s.origin.ListReportIDs(ctx)
}

func (s *CachedStore) PutSummary(ctx context.Context, id string, summary transcript.SessionSummary) error {
	s.originWrites.Add(1)
	if err := s.origin.PutSummary(ctx, id, summary); err != nil {
		return err
	}
	s.summaries.Add(id, summary)
	return nil
}

func (s *CachedStore) GetSummary(ctx context.Context, id string) (transcript.SessionSummary, error) {
	if summary, ok := s.summaries.Get(id); ok {
		s.summaryHits.Add(1)
		return summary, nil
	}
	s.summaryMisses.Add(1)
	s.originReads.Add(1)

	summary, err := s.origin.GetSummary(ctx, id)
	if err != nil {
		return transcript.SessionSummary{}, err
	}
	s.summaries.Add(id, summary)
	return summary, nil
}

func (s *CachedStore) Metrics() CacheMetrics {
	if s == nil {
		return CacheMetrics{}
	}
	return CacheMetrics{
		ReportHits:    s.reportHits.Load(),
		ReportMisses:  s.reportMisses.Load(),
		SummaryHits:   s.summaryHits.Load(),
		SummaryMisses: s.summaryMisses.Load(),
		OriginReads:   s.originReads.Load(),
		OriginWrites:  s.originWrites.Load(),
	}
}
