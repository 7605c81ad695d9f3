package service

import (
	"context"
	"fmt"
	"strings"

	"labvoice/internal/store"
	"labvoice/internal/transcript"
)

type SummaryService struct {
	summaries store.SummaryStore
}

func NewSummaryService(summaries store.SummaryStore) *SummaryService {
	return &SummaryService{summaries: summaries}
}

// Generate derives a session summary from a transcript and stores it under
// the report id. The id is not required to reference a stored report; a voice
// session can outlive its upload.
func (s *SummaryService) Generate(ctx context.Context, reportID string, msgs []transcript.Message) (transcript.SessionSummary, error) {
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return transcript.SessionSummary{}, fmt.Errorf("report id is required")
	}

	summary := transcript.Summarize(reportID, msgs)
	if err := s.summaries.PutSummary(ctx, reportID, summary); err != nil {
		return transcript.SessionSummary{}, fmt.Errorf("store summary: %w", err)
	}
	return summary, nil
}

func (s *SummaryService) Get(ctx context.Context, reportID string) (transcript.SessionSummary, error) {
	return s.summaries.GetSummary(ctx, strings.TrimSpace(reportID))
}
