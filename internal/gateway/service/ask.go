package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"labvoice/internal/agent"
	"labvoice/internal/store"
)

type AskService struct {
	reports store.ReportStore
	client  agent.Client
}

func NewAskService(reports store.ReportStore, client agent.Client) *AskService {
	return &AskService{reports: reports, client: client}
}

// Ask answers a patient question over the formatted context of a stored
// report. The agent is advisory only; its output never reaches the insight
// pipeline.
func (s *AskService) Ask(ctx context.Context, reportID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is required")
	}

	rec, err := s.reports.GetReport(ctx, strings.TrimSpace(reportID))
	if err != nil {
		return "", err
	}

	input := map[string]any{
		"question":       question,
		"report_context": agent.FormatReportContext(rec.Report),
	}
	raw, err := s.client.AnswerJSON(ctx, agent.AskPrompt, input)
	if err != nil {
		return "", fmt.Errorf("agent answer: %w", err)
	}

	var answer agent.Answer
	if err := json.Unmarshal(raw, &answer); err != nil {
		return "", agent.ErrInvalidJSON
	}
	if strings.TrimSpace(answer.Answer) == "" {
		return "", agent.ErrInvalidJSON
	}
	return answer.Answer, nil
}
