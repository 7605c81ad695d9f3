package service

import (
	"context"
	"errors"
	"testing"

	"labvoice/internal/store"
	"labvoice/internal/transcript"
)

func TestSummaryGenerateAndGet(t *testing.T) {
	svc := NewSummaryService(store.NewMemoryStore())
	ctx := context.Background()

	msgs := []transcript.Message{
		{Role: transcript.RoleUser, Content: "What does my glucose level mean?"},
		{Role: transcript.RoleAgent, Content: "Your glucose is elevated above the fasting reference range. A repeat fasting test would confirm the result."},
	}

	summary, err := svc.Generate(ctx, "r1", msgs)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if summary.ReportID != "r1" {
		t.Fatalf("Generate() report id = %q", summary.ReportID)
	}
	if len(summary.KeyQuestionsAnswered) != 1 {
		t.Fatalf("Generate() questions = %v", summary.KeyQuestionsAnswered)
	}

	got, err := svc.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.GeneratedAt != summary.GeneratedAt {
		t.Fatalf("Get() = %+v, want stored summary", got)
	}
}

func TestSummaryGenerateRequiresReportID(t *testing.T) {
	svc := NewSummaryService(store.NewMemoryStore())
	if _, err := svc.Generate(context.Background(), "  ", nil); err == nil {
		t.Fatalf("Generate() error = nil, want error")
	}
}

func TestSummaryGetUnknown(t *testing.T) {
	svc := NewSummaryService(store.NewMemoryStore())
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestSummaryRegenerateReplaces(t *testing.T) {
	svc := NewSummaryService(store.NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Generate(ctx, "r1", nil); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := svc.Generate(ctx, "r1", []transcript.Message{
		{Role: transcript.RoleUser, Content: "Why is my TSH high?"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got, err := svc.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.KeyQuestionsAnswered) != len(second.KeyQuestionsAnswered) {
		t.Fatalf("Get() = %+v, want latest summary", got)
	}
}
