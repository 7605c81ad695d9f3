package agent

import (
	"context"
	"encoding/json"
	"fmt"
)

// FakeClient returns a deterministic answer for offline runs and tests.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeAgent" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) AnswerJSON(_ context.Context, _ string, input any) (json.RawMessage, error) {
	question := ""
	if m, ok := input.(map[string]any); ok {
		question, _ = m["question"].(string)
	}
	answer := Answer{
		Answer: fmt.Sprintf("I cannot reach the live agent right now. Please review the report summary and discuss %q with your healthcare provider.", question),
	}
	raw, err := json.Marshal(answer)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
