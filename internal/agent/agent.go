// Package agent is the conversational boundary of the service: it answers
// patient questions about a stored report. It never feeds back into the
// insight pipeline or the transcript summarizer, whose heuristics are fixed.
package agent

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrInvalidJSON = errors.New("agent: invalid JSON from model")

// Client generates a JSON answer for a question asked over a report context.
type Client interface {
	Name() string
	AnswerJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	Close() error
}

// Answer is the shape every client returns.
type Answer struct {
	Answer string `json:"answer"`
}
