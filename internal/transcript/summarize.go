// Package transcript derives a session summary from a voice-conversation
// transcript. It shares no state with the report pipeline; the extraction is
// keyword heuristics over the raw text, deliberately literal and pinned.
package transcript

import (
	"strings"
	"time"
)

// Message is one role-tagged utterance of a conversation transcript.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// SessionSummary is derived from a transcript and keyed by report id; the id
// is not required to reference a stored report.
type SessionSummary struct {
	ReportID             string   `json:"report_id"`
	GeneratedAt          string   `json:"generated_at"`
	Findings             []string `json:"findings"`
	KeyQuestionsAnswered []string `json:"key_questions_answered"`
	Recommendations      []string `json:"recommendations"`
	FollowUpActions      []string `json:"follow_up_actions"`
}

const (
	maxFindings  = 5
	maxQuestions = 3
	// Agent messages at or below this length are treated as filler.
	minFindingMessageLen = 50
	// Findings taken per qualifying agent message.
	sentencesPerMessage = 2
)

// Summarize scans a transcript for question and finding sentences and derives
// recommendations and follow-up actions from them.
func Summarize(reportID string, msgs []Message) SessionSummary {
	findings, questions := extractKeyPoints(msgs)

	return SessionSummary{
		ReportID:             reportID,
		GeneratedAt:          time.Now().UTC().Format(time.RFC3339),
		Findings:             capped(findings, maxFindings),
		KeyQuestionsAnswered: capped(questions, maxQuestions),
		Recommendations:      generateRecommendations(findings),
		FollowUpActions:      generateFollowUpActions(questions),
	}
}

func extractKeyPoints(msgs []Message) (findings, questions []string) {
	findings = []string{}
	questions = []string{}

	for _, msg := range msgs {
		switch msg.Role {
		case RoleUser:
			content := strings.ToLower(msg.Content)
			if strings.Contains(content, "?") || strings.Contains(content, "what") || strings.Contains(content, "why") {
				questions = append(questions, msg.Content)
			}
		case RoleAgent:
			if len(msg.Content) > minFindingMessageLen {
				sentences := splitSentences(msg.Content)
				if len(sentences) > sentencesPerMessage {
					sentences = sentences[:sentencesPerMessage]
				}
				findings = append(findings, sentences...)
			}
		}
	}

	return findings, questions
}

// splitSentences splits on runs of sentence terminators and drops empty
// fragments.
func splitSentences(content string) []string {
	parts := strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// generateRecommendations runs three independent keyword checks over the
// joined findings text; any subset may fire. With no match at all a single
// generic recommendation is emitted instead.
func generateRecommendations(findings []string) []string {
	recommendations := []string{}
	findingsText := strings.ToLower(strings.Join(findings, " "))

	if containsAny(findingsText, "high", "elevated", "above") {
		recommendations = append(recommendations,
			"Monitor the elevated values closely and schedule a follow-up with your doctor.")
	}
	if containsAny(findingsText, "low", "below", "deficient") {
		recommendations = append(recommendations,
			"Consider dietary adjustments or supplementation as recommended by your healthcare provider.")
	}
	if containsAny(findingsText, "normal", "within range") {
		recommendations = append(recommendations,
			"Continue current health practices and maintain regular check-ups.")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Consult with your healthcare provider for personalized recommendations.")
	}

	return recommendations
}

func generateFollowUpActions(questions []string) []string {
	actions := []string{}

	if len(questions) > 0 {
		actions = append(actions,
			"Review the conversation transcript for detailed explanations of your health metrics.")
	}

	actions = append(actions,
		"Schedule a follow-up appointment with your healthcare provider to discuss results.",
		"Keep a record of this report for future reference and comparison.",
		"Share this summary with your healthcare provider if needed.")

	return actions
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func capped(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
