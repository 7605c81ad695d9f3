package agent

import (
	"fmt"
	"strconv"
	"strings"

	"labvoice/internal/report"
)

// FormatReportContext renders a stored report into the plain-text block the
// agent receives as conversation context.
func FormatReportContext(r report.HealthReport) string {
	labName := r.LabName
	if labName == "" {
		labName = "Not specified"
	}

	lines := []string{
		fmt.Sprintf("Patient: %s", r.Patient.Name),
		fmt.Sprintf("Age: %s, Gender: %s", trimFloat(r.Patient.Age), r.Patient.Gender),
		fmt.Sprintf("Test Date: %s", r.TestDate),
		fmt.Sprintf("Lab Name: %s", labName),
		"",
		"Lab Values:",
	}

	for _, value := range report.CanonicalLabValues(r) {
		line := fmt.Sprintf("  - %s: %v %s", value.Name, value.Value, value.Unit)
		if value.ReferenceMin != nil && value.ReferenceMax != nil {
			line += fmt.Sprintf(" (Reference: %s-%s)", trimFloat(*value.ReferenceMin), trimFloat(*value.ReferenceMax))
		}
		lines = append(lines, line)
	}

	if r.Notes != "" {
		lines = append(lines, "", "Notes:", r.Notes)
	}

	return strings.Join(lines, "\n")
}

// AskPrompt is the instruction block sent with every question.
const AskPrompt = `You are a careful health-report assistant. Answer the patient's question
using only the report context provided. Be advisory, not diagnostic, and
recommend consulting a healthcare provider for medical decisions.
Respond as JSON: {"answer": "..."}.`

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
