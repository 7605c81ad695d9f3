package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleReport() HealthReport {
	return HealthReport{
		ReportID: "report_1_abc",
		Patient:  PatientInfo{Name: "Jane Doe", Age: 34, Gender: "F"},
		TestDate: "2024-03-15",
		LabValues: []LabValue{
			{Name: "Hemoglobin", Value: 9.0, Unit: "g/dL"},
			{Name: "Glucose", Value: 110.0, Unit: "mg/dL"},
			{Name: "Sodium", Value: 140.0, Unit: "mEq/L"},
		},
		Notes: "Fasting sample.",
	}
}

func TestGenerateInsightsHeadlines(t *testing.T) {
	insights := GenerateInsights(sampleReport())

	if len(insights.HeadlineInsights) != 2 {
		t.Fatalf("HeadlineInsights = %v, want 2 entries", insights.HeadlineInsights)
	}
	wantCritical := "Critical findings detected: Hemoglobin. Please consult your healthcare provider immediately."
	wantWarning := "Several values are outside normal range: Glucose. Discuss with your doctor."
	if insights.HeadlineInsights[0] != wantCritical {
		t.Fatalf("HeadlineInsights[0] = %q, want %q", insights.HeadlineInsights[0], wantCritical)
	}
	if insights.HeadlineInsights[1] != wantWarning {
		t.Fatalf("HeadlineInsights[1] = %q, want %q", insights.HeadlineInsights[1], wantWarning)
	}
}

func TestGenerateInsightsRiskTags(t *testing.T) {
	insights := GenerateInsights(sampleReport())

	want := []string{"blood_health", "metabolic"}
	if len(insights.RiskTags) != len(want) {
		t.Fatalf("RiskTags = %v, want %v", insights.RiskTags, want)
	}
	for i, tag := range want {
		if insights.RiskTags[i] != tag {
			t.Fatalf("RiskTags = %v, want %v", insights.RiskTags, want)
		}
	}
}

func TestGenerateInsightsNormalValuesCarryNoTags(t *testing.T) {
	r := HealthReport{
		Patient:  PatientInfo{Name: "Jane Doe", Age: 34, Gender: "F"},
		TestDate: "2024-03-15",
		LabValues: []LabValue{
			{Name: "Sodium", Value: 140.0, Unit: "mEq/L"},
			{Name: "Glucose", Value: 90.0, Unit: "mg/dL"},
		},
	}

	insights := GenerateInsights(r)
	if len(insights.RiskTags) != 0 {
		t.Fatalf("RiskTags = %v, want none", insights.RiskTags)
	}
	// Values were measured, so the reassuring sentence is absent too.
	if len(insights.HeadlineInsights) != 0 {
		t.Fatalf("HeadlineInsights = %v, want none", insights.HeadlineInsights)
	}
}

func TestGenerateInsightsEmptyReportReassures(t *testing.T) {
	r := HealthReport{
		Patient:  PatientInfo{Name: "Jane Doe", Age: 34, Gender: "F"},
		TestDate: "2024-03-15",
	}

	insights := GenerateInsights(r)
	if len(insights.HeadlineInsights) != 1 || insights.HeadlineInsights[0] != "All measured values are within normal ranges." {
		t.Fatalf("HeadlineInsights = %v", insights.HeadlineInsights)
	}
}

func TestGenerateInsightsSummaryText(t *testing.T) {
	insights := GenerateInsights(sampleReport())

	lines := strings.Split(insights.SummaryText, "\n")
	if lines[0] != "Health Report Summary for Jane Doe" {
		t.Fatalf("summary line 0 = %q", lines[0])
	}
	if lines[1] != "Test Date: 2024-03-15" {
		t.Fatalf("summary line 1 = %q", lines[1])
	}
	if lines[2] != "Age: 34, Gender: F" {
		t.Fatalf("summary line 2 = %q", lines[2])
	}
	if lines[3] != "" || lines[4] != "Key Findings:" {
		t.Fatalf("summary lines 3-4 = %q, %q", lines[3], lines[4])
	}
	if !strings.Contains(insights.SummaryText, "Additional Notes:\nFasting sample.") {
		t.Fatalf("summary missing notes section:\n%s", insights.SummaryText)
	}
}

func TestGenerateInsightsDeterministic(t *testing.T) {
	r := sampleReport()

	first, err := json.Marshal(GenerateInsights(r))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(GenerateInsights(r))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("GenerateInsights() not deterministic:\n%s\n%s", first, second)
	}
}

func TestResolveTestDatePrecedence(t *testing.T) {
	r := HealthReport{
		TestDate: "2024-01-01",
		Metadata: &ReportMetadata{ReportedOn: "2024-02-02T10:00:00Z", SampleCollected: "2024-03-03T08:00:00Z"},
	}
	if got := resolveTestDate(r); got != "2024-01-01" {
		t.Fatalf("resolveTestDate() = %q, want 2024-01-01", got)
	}

	r.TestDate = ""
	if got := resolveTestDate(r); got != "2024-02-02" {
		t.Fatalf("resolveTestDate() = %q, want 2024-02-02", got)
	}

	r.Metadata.ReportedOn = ""
	if got := resolveTestDate(r); got != "2024-03-03" {
		t.Fatalf("resolveTestDate() = %q, want 2024-03-03", got)
	}

	r.Metadata = nil
	today := time.Now().UTC().Format("2006-01-02")
	if got := resolveTestDate(r); got != today {
		t.Fatalf("resolveTestDate() = %q, want %q", got, today)
	}
}

func TestGenerateRiskTagsSubstringMatch(t *testing.T) {
	flagged := []FlaggedLabValue{
		{LabValue: LabValue{Name: "Glucose Fasting"}, IsOutOfRange: true, Severity: SeverityWarning},
	}
	tags := generateRiskTags(flagged)
	if len(tags) != 1 || tags[0] != "metabolic" {
		t.Fatalf("generateRiskTags() = %v, want [metabolic]", tags)
	}
}
