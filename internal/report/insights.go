package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// riskCategories maps a coarse physiological category to the lab-name
// keywords that attach it. Substring matching against normalized names is a
// deliberate, pinned heuristic; downstream expectations depend on these exact
// sets.
var riskCategories = []struct {
	tag      string
	keywords []string
}{
	{"blood_health", []string{"hemoglobin", "hematocrit", "rbc", "wbc", "platelets"}},
	{"metabolic", []string{"glucose", "glucose_fasting"}},
	{"kidney_function", []string{"creatinine", "bun"}},
	{"liver_function", []string{"ast", "alt", "alkaline_phosphatase", "total_bilirubin"}},
	{"cardiovascular", []string{"ldl", "hdl", "triglycerides", "total_cholesterol"}},
	{"electrolytes", []string{"sodium", "potassium", "calcium", "magnesium"}},
	{"thyroid", []string{"tsh"}},
}

// GenerateInsights runs the full derivation for one report: canonicalize,
// flag every value, then aggregate headline findings, risk tags and the
// summary text. The result is deterministic for a given report except for the
// current-date fallback when no test date can be resolved anywhere.
func GenerateInsights(r HealthReport) ReportInsights {
	labValues := CanonicalLabValues(r)

	flaggedValues := make([]FlaggedLabValue, 0, len(labValues))
	for _, lv := range labValues {
		flaggedValues = append(flaggedValues, FlagLabValue(lv))
	}

	headlineInsights := generateHeadlineInsights(flaggedValues)

	return ReportInsights{
		ReportID:         r.ReportID,
		PatientName:      r.Patient.Name,
		TestDate:         resolveTestDate(r),
		FlaggedValues:    flaggedValues,
		HeadlineInsights: headlineInsights,
		RiskTags:         generateRiskTags(flaggedValues),
		SummaryText:      generateSummaryText(r, headlineInsights),
	}
}

// generateHeadlineInsights emits at most two finding sentences (critical and
// warning can coexist). The reassuring sentence appears only when the report
// carried no evaluable lab values at all.
func generateHeadlineInsights(flaggedValues []FlaggedLabValue) []string {
	insights := []string{}

	var criticalNames, warningNames []string
	for _, v := range flaggedValues {
		switch v.Severity {
		case SeverityCritical:
			criticalNames = append(criticalNames, v.Name)
		case SeverityWarning:
			warningNames = append(warningNames, v.Name)
		}
	}

	if len(criticalNames) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Critical findings detected: %s. Please consult your healthcare provider immediately.",
			strings.Join(criticalNames, ", ")))
	}
	if len(warningNames) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Several values are outside normal range: %s. Discuss with your doctor.",
			strings.Join(warningNames, ", ")))
	}
	if len(flaggedValues) == 0 {
		insights = append(insights, "All measured values are within normal ranges.")
	}

	return insights
}

// generateRiskTags collects category tags for every out-of-range value.
// Values that flagged normal contribute nothing.
func generateRiskTags(flaggedValues []FlaggedLabValue) []string {
	tags := map[string]bool{}

	for _, value := range flaggedValues {
		if value.Severity == SeverityNormal {
			continue
		}
		normalized := NormalizeLabName(value.Name)
		for _, category := range riskCategories {
			for _, keyword := range category.keywords {
				if strings.Contains(normalized, keyword) {
					tags[category.tag] = true
					break
				}
			}
		}
	}

	out := make([]string, 0, len(tags))
	for tag := range tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func generateSummaryText(r HealthReport, insights []string) string {
	lines := []string{
		fmt.Sprintf("Health Report Summary for %s", r.Patient.Name),
		fmt.Sprintf("Test Date: %s", r.TestDate),
		fmt.Sprintf("Age: %s, Gender: %s", strconv.FormatFloat(r.Patient.Age, 'f', -1, 64), r.Patient.Gender),
		"",
		"Key Findings:",
	}
	lines = append(lines, insights...)

	if r.Notes != "" {
		lines = append(lines, "", "Additional Notes:", r.Notes)
	}

	return strings.Join(lines, "\n")
}

// resolveTestDate applies the fixed precedence: explicit test_date, then the
// date portion of metadata.reported_on, then metadata.sample_collected, then
// today.
func resolveTestDate(r HealthReport) string {
	if r.TestDate != "" {
		return r.TestDate
	}
	if r.Metadata != nil {
		if r.Metadata.ReportedOn != "" {
			return datePortion(r.Metadata.ReportedOn)
		}
		if r.Metadata.SampleCollected != "" {
			return datePortion(r.Metadata.SampleCollected)
		}
	}
	return time.Now().UTC().Format("2006-01-02")
}

func datePortion(timestamp string) string {
	if i := strings.IndexByte(timestamp, 'T'); i >= 0 {
		return timestamp[:i]
	}
	return timestamp
}
