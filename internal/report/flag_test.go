package report

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestFlagLabValueCanonicalTable(t *testing.T) {
	cases := []struct {
		name    string
		labName string
		value   float64
		wantOut bool
		wantSev string
	}{
		{"normal glucose", "Glucose", 95, false, SeverityNormal},
		{"boundary low is in range", "Glucose", 70, false, SeverityNormal},
		{"boundary high is in range", "Glucose", 100, false, SeverityNormal},
		{"mild low is warning", "Hemoglobin", 11.0, true, SeverityWarning},
		{"deep low is critical", "Hemoglobin", 9.0, true, SeverityCritical},
		{"low critical boundary stays warning", "Hemoglobin", 9.6, true, SeverityWarning},
		{"mild high is warning", "Glucose", 110, true, SeverityWarning},
		{"deep high is critical", "Glucose", 130, true, SeverityCritical},
		{"high critical boundary stays warning", "Glucose", 120, true, SeverityWarning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FlagLabValue(LabValue{Name: tc.labName, Value: tc.value})
			if got.IsOutOfRange != tc.wantOut {
				t.Fatalf("FlagLabValue(%s=%v) isOutOfRange = %v, want %v", tc.labName, tc.value, got.IsOutOfRange, tc.wantOut)
			}
			if got.Severity != tc.wantSev {
				t.Fatalf("FlagLabValue(%s=%v) severity = %q, want %q", tc.labName, tc.value, got.Severity, tc.wantSev)
			}
		})
	}
}

func TestFlagLabValueCanonicalTablePrecedence(t *testing.T) {
	// Report-supplied bounds would call 95 out of range; the canonical
	// glucose entry wins and says normal.
	got := FlagLabValue(LabValue{
		Name:         "Glucose",
		Value:        95.0,
		ReferenceMin: floatPtr(100),
		ReferenceMax: floatPtr(200),
	})
	if got.IsOutOfRange || got.Severity != SeverityNormal {
		t.Fatalf("FlagLabValue() = %+v, want in range normal", got)
	}
}

func TestFlagLabValueReportBoundsFallback(t *testing.T) {
	got := FlagLabValue(LabValue{
		Name:         "Serum Widgetase",
		Value:        500.0,
		ReferenceMin: floatPtr(10),
		ReferenceMax: floatPtr(50),
	})
	if !got.IsOutOfRange {
		t.Fatalf("FlagLabValue() isOutOfRange = false, want true")
	}
	// Fallback bounds never escalate past warning.
	if got.Severity != SeverityWarning {
		t.Fatalf("FlagLabValue() severity = %q, want %q", got.Severity, SeverityWarning)
	}
}

func TestFlagLabValueOneSidedBoundsIgnored(t *testing.T) {
	got := FlagLabValue(LabValue{
		Name:         "Serum Widgetase",
		Value:        500.0,
		ReferenceMax: floatPtr(50),
	})
	if got.IsOutOfRange || got.Severity != SeverityNormal {
		t.Fatalf("FlagLabValue() = %+v, want in range normal", got)
	}
}

func TestFlagLabValueStringValueNeverFlagged(t *testing.T) {
	got := FlagLabValue(LabValue{Name: "Hemoglobin", Value: "positive"})
	if got.IsOutOfRange || got.Severity != SeverityNormal {
		t.Fatalf("FlagLabValue() = %+v, want in range normal", got)
	}
}

func TestFlagLabValueNameNormalizedForLookup(t *testing.T) {
	got := FlagLabValue(LabValue{Name: "Total Cholesterol", Value: 250.0})
	if !got.IsOutOfRange || got.Severity != SeverityCritical {
		t.Fatalf("FlagLabValue() = %+v, want out of range critical", got)
	}
}
