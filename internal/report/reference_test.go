package report

import (
	"sort"
	"testing"
)

func TestNormalizeLabName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hemoglobin", "hemoglobin"},
		{"Total Cholesterol", "total_cholesterol"},
		{"Glucose   Fasting", "glucose_fasting"},
		{"HDL (good)", "hdl_good"},
		{"Vitamin-D", "vitamind"},
		{"TSH", "tsh"},
	}

	for _, tc := range cases {
		if got := NormalizeLabName(tc.in); got != tc.want {
			t.Fatalf("NormalizeLabName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLookupReference(t *testing.T) {
	ref, ok := LookupReference("hemoglobin")
	if !ok {
		t.Fatalf("LookupReference(hemoglobin) not found")
	}
	if ref.Min != 12.0 || ref.Max != 17.5 || ref.Unit != "g/dL" {
		t.Fatalf("LookupReference(hemoglobin) = %+v", ref)
	}

	if _, ok := LookupReference("serum_widgetase"); ok {
		t.Fatalf("LookupReference(serum_widgetase) found, want miss")
	}
}

func TestDescribeLab(t *testing.T) {
	if got := DescribeLab("tsh"); got != "Thyroid stimulating hormone (thyroid function)" {
		t.Fatalf("DescribeLab(tsh) = %q", got)
	}
	if got := DescribeLab("serum_widgetase"); got != "Lab value" {
		t.Fatalf("DescribeLab(serum_widgetase) = %q", got)
	}
}

func TestAllReferencesSortedAndComplete(t *testing.T) {
	refs := AllReferences()
	if len(refs) != len(commonLabReferences) {
		t.Fatalf("AllReferences() len = %d, want %d", len(refs), len(commonLabReferences))
	}
	if !sort.SliceIsSorted(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name }) {
		t.Fatalf("AllReferences() not sorted by name")
	}
}
