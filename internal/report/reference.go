package report

import (
	"regexp"
	"sort"
	"strings"
)

// ReferenceEntry is a canonical reference range for a normalized lab name.
// Units are informational only: stated report units are never checked against
// the table's unit, values are compared numerically as-is. Known gap.
type ReferenceEntry struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// commonLabReferences covers the usual hematology, metabolic, renal, hepatic,
// lipid, electrolyte and thyroid panels.
var commonLabReferences = map[string]ReferenceEntry{
	"hemoglobin":           {Min: 12.0, Max: 17.5, Unit: "g/dL"},
	"hematocrit":           {Min: 36, Max: 46, Unit: "%"},
	"wbc":                  {Min: 4.5, Max: 11.0, Unit: "K/uL"},
	"rbc":                  {Min: 4.5, Max: 5.9, Unit: "M/uL"},
	"platelets":            {Min: 150, Max: 400, Unit: "K/uL"},
	"glucose":              {Min: 70, Max: 100, Unit: "mg/dL"},
	"glucose_fasting":      {Min: 70, Max: 100, Unit: "mg/dL"},
	"creatinine":           {Min: 0.7, Max: 1.3, Unit: "mg/dL"},
	"bun":                  {Min: 7, Max: 20, Unit: "mg/dL"},
	"sodium":               {Min: 136, Max: 145, Unit: "mEq/L"},
	"potassium":            {Min: 3.5, Max: 5.0, Unit: "mEq/L"},
	"calcium":              {Min: 8.5, Max: 10.2, Unit: "mg/dL"},
	"phosphorus":           {Min: 2.5, Max: 4.5, Unit: "mg/dL"},
	"magnesium":            {Min: 1.7, Max: 2.2, Unit: "mg/dL"},
	"albumin":              {Min: 3.5, Max: 5.0, Unit: "g/dL"},
	"total_protein":        {Min: 6.0, Max: 8.3, Unit: "g/dL"},
	"ast":                  {Min: 10, Max: 40, Unit: "U/L"},
	"alt":                  {Min: 7, Max: 56, Unit: "U/L"},
	"alkaline_phosphatase": {Min: 44, Max: 147, Unit: "U/L"},
	"total_bilirubin":      {Min: 0.1, Max: 1.2, Unit: "mg/dL"},
	"ldl":                  {Min: 0, Max: 100, Unit: "mg/dL"},
	"hdl":                  {Min: 40, Max: 300, Unit: "mg/dL"},
	"triglycerides":        {Min: 0, Max: 150, Unit: "mg/dL"},
	"total_cholesterol":    {Min: 0, Max: 200, Unit: "mg/dL"},
	"tsh":                  {Min: 0.4, Max: 4.0, Unit: "mIU/L"},
}

var labDescriptions = map[string]string{
	"hemoglobin":           "Protein in red blood cells that carries oxygen throughout the body",
	"hematocrit":           "Percentage of red blood cells in total blood volume",
	"wbc":                  "White blood cells that help fight infections",
	"rbc":                  "Red blood cells that carry oxygen",
	"platelets":            "Blood cells that help with clotting",
	"glucose":              "Blood sugar level",
	"glucose_fasting":      "Blood sugar level after fasting",
	"creatinine":           "Kidney function marker",
	"bun":                  "Kidney function marker (blood urea nitrogen)",
	"sodium":               "Electrolyte important for nerve and muscle function",
	"potassium":            "Electrolyte important for heart and muscle function",
	"calcium":              "Mineral important for bones and teeth",
	"phosphorus":           "Mineral important for bone health",
	"magnesium":            "Mineral important for muscle and nerve function",
	"albumin":              "Protein that helps maintain blood pressure and transport nutrients",
	"total_protein":        "Total amount of proteins in blood",
	"ast":                  "Liver enzyme (aspartate aminotransferase)",
	"alt":                  "Liver enzyme (alanine aminotransferase)",
	"alkaline_phosphatase": "Enzyme related to liver and bone health",
	"total_bilirubin":      "Waste product from red blood cell breakdown",
	"ldl":                  "Low-density lipoprotein (bad cholesterol)",
	"hdl":                  "High-density lipoprotein (good cholesterol)",
	"triglycerides":        "Type of fat in blood",
	"total_cholesterol":    "Total amount of cholesterol in blood",
	"tsh":                  "Thyroid stimulating hormone (thyroid function)",
}

var (
	labNameWhitespace = regexp.MustCompile(`\s+`)
	labNameStrip      = regexp.MustCompile(`[^a-z0-9_]`)
)

// NormalizeLabName turns a free-text lab name into the canonical lookup key:
// lowercase, whitespace collapsed to underscores, everything outside
// [a-z0-9_] stripped.
func NormalizeLabName(name string) string {
	s := strings.ToLower(name)
	s = labNameWhitespace.ReplaceAllString(s, "_")
	return labNameStrip.ReplaceAllString(s, "")
}

// LookupReference returns the canonical reference entry for an
// already-normalized lab name.
func LookupReference(normalized string) (ReferenceEntry, bool) {
	ref, ok := commonLabReferences[normalized]
	return ref, ok
}

// DescribeLab returns a plain-language description for an already-normalized
// lab name, or a generic fallback.
func DescribeLab(normalized string) string {
	if d, ok := labDescriptions[normalized]; ok {
		return d
	}
	return "Lab value"
}

// NamedReference is a reference entry together with its canonical name.
type NamedReference struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// AllReferences lists every canonical reference entry, sorted by name.
func AllReferences() []NamedReference {
	out := make([]NamedReference, 0, len(commonLabReferences))
	for name, ref := range commonLabReferences {
		out = append(out, NamedReference{Name: name, Min: ref.Min, Max: ref.Max, Unit: ref.Unit})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
