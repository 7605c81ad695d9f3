package report

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult carries every violation found in one pass. Warnings never
// block acceptance; Valid is true iff Errors is empty.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

var validGenders = map[string]bool{
	"m": true, "f": true, "male": true, "female": true, "other": true,
}

// Validate checks a decoded report payload structurally and semantically.
// It never fails with an error value of its own: every structural mismatch
// becomes an entry in Errors. All rules are evaluated, not short-circuited,
// so one pass reports every violation.
func Validate(payload any) ValidationResult {
	errors := []string{}
	warnings := []string{}

	root, ok := payload.(map[string]any)
	if !ok || root == nil {
		errors = append(errors, "Report must be a valid JSON object")
		return ValidationResult{Valid: false, Errors: errors, Warnings: warnings}
	}

	errors = append(errors, validatePatient(root)...)

	dateErrors, dateWarnings := validateTestDate(root)
	errors = append(errors, dateErrors...)
	warnings = append(warnings, dateWarnings...)

	labValues, hasLabValues := nonEmptyArray(root["lab_values"])
	tests, hasTests := nonEmptyArray(root["tests"])

	if !hasLabValues && !hasTests {
		errors = append(errors, "Report must contain either lab_values array or tests array with test categories")
	}

	if hasLabValues {
		errors = append(errors, validateLabValues(labValues)...)
	}
	if hasTests {
		errors = append(errors, validateTests(tests)...)
	}

	return ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

func validatePatient(root map[string]any) []string {
	var errors []string

	patient, ok := root["patient"].(map[string]any)
	if !ok || patient == nil {
		return []string{"Missing or invalid patient information"}
	}

	if name, ok := patient["name"].(string); !ok || name == "" {
		errors = append(errors, "Patient name is required")
	}
	if age, ok := patient["age"].(float64); !ok || age < 0 {
		errors = append(errors, "Patient age must be a valid positive number")
	}
	if gender, ok := patient["gender"].(string); !ok || gender == "" {
		errors = append(errors, "Patient gender is required")
	} else if !validGenders[strings.ToLower(gender)] {
		errors = append(errors, "Patient gender must be M, F, Male, Female, or Other")
	}

	return errors
}

// validateTestDate accepts a date from test_date, metadata.reported_on or
// metadata.sample_collected. Absence is only a warning: complex reports often
// carry dates in metadata alone.
func validateTestDate(root map[string]any) (errors, warnings []string) {
	testDate := root["test_date"]
	if testDate == nil || testDate == "" {
		if metadata, ok := root["metadata"].(map[string]any); ok {
			if v := metadata["reported_on"]; v != nil && v != "" {
				testDate = v
			} else if v := metadata["sample_collected"]; v != nil && v != "" {
				testDate = v
			}
		}
	}

	if testDate == nil || testDate == "" {
		warnings = append(warnings, "Test date not found (optional for complex reports)")
		return errors, warnings
	}
	if s, ok := testDate.(string); ok && !isoDatePrefix.MatchString(s) {
		errors = append(errors, "Test date must be in ISO format (YYYY-MM-DD or ISO 8601)")
	}
	return errors, warnings
}

func validateLabValues(labValues []any) []string {
	var errors []string
	for i, raw := range labValues {
		lv, ok := raw.(map[string]any)
		if !ok || lv == nil {
			errors = append(errors, fmt.Sprintf("Lab value at index %d is invalid", i))
			continue
		}
		if name, ok := lv["name"].(string); !ok || name == "" {
			errors = append(errors, fmt.Sprintf("Lab value at index %d missing name", i))
		}
		// Presence is what matters here: an explicit null value still counts.
		if _, ok := lv["value"]; !ok {
			errors = append(errors, fmt.Sprintf("Lab value at index %d missing value", i))
		}
		if unit, ok := lv["unit"].(string); !ok || unit == "" {
			errors = append(errors, fmt.Sprintf("Lab value at index %d missing unit", i))
		}
	}
	return errors
}

func validateTests(tests []any) []string {
	var errors []string
	for catIndex, rawCat := range tests {
		cat, ok := rawCat.(map[string]any)
		if !ok || cat == nil {
			errors = append(errors, fmt.Sprintf("Test category at index %d is invalid", catIndex))
			continue
		}
		if name, ok := cat["category"].(string); !ok || name == "" {
			errors = append(errors, fmt.Sprintf("Test category at index %d missing category name", catIndex))
		}
		catTests, ok := cat["tests"].([]any)
		if !ok {
			errors = append(errors, fmt.Sprintf("Test category at index %d missing tests array", catIndex))
			continue
		}
		for testIndex, rawTest := range catTests {
			test, ok := rawTest.(map[string]any)
			if !ok || test == nil {
				errors = append(errors, fmt.Sprintf("Test at category %d, index %d is invalid", catIndex, testIndex))
				continue
			}
			if name, ok := test["test_name"].(string); !ok || name == "" {
				errors = append(errors, fmt.Sprintf("Test at category %d, index %d missing test_name", catIndex, testIndex))
			}
			if result, ok := test["result"].(map[string]any); !ok || result == nil {
				errors = append(errors, fmt.Sprintf("Test at category %d, index %d missing result object", catIndex, testIndex))
			}
		}
	}
	return errors
}

func nonEmptyArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}
	return arr, true
}
