package report

// CanonicalLabValues reduces either accepted report shape to the single
// canonical lab-value sequence used by the rest of the pipeline. A non-empty
// lab_values list wins verbatim; it is never merged with the tests tree.
func CanonicalLabValues(r HealthReport) []LabValue {
	if len(r.LabValues) > 0 {
		return r.LabValues
	}
	return convertTestsToLabValues(r.Tests)
}

// convertTestsToLabValues flattens the categorized tests tree into lab values.
// Tests whose result is not numeric (qualitative results like "positive") are
// silently dropped with no warning surfaced to the caller: they cannot be
// range-checked. TODO: surface the dropped entries as a warning once product
// decides whether qualitative results should reach the insights view.
func convertTestsToLabValues(categories []TestCategory) []LabValue {
	labValues := []LabValue{}

	for _, category := range categories {
		for _, test := range category.Tests {
			value, ok := numericValue(test.Result.Value)
			if !ok {
				continue
			}

			lv := LabValue{
				Name:  test.TestName,
				Value: value,
				Unit:  test.Result.Unit,
				Flag:  SeverityNormal,
			}
			if rr := test.ReferenceRange; rr != nil {
				lv.ReferenceMin = rr.Low
				lv.ReferenceMax = rr.High
			}
			if test.Flag != nil && test.Flag.Status != "" {
				lv.Flag = test.Flag.Status
			}
			labValues = append(labValues, lv)
		}
	}

	return labValues
}

// numericValue reports whether a decoded lab value is evaluable as a number.
// JSON decoding yields float64; the integer cases cover values constructed in
// Go directly.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
