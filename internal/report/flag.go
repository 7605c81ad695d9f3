package report

// FlagLabValue determines out-of-range status and severity for one canonical
// lab value. The canonical reference table always takes precedence; bounds the
// report supplies itself are only consulted when the table has no entry, and
// can escalate no further than warning. Boundary values count as in range.
func FlagLabValue(value LabValue) FlaggedLabValue {
	flagged := FlaggedLabValue{
		LabValue:     value,
		IsOutOfRange: false,
		Severity:     SeverityNormal,
	}

	num, ok := numericValue(value.Value)
	if !ok {
		// String values are never flagged, even when a reference exists.
		return flagged
	}

	if ref, found := LookupReference(NormalizeLabName(value.Name)); found {
		switch {
		case num < ref.Min:
			flagged.IsOutOfRange = true
			flagged.Severity = SeverityWarning
			if num < ref.Min*0.8 {
				flagged.Severity = SeverityCritical
			}
		case num > ref.Max:
			flagged.IsOutOfRange = true
			flagged.Severity = SeverityWarning
			if num > ref.Max*1.2 {
				flagged.Severity = SeverityCritical
			}
		}
		return flagged
	}

	if value.ReferenceMin != nil && value.ReferenceMax != nil {
		if num < *value.ReferenceMin || num > *value.ReferenceMax {
			flagged.IsOutOfRange = true
			flagged.Severity = SeverityWarning
		}
	}

	return flagged
}
