package report

// LabValue is the canonical unit of the insight pipeline. Value may be a
// number or a free-text string; string values are carried through but never
// range-checked.
type LabValue struct {
	Name         string   `json:"name"`
	Value        any      `json:"value"`
	Unit         string   `json:"unit,omitempty"`
	ReferenceMin *float64 `json:"referenceMin,omitempty"`
	ReferenceMax *float64 `json:"referenceMax,omitempty"`
	Flag         string   `json:"flag,omitempty"`
}

type PatientInfo struct {
	Name      string  `json:"name"`
	Age       float64 `json:"age"`
	Gender    string  `json:"gender"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	PatientID string  `json:"patient_id,omitempty"`
}

type TestResult struct {
	Value   any     `json:"value"`
	Unit    string  `json:"unit,omitempty"`
	RawText *string `json:"raw_text,omitempty"`
}

type ReferenceRange struct {
	Low       *float64 `json:"low,omitempty"`
	High      *float64 `json:"high,omitempty"`
	Condition *string  `json:"condition,omitempty"`
}

type TestFlag struct {
	Status     string  `json:"status"`
	FlagReason *string `json:"flag_reason,omitempty"`
}

type Test struct {
	TestName       string          `json:"test_name"`
	Result         TestResult      `json:"result"`
	ReferenceRange *ReferenceRange `json:"reference_range,omitempty"`
	Flag           *TestFlag       `json:"flag,omitempty"`
}

type TestCategory struct {
	Category    string  `json:"category"`
	Subcategory *string `json:"subcategory,omitempty"`
	Tests       []Test  `json:"tests"`
}

type ReportMetadata struct {
	SampleCollected string `json:"sample_collected,omitempty"`
	ReportedOn      string `json:"reported_on,omitempty"`
	ReferringDoctor string `json:"referring_doctor,omitempty"`
	LabID           string `json:"lab_id,omitempty"`
}

type AbnormalTest struct {
	TestName    string `json:"test_name"`
	Category    string `json:"category"`
	ResultValue any    `json:"result_value"`
	Flag        string `json:"flag"`
}

type ReportSummaryBlock struct {
	AbnormalTests []AbnormalTest `json:"abnormal_tests,omitempty"`
	CriticalAlert bool           `json:"critical_alert,omitempty"`
	DoctorNotes   *string        `json:"doctor_notes,omitempty"`
	LabComments   *string        `json:"lab_comments,omitempty"`
}

// HealthReport accepts two interchangeable shapes: a flat lab_values list or a
// categorized tests tree. Both present is legal; lab_values is then preferred.
type HealthReport struct {
	ReportID  string              `json:"report_id,omitempty"`
	Patient   PatientInfo         `json:"patient"`
	TestDate  string              `json:"test_date,omitempty"`
	LabName   string              `json:"lab_name,omitempty"`
	LabValues []LabValue          `json:"lab_values,omitempty"`
	Tests     []TestCategory      `json:"tests,omitempty"`
	Metadata  *ReportMetadata     `json:"metadata,omitempty"`
	Summary   *ReportSummaryBlock `json:"summary,omitempty"`
	Notes     string              `json:"notes,omitempty"`
	CreatedAt string              `json:"created_at,omitempty"`
}

// Severity tiers assigned by the value flagger.
const (
	SeverityNormal   = "normal"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// FlaggedLabValue is derived, never persisted on its own; it is always
// recomputed from a LabValue plus the reference table.
type FlaggedLabValue struct {
	LabValue
	IsOutOfRange bool   `json:"isOutOfRange"`
	Severity     string `json:"severity"`
}

// ReportInsights is computed once at upload time and cached by report id;
// re-uploading creates a new report id rather than mutating it.
type ReportInsights struct {
	ReportID         string            `json:"report_id"`
	PatientName      string            `json:"patient_name"`
	TestDate         string            `json:"test_date"`
	FlaggedValues    []FlaggedLabValue `json:"flagged_values"`
	HeadlineInsights []string          `json:"headline_insights"`
	RiskTags         []string          `json:"risk_tags"`
	SummaryText      string            `json:"summary_text"`
}
