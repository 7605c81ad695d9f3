package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"labvoice/internal/archive"
	"labvoice/internal/store"
)

const validReportJSON = `{
	"patient": {"name": "Jane Doe", "age": 34, "gender": "F"},
	"test_date": "2024-03-15",
	"lab_name": "Acme Labs",
	"lab_values": [
		{"name": "Hemoglobin", "value": 9.0, "unit": "g/dL"},
		{"name": "Glucose", "value": 95, "unit": "mg/dL"}
	]
}`

func TestUploadAcceptsValidReport(t *testing.T) {
	reports := store.NewMemoryStore()
	blobs := archive.NewMemoryStore()
	svc := NewUploadService(reports, blobs)
	ctx := context.Background()

	result, validation, err := svc.Upload(ctx, []byte(validReportJSON))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !validation.Valid {
		t.Fatalf("Upload() validation errors = %v", validation.Errors)
	}
	if !strings.HasPrefix(result.ReportID, "report_") {
		t.Fatalf("Upload() report id = %q", result.ReportID)
	}
	if result.Insights.PatientName != "Jane Doe" || result.Insights.TestDate != "2024-03-15" {
		t.Fatalf("Upload() insights = %+v", result.Insights)
	}
	if len(result.Insights.FlaggedValues) != 2 {
		t.Fatalf("Upload() flagged values = %v", result.Insights.FlaggedValues)
	}

	// The report round-trips through the store.
	rec, err := svc.Get(ctx, result.ReportID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Report.Patient.Name != "Jane Doe" || rec.Report.CreatedAt == "" {
		t.Fatalf("Get() report = %+v", rec.Report)
	}

	// The raw payload was archived verbatim.
	raw, err := blobs.Get(ctx, result.ReportID, "raw.json")
	if err != nil {
		t.Fatalf("archive Get() error = %v", err)
	}
	if string(raw) != validReportJSON {
		t.Fatalf("archived payload differs from upload")
	}
}

func TestUploadRejectsInvalidJSON(t *testing.T) {
	svc := NewUploadService(store.NewMemoryStore(), archive.NewMemoryStore())

	_, validation, err := svc.Upload(context.Background(), []byte(`{not json`))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if validation.Valid {
		t.Fatalf("Upload() validation valid = true, want false")
	}
	if len(validation.Errors) != 1 || validation.Errors[0] != "Report must be a valid JSON object" {
		t.Fatalf("Upload() validation errors = %v", validation.Errors)
	}
}

func TestUploadRejectionWritesNothing(t *testing.T) {
	reports := store.NewMemoryStore()
	svc := NewUploadService(reports, archive.NewMemoryStore())
	ctx := context.Background()

	_, validation, err := svc.Upload(ctx, []byte(`{"patient": {"name": "Jane Doe", "age": 34, "gender": "F"}}`))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if validation.Valid {
		t.Fatalf("Upload() validation valid = true, want false")
	}

	ids, err := svc.ListIDs(ctx)
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("ListIDs() = %v, want none", ids)
	}
}

func TestUploadArchiveFailureIsBestEffort(t *testing.T) {
	svc := NewUploadService(store.NewMemoryStore(), failingArchive{})

	result, validation, err := svc.Upload(context.Background(), []byte(validReportJSON))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !validation.Valid || result.ReportID == "" {
		t.Fatalf("Upload() failed on archive error: %+v %+v", result, validation)
	}
}

func TestGetUnknownReport(t *testing.T) {
	svc := NewUploadService(store.NewMemoryStore(), nil)
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestNewReportIDShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewReportID()
		if !strings.HasPrefix(id, "report_") {
			t.Fatalf("NewReportID() = %q", id)
		}
		if seen[id] {
			t.Fatalf("NewReportID() collision: %q", id)
		}
		seen[id] = true
	}
}

type failingArchive struct{}

func (failingArchive) Put(context.Context, string, string, []byte) error {
	return errors.New("archive unavailable")
}
func (failingArchive) Get(context.Context, string, string) ([]byte, error) {
	return nil, archive.ErrNotFound
}
func (failingArchive) GetURL(context.Context, string, string) (string, error) {
	return "", errors.New("archive unavailable")
}
func (failingArchive) List(context.Context, string) ([]string, error) {
	return nil, errors.New("archive unavailable")
}
