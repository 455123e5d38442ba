package queue

import (
	"testing"

	"github.com/skv/csm-reporter/internal/model"
)

func TestColumnsFromConfig(t *testing.T) {
	headers := []string{"Resource Name", "Ticket Status", "Created Date"}

	cols := ColumnsFromConfig(headers, model.QueueConfig{
		ResourceHeader: "resource name",
		StatusHeader:   "Ticket Status",
		DateHeader:     "missing",
	})

	if cols.Resource != 0 {
		t.Errorf("Resource = %d, want 0", cols.Resource)
	}
	if cols.Status != 1 {
		t.Errorf("Status = %d, want 1", cols.Status)
	}
	if cols.Date != -1 {
		t.Errorf("Date = %d, want -1 for unmatched header", cols.Date)
	}
}

func TestDetectColumnsByKeyword(t *testing.T) {
	headers := []string{"ID", "Assigned To", "Status", "Created"}

	cols := DetectColumns(headers, nil, Columns{Resource: -1, Status: -1, Date: -1})

	if cols.Resource != 1 {
		t.Errorf("Resource = %d, want 1", cols.Resource)
	}
	if cols.Status != 2 {
		t.Errorf("Status = %d, want 2", cols.Status)
	}
	if cols.Date != 3 {
		t.Errorf("Date = %d, want 3", cols.Date)
	}
}

func TestDetectColumnsFallbacks(t *testing.T) {
	// No keyword matches anywhere: resource falls back to column 0, status
	// to the first low-cardinality column, date to the first parseable one.
	headers := []string{"Who", "Subject", "Condition?", "When"}
	rows := [][]string{
		{"Ann", "broken disk north cluster", "Open", "9/1/2025"},
		{"Bob", "quota exceeded in project", "Open", "9/2/2025"},
		{"Cid", "vm will not boot", "Done", ""},
		{"Dee", "network flaps hourly", "Done", "9/3/2025"},
	}

	cols := DetectColumns(headers, rows, Columns{Resource: -1, Status: -1, Date: -1})

	if cols.Resource != 0 {
		t.Errorf("Resource = %d, want 0", cols.Resource)
	}
	// "Condition?" matches the status keyword list before any fallback runs.
	if cols.Status != 2 {
		t.Errorf("Status = %d, want 2", cols.Status)
	}
	if cols.Date != 3 {
		t.Errorf("Date = %d, want 3", cols.Date)
	}
}

func TestDetectColumnsKeepsConfigured(t *testing.T) {
	headers := []string{"Status", "Resource", "Date"}

	cols := DetectColumns(headers, nil, Columns{Resource: 0, Status: -1, Date: -1})

	// The explicit selector wins even though the header says otherwise.
	if cols.Resource != 0 {
		t.Errorf("Resource = %d, want configured 0", cols.Resource)
	}
	if cols.Status != 0 {
		t.Errorf("Status = %d, want 0 (keyword match)", cols.Status)
	}
	if cols.Date != 2 {
		t.Errorf("Date = %d, want 2", cols.Date)
	}
}

func TestReadRecordsSkipsHeader(t *testing.T) {
	rows := [][]string{
		{"Resource", "Status", "Date"},
		{"Ann", "New", "9/1/2025"},
		{"Bob", "Closed", ""},
	}

	records := ReadRecords(rows, Columns{Resource: 0, Status: 1, Date: 2})

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Resource != "Ann" || records[0].Status != "New" {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Date != "" {
		t.Errorf("records[1].Date = %q, want blank (merged cell)", records[1].Date)
	}
}
