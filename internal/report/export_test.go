package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/skv/csm-reporter/internal/model"
)

func sampleDocument() Document {
	return Build(
		model.Period{
			Period:     "09/01/2025 to 09/07/2025",
			ReportDate: "8 September 2025",
			NewDate:    "09/07/2025",
		},
		model.Summary{
			StatusCounts: map[string]int{"New": 1, "Closed": 2},
			TotalTickets: 3,
			Completed:    2,
			Pending:      1,
		},
		model.Aggregation{
			ResourceCounts: map[string]int{"Ann": 4},
			StatusCounts:   map[string]int{"Closed": 4},
			DateWise:       map[string]model.DateBreakdown{},
		},
		1,
	)
}

func TestBuild(t *testing.T) {
	doc := sampleDocument()

	if doc.Metadata.ReportDate != "8 September 2025" {
		t.Errorf("ReportDate = %q", doc.Metadata.ReportDate)
	}
	if doc.Metadata.NewPeriod != "09/01/2025 to 09/07/2025" {
		t.Errorf("NewPeriod = %q", doc.Metadata.NewPeriod)
	}
	if doc.Metadata.TotalTasks != 3 || doc.Metadata.CompletedTasks != 2 {
		t.Errorf("totals = %d/%d, want 3/2", doc.Metadata.TotalTasks, doc.Metadata.CompletedTasks)
	}
	if doc.Metadata.DeletedRows != 1 {
		t.Errorf("DeletedRows = %d, want 1", doc.Metadata.DeletedRows)
	}
	if doc.Metadata.GeneratedAt == "" {
		t.Error("GeneratedAt is blank")
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "csm_report.json")

	if err := WriteJSON(sampleDocument(), path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var decoded struct {
		Metadata Metadata `json:"metadata"`
		Tickets  struct {
			StatusCounts map[string]int `json:"ticket_status_data"`
		} `json:"ticket_data"`
		Daas struct {
			ResourceCounts map[string]int `json:"resource_counts"`
		} `json:"daas_data"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Metadata.ReportDate != "8 September 2025" {
		t.Errorf("metadata.report_date = %q", decoded.Metadata.ReportDate)
	}
	if decoded.Tickets.StatusCounts["Closed"] != 2 {
		t.Errorf("ticket_data.ticket_status_data = %v", decoded.Tickets.StatusCounts)
	}
	if decoded.Daas.ResourceCounts["Ann"] != 4 {
		t.Errorf("daas_data.resource_counts = %v", decoded.Daas.ResourceCounts)
	}
}
