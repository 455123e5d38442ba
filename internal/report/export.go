// Package report assembles the final deliverables of a review session: a
// combined JSON summary document and an email draft that carries it.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skv/csm-reporter/internal/model"
)

// Document is the combined output of one completed review session. It joins
// the reporting-period metadata, the ticket-review histograms, and the DaaS
// queue aggregation into a single serializable record.
type Document struct {
	Metadata Metadata          `json:"metadata"`
	Tickets  model.Summary     `json:"ticket_data"`
	Daas     model.Aggregation `json:"daas_data"`
}

// Metadata carries the reporting window and session-level totals.
type Metadata struct {
	ReportDate  string `json:"report_date"`
	NewPeriod   string `json:"new_period"`
	NewDate     string `json:"new_date"`
	GeneratedAt string `json:"generation_timestamp"`

	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	DeletedRows    int `json:"deleted_rows"`
}

// Build assembles a Document from a session's collaborator outputs.
func Build(period model.Period, summary model.Summary, daas model.Aggregation, deleted int) Document {
	return Document{
		Metadata: Metadata{
			ReportDate:     period.ReportDate,
			NewPeriod:      period.Period,
			NewDate:        period.NewDate,
			GeneratedAt:    time.Now().Format(time.RFC3339),
			TotalTasks:     summary.TotalTickets,
			CompletedTasks: summary.Completed,
			DeletedRows:    deleted,
		},
		Tickets: summary,
		Daas:    daas,
	}
}

// WriteJSON serializes the document to path with indentation, creating
// parent directories as needed.
func WriteJSON(doc Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
