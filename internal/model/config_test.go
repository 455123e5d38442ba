package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Sheet.FirstTicketRow != 13 {
		t.Errorf("FirstTicketRow = %d, want 13", cfg.Sheet.FirstTicketRow)
	}
	if cfg.Sheet.PeriodCell != "B7" {
		t.Errorf("PeriodCell = %q, want B7", cfg.Sheet.PeriodCell)
	}
	if cfg.Stats.UnknownStatus != UnknownStatusDrop {
		t.Errorf("UnknownStatus = %q, want drop", cfg.Stats.UnknownStatus)
	}
	if cfg.Queue.DateFormat != "02/01/2006" {
		t.Errorf("DateFormat = %q", cfg.Queue.DateFormat)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
sheet:
  first_ticket_row: 20
  status_col: 3
stats:
  unknown_status: bucket
queue:
  resource_header: Assigned To
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Sheet.FirstTicketRow != 20 {
		t.Errorf("FirstTicketRow = %d, want 20", cfg.Sheet.FirstTicketRow)
	}
	if cfg.Sheet.StatusCol != 3 {
		t.Errorf("StatusCol = %d, want 3", cfg.Sheet.StatusCol)
	}
	// Untouched keys keep their defaults.
	if cfg.Sheet.CaseIDCol != 4 {
		t.Errorf("CaseIDCol = %d, want default 4", cfg.Sheet.CaseIDCol)
	}
	if cfg.Stats.UnknownStatus != UnknownStatusBucket {
		t.Errorf("UnknownStatus = %q, want bucket", cfg.Stats.UnknownStatus)
	}
	if cfg.Queue.ResourceHeader != "Assigned To" {
		t.Errorf("ResourceHeader = %q", cfg.Queue.ResourceHeader)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero first ticket row", "sheet:\n  first_ticket_row: 0\n"},
		{"bad unknown status", "stats:\n  unknown_status: guess\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected validation to reject the config")
			}
		})
	}
}
