package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SheetConfig describes where the ticket data lives inside the main report
// workbook. Columns are 1-indexed, matching the spreadsheet convention.
type SheetConfig struct {
	// Name is the worksheet holding the ticket table. When absent from
	// the workbook, the first sheet is used instead.
	Name string `mapstructure:"name" yaml:"name"`

	// FirstTicketRow is the row where ticket data begins; everything
	// above is header and metadata.
	FirstTicketRow int `mapstructure:"first_ticket_row" yaml:"first_ticket_row"`

	// HeaderRow is where the Actions/Account column headers are written
	// during sheet preparation.
	HeaderRow int `mapstructure:"header_row" yaml:"header_row"`

	// PeriodCell holds the date-range string, e.g. "(9/1/2025 to 9/7/2025)".
	PeriodCell string `mapstructure:"period_cell" yaml:"period_cell"`

	StatusCol      int `mapstructure:"status_col" yaml:"status_col"`
	CountLabelCol  int `mapstructure:"count_label_col" yaml:"count_label_col"`
	CaseIDCol      int `mapstructure:"case_id_col" yaml:"case_id_col"`
	ResponsibleCol int `mapstructure:"responsible_col" yaml:"responsible_col"`
	SubjectCol     int `mapstructure:"subject_col" yaml:"subject_col"`
	ActionCol      int `mapstructure:"action_col" yaml:"action_col"`
	AccountCol     int `mapstructure:"account_col" yaml:"account_col"`
	PriorityCol    int `mapstructure:"priority_col" yaml:"priority_col"`
}

// StatsConfig seeds the report histograms. Values outside these key sets are
// silently dropped by the aggregation model.
type StatsConfig struct {
	Statuses   []string `mapstructure:"statuses" yaml:"statuses"`
	Priorities []string `mapstructure:"priorities" yaml:"priorities"`
	Accounts   []string `mapstructure:"accounts" yaml:"accounts"`
	Users      []string `mapstructure:"users" yaml:"users"`

	// SLAMet and SLALost are the seed values for the SLA histogram.
	SLAMet  int `mapstructure:"sla_met" yaml:"sla_met"`
	SLALost int `mapstructure:"sla_lost" yaml:"sla_lost"`

	// UnknownStatus controls what happens when a ticket's status cell is
	// blank before any concrete status has been seen in the session:
	// "drop" skips the record, "bucket" counts it under "Unknown".
	UnknownStatus string `mapstructure:"unknown_status" yaml:"unknown_status"`
}

// QueueConfig configures the DaaS queue aggregation.
type QueueConfig struct {
	// ResourceHeader/StatusHeader/DateHeader pin the queue columns by
	// header name. Leave empty to let the sniffing pre-pass guess.
	ResourceHeader string `mapstructure:"resource_header" yaml:"resource_header"`
	StatusHeader   string `mapstructure:"status_header" yaml:"status_header"`
	DateHeader     string `mapstructure:"date_header" yaml:"date_header"`

	// DateFormat is the Go layout used for date keys in the breakdown.
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Sheet SheetConfig `mapstructure:"sheet" yaml:"sheet"`
	Stats StatsConfig `mapstructure:"stats" yaml:"stats"`
	Queue QueueConfig `mapstructure:"queue" yaml:"queue"`
}

// UnknownStatus policy values.
const (
	UnknownStatusDrop   = "drop"
	UnknownStatusBucket = "bucket"
)

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/csmreport/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "csmreport", "config.yaml")
}

// DefaultAppConfig returns the configuration matching the source report
// convention: ticket rows start at row 13, the period string lives in B7,
// and the histogram key sets mirror the team's fixed roster.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Sheet: SheetConfig{
			Name:           "Cloud Services Report",
			FirstTicketRow: 13,
			HeaderRow:      12,
			PeriodCell:     "B7",
			StatusCol:      2,
			CountLabelCol:  3,
			CaseIDCol:      4,
			ResponsibleCol: 5,
			SubjectCol:     7,
			ActionCol:      8,
			AccountCol:     9,
			PriorityCol:    12,
		},
		Stats: StatsConfig{
			Statuses: []string{
				"New", "Inprogress", "Awaiting",
				"Internal Solution Provided", "Resolved with Customer", "Closed",
			},
			Priorities: []string{"Priority 1", "Priority 2", "Priority 3", "Priority 4"},
			Accounts: []string{
				"Automic", "Beigene", "BMS", "Collegium",
				"Azure Imdaas", "Aws Imdaas", "MDM", "Usbu-Pede",
			},
			Users: []string{
				"Abhijeet Nashikkar", "Aditya Anand",
				"Nishanth Senthilkumar", "Sakthivel s Venkatachalam",
			},
			SLAMet:        100,
			SLALost:       0,
			UnknownStatus: UnknownStatusDrop,
		},
		Queue: QueueConfig{
			DateFormat: "02/01/2006",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return DefaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Sheet.FirstTicketRow < 1 {
		return nil, fmt.Errorf("config %s: sheet.first_ticket_row must be positive", path)
	}
	switch cfg.Stats.UnknownStatus {
	case UnknownStatusDrop, UnknownStatusBucket:
	case "":
		cfg.Stats.UnknownStatus = UnknownStatusDrop
	default:
		return nil, fmt.Errorf("config %s: stats.unknown_status must be %q or %q",
			path, UnknownStatusDrop, UnknownStatusBucket)
	}

	return cfg, nil
}
