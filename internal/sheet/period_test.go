package sheet

import (
	"errors"
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"parenthesized", "Report (9/1/2025 to 9/7/2025)"},
		{"bare range", "9/1/2025 to 9/7/2025"},
		{"custom filter", "Custom (9/1/2025 to 9/7/2025)"},
		{"equals custom filter", "Created Time equals Custom (9/1/2025 to 9/7/2025)"},
		{"zero padded input", "(09/01/2025 to 09/07/2025)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePeriod(tt.text)
			if err != nil {
				t.Fatalf("ParsePeriod(%q): %v", tt.text, err)
			}
			if p.Period != "09/01/2025 to 09/07/2025" {
				t.Errorf("Period = %q", p.Period)
			}
			if p.ReportDate != "8 September 2025" {
				t.Errorf("ReportDate = %q, want day after period end", p.ReportDate)
			}
			if p.NewDate != "09/07/2025" {
				t.Errorf("NewDate = %q", p.NewDate)
			}
			if !p.Start.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("Start = %v", p.Start)
			}
			if !p.End.Equal(time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("End = %v", p.End)
			}
		})
	}
}

func TestParsePeriodMonthRollover(t *testing.T) {
	p, err := ParsePeriod("(12/25/2025 to 12/31/2025)")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if p.ReportDate != "1 January 2026" {
		t.Errorf("ReportDate = %q, want 1 January 2026", p.ReportDate)
	}
}

func TestParsePeriodRejectsJunk(t *testing.T) {
	for _, text := range []string{"", "weekly report", "(9/1/2025)", "1/2/2025 until 3/4/2025"} {
		if _, err := ParsePeriod(text); !errors.Is(err, ErrNoPeriod) {
			t.Errorf("ParsePeriod(%q): err = %v, want ErrNoPeriod", text, err)
		}
	}
}

func TestDefaultPeriod(t *testing.T) {
	p := DefaultPeriod()
	if p.Period != "09/01/2025 to 09/07/2025" {
		t.Errorf("Period = %q", p.Period)
	}
	if p.ReportDate != "8 September 2025" {
		t.Errorf("ReportDate = %q", p.ReportDate)
	}
	if p.NewDate != "09/07/2025" {
		t.Errorf("NewDate = %q", p.NewDate)
	}
}
