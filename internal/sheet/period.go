package sheet

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/skv/csm-reporter/internal/model"
)

// ErrNoPeriod means the header cell held no recognizable date range.
var ErrNoPeriod = errors.New("no date period found")

// The report header encodes the window in one of a few shapes, e.g.
// "Custom (9/1/2025 to 9/7/2025)" or "equals Custom (9/1/2025 to 9/7/2025)".
var periodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\((\d{1,2}/\d{1,2}/\d{4})\s+to\s+(\d{1,2}/\d{1,2}/\d{4})\)`),
	regexp.MustCompile(`(?i)(\d{1,2}/\d{1,2}/\d{4})\s+to\s+(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(?i)Custom\s*\((\d{1,2}/\d{1,2}/\d{4})\s+to\s+(\d{1,2}/\d{1,2}/\d{4})\)`),
	regexp.MustCompile(`(?i)equals\s*Custom\s*\((\d{1,2}/\d{1,2}/\d{4})\s+to\s+(\d{1,2}/\d{1,2}/\d{4})\)`),
}

// ParsePeriod extracts the reporting window from the header cell text. The
// report date is the day after the period end.
func ParsePeriod(text string) (model.Period, error) {
	for _, pat := range periodPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		start, err := time.Parse("1/2/2006", m[1])
		if err != nil {
			return model.Period{}, fmt.Errorf("period start %q: %w", m[1], err)
		}
		end, err := time.Parse("1/2/2006", m[2])
		if err != nil {
			return model.Period{}, fmt.Errorf("period end %q: %w", m[2], err)
		}

		report := end.AddDate(0, 0, 1)
		return model.Period{
			Period:     start.Format("01/02/2006") + " to " + end.Format("01/02/2006"),
			ReportDate: report.Format("2 January 2006"),
			NewDate:    end.Format("01/02/2006"),
			Start:      start,
			End:        end,
		}, nil
	}

	return model.Period{}, fmt.Errorf("%w in %q", ErrNoPeriod, text)
}

// ExtractPeriod reads the configured header cell and parses it.
func ExtractPeriod(w *Workbook, cellRef string) (model.Period, error) {
	text := w.CellByRef(cellRef)
	if text == "" {
		return model.Period{}, fmt.Errorf("%w: cell %s is empty", ErrNoPeriod, cellRef)
	}
	return ParsePeriod(text)
}

// DefaultPeriod is the deterministic fallback window used when the header
// cell cannot be parsed.
func DefaultPeriod() model.Period {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)
	return model.Period{
		Period:     "09/01/2025 to 09/07/2025",
		ReportDate: "8 September 2025",
		NewDate:    "09/07/2025",
		Start:      start,
		End:        end,
	}
}
