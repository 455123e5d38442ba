package queue

import (
	"strings"

	"github.com/skv/csm-reporter/internal/model"
)

// Columns are explicit 0-indexed column selectors for the queue export.
// The aggregator consumes these; the header-sniffing heuristics below are a
// separate, optional pre-pass. -1 means the column is absent.
type Columns struct {
	Resource int
	Status   int
	Date     int
}

var (
	resourceKeywords = []string{"resource", "assigned", "user", "owner", "responsible", "assignee"}
	statusKeywords   = []string{"status", "state", "condition"}
	dateKeywords     = []string{"date", "created", "updated", "modified", "timestamp"}
)

// maxStatusCardinality bounds how many distinct values a column may hold and
// still be guessed as the status column.
const maxStatusCardinality = 15

// ColumnsFromConfig resolves selectors from explicitly configured header
// names, case-insensitively. Headers left empty in the config resolve to -1.
func ColumnsFromConfig(headers []string, cfg model.QueueConfig) Columns {
	return Columns{
		Resource: findHeader(headers, cfg.ResourceHeader),
		Status:   findHeader(headers, cfg.StatusHeader),
		Date:     findHeader(headers, cfg.DateHeader),
	}
}

func findHeader(headers []string, want string) int {
	if want == "" {
		return -1
	}
	want = strings.ToLower(strings.TrimSpace(want))
	for i, h := range headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

// DetectColumns guesses the resource/status/date columns. Selectors already
// set in base are kept. The primary signal is header keywords; the fallback
// for resource is the first column, for status the first remaining column
// with few distinct values, for date the first column whose cells parse as
// dates. Best-effort by design: callers needing certainty should configure
// explicit headers instead.
func DetectColumns(headers []string, rows [][]string, base Columns) Columns {
	cols := base

	for i, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		if cols.Resource < 0 && containsAny(lower, resourceKeywords) {
			cols.Resource = i
		}
		if cols.Status < 0 && containsAny(lower, statusKeywords) {
			cols.Status = i
		}
		if cols.Date < 0 && containsAny(lower, dateKeywords) {
			cols.Date = i
		}
	}

	if cols.Resource < 0 && len(headers) > 0 {
		cols.Resource = 0
	}

	if cols.Status < 0 {
		for i := range headers {
			if i == cols.Resource {
				continue
			}
			if n := cardinality(rows, i); n > 0 && n < maxStatusCardinality {
				cols.Status = i
				break
			}
		}
	}

	if cols.Date < 0 {
		for i := range headers {
			if i == cols.Resource || i == cols.Status {
				continue
			}
			if looksLikeDates(rows, i) {
				cols.Date = i
				break
			}
		}
	}

	return cols
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func cardinality(rows [][]string, col int) int {
	seen := make(map[string]struct{})
	for _, row := range rows {
		v := cellAt(row, col)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

func looksLikeDates(rows [][]string, col int) bool {
	for _, row := range rows {
		v := cellAt(row, col)
		if v == "" {
			continue
		}
		// One parseable cell is enough; merged date columns are mostly
		// blank.
		return resolveDate(v, DefaultDateFormat) != v
	}
	return false
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
