// Package queue ingests the DaaS queue export: column discovery, record
// extraction, and the resource/status/date aggregation used for the daily
// breakdown slide.
package queue

import (
	"strings"
	"time"

	"github.com/skv/csm-reporter/internal/model"
)

// DefaultDateFormat is the layout for date keys in the breakdown.
const DefaultDateFormat = "02/01/2006"

// dateLayouts are tried in order when resolving a date cell. The export
// writes US-style month-first dates; ISO forms show up when the column is
// typed as datetime.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2-Jan-2006",
}

// Aggregate scans records in order and produces per-resource counts,
// per-canonical-status counts, and the date-keyed breakdown of both.
//
// A blank date cell inherits the most recently seen non-blank date (the
// export merges date cells vertically). A date that does not parse is used
// as-is rather than dropped. The resource and status contributions to the
// breakdown are independent: a record may add to one, both, or neither.
func Aggregate(records []model.Record, dateFormat string) model.Aggregation {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	agg := model.NewAggregation()
	currentDate := ""

	for _, rec := range records {
		resource := strings.TrimSpace(rec.Resource)
		if resource != "" {
			agg.ResourceCounts[resource]++
		}

		status := ""
		if strings.TrimSpace(rec.Status) != "" {
			status = model.NormalizeStatus(rec.Status)
			agg.StatusCounts[status]++
		}

		dateKey := resolveDate(rec.Date, dateFormat)
		if dateKey != "" {
			currentDate = dateKey
		} else {
			dateKey = currentDate
		}

		if dateKey == "" || (resource == "" && status == "") {
			continue
		}

		day, ok := agg.DateWise[dateKey]
		if !ok {
			day = model.DateBreakdown{
				Resources: make(map[string]int),
				Statuses:  make(map[string]int),
			}
			agg.DateWise[dateKey] = day
		}
		if resource != "" {
			day.Resources[resource]++
		}
		if status != "" {
			day.Statuses[status]++
		}
	}

	return agg
}

// resolveDate formats a parseable date cell with the configured layout and
// falls back to the raw trimmed string otherwise. Blank input stays blank so
// the caller can apply the merged-cell carry.
func resolveDate(raw, dateFormat string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateFormat)
		}
	}
	return raw
}
