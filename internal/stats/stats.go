// Package stats accumulates the running review statistics: one histogram
// each for status, priority, account, per-user completions, and SLA. The
// key sets are seeded up front; values outside them are dropped rather than
// counted, which is the deliberate best-effort policy of the report.
package stats

import (
	"strings"

	"github.com/skv/csm-reporter/internal/model"
)

// UnknownKey is the bucket used for blank statuses under the "bucket"
// policy when no concrete status has been seen yet in the session.
const UnknownKey = "Unknown"

// Report is the in-memory aggregation model for one review session. It is
// mutated once per processed ticket and never concurrently.
type Report struct {
	cfg model.StatsConfig

	status   map[string]int
	priority map[string]int
	account  map[string]int
	user     map[string]int
	sla      map[string]int

	total int

	// lastStatus carries the most recent non-blank status across rows,
	// mirroring the sheet's vertically merged status cells.
	lastStatus string
}

// New returns a Report with every histogram pre-seeded to zero (SLA to its
// configured seed values).
func New(cfg model.StatsConfig) *Report {
	r := &Report{cfg: cfg}
	r.Reset()
	return r
}

// Reset clears all counters back to their seed state and forgets the
// carried status.
func (r *Report) Reset() {
	r.status = seed(r.cfg.Statuses)
	r.priority = seed(r.cfg.Priorities)
	r.account = seed(r.cfg.Accounts)
	r.user = seed(r.cfg.Users)
	r.sla = map[string]int{
		"SLA Met":  r.cfg.SLAMet,
		"SLA Lost": r.cfg.SLALost,
	}
	r.total = 0
	r.lastStatus = ""
}

func seed(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}

// Record folds one reviewed ticket into the histograms. A blank status
// reuses the last non-blank status seen this session; before any status has
// been seen, the unknown-status policy decides between dropping the record's
// status contribution and counting it under UnknownKey. Unknown priorities,
// accounts, and users are silently dropped.
func (r *Report) Record(status, priority, account, user string) {
	status = strings.TrimSpace(status)
	if status != "" {
		r.lastStatus = status
	}

	effective := r.lastStatus
	if effective == "" && r.cfg.UnknownStatus == model.UnknownStatusBucket {
		r.status[UnknownKey]++
	} else if effective != "" {
		if _, ok := r.status[effective]; ok {
			r.status[effective]++
		}
	}

	if _, ok := r.priority[strings.TrimSpace(priority)]; ok {
		r.priority[strings.TrimSpace(priority)]++
	}
	if _, ok := r.account[account]; ok {
		r.account[account]++
	}
	if _, ok := r.user[strings.TrimSpace(user)]; ok {
		r.user[strings.TrimSpace(user)]++
	}

	r.total++
}

// Total returns the number of recorded tickets.
func (r *Report) Total() int { return r.total }

// Summary derives the structured summary handed to the output collaborators.
// Completed covers the terminal buckets; Pending covers tickets still in
// flight.
func (r *Report) Summary() model.Summary {
	completed := r.status["Resolved with Customer"] + r.status["Closed"]
	pending := r.status["New"] + r.status["Inprogress"] + r.status["Awaiting"]

	return model.Summary{
		StatusCounts:   clone(r.status),
		PriorityCounts: clone(r.priority),
		AccountCounts:  clone(r.account),
		UserCompleted:  clone(r.user),
		SLA:            clone(r.sla),
		TotalTickets:   r.total,
		Completed:      completed,
		Pending:        pending,
	}
}

// Snapshot exposes the raw histograms for persistence.
func (r *Report) Snapshot() map[string]map[string]int {
	return map[string]map[string]int{
		"status":   clone(r.status),
		"priority": clone(r.priority),
		"account":  clone(r.account),
		"user":     clone(r.user),
		"sla":      clone(r.sla),
	}
}

// Restore loads a previously persisted snapshot, replacing current counters.
// Keys absent from the snapshot keep their seed values.
func (r *Report) Restore(snap map[string]map[string]int, total int, lastStatus string) {
	restore(r.status, snap["status"])
	restore(r.priority, snap["priority"])
	restore(r.account, snap["account"])
	restore(r.user, snap["user"])
	restore(r.sla, snap["sla"])
	r.total = total
	r.lastStatus = lastStatus
}

// LastStatus returns the carried status for persistence.
func (r *Report) LastStatus() string { return r.lastStatus }

func clone(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func restore(dst, src map[string]int) {
	for k, v := range src {
		dst[k] = v
	}
}
