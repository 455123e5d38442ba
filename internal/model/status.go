package model

import "strings"

// Canonical status buckets produced by NormalizeStatus.
const (
	StatusApproval   = "Approval"
	StatusClosed     = "Closed"
	StatusResolved   = "Resolved"
	StatusInProgress = "In Progress"
	StatusNew        = "New"
	StatusAwaiting   = "Awaiting"
)

// statusGroup maps a canonical bucket to the keywords that select it.
// Groups are evaluated in order; the first hit wins.
type statusGroup struct {
	canonical string
	keywords  []string
}

var statusGroups = []statusGroup{
	{StatusApproval, []string{"approval", "approve", "awaiting approval", "pending approval"}},
	{StatusClosed, []string{"closed", "ticket closed", "close"}},
	{StatusResolved, []string{"resolved", "resolve", "completed", "complete"}},
	{StatusInProgress, []string{"inprogress", "in progress", "in-progress", "progress", "working"}},
	{StatusNew, []string{"new", "open", "created"}},
	{StatusAwaiting, []string{"awaiting", "waiting", "pending"}},
}

// NormalizeStatus maps a free-text status string onto the canonical
// vocabulary. Matching is case-insensitive substring matching against the
// keyword groups above. A string that matches no group is returned trimmed
// but otherwise unchanged, so callers can still count rare statuses under
// their original label. Empty input is returned as-is.
func NormalizeStatus(raw string) string {
	if raw == "" {
		return raw
	}

	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	for _, g := range statusGroups {
		// "awaiting approval" must land in Approval, not Awaiting.
		if g.canonical == StatusAwaiting && strings.Contains(lower, "approval") {
			continue
		}
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.canonical
			}
		}
	}

	return trimmed
}
