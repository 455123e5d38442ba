package model

import "time"

// Summary is the structured record handed to the deck-templating
// collaborator once a review session completes.
type Summary struct {
	StatusCounts   map[string]int `json:"ticket_status_data"`
	PriorityCounts map[string]int `json:"priority_data"`
	AccountCounts  map[string]int `json:"account_data"`
	UserCompleted  map[string]int `json:"individual_data"`
	SLA            map[string]int `json:"sla_data"`

	TotalTickets int `json:"total_tickets"`
	// Completed is the number of tickets whose status ended in a
	// terminal bucket (resolved with customer or closed).
	Completed int `json:"completed_tickets"`
	// Pending counts tickets still in flight (new, in progress, awaiting).
	Pending int `json:"pending_tickets"`
}

// CompletionRate returns Completed as a percentage of TotalTickets.
func (s Summary) CompletionRate() float64 {
	if s.TotalTickets == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.TotalTickets) * 100
}

// Period describes the reporting window extracted from the ticket sheet's
// header cell, e.g. "(9/1/2025 to 9/7/2025)".
type Period struct {
	// Period is the display string, "09/01/2025 to 09/07/2025".
	Period string `json:"new_period"`
	// ReportDate is the day after the period end, "8 September 2025".
	ReportDate string `json:"report_date"`
	// NewDate is the period end, "09/07/2025".
	NewDate string `json:"new_date"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}
