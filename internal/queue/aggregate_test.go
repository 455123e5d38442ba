package queue

import (
	"testing"

	"github.com/skv/csm-reporter/internal/model"
)

func TestAggregateCountsAndDateCarry(t *testing.T) {
	records := []model.Record{
		{Resource: "Ann", Status: "Resolved", Date: "09/01/2025"},
		{Resource: "Bob", Status: "closed", Date: ""},
		{Resource: "Ann", Status: "New", Date: "9/2/2025"},
	}

	agg := Aggregate(records, DefaultDateFormat)

	if got := agg.ResourceCounts["Ann"]; got != 2 {
		t.Errorf("ResourceCounts[Ann] = %d, want 2", got)
	}
	if got := agg.ResourceCounts["Bob"]; got != 1 {
		t.Errorf("ResourceCounts[Bob] = %d, want 1", got)
	}
	if got := agg.StatusCounts[model.StatusResolved]; got != 1 {
		t.Errorf("StatusCounts[Resolved] = %d, want 1", got)
	}
	if got := agg.StatusCounts[model.StatusClosed]; got != 1 {
		t.Errorf("StatusCounts[Closed] = %d, want 1", got)
	}

	// "09/01/2025" is month-first input; the breakdown key is day-first.
	day1, ok := agg.DateWise["01/09/2025"]
	if !ok {
		t.Fatalf("DateWise missing key 01/09/2025, have %v", keys(agg.DateWise))
	}
	// Bob's blank date inherits the previous row's.
	if got := day1.Resources["Bob"]; got != 1 {
		t.Errorf("day1 Resources[Bob] = %d, want 1", got)
	}
	if got := day1.Resources["Ann"]; got != 1 {
		t.Errorf("day1 Resources[Ann] = %d, want 1", got)
	}
	if got := day1.Statuses[model.StatusClosed]; got != 1 {
		t.Errorf("day1 Statuses[Closed] = %d, want 1", got)
	}

	day2, ok := agg.DateWise["02/09/2025"]
	if !ok {
		t.Fatalf("DateWise missing key 02/09/2025, have %v", keys(agg.DateWise))
	}
	if got := day2.Resources["Ann"]; got != 1 {
		t.Errorf("day2 Resources[Ann] = %d, want 1", got)
	}
}

func TestAggregateResourceSumMatchesBreakdown(t *testing.T) {
	records := []model.Record{
		{Resource: "Ann", Status: "New", Date: "9/1/2025"},
		{Resource: "Ann", Status: "Resolved", Date: ""},
		{Resource: "Bob", Status: "", Date: "9/2/2025"},
		{Resource: "Cid", Status: "closed", Date: ""},
	}

	agg := Aggregate(records, DefaultDateFormat)

	breakdownTotal := 0
	for _, day := range agg.DateWise {
		for _, n := range day.Resources {
			breakdownTotal += n
		}
	}
	if got := agg.TotalByResource(); got != breakdownTotal {
		t.Errorf("TotalByResource() = %d, breakdown sum = %d", got, breakdownTotal)
	}
}

func TestAggregatePartialRows(t *testing.T) {
	records := []model.Record{
		// No date seen yet: counted in the totals but absent from the
		// breakdown.
		{Resource: "Ann", Status: "New", Date: ""},
		// Blank resource still contributes its status.
		{Resource: "", Status: "Resolved", Date: "9/3/2025"},
		// Fully blank row changes nothing.
		{Resource: "", Status: "", Date: ""},
		// Unparseable dates key the breakdown as-is.
		{Resource: "Bob", Status: "", Date: "last week"},
	}

	agg := Aggregate(records, DefaultDateFormat)

	if got := agg.ResourceCounts["Ann"]; got != 1 {
		t.Errorf("ResourceCounts[Ann] = %d, want 1", got)
	}
	if len(agg.DateWise) != 2 {
		t.Fatalf("len(DateWise) = %d, want 2 (%v)", len(agg.DateWise), keys(agg.DateWise))
	}
	for _, day := range agg.DateWise {
		if day.Resources["Ann"] != 0 {
			t.Error("Ann leaked into the breakdown despite having no date")
		}
	}
	if _, ok := agg.DateWise["last week"]; !ok {
		t.Error("unparseable date was dropped instead of used verbatim")
	}
	if got := agg.StatusCounts[model.StatusResolved]; got != 1 {
		t.Errorf("StatusCounts[Resolved] = %d, want 1", got)
	}
}

func keys(m map[string]model.DateBreakdown) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
