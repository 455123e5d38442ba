package stats

import (
	"testing"

	"github.com/skv/csm-reporter/internal/model"
)

func testConfig() model.StatsConfig {
	return model.StatsConfig{
		Statuses: []string{
			"New", "Inprogress", "Awaiting",
			"Internal Solution Provided", "Resolved with Customer", "Closed",
		},
		Priorities:    []string{"Priority 1", "Priority 2", "Priority 3", "Priority 4"},
		Accounts:      []string{"Automic", "BMS"},
		Users:         []string{"Ann", "Bob"},
		SLAMet:        100,
		SLALost:       0,
		UnknownStatus: model.UnknownStatusDrop,
	}
}

func TestRecordCountsSeededKeys(t *testing.T) {
	r := New(testConfig())

	r.Record("New", "Priority 1", "Automic", "Ann")
	r.Record("Closed", "Priority 2", "BMS", "Bob")

	s := r.Summary()
	if s.StatusCounts["New"] != 1 || s.StatusCounts["Closed"] != 1 {
		t.Errorf("status counts = %v", s.StatusCounts)
	}
	if s.PriorityCounts["Priority 1"] != 1 {
		t.Errorf("priority counts = %v", s.PriorityCounts)
	}
	if s.AccountCounts["Automic"] != 1 || s.AccountCounts["BMS"] != 1 {
		t.Errorf("account counts = %v", s.AccountCounts)
	}
	if s.UserCompleted["Ann"] != 1 || s.UserCompleted["Bob"] != 1 {
		t.Errorf("user counts = %v", s.UserCompleted)
	}
	if s.TotalTickets != 2 {
		t.Errorf("TotalTickets = %d, want 2", s.TotalTickets)
	}
	if s.SLA["SLA Met"] != 100 {
		t.Errorf("SLA seed lost: %v", s.SLA)
	}
}

func TestRecordCarriesStatusForward(t *testing.T) {
	r := New(testConfig())

	r.Record("Inprogress", "Priority 3", "Automic", "Ann")
	// The merged status cell reads blank for the following rows.
	r.Record("", "Priority 3", "Automic", "Ann")
	r.Record("  ", "Priority 2", "BMS", "Bob")

	s := r.Summary()
	if got := s.StatusCounts["Inprogress"]; got != 3 {
		t.Errorf("StatusCounts[Inprogress] = %d, want 3 (carried forward)", got)
	}
	if s.TotalTickets != 3 {
		t.Errorf("TotalTickets = %d, want 3", s.TotalTickets)
	}
}

func TestRecordUnseededValuesDropped(t *testing.T) {
	r := New(testConfig())

	r.Record("Telepathy", "Priority 9", "Megacorp", "Zed")

	s := r.Summary()
	for k, v := range s.StatusCounts {
		if v != 0 {
			t.Errorf("StatusCounts[%q] = %d, want 0", k, v)
		}
	}
	if _, ok := s.StatusCounts["Telepathy"]; ok {
		t.Error("unseeded status key must not be created")
	}
	if _, ok := s.AccountCounts["Megacorp"]; ok {
		t.Error("unseeded account key must not be created")
	}
	// The record still counts toward the session total.
	if s.TotalTickets != 1 {
		t.Errorf("TotalTickets = %d, want 1", s.TotalTickets)
	}
}

func TestUnknownStatusPolicies(t *testing.T) {
	t.Run("drop", func(t *testing.T) {
		r := New(testConfig())
		r.Record("", "Priority 1", "Automic", "Ann")

		s := r.Summary()
		if _, ok := s.StatusCounts[UnknownKey]; ok {
			t.Error("drop policy must not create the Unknown bucket")
		}
		if s.TotalTickets != 1 {
			t.Errorf("TotalTickets = %d, want 1", s.TotalTickets)
		}
	})

	t.Run("bucket", func(t *testing.T) {
		cfg := testConfig()
		cfg.UnknownStatus = model.UnknownStatusBucket
		r := New(cfg)
		r.Record("", "Priority 1", "Automic", "Ann")
		// Once a concrete status appears, the carry takes over.
		r.Record("New", "Priority 1", "Automic", "Ann")
		r.Record("", "Priority 1", "Automic", "Ann")

		s := r.Summary()
		if got := s.StatusCounts[UnknownKey]; got != 1 {
			t.Errorf("StatusCounts[Unknown] = %d, want 1", got)
		}
		if got := s.StatusCounts["New"]; got != 2 {
			t.Errorf("StatusCounts[New] = %d, want 2", got)
		}
	})
}

func TestSummaryCompletedPending(t *testing.T) {
	r := New(testConfig())

	r.Record("Resolved with Customer", "Priority 1", "Automic", "Ann")
	r.Record("Closed", "Priority 1", "Automic", "Ann")
	r.Record("New", "Priority 1", "Automic", "Ann")
	r.Record("Awaiting", "Priority 1", "Automic", "Ann")

	s := r.Summary()
	if s.Completed != 2 {
		t.Errorf("Completed = %d, want 2", s.Completed)
	}
	if s.Pending != 2 {
		t.Errorf("Pending = %d, want 2", s.Pending)
	}
	if got := s.CompletionRate(); got != 50 {
		t.Errorf("CompletionRate() = %v, want 50", got)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	r := New(testConfig())
	r.Record("New", "Priority 1", "Automic", "Ann")
	r.Record("", "Priority 2", "BMS", "Bob")

	snap := r.Snapshot()
	total := r.Total()
	last := r.LastStatus()

	restored := New(testConfig())
	restored.Restore(snap, total, last)

	// The carried status survives the round trip.
	restored.Record("", "Priority 1", "Automic", "Ann")

	s := restored.Summary()
	if got := s.StatusCounts["New"]; got != 3 {
		t.Errorf("StatusCounts[New] = %d, want 3", got)
	}
	if s.TotalTickets != 3 {
		t.Errorf("TotalTickets = %d, want 3", s.TotalTickets)
	}
}

func TestResetClearsState(t *testing.T) {
	r := New(testConfig())
	r.Record("New", "Priority 1", "Automic", "Ann")

	r.Reset()

	if r.Total() != 0 {
		t.Errorf("Total() = %d, want 0", r.Total())
	}
	if r.LastStatus() != "" {
		t.Errorf("LastStatus() = %q, want blank", r.LastStatus())
	}
	r.Record("", "Priority 1", "Automic", "Ann")
	if got := r.Summary().StatusCounts["New"]; got != 0 {
		t.Errorf("carried status survived Reset: New = %d", got)
	}
}
