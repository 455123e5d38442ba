package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skv/csm-reporter/internal/model"
	"github.com/skv/csm-reporter/internal/store"
	"github.com/skv/csm-reporter/tests/testutil"
)

func TestSessionRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSession(ctx, model.Session{
		MainPath:    "/reports/weekly.xlsx",
		WorkingPath: "/reports/weekly_working_ab12cd34.xlsx",
		DaasPath:    "/reports/queue.xlsx",
		CurrentRow:  13,
		Stats: map[string]map[string]int{
			"status": {"New": 2, "Closed": 1},
		},
		Period: model.Period{
			Period:     "09/01/2025 to 09/07/2025",
			ReportDate: "8 September 2025",
			NewDate:    "09/07/2025",
		},
		Daas: &model.Aggregation{
			ResourceCounts: map[string]int{"Ann": 3},
			StatusCounts:   map[string]int{"Closed": 3},
			DateWise:       map[string]model.DateBreakdown{},
		},
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateSession did not assign an ID")
	}
	if created.State != model.SessionWalking {
		t.Errorf("State = %q, want walking", created.State)
	}

	got, err := s.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.WorkingPath != created.WorkingPath || got.CurrentRow != 13 {
		t.Errorf("got %+v", got)
	}
	if got.Stats["status"]["New"] != 2 {
		t.Errorf("stats blob lost: %v", got.Stats)
	}
	if got.Period.ReportDate != "8 September 2025" {
		t.Errorf("period blob lost: %+v", got.Period)
	}
	if got.Daas == nil || got.Daas.ResourceCounts["Ann"] != 3 {
		t.Errorf("daas blob lost: %+v", got.Daas)
	}
}

func TestSaveProgress(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	sess, err := s.CreateSession(ctx, model.Session{
		MainPath:    "/reports/weekly.xlsx",
		WorkingPath: "/reports/working.xlsx",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sess.CurrentRow = 21
	sess.DeletedRows = 2
	sess.Total = 8
	sess.LastStatus = "Inprogress"
	sess.State = model.SessionComplete
	if err := s.SaveProgress(ctx, sess); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}

	got, err := s.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.CurrentRow != 21 || got.DeletedRows != 2 || got.Total != 8 {
		t.Errorf("progress not persisted: %+v", got)
	}
	if got.LastStatus != "Inprogress" {
		t.Errorf("LastStatus = %q", got.LastStatus)
	}
	if got.State != model.SessionComplete {
		t.Errorf("State = %q, want complete", got.State)
	}
}

func TestSaveProgressUnknownSession(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.SaveProgress(context.Background(), model.Session{ID: "no-such-id"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLatestOpenSession(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if _, err := s.LatestOpenSession(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("empty store: err = %v, want ErrNotFound", err)
	}

	first, err := s.CreateSession(ctx, model.Session{MainPath: "/a.xlsx"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	second, err := s.CreateSession(ctx, model.Session{MainPath: "/b.xlsx"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	// Touch the first session so it becomes the most recently updated one.
	first.CurrentRow = 14
	if err := s.SaveProgress(ctx, first); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}

	got, err := s.LatestOpenSession(ctx)
	if err != nil {
		t.Fatalf("LatestOpenSession: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("latest = %s, want %s", got.ID, first.ID)
	}

	// Terminated sessions are not offered for resume.
	first.State = model.SessionComplete
	if err := s.SaveProgress(ctx, first); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	second.State = model.SessionCorrupted
	if err := s.SaveProgress(ctx, second); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	if _, err := s.LatestOpenSession(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("all terminated: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	sess, err := s.CreateSession(ctx, model.Session{MainPath: "/a.xlsx"})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(ctx, sess.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
