// Package main is the entry point for the CSM report processor. It prepares
// a working copy of the weekly report, aggregates the DaaS queue export, and
// runs the Bubble Tea review program.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skv/csm-reporter/internal/app"
	"github.com/skv/csm-reporter/internal/logger"
	"github.com/skv/csm-reporter/internal/model"
	"github.com/skv/csm-reporter/internal/queue"
	"github.com/skv/csm-reporter/internal/sheet"
	"github.com/skv/csm-reporter/internal/stats"
	"github.com/skv/csm-reporter/internal/store"
	"github.com/skv/csm-reporter/internal/walker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error
// handling.
func run() error {
	var (
		reportPath = flag.String("report", "", "path to the main report workbook (.xlsx)")
		daasPath   = flag.String("daas", "", "path to the DaaS queue export (.xlsx); sample data is used when omitted or unreadable")
		configPath = flag.String("config", model.DefaultConfigPath(), "path to the YAML configuration file")
		resume     = flag.Bool("resume", false, "resume the most recent interrupted review session")
		reset      = flag.Bool("reset", false, "discard the most recent interrupted session and its working copy")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Usage = printUsage
	flag.Parse()

	configDir := filepath.Dir(*configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := logger.Init(logger.Config{Debug: *debug, ConfigDir: configDir}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(filepath.Join(configDir, "sessions.db"))
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer st.Close()

	if *reset {
		return resetSession(st)
	}

	report := stats.New(cfg.Stats)

	var (
		sess model.Session
		wb   *sheet.Workbook
		wk   *walker.Walker
		daas model.Aggregation
		per  model.Period
	)

	if *resume {
		sess, wb, wk, daas, per, err = resumeSession(st, cfg, report)
	} else {
		if *reportPath == "" {
			flag.Usage()
			return errors.New("the -report flag is required")
		}
		sess, wb, wk, daas, per, err = newSession(st, cfg, report, *reportPath, *daasPath)
	}
	if err != nil {
		return err
	}
	defer wb.Close()

	deps := app.Deps{
		Store:   st,
		Walker:  wk,
		Report:  report,
		Session: sess,
		Daas:    daas,
		Period:  per,
		Config:  *cfg,
		OutDir:  filepath.Dir(wb.Path()),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(app.New(deps), tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running review program: %w", err)
	}

	return nil
}

// newSession prepares a fresh review: copy the main report, insert the
// Actions/Account columns, extract the reporting period, aggregate the DaaS
// queue, and record the session.
func newSession(
	st *store.SQLiteStore,
	cfg *model.AppConfig,
	report *stats.Report,
	reportPath, daasPath string,
) (model.Session, *sheet.Workbook, *walker.Walker, model.Aggregation, model.Period, error) {
	fail := func(err error) (model.Session, *sheet.Workbook, *walker.Walker, model.Aggregation, model.Period, error) {
		return model.Session{}, nil, nil, model.Aggregation{}, model.Period{}, err
	}

	workingPath, err := sheet.CopyToWorking(reportPath)
	if err != nil {
		return fail(err)
	}
	logger.Logger.Info("working copy created", "path", workingPath)

	wb, err := sheet.Load(workingPath, cfg.Sheet.Name)
	if err != nil {
		return fail(err)
	}

	if err := sheet.Prepare(wb, cfg.Sheet); err != nil {
		wb.Close()
		return fail(fmt.Errorf("preparing working copy: %w", err))
	}

	per, err := sheet.ExtractPeriod(wb, cfg.Sheet.PeriodCell)
	if err != nil {
		logger.Logger.Warn("no period found in report, using defaults", "cell", cfg.Sheet.PeriodCell)
		per = sheet.DefaultPeriod()
	}

	daas := aggregateQueue(daasPath, cfg.Queue)

	wk := walker.New(wb, cfg.Sheet, report)

	sess, err := st.CreateSession(context.Background(), model.Session{
		MainPath:    reportPath,
		WorkingPath: workingPath,
		DaasPath:    daasPath,
		State:       model.SessionWalking,
		CurrentRow:  wk.CurrentRow(),
		Stats:       report.Snapshot(),
		Period:      per,
		Daas:        &daas,
	})
	if err != nil {
		wb.Close()
		return fail(err)
	}

	return sess, wb, wk, daas, per, nil
}

// resumeSession restores the most recent interrupted review from the store:
// the working copy is reopened and the walker and statistics pick up at the
// persisted cursor.
func resumeSession(
	st *store.SQLiteStore,
	cfg *model.AppConfig,
	report *stats.Report,
) (model.Session, *sheet.Workbook, *walker.Walker, model.Aggregation, model.Period, error) {
	fail := func(err error) (model.Session, *sheet.Workbook, *walker.Walker, model.Aggregation, model.Period, error) {
		return model.Session{}, nil, nil, model.Aggregation{}, model.Period{}, err
	}

	sess, err := st.LatestOpenSession(context.Background())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(errors.New("no interrupted session to resume; start a new review with -report"))
		}
		return fail(err)
	}
	logger.Logger.Info("resuming session",
		"id", sess.ID, "row", sess.CurrentRow, "working", sess.WorkingPath)

	wb, err := sheet.Load(sess.WorkingPath, cfg.Sheet.Name)
	if err != nil {
		return fail(fmt.Errorf("reopening working copy: %w", err))
	}

	report.Restore(sess.Stats, sess.Total, sess.LastStatus)
	wk := walker.Resume(wb, cfg.Sheet, report, sess.CurrentRow, sess.DeletedRows)

	var daas model.Aggregation
	if sess.Daas != nil {
		daas = *sess.Daas
	} else {
		daas = aggregateQueue(sess.DaasPath, cfg.Queue)
	}

	return *sess, wb, wk, daas, sess.Period, nil
}

// resetSession discards the most recent interrupted session: its working
// copy is deleted from disk and its row removed from the store. The uploaded
// original is never touched.
func resetSession(st *store.SQLiteStore) error {
	ctx := context.Background()

	sess, err := st.LatestOpenSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Println("No interrupted session to reset.")
			return nil
		}
		return err
	}

	if sess.WorkingPath != "" {
		if err := os.Remove(sess.WorkingPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing working copy %s: %w", sess.WorkingPath, err)
		}
	}
	if err := st.DeleteSession(ctx, sess.ID); err != nil {
		return err
	}

	logger.Logger.Info("session reset", "id", sess.ID, "working", sess.WorkingPath)
	fmt.Printf("Discarded session %s and its working copy.\n", sess.ID)
	return nil
}

// aggregateQueue reads the DaaS queue export; any failure falls back to the
// built-in sample dataset so report generation never blocks on the export.
func aggregateQueue(path string, cfg model.QueueConfig) model.Aggregation {
	if path == "" {
		logger.Logger.Info("no DaaS export given, using sample data")
		return queue.SampleData()
	}
	agg, err := queue.Extract(path, cfg)
	if err != nil {
		logger.Logger.Warn("DaaS export unreadable, using sample data", "path", path, "error", err)
		return queue.SampleData()
	}
	return agg
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Fprintln(os.Stderr, `csmreport - weekly CSM report processor

Usage:
  csmreport -report weekly.xlsx [-daas queue.xlsx] [flags]
  csmreport -resume

Flags:
  -report path    Main report workbook (.xlsx); required for a new review
  -daas path      DaaS queue export (.xlsx); sample data when omitted
  -config path    Configuration file (default ~/.config/csmreport/config.yaml)
  -resume         Resume the most recent interrupted review
  -reset          Discard the most recent interrupted session and its working copy
  -debug          Enable debug logging

Keyboard Shortcuts:
  u               Update the ticket under review (action notes + account)
  d               Delete the row under review
  ?               Toggle help
  q, Ctrl+C       Save progress and quit`)
}
