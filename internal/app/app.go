// Package app wires the review session together: the sheet walker, the
// statistics sink, the session store, and the Bubble Tea view stack.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skv/csm-reporter/internal/keys"
	"github.com/skv/csm-reporter/internal/logger"
	"github.com/skv/csm-reporter/internal/model"
	"github.com/skv/csm-reporter/internal/report"
	"github.com/skv/csm-reporter/internal/stats"
	"github.com/skv/csm-reporter/internal/store"
	"github.com/skv/csm-reporter/internal/ui"
	helpview "github.com/skv/csm-reporter/internal/ui/help"
	"github.com/skv/csm-reporter/internal/ui/review"
	"github.com/skv/csm-reporter/internal/ui/summaryview"
	"github.com/skv/csm-reporter/internal/ui/triage"
	"github.com/skv/csm-reporter/internal/walker"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewReview ViewState = iota
	ViewTriage
	ViewSummary
	ViewHelp
)

// stepMsg carries the walker's next step into the update loop.
type stepMsg struct {
	step walker.Step
	err  error
}

// progressSavedMsg reports the result of persisting session progress.
type progressSavedMsg struct {
	err error
}

// outputsWrittenMsg reports the result of writing the final deliverables.
type outputsWrittenMsg struct {
	paths []string
	err   error
}

// Deps bundles everything the root model needs; cmd/csmreport assembles it.
type Deps struct {
	Store   *store.SQLiteStore
	Walker  *walker.Walker
	Report  *stats.Report
	Session model.Session
	Daas    model.Aggregation
	Period  model.Period
	Config  model.AppConfig
	OutDir  string
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and session persistence.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	deps   Deps
	ticket model.Ticket

	reviewView  review.Model
	triageView  triage.Model
	summaryView summaryview.Model
	helpView    helpview.Model

	ready  bool
	done   bool
	errMsg string
}

// New creates the root application model.
func New(deps Deps) Model {
	km := keys.DefaultKeyMap()

	return Model{
		currentView: ViewReview,
		keys:        km,
		deps:        deps,
		reviewView:  review.New(80, 24),
		triageView:  triage.New(deps.Config.Stats.Accounts, 80, 24),
		summaryView: summaryview.New(80, 24),
		helpView:    helpview.New(km, 80, 24),
	}
}

// Init advances the walker to the first reviewable row.
func (m Model) Init() tea.Cmd {
	return m.advance()
}

// advance returns a command that walks forward past section boundaries and
// stops at the next ticket row or at session completion.
func (m Model) advance() tea.Cmd {
	w := m.deps.Walker
	return func() tea.Msg {
		for {
			step, err := w.Current()
			if err != nil {
				return stepMsg{err: err}
			}
			if step.Kind == walker.StepSubtotal {
				continue
			}
			return stepMsg{step: step}
		}
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.reviewView.SetSize(contentWidth, contentHeight)
		m.triageView.SetSize(contentWidth, contentHeight)
		m.summaryView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case stepMsg:
		return m.handleStep(msg)

	case progressSavedMsg:
		if msg.err != nil {
			logger.Logger.Error("saving session progress", "error", msg.err)
			m.errMsg = "progress save failed, see log"
		}
		return m, nil

	case outputsWrittenMsg:
		if msg.err != nil {
			logger.Logger.Error("writing outputs", "error", msg.err)
			m.summaryView.SetError(fmt.Sprintf("output generation failed: %v", msg.err))
		}
		m.summaryView.SetResults(
			m.deps.Report.Summary(), m.deps.Daas, m.deps.Period, msg.paths,
		)
		m.currentView = ViewSummary
		return m, nil

	case triage.SubmittedMsg:
		m.currentView = ViewReview
		if err := m.deps.Walker.UpdateCurrent(msg.Action, msg.Account); err != nil {
			return m.handleWalkError(err)
		}
		m.reviewView.SetStatusLine("")
		return m, tea.Batch(m.saveProgress(), m.advance())

	case triage.CancelMsg:
		m.currentView = ViewReview
		return m, nil

	case tea.KeyMsg:
		// Global keys that work regardless of current view.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Sequence(m.saveProgress(), tea.Quit)

		case "q":
			if m.currentView == ViewReview || m.currentView == ViewSummary {
				return m, tea.Sequence(m.saveProgress(), tea.Quit)
			}

		case "?":
			// The triage form owns text input while focused.
			if m.currentView == ViewTriage {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "esc":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}

		case "u":
			if m.currentView == ViewReview && !m.done {
				m.previousView = m.currentView
				m.currentView = ViewTriage
				return m, m.triageView.Start(m.ticket)
			}

		case "d":
			if m.currentView == ViewReview && !m.done {
				collapsed, err := m.deps.Walker.DeleteCurrent()
				if err != nil {
					return m.handleWalkError(err)
				}
				if collapsed {
					m.reviewView.SetStatusLine("Row removed; empty section collapsed.")
				} else {
					m.reviewView.SetStatusLine("Row removed.")
				}
				return m, tea.Batch(m.saveProgress(), m.advance())
			}
		}
	}

	// Delegate to active sub-view.
	return m.updateActiveView(msg)
}

// handleStep routes the walker's next step: a ticket lands in the review
// card; a terminal step finalizes the session and builds the outputs.
func (m Model) handleStep(msg stepMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleWalkError(msg.err)
	}

	switch msg.step.Kind {
	case walker.StepTicket:
		m.errMsg = ""
		m.ticket = msg.step.Ticket
		cur, total := m.deps.Walker.SectionProgress()
		m.reviewView.SetTicket(msg.step.Ticket, cur, total)
		m.currentView = ViewReview
		return m, nil

	case walker.StepTotal, walker.StepEnd:
		m.done = true
		return m, tea.Sequence(m.saveProgress(), m.writeOutputs())

	default:
		return m, nil
	}
}

// handleWalkError maps walker failures onto the UI. A corrupted session is
// terminal; everything else is surfaced in the status bar and the review
// continues.
func (m Model) handleWalkError(err error) (tea.Model, tea.Cmd) {
	logger.Logger.Error("walk operation failed", "error", err)

	switch {
	case errors.Is(err, walker.ErrSessionCorrupted):
		m.errMsg = "session corrupted: a sheet save failed; restart from the main report"
		m.done = true
		return m, m.saveProgress()
	case errors.Is(err, walker.ErrSessionComplete):
		m.done = true
		return m, nil
	default:
		m.errMsg = err.Error()
		return m, nil
	}
}

// saveProgress persists the walker cursor and statistics snapshot so the
// session can resume after an interruption.
func (m Model) saveProgress() tea.Cmd {
	sess := m.deps.Session
	sess.State = sessionState(m.deps.Walker.State())
	sess.CurrentRow = m.deps.Walker.CurrentRow()
	sess.DeletedRows = m.deps.Walker.DeletedRows()
	sess.Total = m.deps.Report.Total()
	sess.LastStatus = m.deps.Report.LastStatus()
	sess.Stats = m.deps.Report.Snapshot()
	sess.Period = m.deps.Period
	sess.Daas = &m.deps.Daas
	s := m.deps.Store

	return func() tea.Msg {
		return progressSavedMsg{err: s.SaveProgress(context.Background(), sess)}
	}
}

// writeOutputs builds the combined report document and writes the JSON file
// and the email draft next to the working copy.
func (m Model) writeOutputs() tea.Cmd {
	doc := report.Build(
		m.deps.Period, m.deps.Report.Summary(), m.deps.Daas,
		m.deps.Walker.DeletedRows(),
	)
	outDir := m.deps.OutDir

	return func() tea.Msg {
		jsonPath := filepath.Join(outDir, "csm_report.json")
		if err := report.WriteJSON(doc, jsonPath); err != nil {
			return outputsWrittenMsg{err: err}
		}

		emlPath := filepath.Join(outDir, "csm_report.eml")
		err := report.WriteEmailDraft(doc, report.EmailOptions{}, emlPath)
		if err != nil {
			return outputsWrittenMsg{paths: []string{jsonPath}, err: err}
		}

		return outputsWrittenMsg{paths: []string{jsonPath, emlPath}}
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewReview:
		m.reviewView, cmd = m.reviewView.Update(msg)
	case ViewTriage:
		m.triageView, cmd = m.triageView.Update(msg)
	case ViewSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("CSM Report", m.progress())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewReview:
		return m.reviewView.View()
	case ViewTriage:
		return m.triageView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// progress returns the header's right-hand session progress string.
func (m Model) progress() string {
	if m.done {
		return "complete"
	}
	cur, total := m.deps.Walker.SectionProgress()
	return fmt.Sprintf("row %d | section %d/%d | reviewed %d | deleted %d",
		m.deps.Walker.CurrentRow(), cur, total,
		m.deps.Report.Total(), m.deps.Walker.DeletedRows())
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.errMsg != "" && m.currentView == ViewReview {
		return m.errMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewTriage:
		return "enter submit | esc cancel"
	case ViewSummary:
		return "q quit"
	default:
		return "u update | d delete | ? help | q save and quit"
	}
}

// sessionState maps the walker lifecycle onto the persisted session state.
func sessionState(s walker.State) string {
	switch s {
	case walker.Complete:
		return model.SessionComplete
	case walker.Corrupted:
		return model.SessionCorrupted
	default:
		return model.SessionWalking
	}
}
