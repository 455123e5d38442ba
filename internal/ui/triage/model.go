// Package triage hosts the update form: the analyst's action notes and the
// account attribution for the ticket under review.
package triage

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/skv/csm-reporter/internal/model"
	"github.com/skv/csm-reporter/internal/theme"
)

// SubmittedMsg is dispatched when the analyst submits the form.
type SubmittedMsg struct {
	Action  string
	Account string
}

// CancelMsg is dispatched when the analyst backs out of the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	action  string
	account string
}

// Model is the Bubble Tea model for the triage form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	accounts []string
	ticket   model.Ticket
	width    int
	height   int
}

// New creates a triage form model offering the given account choices.
func New(accounts []string, width, height int) Model {
	return Model{
		fb:       &formBindings{},
		accounts: accounts,
		width:    width,
		height:   height,
	}
}

// Start initializes the form for the given ticket.
func (m *Model) Start(t model.Ticket) tea.Cmd {
	m.ticket = t
	m.fb.action = ""
	if len(m.accounts) > 0 {
		m.fb.account = m.accounts[0]
	}
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	opts := make([]huh.Option[string], len(m.accounts))
	for i, a := range m.accounts {
		opts[i] = huh.NewOption(a, a)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Action taken").
				Placeholder("What was done for this ticket?").
				Value(&m.fb.action).
				Validate(validateRequired("Action taken")),
			huh.NewSelect[string]().
				Title("Account").
				Options(opts...).
				Value(&m.fb.account),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// Update handles messages for the triage form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		action := m.fb.action
		account := m.fb.account
		return m, func() tea.Msg { return SubmittedMsg{Action: action, Account: account} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the triage form under a short ticket reminder line.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render(
		fmt.Sprintf("Update row %d: %s", m.ticket.Row, m.ticket.Subject),
	)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(title + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
