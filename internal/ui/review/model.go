// Package review renders the ticket card for the row currently under the
// walk cursor.
package review

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skv/csm-reporter/internal/model"
	"github.com/skv/csm-reporter/internal/theme"
)

// Model is the Bubble Tea model for the ticket review view.
type Model struct {
	ticket     model.Ticket
	hasTicket  bool
	statusLine string
	section    int
	sections   int
	width      int
	height     int
}

// New creates a review view.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetTicket swaps in the next ticket to review.
func (m *Model) SetTicket(t model.Ticket, section, sections int) {
	m.ticket = t
	m.hasTicket = true
	m.section = section
	m.sections = sections
}

// SetStatusLine shows a transient message under the card, e.g. the result
// of the previous delete.
func (m *Model) SetStatusLine(s string) {
	m.statusLine = s
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the review view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the ticket card.
func (m Model) View() string {
	if !m.hasTicket {
		return theme.HelpStyle.Render("No ticket under review.")
	}

	t := m.ticket
	status := t.Status
	if status == "" {
		status = "(carried forward)"
	}

	rows := []string{
		m.field("Row", fmt.Sprintf("%d", t.Row)),
		m.field("Case ID", t.CaseID),
		lipgloss.JoinHorizontal(lipgloss.Top,
			theme.LabelStyle.Render("Status"),
			theme.StatusStyle(model.NormalizeStatus(status)).Render(status),
		),
		m.field("Responsible", t.User),
		m.field("Subject", t.Subject),
		lipgloss.JoinHorizontal(lipgloss.Top,
			theme.LabelStyle.Render("Priority"),
			theme.PriorityStyle(t.Priority).Render(t.Priority),
		),
	}

	card := theme.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	sectionLine := theme.HelpStyle.Render(
		fmt.Sprintf("Section %d of %d", m.section, m.sections),
	)

	parts := []string{card, sectionLine}
	if m.statusLine != "" {
		parts = append(parts, theme.HelpStyle.Render(m.statusLine))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

func (m Model) field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.LabelStyle.Render(label),
		theme.ValueStyle.Render(value),
	)
}

func (m Model) cardWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}
