// Package summaryview renders the end-of-session report: the ticket
// histograms, the DaaS queue aggregation, and where the outputs were written.
package summaryview

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skv/csm-reporter/internal/model"
	"github.com/skv/csm-reporter/internal/theme"
)

// Model is the Bubble Tea model for the completed-session summary view.
type Model struct {
	summary model.Summary
	daas    model.Aggregation
	period  model.Period
	outputs []string
	errText string
	width   int
	height  int
}

// New creates a summary view.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetResults loads the finished session's figures into the view.
func (m *Model) SetResults(summary model.Summary, daas model.Aggregation, period model.Period, outputs []string) {
	m.summary = summary
	m.daas = daas
	m.period = period
	m.outputs = outputs
}

// SetError surfaces an output-generation failure alongside the figures.
func (m *Model) SetError(text string) {
	m.errText = text
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the summary view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the report summary.
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(titleStyle.Render(fmt.Sprintf("Report for %s", m.period.ReportDate)))
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(m.period.Period))
	b.WriteString("\n")

	b.WriteString(theme.SummaryHeadingStyle.Render("Tickets"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  reviewed %d, completed %d, pending %d (%.0f%% complete)\n",
		m.summary.TotalTickets, m.summary.Completed, m.summary.Pending,
		m.summary.CompletionRate())

	b.WriteString(histogram("By status", m.summary.StatusCounts))
	b.WriteString(histogram("By priority", m.summary.PriorityCounts))
	b.WriteString(histogram("By account", m.summary.AccountCounts))
	b.WriteString(histogram("Completed per analyst", m.summary.UserCompleted))

	b.WriteString(theme.SummaryHeadingStyle.Render("DaaS queue"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %d records across %d resources and %d dates\n",
		m.daas.TotalByResource(), len(m.daas.ResourceCounts), len(m.daas.DateWise))
	b.WriteString(histogram("By resource", m.daas.ResourceCounts))
	b.WriteString(histogram("By status", m.daas.StatusCounts))

	if len(m.outputs) > 0 {
		b.WriteString(theme.SummaryHeadingStyle.Render("Outputs"))
		b.WriteString("\n")
		for _, p := range m.outputs {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}
	if m.errText != "" {
		b.WriteString(theme.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// histogram renders one counter map as an indented block with stable key
// order, skipping zero buckets.
func histogram(title string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k, v := range counts {
		if v > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(theme.SummaryHeadingStyle.Render(title))
	b.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-28s %d\n", k, counts[k])
	}
	return b.String()
}
