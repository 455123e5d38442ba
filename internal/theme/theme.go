package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the top bar and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// CardStyle wraps the ticket card in the review view.
var CardStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// LabelStyle renders field labels inside the ticket card.
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Width(12)

// ValueStyle renders field values inside the ticket card.
var ValueStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle highlights failures surfaced in the status bar.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// SummaryHeadingStyle titles each histogram block in the summary view.
var SummaryHeadingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue).
	MarginTop(1)

// StatusStyle returns a color-coded style for a canonical ticket status.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case "New":
		return base.Foreground(ColorBlue)
	case "Inprogress":
		return base.Foreground(ColorYellow)
	case "Awaiting":
		return base.Foreground(ColorMagenta)
	case "Approval":
		return base.Foreground(ColorOrange)
	case "Resolved with Customer", "Closed":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for a priority label such as
// "P1" or "Priority 2".
func PriorityStyle(priority string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case containsDigit(priority, '1'):
		return base.Foreground(ColorRed)
	case containsDigit(priority, '2'):
		return base.Foreground(ColorOrange)
	case containsDigit(priority, '3'):
		return base.Foreground(ColorYellow)
	case containsDigit(priority, '4'):
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

func containsDigit(s string, d byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == d {
			return true
		}
	}
	return false
}
