package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	colorError   = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	colorText    = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	colorSurface = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	ctaStyle      = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
)

var statusColors = map[string]lipgloss.AdaptiveColor{
	"open":         colorSuccess,
	"closed":       colorError,
	"paused":       colorWarning,
	"pending":      colorWarning,
	"reviewed":     colorInfo,
	"interviewing": colorAccent,
	"accepted":     colorSuccess,
	"rejected":     colorError,
}

func statusBadge(status string) string {
	color, ok := statusColors[status]
	if !ok {
		color = colorMuted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("[" + status + "]")
}

func cursorPrefix(selected bool) string {
	if selected {
		return selectedStyle.Render("> ")
	}
	return "  "
}
