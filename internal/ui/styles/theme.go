package styles

import (
	"github.com/allbin/ttymon/internal/ui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Lifecycle status styles
	StatusConnectedStyle = lipgloss.NewStyle().
				Foreground(colors.Green).
				Bold(true)

	StatusDisconnectedStyle = lipgloss.NewStyle().
				Foreground(colors.Peach).
				Bold(true)

	StatusWaitingStyle = lipgloss.NewStyle().
				Foreground(colors.Yellow)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)

	DetailStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay1)

	// List table styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colors.Surface1)

	CellStyle = lipgloss.NewStyle().
			Foreground(colors.Text).
			PaddingRight(2)
)

type StatusType int

const (
	StatusConnected StatusType = iota
	StatusDisconnected
	StatusWaiting
	StatusError
)

func GetStatusStyle(status StatusType) lipgloss.Style {
	switch status {
	case StatusConnected:
		return StatusConnectedStyle
	case StatusDisconnected:
		return StatusDisconnectedStyle
	case StatusWaiting:
		return StatusWaitingStyle
	default:
		return ErrorStyle
	}
}
