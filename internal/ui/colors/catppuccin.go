package colors

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha accents used by status lines
var (
	Overlay1 = lipgloss.Color("#7f849c")
	Text     = lipgloss.Color("#cdd6f4")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Mauve    = lipgloss.Color("#cba6f7")
	Surface1 = lipgloss.Color("#45475a")
)
