package display

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for the terminal surface.
type Styles struct {
	Title  lipgloss.Style
	Output lipgloss.Style
	Input  lipgloss.Style
	Help   lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Output: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1),
		Input: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// PlainStyles returns styles without color or borders.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Title: plain, Output: plain, Input: plain, Help: plain}
}
