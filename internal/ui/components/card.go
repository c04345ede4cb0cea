package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/ui/theme"
)

// ContentWidth returns the inner width used for centered cards.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Yellow).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Centered places content in the middle of a width x height area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// StepDots renders a step indicator such as "● ● ○".
func StepDots(current, total int) string {
	var s string
	for i := 1; i <= total; i++ {
		if i > 1 {
			s += " "
		}
		if i <= current {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Render("●")
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Border).Render("○")
		}
	}
	return s
}

// ErrorBanner renders a one-line error message, or nothing for "".
func ErrorBanner(msg string, width int) string {
	if msg == "" {
		return ""
	}
	return theme.Banner.
		Width(width).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}
