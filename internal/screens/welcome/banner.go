package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nanoclass/internal/ui/theme"
)

const bannerArt = `
 ███╗   ██╗ █████╗ ███╗   ██╗ ██████╗  ██████╗██╗      █████╗ ███████╗███████╗
 ████╗  ██║██╔══██╗████╗  ██║██╔═══██╗██╔════╝██║     ██╔══██╗██╔════╝██╔════╝
 ██╔██╗ ██║███████║██╔██╗ ██║██║   ██║██║     ██║     ███████║███████╗███████╗
 ██║╚██╗██║██╔══██║██║╚██╗██║██║   ██║██║     ██║     ██╔══██║╚════██║╚════██║
 ██║ ╚████║██║  ██║██║ ╚████║╚██████╔╝╚██████╗███████╗██║  ██║███████║███████║
 ╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝╚══════╝╚═╝  ╚═╝╚══════╝╚══════╝`

const bannerCompact = "N A N O C L A S S"

// RenderBanner returns the NanoClass banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 82 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 82 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
