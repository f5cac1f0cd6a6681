package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderSplash is the loader shown while the portal starts.
func renderSplash(st styles, appName, spin string, width, height int) string {
	lines := []string{
		st.splashName.Render(strings.ToUpper(appName)),
		"",
		spin + " " + st.dim.Render("Loading..."),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
