package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/classicnews/internal/view"
)

func renderStatusBar(st styles, matches int, category, search, themeLabel string, width int, hints string) string {
	left := fmt.Sprintf("%s %s · %d articles", view.Icon(category), category, matches)
	if search != "" {
		left += fmt.Sprintf(" · %q", search)
	}
	left += " · " + themeLabel

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right

	return st.statusBar.Width(width).Render(bar)
}
