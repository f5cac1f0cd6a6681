package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// summaryModal is the state of the summary overlay.
type summaryModal struct {
	title   string
	text    string
	err     error
	loading bool
	scroll  int
}

func (m summaryModal) render(st styles, spin string, width, height int) string {
	w := min(max(30, width*2/3), width-4)
	inner := w - 6

	title := st.modalTitle.Width(inner).Render(wrapText("Summary: "+m.title, inner))

	var body string
	switch {
	case m.loading:
		body = spin + " " + st.dim.Render("Summarizing...")
	case m.err != nil:
		body = st.errText.Render(wrapText(m.err.Error(), inner))
	default:
		body = st.cardBody.Render(wrapText(m.text, inner))
	}

	lines := strings.Split(body, "\n")
	if m.scroll > 0 && m.scroll < len(lines) {
		lines = lines[m.scroll:]
	}
	maxBody := max(3, height-12)
	if len(lines) > maxBody {
		lines = lines[:maxBody]
	}

	footer := st.dim.Render("j/k scroll  esc close")
	card := st.modal.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"), "", footer))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
