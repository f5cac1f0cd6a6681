package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/classicnews/internal/view"
)

// tileBar is the category selector shown above the slider.
type tileBar struct {
	categories []string
	cursor     int
	active     bool // category mode
}

func newTileBar(categories []string) tileBar {
	return tileBar{categories: categories}
}

func (t *tileBar) focus(selected string) {
	t.active = true
	for i, c := range t.categories {
		if c == selected {
			t.cursor = i
			return
		}
	}
	t.cursor = 0
}

func (t *tileBar) move(delta int) {
	if len(t.categories) == 0 {
		return
	}
	t.cursor = (t.cursor + delta + len(t.categories)) % len(t.categories)
}

func (t *tileBar) current() string {
	if t.cursor < len(t.categories) {
		return t.categories[t.cursor]
	}
	return view.BreakingNews
}

func (t *tileBar) render(st styles, selected string, width int) string {
	var parts []string
	for i, c := range t.categories {
		label := view.Icon(c) + " " + c
		style := st.tile
		if c == selected {
			label += " ✓"
			style = st.tileSelected
		}
		if t.active && i == t.cursor {
			style = style.Inherit(st.tileCursor)
		}
		parts = append(parts, style.Render(label))
	}

	// Keep the cursor tile visible: drop tiles from the left until it fits.
	start := 0
	for start < t.cursor && lipgloss.Width(strings.Join(parts[start:t.cursor+1], " ")) > width {
		start++
	}

	var row string
	for i, part := range parts[start:] {
		candidate := row
		if i > 0 {
			candidate += " "
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}
	if start > 0 {
		row = st.dim.Render("‹ ") + row
	}
	return row
}
