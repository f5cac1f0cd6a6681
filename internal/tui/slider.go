package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/classicnews/internal/news"
	"github.com/matheuskafuri/classicnews/internal/view"
)

const sliderHeight = 4

// renderSlider draws the current breaking-news slide and its indicators.
// Nothing is drawn when there are no slides.
func renderSlider(st styles, slides []news.Article, idx int, focused bool, width int, now time.Time) string {
	if len(slides) == 0 || idx < 0 || idx >= len(slides) {
		return ""
	}
	a := slides[idx]
	inner := max(10, width-4)

	meta := metaLine(a, now)
	label := st.bannerKey.Render(view.Icon(view.BreakingNews) + " " + view.BreakingNews)

	var dots []string
	for i := range slides {
		if i == idx {
			dots = append(dots, st.dotActive.Render("●"))
		} else {
			dots = append(dots, st.dot.Render("○"))
		}
	}
	nav := st.dim.Render("‹ ") + strings.Join(dots, " ") + st.dim.Render(" ›")
	gap := max(1, inner-lipgloss.Width(label)-lipgloss.Width(nav))
	top := label + strings.Repeat(" ", gap) + nav

	lines := []string{
		top,
		st.cardMeta.Render(truncateStr(meta, inner)) + st.dim.Render(fmt.Sprintf("  %d/%d", idx+1, len(slides))),
		st.sliderTitle.Render(truncateStr(a.Title, inner)),
	}
	lines = append(lines, st.cardBody.Render(truncateStr(a.Summary, inner)))

	style := st.slider
	if !focused {
		style = style.BorderForeground(lipgloss.Color(st.palette.Muted))
	}
	return style.Width(width - 2).Render(strings.Join(lines[:sliderHeight], "\n"))
}
