package tui

import (
	"strconv"
	"strings"

	"github.com/matheuskafuri/classicnews/internal/view"
)

// renderPagination draws arrows, first/last shortcuts, the page window and
// the "Page X of Y" label.
func renderPagination(st styles, c view.Controls) string {
	var parts []string

	if c.Prev {
		parts = append(parts, st.pageArrow.Render("←"))
	} else {
		parts = append(parts, st.pageOff.Render("←"))
	}
	if c.First {
		parts = append(parts, st.pageButton.Render("1"))
		if c.LeadingGap {
			parts = append(parts, st.dim.Render("…"))
		}
	}
	for _, p := range c.Pages {
		if p.Current {
			parts = append(parts, st.pageCurrent.Render(strconv.Itoa(p.N)))
		} else {
			parts = append(parts, st.pageButton.Render(strconv.Itoa(p.N)))
		}
	}
	if c.Last {
		if c.TrailingGap {
			parts = append(parts, st.dim.Render("…"))
		}
		parts = append(parts, st.pageButton.Render(strconv.Itoa(c.Total)))
	}
	if c.Next {
		parts = append(parts, st.pageArrow.Render("→"))
	} else {
		parts = append(parts, st.pageOff.Render("→"))
	}
	parts = append(parts, st.pageInfo.Render(c.Label))

	return strings.Join(parts, "")
}
