package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/classicnews/internal/news"
	"github.com/matheuskafuri/classicnews/internal/view"
)

const gridCols = 3

// relativeTime is the age of t at now for the last week; older or undated
// items give "".
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < 0:
		return ""
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d d ago", int(d.Hours()/24))
	}
	return ""
}

// metaLine is the date and location, plus the age for feed items.
func metaLine(a news.Article, now time.Time) string {
	meta := view.FormatDate(a.Date)
	if a.Location != "" {
		meta += " | " + a.Location
	}
	if a.Link != "" {
		if age := relativeTime(a.Date, now); age != "" {
			meta += " · " + age
		}
	}
	return meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// renderSegments draws one line, marking search matches.
func renderSegments(st styles, base lipgloss.Style, segs []view.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		if seg.Match {
			b.WriteString(st.highlight.Render(seg.Text))
			continue
		}
		b.WriteString(base.Render(seg.Text))
	}
	return b.String()
}

type markedRune struct {
	r     rune
	match bool
}

// wrapSegments word-wraps segs to width and keeps at most n lines, marking
// the cut with "...". Match marks survive line breaks.
func wrapSegments(segs []view.Segment, width, n int) [][]view.Segment {
	if n <= 0 {
		return nil
	}

	// words[i] is preceded by whitespace marked gaps[i].
	var (
		words [][]markedRune
		gaps  []bool
		cur   []markedRune
		gap   bool
	)
	for _, seg := range segs {
		for _, r := range seg.Text {
			if unicode.IsSpace(r) {
				if len(cur) > 0 {
					words = append(words, cur)
					cur = nil
					gap = seg.Match
				}
				continue
			}
			if len(cur) == 0 {
				gaps = append(gaps, gap)
			}
			cur = append(cur, markedRune{r: r, match: seg.Match})
		}
	}
	if len(cur) > 0 {
		words = append(words, cur)
	}

	var (
		lines [][]markedRune
		line  []markedRune
		lineW int
	)
	for i, w := range words {
		ww := lipgloss.Width(runesText(w))
		if lineW > 0 && lineW+1+ww > width {
			lines = append(lines, line)
			line, lineW = nil, 0
		}
		if lineW > 0 {
			line = append(line, markedRune{r: ' ', match: gaps[i]})
			lineW++
		}
		line = append(line, w...)
		lineW += ww
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}

	for i, l := range lines {
		if width > 3 && len(l) > width {
			lines[i] = append(l[:width-3:width-3], ellipsis...)
		}
	}
	if len(lines) > n {
		lines = lines[:n]
		last := lines[n-1]
		if keep := max(0, width-3); len(last) > keep {
			last = last[:keep]
		}
		lines[n-1] = append(last[:len(last):len(last)], ellipsis...)
	}

	out := make([][]view.Segment, len(lines))
	for i, l := range lines {
		out[i] = toSegments(l)
	}
	return out
}

var ellipsis = []markedRune{{r: '.'}, {r: '.'}, {r: '.'}}

func runesText(rs []markedRune) string {
	b := make([]rune, len(rs))
	for i, mr := range rs {
		b[i] = mr.r
	}
	return string(b)
}

func toSegments(rs []markedRune) []view.Segment {
	var out []view.Segment
	for i := 0; i < len(rs); {
		j := i
		for j < len(rs) && rs[j].match == rs[i].match {
			j++
		}
		out = append(out, view.Segment{Text: runesText(rs[i:j]), Match: rs[i].match})
		i = j
	}
	return out
}

func renderCard(st styles, c view.Card, selected bool, width, height int, now time.Time) string {
	inner := max(10, width-4) // border + padding
	bodyLines := max(1, height-6)

	lines := []string{st.cardMeta.Render(truncateStr(metaLine(c.Article, now), inner))}
	for _, l := range wrapSegments(c.Title, inner, 2) {
		lines = append(lines, renderSegments(st, st.cardTitle, l))
	}
	for _, l := range wrapSegments(c.Summary, inner, bodyLines) {
		lines = append(lines, renderSegments(st, st.cardBody, l))
	}

	var foot string
	if c.Visited {
		foot = st.visited.Render("✓ read")
	}
	if selected {
		if foot != "" {
			foot += "  "
		}
		foot += st.bannerKey.Render("o") + st.cardMeta.Render(" read more")
	}
	for len(lines) < height-3 {
		lines = append(lines, "")
	}
	lines = append(lines[:min(len(lines), height-3)], foot)

	style := st.card
	if selected {
		style = st.cardSelected
	}
	return style.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// renderGrid lays the page cards out three per row.
func renderGrid(st styles, page view.Page, cursor int, focused bool, width, height int, now time.Time) string {
	if page.Empty {
		return lipglossCenter(view.EmptyMessage, width, height)
	}

	rows := (len(page.Cards) + gridCols - 1) / gridCols
	cardW := width / gridCols
	cardH := max(7, height/max(rows, gridCols))

	var out []string
	for r := 0; r < rows; r++ {
		var row []string
		for c := 0; c < gridCols; c++ {
			i := r*gridCols + c
			if i >= len(page.Cards) {
				break
			}
			row = append(row, renderCard(st, page.Cards[i], focused && i == cursor, cardW, cardH, now))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func lipglossCenter(s string, width, height int) string {
	return strings.Repeat("\n", max(0, height/3)) + strings.Repeat(" ", max(0, (width-lipgloss.Width(s))/2)) + s
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if lipgloss.Width(line)+1+lipgloss.Width(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	for i, l := range lines {
		if lipgloss.Width(l) > width {
			lines[i] = truncateStr(l, width)
		}
	}
	return strings.Join(lines, "\n")
}
