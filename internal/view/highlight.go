package view

import (
	"strings"
	"unicode/utf8"
)

// Segment is a run of text, marked when it matches the search term.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text around case-insensitive occurrences of term.
func Highlight(text, term string) []Segment {
	term = strings.TrimSpace(term)
	if text == "" {
		return nil
	}
	if term == "" {
		return []Segment{{Text: text}}
	}

	runes := []rune(text)
	n := utf8.RuneCountInString(term)
	var (
		out   []Segment
		plain []rune
	)
	for i := 0; i < len(runes); {
		if i+n <= len(runes) && strings.EqualFold(string(runes[i:i+n]), term) {
			if len(plain) > 0 {
				out = append(out, Segment{Text: string(plain)})
				plain = plain[:0]
			}
			out = append(out, Segment{Text: string(runes[i : i+n]), Match: true})
			i += n
			continue
		}
		plain = append(plain, runes[i])
		i++
	}
	if len(plain) > 0 {
		out = append(out, Segment{Text: string(plain)})
	}
	return out
}

// Plain joins segments back into text.
func Plain(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
