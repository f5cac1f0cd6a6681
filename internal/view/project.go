package view

import (
	"time"

	"github.com/matheuskafuri/classicnews/internal/news"
)

const (
	EmptyMessage  = "No news found for this category or search term."
	FailedMessage = "Failed to load news."
)

// Card is one article prepared for display.
type Card struct {
	Article  news.Article
	Title    []Segment
	Summary  []Segment
	Date     string
	Visited  bool
	Position int // 0-based index on the page
}

// Page is everything needed to draw the grid, pagination and slider.
type Page struct {
	Category string
	Search   string
	Matches  int
	Cards    []Card
	Empty    bool
	Controls Controls

	Slides []news.Article
	Slide  int
}

// Project builds the Page for s. visited may be nil.
func Project(s State, articles []news.Article, visited map[string]bool) Page {
	s = s.Clamp(articles)
	filtered := Filter(articles, s.Category, s.Search)

	p := Page{
		Category: s.Category,
		Search:   s.Search,
		Matches:  len(filtered),
		Controls: NewControls(s.Page, TotalPages(len(filtered))),
		Slides:   Slider(articles),
		Slide:    s.Slide,
	}
	for i, a := range PageSlice(filtered, s.Page) {
		p.Cards = append(p.Cards, Card{
			Article:  a,
			Title:    Highlight(a.Title, s.Search),
			Summary:  Highlight(a.Summary, s.Search),
			Date:     FormatDate(a.Date),
			Visited:  visited[a.UniqueID],
			Position: i,
		})
	}
	p.Empty = len(p.Cards) == 0
	return p
}

// FormatDate renders a publish date, or N/A when unknown.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}
