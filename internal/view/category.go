// Package view derives what the portal shows from the article working set:
// the category filter, search, pagination window and breaking-news slider.
// Everything here is pure; callers own the state and re-render from it.
package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/matheuskafuri/classicnews/internal/news"
)

const (
	// BreakingNews selects the most recent articles regardless of category.
	BreakingNews = "Breaking News"
	// All selects the whole working set.
	All = "All"

	PageSize      = 9
	BreakingLimit = 10
)

// Categories returns the tile order: Breaking News, the configured topics, All.
func Categories(base []string) []string {
	out := make([]string, 0, len(base)+2)
	out = append(out, BreakingNews)
	for _, c := range base {
		if c == BreakingNews || c == All || strings.TrimSpace(c) == "" {
			continue
		}
		out = append(out, c)
	}
	return append(out, All)
}

var icons = map[string]string{
	"Politics":    "🏛️",
	"Science":     "🔬",
	"Health":      "❤️",
	"Sports":      "🏅",
	"India":       "🇮🇳",
	"World":       "🌍",
	"Business":    "📈",
	"Tech":        "💻",
	"Travel":      "✈️",
	"Art":         "🎨",
	"Environment": "🌳",
	"Education":   "📚",
	"Food":        "🍔",
	"Fashion":     "👗",
	"Automotive":  "🚗",
	"Space":       "🚀",
	"Culture":     "🎭",
	"Lifestyle":   "🧘",
	"Gaming":      "🎮",
	BreakingNews:  "⚡",
	All:           "📰",
}

// Icon returns the glyph shown on a category tile.
func Icon(category string) string {
	if ic, ok := icons[category]; ok {
		return ic
	}
	return "✨"
}

// Filter returns the articles visible for category and search term, in the
// working-set order. An empty category means All.
func Filter(articles []news.Article, category, search string) []news.Article {
	fold := cases.Fold()

	var base []news.Article
	switch category {
	case BreakingNews:
		base = articles[:min(BreakingLimit, len(articles))]
	case All, "":
		base = articles
	default:
		want := fold.String(category)
		for _, a := range articles {
			if fold.String(a.Category) == want {
				base = append(base, a)
			}
		}
	}

	term := strings.TrimSpace(search)
	if term == "" {
		return base
	}
	term = fold.String(term)
	var out []news.Article
	for _, a := range base {
		if strings.Contains(fold.String(a.Title), term) || strings.Contains(fold.String(a.Summary), term) {
			out = append(out, a)
		}
	}
	return out
}
