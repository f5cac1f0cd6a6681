package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/classicnews/internal/browser"
	"github.com/matheuskafuri/classicnews/internal/config"
	"github.com/matheuskafuri/classicnews/internal/news"
	"github.com/matheuskafuri/classicnews/internal/prefs"
	"github.com/matheuskafuri/classicnews/internal/view"
)

var (
	flagCategory string
	flagSearch   string
	flagPage     int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the news grid",
	Long: `Load the portal and print the cards of one page, using the same
category, search and pagination rules as the interactive view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := oneShot(cmd)
		if err != nil {
			return err
		}
		store := openPrefs(cfg)
		defer store.Close()

		hc := &http.Client{Timeout: cfg.RequestDuration()}
		ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.RequestDuration())
		defer cancel()
		articles, err := newPortal(cfg, hc, newFeedFetcher(cfg, hc)).Load(ctx)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), view.FailedMessage)
			return fmt.Errorf("loading news: %w", err)
		}

		page := projectPage(articles, flagCategory, flagSearch, flagPage, visitedSet(store))
		writePage(cmd.OutOrStdout(), cfg, page)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagCategory, "category", "c", view.BreakingNews, "category to show")
	listCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "search term")
	listCmd.Flags().IntVarP(&flagPage, "page", "p", 1, "page number")
}

// projectPage applies the flags in the order a reader would: category,
// then search (which resets the page), then page.
func projectPage(articles []news.Article, category, search string, page int, visited map[string]bool) view.Page {
	st := view.NewState()
	st = st.Apply(view.SelectCategory(category), articles)
	st = st.Apply(view.SetSearch(search), articles)
	st = st.Apply(view.GoToPage(page), articles)
	return view.Project(st, articles, visited)
}

func visitedSet(store *prefs.Store) map[string]bool {
	out := make(map[string]bool)
	for _, id := range store.VisitedIDs() {
		out[id] = true
	}
	return out
}

func writePage(w io.Writer, cfg *config.Config, page view.Page) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	mark := color.New(color.FgHiYellow, color.Bold)
	seen := color.New(color.FgGreen)

	bold.Fprintf(w, "%s %s", view.Icon(page.Category), page.Category)
	if page.Search != "" {
		dim.Fprintf(w, "  search %q", page.Search)
	}
	dim.Fprintf(w, "  %d articles\n\n", page.Matches)

	if page.Empty {
		fmt.Fprintln(w, view.EmptyMessage)
		return
	}

	segments := func(segs []view.Segment) string {
		var b strings.Builder
		for _, s := range segs {
			if s.Match {
				b.WriteString(mark.Sprint(s.Text))
				continue
			}
			b.WriteString(s.Text)
		}
		return b.String()
	}

	for _, c := range page.Cards {
		meta := c.Date
		if c.Article.Location != "" {
			meta += " | " + c.Article.Location
		}
		title := bold.Sprint(segments(c.Title))
		if c.Visited {
			title += " " + seen.Sprint("✓")
		}
		fmt.Fprintf(w, "%d. %s\n", c.Position+1, title)
		dim.Fprintf(w, "   %s\n", meta)
		fmt.Fprintf(w, "   %s\n", segments(c.Summary))
		dim.Fprintf(w, "   %s\n\n", browser.Resolve(c.Article, cfg.ArticleURL))
	}
	fmt.Fprintln(w, controlsLine(page.Controls))
}

// controlsLine renders pagination as text, e.g. "‹ 1 2 3 [4] 5 6 … 9 ›  Page 4 of 9".
func controlsLine(c view.Controls) string {
	var parts []string
	if c.Prev {
		parts = append(parts, "‹")
	}
	if c.First {
		parts = append(parts, "1")
		if c.LeadingGap {
			parts = append(parts, "…")
		}
	}
	for _, p := range c.Pages {
		if p.Current {
			parts = append(parts, fmt.Sprintf("[%d]", p.N))
			continue
		}
		parts = append(parts, fmt.Sprint(p.N))
	}
	if c.Last {
		if c.TrailingGap {
			parts = append(parts, "…")
		}
		parts = append(parts, fmt.Sprint(c.Total))
	}
	if c.Next {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ") + "  " + c.Label
}
