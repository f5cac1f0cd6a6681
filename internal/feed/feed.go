// Package feed pulls configured RSS/Atom sources into portal categories.
package feed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/matheuskafuri/classicnews/internal/config"
	"github.com/matheuskafuri/classicnews/internal/news"
)

const (
	maxConcurrent = 4
	summaryLen    = 300
	defaultMaxAge = 7 * 24 * time.Hour
)

type Fetcher interface {
	Fetch(ctx context.Context, source config.Source) ([]news.Article, error)
}

type RSSFetcher struct {
	parser *gofeed.Parser
	// MaxAge drops items published earlier than now-MaxAge. Zero keeps all.
	MaxAge time.Duration
	// Categorize assigns items of "auto" sources to a portal category.
	Categorize func(title, description string) string
	now        func() time.Time
}

func NewRSSFetcher(client *http.Client) *RSSFetcher {
	p := gofeed.NewParser()
	if client != nil {
		p.Client = client
	}
	p.UserAgent = "classicnews"
	return &RSSFetcher{parser: p, MaxAge: defaultMaxAge, now: time.Now}
}

func (f *RSSFetcher) Fetch(ctx context.Context, source config.Source) ([]news.Article, error) {
	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	now := f.now()
	articles := make([]news.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		pub, raw := now, item.Published
		switch {
		case item.PublishedParsed != nil:
			pub = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			pub, raw = *item.UpdatedParsed, item.Updated
		}
		if f.MaxAge > 0 && pub.Before(now.Add(-f.MaxAge)) {
			continue
		}
		if raw == "" {
			raw = pub.Format(time.RFC3339)
		}

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		a := news.Article{
			UniqueID: articleID(item.Link),
			Title:    news.PlainText(item.Title),
			Summary:  truncate(news.PlainText(desc), summaryLen),
			Image:    itemImage(item),
			Date:     pub,
			RawDate:  raw,
			Category: source.Category,
			Location: source.Name,
			Link:     item.Link,
		}
		if a.Title == "" {
			continue
		}
		if strings.EqualFold(source.Category, config.AutoCategory) && f.Categorize != nil {
			a.Category = f.Categorize(a.Title, a.Summary)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

func articleID(link string) string {
	h := sha256.Sum256([]byte(link))
	return fmt.Sprintf("%x", h[:16])
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

type FetchResult struct {
	Articles []news.Article
	Errors   []error
}

// FetchAll fetches every source, at most four at a time. A failing source
// is recorded in Errors and does not stop the others.
func FetchAll(ctx context.Context, fetcher Fetcher, sources []config.Source) FetchResult {
	var (
		mu     sync.Mutex
		result FetchResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for _, src := range sources {
		g.Go(func() error {
			articles, err := fetcher.Fetch(gctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lgr.Printf("[WARN] feed %s: %v", src.Name, err)
				result.Errors = append(result.Errors, err)
				return nil
			}
			result.Articles = append(result.Articles, articles...)
			return nil
		})
	}
	_ = g.Wait()
	return result
}
