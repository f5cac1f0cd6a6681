// Package content pulls readable text out of article pages.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
)

var (
	ErrNoContainer = errors.New("could not find the main news container")
	ErrNoText      = errors.New("could not find any paragraph content on the page")
)

const (
	containerSelector = "div.container p"
	maxPageSize       = 5 << 20
)

// Extractor reads an article page and returns its paragraph text.
type Extractor struct {
	client *http.Client
	// Fallback runs generic extraction on pages without the portal container.
	Fallback bool
}

func NewExtractor(timeout time.Duration, fallback bool) *Extractor {
	return &Extractor{client: &http.Client{Timeout: timeout}, Fallback: fallback}
}

// Extract returns the paragraphs of the page container joined by spaces.
// location is an http(s) URL or a local file path.
func (e *Extractor) Extract(ctx context.Context, location string) (string, error) {
	page, err := e.read(ctx, location)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL content: %w", err)
	}

	text, err := containerText(page)
	if errors.Is(err, ErrNoContainer) && e.Fallback {
		lgr.Printf("[DEBUG] no news container in %s, using generic extraction", location)
		return fallbackText(page, location)
	}
	return text, err
}

func (e *Extractor) read(ctx context.Context, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		f, err := os.Open(location) //nolint:gosec // article path built from config
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxPageSize))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ClassicNews/1.0)")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, location)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
}

func containerText(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}
	if doc.Find("div.container").Length() == 0 {
		return "", ErrNoContainer
	}

	var parts []string
	doc.Find(containerSelector).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return "", ErrNoText
	}
	return strings.Join(parts, " "), nil
}

func fallbackText(page []byte, location string) (string, error) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
	}
	if u, err := url.Parse(location); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(bytes.NewReader(page), opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", location, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return "", ErrNoText
	}
	return strings.Join(strings.Fields(result.ContentText), " "), nil
}
