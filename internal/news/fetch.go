package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-pkgz/lgr"
)

// Decode reads a JSON array of records and keeps the complete ones.
func Decode(r io.Reader) ([]Article, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding news index: %w", err)
	}

	articles := make([]Article, 0, len(records))
	for _, rec := range records {
		a, ok := FromRecord(rec)
		if !ok {
			continue
		}
		articles = append(articles, a)
	}
	if dropped := len(records) - len(articles); dropped > 0 {
		lgr.Printf("[DEBUG] dropped %d incomplete news records", dropped)
	}
	return articles, nil
}

// Fetch loads the news index from an http(s) URL or a local file.
func Fetch(ctx context.Context, client *http.Client, location string) ([]Article, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		f, err := os.Open(location) //nolint:gosec // location comes from config
		if err != nil {
			return nil, fmt.Errorf("opening news index: %w", err)
		}
		defer f.Close()
		return Decode(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching news index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching news index: HTTP error, status %d", resp.StatusCode)
	}
	return Decode(resp.Body)
}
