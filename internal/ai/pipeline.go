package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"
)

const (
	// maxInputRunes bounds the article text sent to the provider.
	maxInputRunes = 30000
	// defaultWorkTimeout bounds one shared extract+summarize run.
	defaultWorkTimeout = 45 * time.Second
)

// Extractor fetches the text of an article page.
type Extractor interface {
	Extract(ctx context.Context, location string) (string, error)
}

// Pipeline summarizes article pages. Concurrent requests for the same page
// share one extraction and one provider call.
type Pipeline struct {
	extractor  Extractor
	summarizer Summarizer
	group      singleflight.Group
	// Timeout bounds the shared run, which no single caller can cancel.
	Timeout time.Duration
}

func NewPipeline(e Extractor, s Summarizer) *Pipeline {
	return &Pipeline{extractor: e, summarizer: s, Timeout: defaultWorkTimeout}
}

// Summarize extracts the page at location and returns its summary. A caller
// whose ctx ends stops waiting; the shared run goes on for the others.
func (p *Pipeline) Summarize(ctx context.Context, location string) (string, error) {
	ch := p.group.DoChan(location, func() (any, error) {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout())
		defer cancel()
		return p.run(wctx, location)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Shared {
			lgr.Printf("[DEBUG] summary for %s shared with a concurrent request", location)
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (p *Pipeline) run(ctx context.Context, location string) (string, error) {
	text, err := p.extractor.Extract(ctx, location)
	if err != nil {
		return "", err
	}
	if r := []rune(text); len(r) > maxInputRunes {
		text = string(r[:maxInputRunes])
	}
	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return summary, nil
}

func (p *Pipeline) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return defaultWorkTimeout
}
