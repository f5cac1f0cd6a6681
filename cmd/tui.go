package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matheuskafuri/classicnews/internal/ai"
	"github.com/matheuskafuri/classicnews/internal/classify"
	"github.com/matheuskafuri/classicnews/internal/config"
	"github.com/matheuskafuri/classicnews/internal/content"
	"github.com/matheuskafuri/classicnews/internal/feed"
	"github.com/matheuskafuri/classicnews/internal/news"
	"github.com/matheuskafuri/classicnews/internal/prefs"
	"github.com/matheuskafuri/classicnews/internal/theme"
	"github.com/matheuskafuri/classicnews/internal/tui"
	"github.com/matheuskafuri/classicnews/internal/weather"
)

func runTUI(cmd *cobra.Command, args []string) error {
	logFile, err := openLogFile(config.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	setupLog(logFile, flagDebug, false)

	cfg, err := loadConfig(commandContext(cmd), logFile, false)
	if err != nil {
		return err
	}

	store := openPrefs(cfg)
	defer store.Close()

	hc := &http.Client{Timeout: cfg.RequestDuration()}
	summarizer, err := newPipeline(cfg)
	if err != nil {
		lgr.Printf("[WARN] summarizer disabled: %v", err)
	}

	opts := tui.RunOpts{
		Cfg:            cfg,
		Prefs:          store,
		Loader:         newPortal(cfg, hc, newFeedFetcher(cfg, hc)),
		Weather:        weather.NewClient(cfg.WeatherAPI, cfg.WeatherKey(), hc),
		Locator:        weather.NewLocator(cfg.Location, hc),
		DarkBackground: theme.DetectDark(),
	}
	// A nil *Pipeline must not become a non-nil interface.
	if summarizer != nil {
		opts.Summarizer = summarizer
	}
	return tui.Run(opts)
}

// openPrefs opens the preference store, degrading to an in-memory no-op store.
func openPrefs(cfg *config.Config) *prefs.Store {
	store, err := prefs.Open(cfg.StorePath())
	if err != nil {
		lgr.Printf("[WARN] preference storage unavailable: %v", err)
		return prefs.Unavailable()
	}
	return store
}

// newPipeline returns nil when no summarizer key is configured.
func newPipeline(cfg *config.Config) (*ai.Pipeline, error) {
	if !cfg.SummarizerEnabled() {
		return nil, nil
	}
	s, err := ai.New(cfg.Summarizer, cfg.AIKey())
	if err != nil {
		return nil, fmt.Errorf("creating summarizer: %w", err)
	}
	extractor := content.NewExtractor(cfg.RequestDuration(), cfg.Summarizer.Fallback)
	p := ai.NewPipeline(extractor, s)
	p.Timeout = cfg.RequestDuration() + cfg.Summarizer.TimeoutDuration()
	return p, nil
}

// newFeedFetcher builds the RSS fetcher; "auto" sources are sorted into the
// base categories, falling back to World or the first base category.
func newFeedFetcher(cfg *config.Config, hc *http.Client) *feed.RSSFetcher {
	f := feed.NewRSSFetcher(hc)
	if len(cfg.BaseCategories) == 0 {
		return f
	}
	fallback := cfg.BaseCategories[0]
	for _, c := range cfg.BaseCategories {
		if c == "World" {
			fallback = c
		}
	}
	f.Categorize = classify.Default.Func(cfg.BaseCategories, fallback)
	return f
}

// portal loads the news index plus the optional category feeds.
type portal struct {
	index   string
	client  *http.Client
	fetcher feed.Fetcher
	feeds   []config.Source
}

func newPortal(cfg *config.Config, client *http.Client, fetcher feed.Fetcher) *portal {
	return &portal{index: cfg.NewsURL(), client: client, fetcher: fetcher, feeds: cfg.EnabledFeeds()}
}

// Load fails only when the news index fails; feed errors are logged.
func (p *portal) Load(ctx context.Context) ([]news.Article, error) {
	var (
		index []news.Article
		extra feed.FetchResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		index, err = news.Fetch(gctx, p.client, p.index)
		return err
	})
	if len(p.feeds) > 0 {
		g.Go(func() error {
			extra = feed.FetchAll(gctx, p.fetcher, p.feeds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if n := len(extra.Errors); n > 0 {
		lgr.Printf("[WARN] %d of %d feeds failed", n, len(p.feeds))
	}
	return news.Prepare(index, extra.Articles), nil
}
