package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/classicnews/internal/config"
	"github.com/matheuskafuri/classicnews/internal/news"
	"github.com/matheuskafuri/classicnews/internal/prefs"
	"github.com/matheuskafuri/classicnews/internal/theme"
	"github.com/matheuskafuri/classicnews/internal/view"
	"github.com/matheuskafuri/classicnews/internal/weather"
)

type staticLoader struct {
	articles []news.Article
	err      error
}

func (s staticLoader) Load(context.Context) ([]news.Article, error) { return s.articles, s.err }

type summarizerFunc func(string) (string, error)

func (f summarizerFunc) Summarize(_ context.Context, loc string) (string, error) { return f(loc) }

func sampleArticles(n int) []news.Article {
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	out := make([]news.Article, n)
	for i := range out {
		out[i] = news.Article{
			UniqueID: fmt.Sprintf("n%d", i),
			Title:    fmt.Sprintf("Headline %d", i),
			Summary:  "Summary text",
			Category: []string{"Politics", "Tech"}[i%2],
			Date:     base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

type harness struct {
	app    *App
	store  *prefs.Store
	opened []string
}

func newHarness(t *testing.T, opts RunOpts) *harness {
	t.Helper()
	store, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := &harness{store: store}
	if opts.Cfg == nil {
		opts.Cfg = config.Defaults()
	}
	if opts.Prefs == nil {
		opts.Prefs = store
	}
	opts.Open = func(target string) error {
		h.opened = append(h.opened, target)
		return nil
	}
	h.app = NewApp(opts)
	h.app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	h.app.Update(splashDoneMsg{})
	return h
}

func (h *harness) load(articles []news.Article, err error) tea.Cmd {
	_, cmd := h.app.Update(articlesLoadedMsg{articles: articles, err: err})
	return cmd
}

func (h *harness) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.app.Update(keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestSplashEndsOnTimer(t *testing.T) {
	app := NewApp(RunOpts{Cfg: config.Defaults(), Prefs: prefs.Unavailable()})
	assert.Equal(t, modeSplash, app.mode)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, app.View(), "CLASSIC NEWS")

	app.Update(splashDoneMsg{})
	assert.Equal(t, modeNormal, app.mode)
}

func TestLoadStartsSliderTimer(t *testing.T) {
	h := newHarness(t, RunOpts{})
	cmd := h.load(sampleArticles(12), nil)
	require.NotNil(t, cmd, "slider timer scheduled")
	assert.True(t, h.app.slideTimer.on)
	assert.Equal(t, view.BreakingNews, h.app.state.Category)
	assert.Len(t, h.app.page().Slides, view.SliderSize)
}

func TestEmptyWorkingSetStartsNoTimer(t *testing.T) {
	h := newHarness(t, RunOpts{})
	assert.Nil(t, h.load(nil, nil))
	assert.False(t, h.app.slideTimer.on)
	assert.Contains(t, h.app.View(), view.EmptyMessage)
}

func TestLoadFailureShowsMessage(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(nil, errors.New("fetching news index: HTTP error, status 500"))
	out := h.app.View()
	assert.Contains(t, out, view.FailedMessage)
	assert.False(t, h.app.slideTimer.on)
}

func TestSlideTickAdvancesAndStaleTicksDrop(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(sampleArticles(10), nil)
	seq := h.app.slideTimer.seq

	h.app.Update(slideTickMsg{seq: seq})
	assert.Equal(t, 1, h.app.state.Slide)

	// The tick above restarted the schedule; the old sequence is stale.
	h.app.Update(slideTickMsg{seq: seq})
	assert.Equal(t, 1, h.app.state.Slide)

	h.app.Update(slideTickMsg{seq: h.app.slideTimer.seq})
	assert.Equal(t, 2, h.app.state.Slide)
}

func TestManualSlideRestartsTimer(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(sampleArticles(10), nil)
	before := h.app.slideTimer.seq

	cmd := h.press("p")
	require.NotNil(t, cmd)
	assert.Equal(t, 6, h.app.state.Slide)
	assert.Greater(t, h.app.slideTimer.seq, before)

	h.app.Update(slideTickMsg{seq: before})
	assert.Equal(t, 6, h.app.state.Slide, "tick from before the manual move is ignored")

	h.press("tab", "3")
	assert.Equal(t, focusSlider, h.app.focus)
	assert.Equal(t, 2, h.app.state.Slide)
	h.press("right")
	assert.Equal(t, 3, h.app.state.Slide)
}

func TestPagingKeys(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(sampleArticles(60), nil)
	h.press("f", "left", "enter")
	require.Equal(t, view.All, h.app.state.Category)

	h.press("]")
	assert.Equal(t, 2, h.app.state.Page)
	h.press("end")
	assert.Equal(t, 7, h.app.state.Page)
	h.press("]")
	assert.Equal(t, 7, h.app.state.Page)
	h.press("home")
	assert.Equal(t, 1, h.app.state.Page)

	h.press("5")
	assert.Equal(t, 5, h.app.state.Page, "fifth window button")
	assert.Equal(t, "Page 5 of 7", h.app.page().Controls.Label)
}

func TestCategoryModeSelects(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(sampleArticles(20), nil)

	h.press("f")
	assert.Equal(t, modeCategory, h.app.mode)
	h.press("right", "enter")
	assert.Equal(t, modeNormal, h.app.mode)
	assert.Equal(t, "Politics", h.app.state.Category)
	for _, c := range h.app.page().Cards {
		assert.Equal(t, "Politics", c.Article.Category)
	}

	h.press("f", "left", "left", "left", "enter")
	assert.Equal(t, "Gaming", h.app.state.Category)
	assert.True(t, h.app.page().Empty)
}

func TestLiveSearchResetsPage(t *testing.T) {
	h := newHarness(t, RunOpts{})
	articles := sampleArticles(30)
	articles[25].Summary = "The Budget2025 vote"
	h.load(articles, nil)
	h.press("f", "left", "enter", "]", "]")
	require.Equal(t, view.All, h.app.state.Category)
	require.Equal(t, 3, h.app.state.Page)

	h.press("/")
	assert.Equal(t, modeSearch, h.app.mode)
	h.press("b", "u", "d", "g", "e", "t")
	assert.Equal(t, "budget", h.app.state.Search)
	assert.Equal(t, 1, h.app.state.Page)
	cards := h.app.page().Cards
	require.Len(t, cards, 1)
	assert.Equal(t, "n25", cards[0].Article.UniqueID)

	h.press("enter")
	assert.Equal(t, modeNormal, h.app.mode)
	assert.Equal(t, "budget", h.app.state.Search)

	h.press("esc")
	assert.Equal(t, "", h.app.state.Search)
}

func TestOpenRecordsVisitOnlyWithConsent(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(sampleArticles(5), nil)

	run(h.press("o"))
	require.Len(t, h.opened, 1)
	assert.Equal(t, "http://localhost:8000/News/Politics/n0.html", h.opened[0])
	assert.Empty(t, h.store.Get(prefs.KeyVisited), "no write without consent")

	h.press("a")
	assert.True(t, h.store.Consented())
	h.press("l")
	run(h.press("enter"))
	assert.Equal(t, []string{"n1"}, h.store.VisitedIDs())
	assert.True(t, h.app.page().Cards[1].Visited)
}

func TestFeedArticleOpensLink(t *testing.T) {
	h := newHarness(t, RunOpts{})
	arts := sampleArticles(1)
	arts[0].Link = "https://blog.example.com/post"
	h.load(arts, nil)
	run(h.press("o"))
	assert.Equal(t, []string{"https://blog.example.com/post"}, h.opened)
}

func TestThemeToggleAndPersistence(t *testing.T) {
	h := newHarness(t, RunOpts{DarkBackground: false})
	assert.Equal(t, theme.Light, h.app.theme)

	h.press("t")
	assert.Equal(t, theme.Dark, h.app.theme)
	assert.Empty(t, h.store.Get(prefs.KeyTheme), "theme not stored without consent")

	h.press("a", "t")
	assert.Equal(t, theme.Light, h.app.theme)
	assert.Equal(t, "light", h.store.Theme())

	again := NewApp(RunOpts{Cfg: config.Defaults(), Prefs: h.store, DarkBackground: true})
	assert.Equal(t, theme.Light, again.theme, "stored theme beats terminal background")
}

func TestWeatherMessages(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.app.Update(weatherMsg{res: weather.Result{Err: weather.ErrKeyMissing}})
	assert.Equal(t, "API Key Missing", h.app.weatherView.Location)
	assert.Nil(t, h.app.coords)

	c := weather.Coords{Lat: 48.85, Lon: 2.35}
	h.app.Update(weatherMsg{res: weather.Result{Coords: &c, Reading: weather.Reading{City: "Paris", TempC: 18.4, Condition: "Sunny"}}})
	assert.Equal(t, "18°C", h.app.weatherView.Temperature)
	require.NotNil(t, h.app.coords)
	assert.Contains(t, h.app.View(), "Paris")

	run(h.press("w"))
	assert.Equal(t, []string{"https://www.google.com/search?q=weather+in+Paris"}, h.opened)
}

func TestWeatherTickRefreshes(t *testing.T) {
	h := newHarness(t, RunOpts{
		Weather: weather.NewClient(config.WeatherAPI{}, "k", nil),
		Locator: weather.DeniedLocator{},
	})
	h.app.weatherTimer.restart()
	_, cmd := h.app.Update(weatherTickMsg{seq: h.app.weatherTimer.seq - 1})
	assert.Nil(t, cmd, "stale tick")

	_, cmd = h.app.Update(weatherTickMsg{seq: h.app.weatherTimer.seq})
	assert.NotNil(t, cmd)

	msg := run(h.app.refreshWeatherCmd())
	wm, ok := msg.(weatherMsg)
	require.True(t, ok)
	assert.ErrorIs(t, wm.res.Err, weather.ErrPermissionDenied)
}

func TestSummaryFlow(t *testing.T) {
	h := newHarness(t, RunOpts{Summarizer: summarizerFunc(func(loc string) (string, error) {
		return "summary of " + loc, nil
	})})
	h.load(sampleArticles(3), nil)

	cmd := h.press("s")
	assert.Equal(t, modeSummary, h.app.mode)
	assert.True(t, h.app.summary.loading)
	require.NotNil(t, cmd)
	assert.Equal(t, "Headline 0", h.app.summary.title)

	seq := h.app.summarySeq
	h.app.Update(summaryMsg{seq: seq, text: "A short summary."})
	assert.False(t, h.app.summary.loading)
	assert.Contains(t, h.app.View(), "A short summary.")

	h.press("esc")
	assert.Equal(t, modeNormal, h.app.mode)
}

func TestStaleSummaryDropped(t *testing.T) {
	h := newHarness(t, RunOpts{Summarizer: summarizerFunc(func(string) (string, error) { return "x", nil })})
	h.load(sampleArticles(3), nil)

	h.press("s")
	first := h.app.summarySeq
	h.press("esc", "l", "s")
	require.NotEqual(t, first, h.app.summarySeq)

	h.app.Update(summaryMsg{seq: first, text: "old answer"})
	assert.True(t, h.app.summary.loading, "answer for the closed modal is ignored")
	assert.Equal(t, "Headline 1", h.app.summary.title)
}

func TestSummaryWithoutProvider(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(sampleArticles(1), nil)
	assert.Nil(t, h.press("s"))
	assert.ErrorIs(t, h.app.summary.err, errNoSummarizer)
	assert.Contains(t, h.app.View(), "summarizer is not configured")
}

func TestSummaryErrorShown(t *testing.T) {
	h := newHarness(t, RunOpts{Summarizer: summarizerFunc(func(string) (string, error) { return "", nil })})
	h.load(sampleArticles(1), nil)
	h.press("s")
	h.app.Update(summaryMsg{seq: h.app.summarySeq, err: errors.New("could not find the main news container")})
	assert.Contains(t, h.app.View(), "could not find the main news container")
}

func TestQuitStopsTimers(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(sampleArticles(8), nil)
	h.app.weatherTimer.restart()

	_, cmd := h.app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, h.app.slideTimer.on)
	assert.False(t, h.app.weatherTimer.on)
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.press("?")
	assert.Equal(t, modeHelp, h.app.mode)
	assert.Contains(t, h.app.View(), "Keyboard Shortcuts")
	h.press("esc")
	assert.Equal(t, modeNormal, h.app.mode)
}

func TestConsentBanner(t *testing.T) {
	h := newHarness(t, RunOpts{})
	h.load(sampleArticles(2), nil)
	assert.Contains(t, h.app.View(), "to accept")
	h.press("a")
	assert.NotContains(t, h.app.View(), "to accept")
}
