package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-pkgz/lgr"

	"github.com/matheuskafuri/classicnews/internal/browser"
	"github.com/matheuskafuri/classicnews/internal/config"
	"github.com/matheuskafuri/classicnews/internal/news"
	"github.com/matheuskafuri/classicnews/internal/prefs"
	"github.com/matheuskafuri/classicnews/internal/theme"
	"github.com/matheuskafuri/classicnews/internal/view"
	"github.com/matheuskafuri/classicnews/internal/weather"
)

const (
	splashDelay    = 1200 * time.Millisecond
	slideInterval  = 10 * time.Second
	weatherRefresh = 5 * time.Minute
)

var errNoSummarizer = errors.New("summarizer is not configured: set summarizer.apiKey or CLASSICNEWS_AI_KEY")

type focusPane int

const (
	focusGrid focusPane = iota
	focusSlider
)

type mode int

const (
	modeSplash mode = iota
	modeNormal
	modeCategory
	modeSearch
	modeHelp
	modeSummary
)

// Loader produces the article working set.
type Loader interface {
	Load(ctx context.Context) ([]news.Article, error)
}

// Summarizer summarizes the article page at location.
type Summarizer interface {
	Summarize(ctx context.Context, location string) (string, error)
}

type App struct {
	cfg        *config.Config
	prefs      *prefs.Store
	loader     Loader
	weather    *weather.Client
	locator    weather.Locator
	summarizer Summarizer
	open       func(string) error

	articles []news.Article
	loaded   bool
	loadErr  error
	state    view.State
	cursor   int
	focus    focusPane
	mode     mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	tiles       tileBar
	styles      styles
	theme       theme.Name

	consent bool
	visited map[string]bool

	weatherView weather.Display
	coords      *weather.Coords
	city        string

	slideTimer   schedule
	weatherTimer schedule

	summary    summaryModal
	summarySeq int

	err error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg        *config.Config
	Prefs      *prefs.Store
	Loader     Loader
	Weather    *weather.Client
	Locator    weather.Locator
	Summarizer Summarizer
	// Open launches a browser; browser.Open when nil.
	Open func(string) error
	// DarkBackground seeds the theme when no choice is stored.
	DarkBackground bool
}

func NewApp(opts RunOpts) *App {
	store := opts.Prefs
	if store == nil {
		store = prefs.Unavailable()
	}
	open := opts.Open
	if open == nil {
		open = browser.Open
	}

	name := theme.Initial(store.Theme(), opts.DarkBackground)
	st := newStyles(name.Palette())

	ti := textinput.New()
	ti.Placeholder = "Search news..."
	ti.Prompt = st.searchPrompt.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = st.spinner

	a := &App{
		cfg:          opts.Cfg,
		prefs:        store,
		loader:       opts.Loader,
		weather:      opts.Weather,
		locator:      opts.Locator,
		summarizer:   opts.Summarizer,
		open:         open,
		state:        view.NewState(),
		mode:         modeSplash,
		searchInput:  ti,
		spinner:      sp,
		tiles:        newTileBar(view.Categories(opts.Cfg.BaseCategories)),
		styles:       st,
		theme:        name,
		weatherView:  weather.Loading(),
		slideTimer:   newSchedule(slideInterval, func(seq int) tea.Msg { return slideTickMsg{seq: seq} }),
		weatherTimer: newSchedule(weatherRefresh, func(seq int) tea.Msg { return weatherTickMsg{seq: seq} }),
	}
	a.syncConsent()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(splashDelay, func(time.Time) tea.Msg { return splashDoneMsg{} }),
		a.loadArticlesCmd(),
		a.refreshWeatherCmd(),
		a.weatherTimer.restart(),
		a.spinner.Tick,
	)
}

func (a *App) syncConsent() {
	a.consent = a.prefs.Consented()
	a.visited = make(map[string]bool)
	for _, id := range a.prefs.VisitedIDs() {
		a.visited[id] = true
	}
}

func (a *App) loadArticlesCmd() tea.Cmd {
	loader := a.loader
	timeout := a.cfg.RequestDuration()
	return func() tea.Msg {
		if loader == nil {
			return articlesLoadedMsg{err: errors.New("no news source configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		articles, err := loader.Load(ctx)
		return articlesLoadedMsg{articles: articles, err: err}
	}
}

// refreshWeatherCmd captures the known position so the command never reads
// model state from its goroutine.
func (a *App) refreshWeatherCmd() tea.Cmd {
	if a.weather == nil {
		return nil
	}
	client, locator := a.weather, a.locator
	var known *weather.Coords
	if a.coords != nil {
		c := *a.coords
		known = &c
	}
	timeout := a.cfg.RequestDuration() + a.cfg.Location.TimeoutDuration()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return weatherMsg{res: weather.Refresh(ctx, client, locator, known)}
	}
}

func (a *App) summarizeCmd(location string) tea.Cmd {
	a.summarySeq++
	seq, s := a.summarySeq, a.summarizer
	timeout := a.cfg.RequestDuration() + a.cfg.Summarizer.TimeoutDuration()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := s.Summarize(ctx, location)
		return summaryMsg{seq: seq, text: text, err: err}
	}
}

func (a *App) openCmd(target string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		if err := open(target); err != nil {
			return statusErrMsg{err: err}
		}
		return nil
	}
}

// apply is the single place view state changes. Manual slide moves restart
// the auto-advance timer.
func (a *App) apply(act view.Action) tea.Cmd {
	a.state = a.state.Apply(act, a.articles)
	page := a.page()
	if a.cursor >= len(page.Cards) {
		a.cursor = max(0, len(page.Cards)-1)
	}
	if act.IsSlide() && len(page.Slides) > 0 {
		return a.slideTimer.restart()
	}
	return nil
}

func (a *App) page() view.Page {
	return view.Project(a.state, a.articles, a.visited)
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.slideTimer.stop()
	a.weatherTimer.stop()
	a.summarySeq++
	return a, tea.Quit
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case splashDoneMsg:
		if a.mode == modeSplash {
			a.mode = modeNormal
		}
		return a, nil

	case articlesLoadedMsg:
		a.loaded = true
		a.loadErr = msg.err
		if msg.err != nil {
			lgr.Printf("[ERROR] loading news: %v", msg.err)
			a.articles = nil
			a.slideTimer.stop()
			return a, nil
		}
		a.articles = msg.articles
		a.state = a.state.Clamp(a.articles)
		lgr.Printf("[INFO] loaded %d articles", len(a.articles))
		if len(view.Slider(a.articles)) == 0 {
			a.slideTimer.stop()
			return a, nil
		}
		return a, a.slideTimer.restart()

	case slideTickMsg:
		if !a.slideTimer.current(msg.seq) {
			return a, nil
		}
		return a, a.apply(view.NextSlide())

	case weatherTickMsg:
		if !a.weatherTimer.current(msg.seq) {
			return a, nil
		}
		return a, tea.Batch(a.refreshWeatherCmd(), a.weatherTimer.restart())

	case weatherMsg:
		if msg.res.Coords != nil {
			c := *msg.res.Coords
			a.coords = &c
		}
		if msg.res.Err != nil {
			a.weatherView = weather.DescribeError(msg.res.Err)
			a.city = ""
			return a, nil
		}
		a.weatherView = weather.Describe(msg.res.Reading)
		a.city = msg.res.Reading.City
		return a, nil

	case summaryMsg:
		if a.mode != modeSummary || msg.seq != a.summarySeq {
			return a, nil
		}
		a.summary.loading = false
		a.summary.text = msg.text
		a.summary.err = msg.err
		return a, nil

	case statusErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.mode == modeSplash || !a.loaded || a.summary.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a.quit()
	}

	// Mode-specific handling
	switch a.mode {
	case modeSplash:
		if msg.String() == "q" {
			return a.quit()
		}
		return a, nil
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeCategory:
		return a.handleCategoryKey(msg)
	case modeSummary:
		return a.handleSummaryKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return a.quit()
	case "tab":
		if a.focus == focusGrid && len(view.Slider(a.articles)) > 0 {
			a.focus = focusSlider
		} else {
			a.focus = focusGrid
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.state.Search)
		a.searchInput.CursorEnd()
		a.searchInput.Focus()
		return a, textinput.Blink
	case "esc":
		if a.state.Search != "" {
			a.searchInput.SetValue("")
			return a, a.apply(view.SetSearch(""))
		}
		return a, nil
	case "f":
		if a.loadErr == nil {
			a.mode = modeCategory
			a.tiles.focus(a.state.Category)
		}
		return a, nil
	case "t":
		a.setTheme(a.theme.Toggle())
		return a, nil
	case "a":
		if !a.consent {
			a.prefs.Accept()
			a.syncConsent()
			if a.consent {
				a.prefs.SetTheme(string(a.theme))
			}
		}
		return a, nil
	case "w":
		return a, a.openCmd(weather.SearchURL(a.city, a.cfg.WeatherAPI.WebsiteURL))
	case "?":
		a.mode = modeHelp
		return a, nil
	case "o", "enter":
		if art, ok := a.selected(); ok {
			return a, a.openArticle(art)
		}
		return a, nil
	case "s":
		if art, ok := a.selected(); ok {
			return a, a.startSummary(art)
		}
		return a, nil
	case "n":
		return a, a.apply(view.NextSlide())
	case "p":
		return a, a.apply(view.PrevSlide())
	case "]", "pgdown":
		a.cursor = 0
		return a, a.apply(view.NextPage())
	case "[", "pgup":
		a.cursor = 0
		return a, a.apply(view.PrevPage())
	case "home":
		a.cursor = 0
		return a, a.apply(view.FirstPage())
	case "end":
		a.cursor = 0
		return a, a.apply(view.LastPage())
	}

	if a.focus == focusSlider {
		return a.handleSliderKey(msg)
	}
	return a.handleGridKey(msg)
}

func (a *App) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(a.page().Cards)
	switch msg.String() {
	case "l", "right":
		if a.cursor%gridCols < gridCols-1 && a.cursor < n-1 {
			a.cursor++
		}
	case "h", "left":
		if a.cursor%gridCols > 0 {
			a.cursor--
		}
	case "j", "down":
		if a.cursor+gridCols < n {
			a.cursor += gridCols
		}
	case "k", "up":
		if a.cursor-gridCols >= 0 {
			a.cursor -= gridCols
		}
	case "1", "2", "3", "4", "5":
		// Window buttons, left to right.
		idx := int(msg.String()[0] - '1')
		if pages := a.page().Controls.Pages; idx < len(pages) {
			a.cursor = 0
			return a, a.apply(view.GoToPage(pages[idx].N))
		}
	}
	return a, nil
}

func (a *App) handleSliderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "l", "right":
		return a, a.apply(view.NextSlide())
	case "h", "left":
		return a, a.apply(view.PrevSlide())
	case "1", "2", "3", "4", "5", "6", "7":
		return a, a.apply(view.JumpSlide(int(msg.String()[0] - '1')))
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		return a, a.apply(view.SetSearch(""))
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Only re-filter on actual value changes, not cursor moves etc.
	if strings.TrimSpace(a.searchInput.Value()) != a.state.Search {
		a.cursor = 0
		return a, tea.Batch(cmd, a.apply(view.SetSearch(a.searchInput.Value())))
	}
	return a, cmd
}

func (a *App) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		a.tiles.active = false
	case "left", "h":
		a.tiles.move(-1)
	case "right", "l":
		a.tiles.move(1)
	case " ", "enter":
		a.mode = modeNormal
		a.tiles.active = false
		a.cursor = 0
		return a, a.apply(view.SelectCategory(a.tiles.current()))
	case "q":
		return a.quit()
	}
	return a, nil
}

func (a *App) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "s", "q":
		a.mode = modeNormal
		a.summary = summaryModal{}
		// Answers for a closed modal are dropped.
		a.summarySeq++
	case "j", "down":
		a.summary.scroll++
	case "k", "up":
		if a.summary.scroll > 0 {
			a.summary.scroll--
		}
	}
	return a, nil
}

// selected is the article under focus: the card cursor or the current slide.
func (a *App) selected() (news.Article, bool) {
	page := a.page()
	if a.focus == focusSlider {
		if page.Slide < len(page.Slides) {
			return page.Slides[page.Slide], true
		}
		return news.Article{}, false
	}
	if a.cursor < len(page.Cards) {
		return page.Cards[a.cursor].Article, true
	}
	return news.Article{}, false
}

func (a *App) articleLocation(art news.Article) string {
	return browser.Resolve(art, a.cfg.ArticleURL)
}

// openArticle opens the article and records the visit when storage is allowed.
func (a *App) openArticle(art news.Article) tea.Cmd {
	if a.consent {
		a.prefs.AddVisited(art.UniqueID)
		a.visited[art.UniqueID] = true
	}
	return a.openCmd(a.articleLocation(art))
}

func (a *App) startSummary(art news.Article) tea.Cmd {
	a.mode = modeSummary
	a.summary = summaryModal{title: art.Title}
	if a.summarizer == nil {
		a.summary.err = errNoSummarizer
		return nil
	}
	a.summary.loading = true
	return tea.Batch(a.summarizeCmd(a.articleLocation(art)), a.spinner.Tick)
}

func (a *App) setTheme(name theme.Name) {
	a.theme = name
	a.styles = newStyles(name.Palette())
	a.spinner.Style = a.styles.spinner
	a.searchInput.Prompt = a.styles.searchPrompt.Render("/ ")
	a.prefs.SetTheme(string(name))
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(a.styles.palette.Primary)).Render("  " + a.cfg.AppName)
	}
	st := a.styles

	if a.mode == modeSplash {
		return renderSplash(st, a.cfg.AppName, a.spinner.View(), a.width, a.height)
	}
	if a.mode == modeHelp {
		return a.renderHelp()
	}
	if a.mode == modeSummary {
		return a.summary.render(st, a.spinner.View(), a.width, a.height)
	}

	page := a.page()
	now := time.Now()
	sections := []string{a.renderHeader()}

	if !a.consent {
		sections = append(sections, st.banner.Width(a.width).Render(
			"This portal stores your theme and visited articles locally. Press "+
				st.bannerKey.Render("a")+" to accept."))
	}

	switch {
	case !a.loaded:
		sections = append(sections, "", "  "+a.spinner.View()+" "+st.dim.Render("Loading news..."))
	case a.loadErr != nil:
		sections = append(sections, lipglossCenter(view.FailedMessage, a.width, 6))
	default:
		sections = append(sections, a.tiles.render(st, a.state.Category, a.width))
		if slider := renderSlider(st, page.Slides, page.Slide, a.focus == focusSlider, a.width, now); slider != "" {
			sections = append(sections, slider)
		}
		sections = append(sections, a.renderSearch())
		used := lipgloss.Height(strings.Join(sections, "\n")) + 2 // pagination + status
		sections = append(sections,
			renderGrid(st, page, a.cursor, a.focus == focusGrid, a.width, max(9, a.height-used), now),
			renderPagination(st, page.Controls),
		)
	}

	body := strings.Join(sections, "\n")
	status := renderStatusBar(st, page.Matches, a.state.Category, a.state.Search, st.palette.Label, a.width, a.hints())
	if a.err != nil {
		status = st.errText.Render(a.err.Error())
	}
	return a.withBottomBar(body, status)
}

func (a *App) renderHeader() string {
	st := a.styles
	left := st.header.Render(a.cfg.AppName) + " " + st.headerDate.Render(time.Now().Format("Monday, Jan 2, 2006"))

	w := a.weatherView
	parts := []string{w.Icon, w.Location}
	if w.Temperature != "" {
		parts = append(parts, w.Temperature)
	}
	if w.Description != "" {
		parts = append(parts, "· "+w.Description)
	}
	right := st.weather.Render(strings.Join(parts, " "))

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) renderSearch() string {
	if a.mode == modeSearch {
		return a.searchInput.View()
	}
	if a.state.Search != "" {
		return a.styles.searchPrompt.Render("/ ") + a.state.Search + a.styles.dim.Render("  (esc clear)")
	}
	return a.styles.dim.Render("/ search news")
}

func (a *App) hints() string {
	switch a.mode {
	case modeSearch:
		return "esc cancel  enter done"
	case modeCategory:
		return "←/→ move  enter select  esc back"
	}
	return "tab focus  f category  / search  s summary  t theme  ? help  q quit"
}

func (a *App) withBottomBar(content string, bar string) string {
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:max(0, a.height-1)]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) renderHelp() string {
	title := a.styles.modalTitle.Render(a.cfg.AppName)
	dim := a.styles.dim

	help := title + dim.Render("  Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  tab            Switch focus between slider and grid\n" +
		"  ←/→/↑/↓, hjkl  Move between cards (grid) or slides (slider)\n" +
		"  [ ]            Previous / next page\n" +
		"  1-5            Page buttons (grid), 1-7 slides (slider)\n" +
		"  home/end       First / last page\n" +
		"  n/p            Next / previous breaking story\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter       Open article\n" +
		"  s              Summarize article\n" +
		"  /              Search news, esc clears\n" +
		"  f              Choose category\n" +
		"  t              Toggle light/dark theme\n" +
		"  w              Open weather forecast\n" +
		"  a              Accept local storage\n\n" +
		dim.Render("General") + "\n" +
		"  ?              Toggle this help\n" +
		"  q, ctrl+c      Quit"

	card := a.styles.modal.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("running portal: %w", err)
	}
	return nil
}
