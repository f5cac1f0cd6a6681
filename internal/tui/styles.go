package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/classicnews/internal/theme"
)

// styles is rebuilt whenever the theme changes.
type styles struct {
	palette theme.Palette

	header     lipgloss.Style
	headerDate lipgloss.Style
	weather    lipgloss.Style
	banner     lipgloss.Style
	bannerKey  lipgloss.Style

	tile         lipgloss.Style
	tileSelected lipgloss.Style
	tileCursor   lipgloss.Style

	slider      lipgloss.Style
	sliderTitle lipgloss.Style
	dotActive   lipgloss.Style
	dot         lipgloss.Style

	card         lipgloss.Style
	cardSelected lipgloss.Style
	cardTitle    lipgloss.Style
	cardMeta     lipgloss.Style
	cardBody     lipgloss.Style
	visited      lipgloss.Style
	highlight    lipgloss.Style

	pageButton  lipgloss.Style
	pageCurrent lipgloss.Style
	pageArrow   lipgloss.Style
	pageOff     lipgloss.Style
	pageInfo    lipgloss.Style

	searchPrompt lipgloss.Style
	statusBar    lipgloss.Style
	spinner      lipgloss.Style
	errText      lipgloss.Style
	dim          lipgloss.Style
	modal        lipgloss.Style
	modalTitle   lipgloss.Style
	splashName   lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	var (
		primary = lipgloss.Color(p.Primary)
		text    = lipgloss.Color(p.Text)
		cardBg  = lipgloss.Color(p.Card)
		muted   = lipgloss.Color(p.Muted)
		accent  = lipgloss.Color(p.Accent)
		white   = lipgloss.Color("#ffffff")
		deep    = lipgloss.Color(p.Gradient[0])
	)

	return styles{
		palette: p,

		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(white).
			Background(deep).
			Padding(0, 1),
		headerDate: lipgloss.NewStyle().
			Foreground(muted),
		weather: lipgloss.NewStyle().
			Foreground(text),
		banner: lipgloss.NewStyle().
			Foreground(text).
			Border(lipgloss.NormalBorder(), true, false).
			BorderForeground(accent).
			Padding(0, 1),
		bannerKey: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		tile: lipgloss.NewStyle().
			Foreground(white).
			Background(primary).
			Padding(0, 1),
		tileSelected: lipgloss.NewStyle().
			Foreground(white).
			Background(accent).
			Bold(true).
			Padding(0, 1),
		tileCursor: lipgloss.NewStyle().
			Underline(true),

		slider: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		sliderTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		dotActive: lipgloss.NewStyle().
			Foreground(accent),
		dot: lipgloss.NewStyle().
			Foreground(muted),

		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Background(cardBg).
			Foreground(text).
			Padding(0, 1),
		cardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Background(cardBg).
			Foreground(text).
			Padding(0, 1),
		cardTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		cardMeta: lipgloss.NewStyle().
			Foreground(muted),
		cardBody: lipgloss.NewStyle().
			Foreground(text),
		visited: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Visited)).
			Italic(true),
		highlight: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#222222")).
			Background(lipgloss.Color("#ffe066")).
			Bold(true),

		pageButton: lipgloss.NewStyle().
			Foreground(primary).
			Padding(0, 1),
		pageCurrent: lipgloss.NewStyle().
			Foreground(white).
			Background(primary).
			Bold(true).
			Padding(0, 1),
		pageArrow: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 1),
		pageOff: lipgloss.NewStyle().
			Foreground(muted).
			Faint(true).
			Padding(0, 1),
		pageInfo: lipgloss.NewStyle().
			Foreground(muted).
			PaddingLeft(2),

		searchPrompt: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		statusBar: lipgloss.NewStyle().
			Background(deep).
			Foreground(white).
			PaddingLeft(1).
			PaddingRight(1),
		spinner: lipgloss.NewStyle().
			Foreground(accent),
		errText: lipgloss.NewStyle().
			Foreground(accent),
		dim: lipgloss.NewStyle().
			Foreground(muted),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Background(cardBg).
			Foreground(text).
			Padding(1, 2),
		modalTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),
		splashName: lipgloss.NewStyle().
			Foreground(white).
			Background(primary).
			Bold(true).
			Padding(1, 4),
	}
}
