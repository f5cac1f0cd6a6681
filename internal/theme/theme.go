// Package theme holds the light and dark colour sets of the portal.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// Palette is one colour set. Values are hex colours.
type Palette struct {
	Name       Name
	Label      string
	Primary    string
	Gradient   [2]string
	Background string
	Text       string
	Card       string
	Muted      string
	Accent     string
	Visited    string
}

var palettes = map[Name]Palette{
	Light: {
		Name:       Light,
		Label:      "Light",
		Primary:    "#2a5298",
		Gradient:   [2]string{"#1e3c72", "#2a5298"},
		Background: "#f0f2f5",
		Text:       "#222222",
		Card:       "#ffffff",
		Muted:      "#6b7280",
		Accent:     "#f44336",
		Visited:    "#7c3aed",
	},
	Dark: {
		Name:       Dark,
		Label:      "Dark",
		Primary:    "#7ecbff",
		Gradient:   [2]string{"#0f2027", "#2c5364"},
		Background: "#181c22",
		Text:       "#f5f5f5",
		Card:       "#23272f",
		Muted:      "#9ca3af",
		Accent:     "#f44336",
		Visited:    "#c4b5fd",
	},
}

func (n Name) Palette() Palette {
	if p, ok := palettes[n]; ok {
		return p
	}
	return palettes[Light]
}

func (n Name) Toggle() Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// Parse accepts "light" or "dark" in any case.
func Parse(s string) (Name, bool) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Initial picks the starting theme: the stored choice when valid, otherwise
// the terminal background.
func Initial(stored string, darkBackground bool) Name {
	if n, ok := Parse(stored); ok {
		return n
	}
	if darkBackground {
		return Dark
	}
	return Light
}

// DetectDark reports whether the terminal has a dark background.
func DetectDark() bool {
	return lipgloss.HasDarkBackground()
}
