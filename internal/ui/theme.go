// Package ui holds the light and dark palettes and the lipgloss styles
// built from them.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme selects a palette.
type Theme int

const (
	Light Theme = iota
	Dark
)

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("unknown theme %q", s)
}

// Palette names every color role a screen may use. Both themes fill every
// role.
type Palette struct {
	Background            lipgloss.Color
	Foreground            lipgloss.Color
	Card                  lipgloss.Color
	CardForeground        lipgloss.Color
	Primary               lipgloss.Color
	PrimaryForeground     lipgloss.Color
	Secondary             lipgloss.Color
	SecondaryForeground   lipgloss.Color
	Muted                 lipgloss.Color
	MutedForeground       lipgloss.Color
	Accent                lipgloss.Color
	AccentForeground      lipgloss.Color
	Destructive           lipgloss.Color
	DestructiveForeground lipgloss.Color
	Border                lipgloss.Color
	Input                 lipgloss.Color
	Ring                  lipgloss.Color
}

var lightPalette = Palette{
	Background:            "#e6e0d9",
	Foreground:            "#2c3e50",
	Card:                  "#f5f4f2",
	CardForeground:        "#2c3e50",
	Primary:               "#f39400",
	PrimaryForeground:     "#ffffff",
	Secondary:             "#d3cfca",
	SecondaryForeground:   "#4a5568",
	Muted:                 "#e6e0d9",
	MutedForeground:       "#718096",
	Accent:                "#f2e8f5",
	AccentForeground:      "#4a5568",
	Destructive:           "#e53e3e",
	DestructiveForeground: "#ffffff",
	Border:                "#d3cfca",
	Input:                 "#d3cfca",
	Ring:                  "#f39400",
}

var darkPalette = Palette{
	Background:            "#1a1713",
	Foreground:            "#e2e8f0",
	Card:                  "#262320",
	CardForeground:        "#e2e8f0",
	Primary:               "#9fcc4f",
	PrimaryForeground:     "#1a1713",
	Secondary:             "#342f2a",
	SecondaryForeground:   "#cbd5e0",
	Muted:                 "#262320",
	MutedForeground:       "#a0aec0",
	Accent:                "#3d3832",
	AccentForeground:      "#cbd5e0",
	Destructive:           "#e53e3e",
	DestructiveForeground: "#1a1713",
	Border:                "#342f2a",
	Input:                 "#342f2a",
	Ring:                  "#9fcc4f",
}

// Colors returns the palette for t.
func (t Theme) Colors() Palette {
	if t == Dark {
		return darkPalette
	}
	return lightPalette
}
