// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/pistachio/lib/config"
)

// Theme defines the colour palette of the launcher. Colours are
// lipgloss colours: ANSI 256 codes or "#rrggbb" hex, degraded by the
// renderer's profile.
type Theme struct {
	// Text colours.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	ErrorText  lipgloss.Color

	// Background fills the text box and menu.
	Background lipgloss.Color

	// Caret is the cursor block in the text box.
	Caret lipgloss.Color

	// Selected menu row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// DirectoryText colours directory entries in the menu.
	DirectoryText lipgloss.Color

	// UI chrome.
	BorderColor lipgloss.Color
	HelpText    lipgloss.Color
}

// DefaultTheme is the built-in dark colour scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("#f8f8f8"),
	FaintText:  lipgloss.Color("245"),
	ErrorText:  lipgloss.Color("#ff8080"),

	Background: lipgloss.Color("#303030"),
	Caret:      lipgloss.Color("#e0e0e0"),

	SelectedBackground: lipgloss.Color("#608040"),
	SelectedForeground: lipgloss.Color("#f8f8f8"),

	DirectoryText: lipgloss.Color("75"), // blue

	BorderColor: lipgloss.Color("240"),
	HelpText:    lipgloss.Color("241"),
}

// ThemeFromConfig overlays the configured colours on DefaultTheme.
// Empty fields keep the default.
func ThemeFromConfig(colours config.ThemeConfig) Theme {
	theme := DefaultTheme
	set := func(target *lipgloss.Color, value string) {
		if value != "" {
			*target = lipgloss.Color(value)
		}
	}
	set(&theme.NormalText, colours.Foreground)
	set(&theme.SelectedForeground, colours.Foreground)
	set(&theme.Background, colours.Background)
	set(&theme.Caret, colours.Caret)
	set(&theme.SelectedBackground, colours.Selected)
	set(&theme.ErrorText, colours.Error)
	return theme
}

// NewRenderer returns a lipgloss renderer writing to output with a
// fixed colour profile. SetColorProfile is required because the
// renderer otherwise re-detects the profile from the environment.
func NewRenderer(output io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(output, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return renderer
}

// Styles are the theme's colours bound to a renderer.
type Styles struct {
	Theme Theme

	Text      lipgloss.Style
	Faint     lipgloss.Style
	Error     lipgloss.Style
	Caret     lipgloss.Style
	Selected  lipgloss.Style
	Directory lipgloss.Style
	Border    lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles builds the styles for theme. A nil renderer uses the
// lipgloss default renderer.
func NewStyles(theme Theme, renderer *lipgloss.Renderer) Styles {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return Styles{
		Theme:     theme,
		Text:      renderer.NewStyle().Foreground(theme.NormalText),
		Faint:     renderer.NewStyle().Foreground(theme.FaintText),
		Error:     renderer.NewStyle().Foreground(theme.ErrorText).Italic(true),
		Caret:     renderer.NewStyle().Background(theme.Caret).Foreground(theme.Background),
		Selected:  renderer.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground),
		Directory: renderer.NewStyle().Foreground(theme.DirectoryText),
		Border:    renderer.NewStyle().Foreground(theme.BorderColor),
		Help:      renderer.NewStyle().Foreground(theme.HelpText),
	}
}
