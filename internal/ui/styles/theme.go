// Package styles holds the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette.
type Theme struct {
	Accent    lipgloss.Color // selection, playing track
	AccentAlt lipgloss.Color // gradient end

	Fg       lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color
	Border   lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles are the pre-built styles of a Theme.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Playing  lipgloss.Style
	Cursor   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	BarFill  lipgloss.Style
	BarEmpty lipgloss.Style
	Panel    lipgloss.Style
}

var defaultTheme = Theme{
	Accent:    lipgloss.Color("#7dcfff"),
	AccentAlt: lipgloss.Color("#bb9af7"),

	Fg:       lipgloss.Color("#c0caf5"),
	FgMuted:  lipgloss.Color("#828bb8"),
	FgSubtle: lipgloss.Color("#565f89"),

	BgCursor: lipgloss.Color("#292e42"),
	Border:   lipgloss.Color("#3b4261"),

	Success: lipgloss.Color("#9ece6a"),
	Error:   lipgloss.Color("#f7768e"),
	Warning: lipgloss.Color("#e0af68"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the theme's styles, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.build()
	}
	return t.styles
}

func (t *Theme) build() *Styles {
	base := lipgloss.NewStyle().Foreground(t.Fg)
	return &Styles{
		Base:     base,
		Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:    base.Bold(true),
		Playing:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Cursor:   lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.Fg),
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
		BarFill:  lipgloss.NewStyle().Foreground(t.Accent),
		BarEmpty: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
	}
}
