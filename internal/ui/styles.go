package ui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles every screen renders with. Build them with
// NewStyles whenever the theme changes; nothing here is global.
type Styles struct {
	Theme   Theme
	Palette Palette

	App      lipgloss.Style
	Title    lipgloss.Style
	Header   lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Dim      lipgloss.Style

	Card       lipgloss.Style
	CardActive lipgloss.Style
	CardTitle  lipgloss.Style

	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Chip      lipgloss.Style
	ChipOn    lipgloss.Style

	Primary  lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style
	Success  lipgloss.Style

	RecordingDot lipgloss.Style
	IdleDot      lipgloss.Style
	Countdown    lipgloss.Style
	Timer        lipgloss.Style

	Toast     lipgloss.Style
	ErrorText lipgloss.Style

	FooterKey  lipgloss.Style
	FooterDesc lipgloss.Style
	Divider    lipgloss.Style
	Spinner    lipgloss.Style
}

// NewStyles derives the style set for t.
func NewStyles(t Theme) Styles {
	p := t.Colors()

	return Styles{
		Theme:   t,
		Palette: p,

		App: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Background),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.MutedForeground),

		Text: lipgloss.NewStyle().
			Foreground(p.Foreground),

		Dim: lipgloss.NewStyle().
			Foreground(p.MutedForeground),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Foreground(p.CardForeground).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Ring).
			Foreground(p.CardForeground).
			Padding(0, 1),

		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.CardForeground),

		Tab: lipgloss.NewStyle().
			Foreground(p.MutedForeground).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.PrimaryForeground).
			Background(p.Primary).
			Padding(0, 1),

		Chip: lipgloss.NewStyle().
			Foreground(p.SecondaryForeground).
			Background(p.Secondary).
			Padding(0, 1),

		ChipOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.PrimaryForeground).
			Background(p.Primary).
			Padding(0, 1),

		Primary: lipgloss.NewStyle().
			Foreground(p.Primary),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Badge: lipgloss.NewStyle().
			Foreground(p.AccentForeground).
			Background(p.Accent).
			Padding(0, 1),

		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		RecordingDot: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Destructive),

		IdleDot: lipgloss.NewStyle().
			Foreground(p.MutedForeground),

		Countdown: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(1, 4),

		Timer: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Foreground),

		Toast: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.DestructiveForeground).
			Background(p.Destructive).
			Padding(0, 1),

		ErrorText: lipgloss.NewStyle().
			Foreground(p.Destructive),

		FooterKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		FooterDesc: lipgloss.NewStyle().
			Foreground(p.MutedForeground),

		Divider: lipgloss.NewStyle().
			Foreground(p.Border),

		Spinner: lipgloss.NewStyle().
			Foreground(p.Ring),
	}
}
