// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Default palette.
const (
	DefaultAccent  = "#E6FA4B"
	DefaultMuted   = "#888888"
	DefaultText    = "#F0F0F0"
	DefaultSurface = "#2E2E2E"
)

var (
	// Brand and text
	AccentColor  = lipgloss.AdaptiveColor{Light: "#8A9A00", Dark: DefaultAccent} // Pulse on inhale, selected duration
	TextColor    = lipgloss.AdaptiveColor{Light: "#1C1C1C", Dark: DefaultText}   // Labels and counters
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: DefaultMuted}  // Hints, idle border, footer
	SurfaceColor = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: DefaultSurface}
	SoftColor    = lipgloss.AdaptiveColor{Light: "#A4B02A", Dark: "#B4C33A"} // Pulse on holds

	// Toast borders
	ToastInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	ToastErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
)

// Styles rebuilt by ApplyTheme.
var (
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style
	CounterStyle  lipgloss.Style
	HintStyle     lipgloss.Style
	BadgeStyle    lipgloss.Style

	SelectedDurationStyle lipgloss.Style
	DurationStyle         lipgloss.Style

	OverlayStyle      lipgloss.Style
	OverlayTitleStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(MutedColor)
	LabelStyle = lipgloss.NewStyle().Foreground(TextColor).Bold(true)
	CounterStyle = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)
	HintStyle = lipgloss.NewStyle().Foreground(MutedColor)
	BadgeStyle = lipgloss.NewStyle().
		Foreground(SurfaceColor).
		Background(MutedColor).
		Padding(0, 1).
		Bold(true)

	SelectedDurationStyle = lipgloss.NewStyle().
		Foreground(SurfaceColor).
		Background(AccentColor).
		Padding(0, 1).
		Bold(true)
	DurationStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	OverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Padding(1, 2)
	OverlayTitleStyle = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)
}
