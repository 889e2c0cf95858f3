package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
var styleRebuilders []func()

var generation int

// RegisterStyleRebuilder adds a callback run after ApplyTheme updates colors.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// Theme mirrors config.ThemeConfig to avoid an import cycle. Empty values
// restore the defaults.
type Theme struct {
	Accent string
	Muted  string
	Text   string
}

var defaults = struct {
	accent, text, muted lipgloss.AdaptiveColor
}{AccentColor, TextColor, MutedColor}

// ApplyTheme sets the themeable colors and rebuilds every registered style.
// Values are expected to be validated hex colors.
func ApplyTheme(t Theme) {
	AccentColor = pick(t.Accent, defaults.accent)
	MutedColor = pick(t.Muted, defaults.muted)
	TextColor = pick(t.Text, defaults.text)

	generation++
	rebuildStyles()
	for _, fn := range styleRebuilders {
		fn()
	}
}

func pick(hex string, fallback lipgloss.AdaptiveColor) lipgloss.AdaptiveColor {
	if hex == "" {
		return fallback
	}
	return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
}

// Hex resolves an adaptive color for the detected terminal background.
func Hex(c lipgloss.AdaptiveColor) string {
	if lipgloss.HasDarkBackground() {
		return c.Dark
	}
	return c.Light
}

// Generation changes every time ApplyTheme runs. Caches of rendered output
// include it in their keys.
func Generation() int {
	return generation
}
