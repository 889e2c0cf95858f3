// Package keys contains keybinding definitions.
package keys

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/breathe/internal/breathing"
)

// KeyMap defines the keybindings for the breathing screen.
type KeyMap struct {
	// Session
	Toggle key.Binding
	Reset  key.Binding

	// Duration
	Durations    []key.Binding
	PrevDuration key.Binding
	NextDuration key.Binding

	// General
	Mute   key.Binding
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding

	// Logs toggles the debug log overlay. Only active with --debug.
	Logs key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	durations := breathing.SupportedDurations()
	picks := make([]key.Binding, len(durations))
	for i, d := range durations {
		k := strconv.Itoa(i + 1)
		picks[i] = key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, strconv.Itoa(d)+"s per phase"),
		)
	}

	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),

		Durations: picks,
		PrevDuration: key.NewBinding(
			key.WithKeys("[", "-"),
			key.WithHelp("[", "shorter phases"),
		),
		NextDuration: key.NewBinding(
			key.WithKeys("]", "+", "="),
			key.WithHelp("]", "longer phases"),
		),

		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute/unmute"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "debug logs"),
		),
	}
}

// DurationFor returns the duration selected by a digit key, if any.
func (k KeyMap) DurationFor(msg string) (int, bool) {
	durations := breathing.SupportedDurations()
	for i, b := range k.Durations {
		for _, bk := range b.Keys() {
			if bk == msg && i < len(durations) {
				return durations[i], true
			}
		}
	}
	return 0, false
}

// ShortHelp returns keybindings for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.NextDuration, k.Mute, k.Help, k.Quit}
}

// FullHelp returns keybindings for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	duration := append(append([]key.Binding{}, k.Durations...), k.PrevDuration, k.NextDuration)
	return [][]key.Binding{
		{k.Toggle, k.Reset},                // Session
		duration,                           // Duration
		{k.Mute, k.Help, k.Escape, k.Quit}, // General
	}
}
