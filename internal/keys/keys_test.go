package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Toggle uses space and enter", km.Toggle, []string{" ", "enter"}},
		{"Reset uses r", km.Reset, []string{"r"}},
		{"PrevDuration uses [", km.PrevDuration, []string{"[", "-"}},
		{"NextDuration uses ]", km.NextDuration, []string{"]", "+", "="}},
		{"Mute uses m", km.Mute, []string{"m"}},
		{"Help uses ?", km.Help, []string{"?"}},
		{"Quit uses q and ctrl+c", km.Quit, []string{"q", "ctrl+c"}},
		{"Logs uses ctrl+x", km.Logs, []string{"ctrl+x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_DurationDigits(t *testing.T) {
	km := DefaultKeyMap()
	require.Len(t, km.Durations, 4)

	for digit, want := range map[string]int{"1": 4, "2": 6, "3": 8, "4": 10} {
		got, ok := km.DurationFor(digit)
		require.True(t, ok, digit)
		require.Equal(t, want, got, digit)
	}

	_, ok := km.DurationFor("5")
	require.False(t, ok)
	require.Equal(t, "10s per phase", km.Durations[3].Help().Desc)
}

func TestDefaultKeyMap_MatchesKeyMsg(t *testing.T) {
	km := DefaultKeyMap()
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Toggle))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Toggle))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}, km.Mute))
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()
	require.Len(t, km.ShortHelp(), 6)

	full := km.FullHelp()
	require.Len(t, full, 3)
	require.Len(t, full[1], 6, "four digit picks plus step keys")
	for _, group := range full {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
}
