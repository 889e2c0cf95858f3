package logoverlay

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/breathe/internal/log"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func visible() Model {
	return New().SetSize(100, 30).Toggle()
}

func TestNew(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, log.LevelDebug, m.minLevel)
}

func TestToggle(t *testing.T) {
	m := New().Toggle()
	require.True(t, m.Visible())
	require.False(t, m.Toggle().Visible())
}

func TestAppend_BuffersWhileHidden(t *testing.T) {
	m := New().Append("2026-10-14T10:00:00 [INFO] [timer] Session started\n")
	require.Equal(t, []string{"2026-10-14T10:00:00 [INFO] [timer] Session started"}, m.Entries())
}

func TestAppend_DropsOldest(t *testing.T) {
	m := New()
	for i := range maxEntries + 10 {
		m = m.Append(fmt.Sprintf("[DEBUG] entry %d", i))
	}
	require.Len(t, m.Entries(), maxEntries)
	require.Equal(t, "[DEBUG] entry 10", m.Entries()[0])
}

func TestView_FiltersByLevel(t *testing.T) {
	m := visible().
		Append("[DEBUG] [cache] flushed").
		Append("[WARN] [sound] playback failed").
		Append("[ERROR] [config] bad yaml")

	out := ansi.Strip(m.View())
	require.Contains(t, out, "flushed")
	require.Contains(t, out, "playback failed")

	m, _ = m.Update(keyMsg("w"))
	out = ansi.Strip(m.View())
	require.NotContains(t, out, "flushed")
	require.Contains(t, out, "playback failed")
	require.Contains(t, out, "bad yaml")

	m, _ = m.Update(keyMsg("e"))
	out = ansi.Strip(m.View())
	require.NotContains(t, out, "playback failed")
	require.Contains(t, out, "bad yaml")
}

func TestUpdate_Clear(t *testing.T) {
	m := visible().Append("[INFO] [ui] hello")
	m, _ = m.Update(keyMsg("c"))
	require.Empty(t, m.Entries())
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestUpdate_EscCloses(t *testing.T) {
	m, _ := visible().Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
}

func TestUpdate_IgnoredWhenHidden(t *testing.T) {
	m := New().Append("[INFO] x")
	m, cmd := m.Update(keyMsg("c"))
	require.Nil(t, cmd)
	require.Len(t, m.Entries(), 1)
}

func TestView_TruncatesLongEntries(t *testing.T) {
	m := visible().Append("[INFO] " + strings.Repeat("x", 300))
	for _, line := range strings.Split(m.View(), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 96)
	}
}

func TestOverlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 30), "\n")
	require.Equal(t, bg, New().SetSize(100, 30).Overlay(bg))

	out := visible().Append("[INFO] [ui] shown").Overlay(bg)
	require.Len(t, strings.Split(out, "\n"), 30)
	require.Contains(t, ansi.Strip(out), "shown")
}
