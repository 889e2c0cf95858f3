// Package logoverlay shows recent log entries over the breathing screen.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/ui/overlay"
	"github.com/zjrosen/breathe/internal/ui/styles"
)

const (
	maxEntries        = 500
	viewportMaxHeight = 20
	viewportMinHeight = 5
	boxMaxWidth       = 140
	boxMinWidth       = 40
)

// Model keeps the most recent log entries and renders them on demand.
type Model struct {
	visible  bool
	entries  []string
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Visible reports whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Entries returns the buffered entries, oldest first.
func (m Model) Entries() []string {
	return m.entries
}

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	return m.refresh()
}

// SetSize updates the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.refresh()
}

// Append buffers one entry, dropping the oldest past the limit.
func (m Model) Append(entry string) Model {
	entry = strings.TrimSuffix(entry, "\n")
	if len(m.entries) >= maxEntries {
		m.entries = append(m.entries[:0:0], m.entries[len(m.entries)-maxEntries+1:]...)
	}
	m.entries = append(m.entries, entry)
	if !m.visible {
		return m
	}
	atBottom := m.viewport.AtBottom()
	m = m.refresh()
	if atBottom {
		m.viewport.GotoBottom()
	}
	return m
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !m.visible {
		return m, nil
	}

	switch km.String() {
	case "c":
		m.entries = nil
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "esc", "ctrl+x":
		m.visible = false
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}
	return m.refresh(), nil
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) refresh() Model {
	if !m.visible || m.width == 0 || m.height == 0 {
		return m
	}
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	width := m.boxWidth() - 2

	m.viewport = viewport.New(width, height)
	m.viewport.SetContent(m.content(width))
	m.viewport.GotoBottom()
	return m
}

func (m Model) content(width int) string {
	var lines []string
	for _, e := range m.entries {
		level, ok := levelOf(e)
		if ok && level < m.minLevel {
			continue
		}
		if ansi.StringWidth(e) > width {
			e = ansi.Truncate(e, width-1, "…")
		}
		lines = append(lines, colorize(level, e))
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.MutedColor).Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

func levelOf(entry string) (log.Level, bool) {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l, true
		}
	}
	return log.LevelDebug, false
}

func colorize(level log.Level, entry string) string {
	color := styles.MutedColor
	switch level {
	case log.LevelError:
		color = styles.ToastErrorColor
	case log.LevelWarn:
		color = styles.ToastWarnColor
	case log.LevelInfo:
		color = styles.ToastInfoColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// View renders the log box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	hint := lipgloss.NewStyle().Foreground(styles.MutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextColor).Bold(true)
	filters := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		key   string
		level log.Level
	}{{"d", log.LevelDebug}, {"i", log.LevelInfo}, {"w", log.LevelWarn}, {"e", log.LevelError}} {
		style := hint
		if f.level == m.minLevel {
			style = active
		}
		filters = append(filters, style.Render("["+f.key+"] "+f.level.String()))
	}

	divider := hint.Render(strings.Repeat("─", m.boxWidth()-2))
	body := strings.Join([]string{
		styles.OverlayTitleStyle.Render("Logs"),
		divider,
		m.viewport.View(),
		divider,
		strings.Join(filters, "  "),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.MutedColor).
		Width(m.boxWidth() - 2).
		Render(body)
}

// Overlay renders the log box centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
