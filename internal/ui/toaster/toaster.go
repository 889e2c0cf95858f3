// Package toaster shows short notices over the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/breathe/internal/ui/overlay"
	"github.com/zjrosen/breathe/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 2 * time.Second

// maxWidth bounds the toast text before wrapping.
const maxWidth = 40

// Style determines the border color and marker of a toast.
type Style int

const (
	StyleInfo Style = iota
	StyleSuccess
	StyleWarn
	StyleError
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
	width   int
	height  int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it later.
// A newer toast cancels the pending dismissal of an older one.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	m.visible = true
	return m, ScheduleDismiss(m.seq, DefaultDuration)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether a toast is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update hides the toast when its own dismissal arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	border := styles.ToastInfoColor
	marker := "i"
	switch m.style {
	case StyleSuccess:
		border, marker = styles.ToastSuccessColor, "✓"
	case StyleWarn:
		border, marker = styles.ToastWarnColor, "!"
	case StyleError:
		border, marker = styles.ToastErrorColor, "✗"
	}

	width := maxWidth
	if m.width > 0 && m.width-4 < width {
		width = max(m.width-4, 8)
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(wordwrap.String(marker+" "+m.message, width))
}

// Overlay renders the toast near the bottom of bg.
func (m Model) Overlay(bg string) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast shown with the same Seq.
type DismissMsg struct {
	Seq int
}

// ScheduleDismiss returns a command that dismisses toast seq after d.
func ScheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{Seq: seq}
	})
}
