package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/breathe/internal/ui/styles"
)

const (
	headerHeight = 3 // title, subtitle, blank
	footerHeight = 1
)

// layout gives the pulse whatever height the header, stats and footer leave.
func (m Model) layout() Model {
	statsHeight := lipgloss.Height(m.stats.View()) + 1
	pulseHeight := max(m.height-headerHeight-statsHeight-footerHeight, 0)
	m.pulse = m.pulse.SetSize(m.width, pulseHeight)
	m.stats = m.stats.SetWidth(m.width)
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.pulse.View(),
		"",
		m.stats.View(),
		m.footerView(),
	)

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.toaster.Overlay(view)
	if m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) header() string {
	title := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render(m.labels.Title),
		styles.SubtitleStyle.Render(m.labels.Subtitle),
	)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title) + "\n"
}

// footerView renders the short key help with the help hint in the UI language.
func (m Model) footerView() string {
	bindings := m.keys.ShortHelp()
	for i, b := range bindings {
		if b.Help().Key == m.keys.Help.Help().Key {
			bindings[i] = key.NewBinding(key.WithKeys(b.Keys()...), key.WithHelp(b.Help().Key, m.labels.Help))
		}
	}
	out := strings.TrimRight(m.footer.ShortHelpView(bindings), " ")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, out)
}
