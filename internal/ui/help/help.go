// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/breathe/internal/keys"
	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/log"
	"github.com/zjrosen/breathe/internal/ui/overlay"
	"github.com/zjrosen/breathe/internal/ui/styles"
)

// noMarginStyle inherits the auto style and removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

const (
	minWrap = 30
	maxWrap = 60
)

var sectionNames = []string{"Session", "Duration", "General"}

var (
	sectionStyle lipgloss.Style
	keyStyle     lipgloss.Style
	descStyle    lipgloss.Style
	footerStyle  lipgloss.Style
)

func init() {
	rebuild()
	styles.RegisterStyleRebuilder(rebuild)
}

func rebuild() {
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor)
	keyStyle = lipgloss.NewStyle().Foreground(styles.TextColor).Width(8)
	descStyle = lipgloss.NewStyle().Foreground(styles.MutedColor)
	footerStyle = lipgloss.NewStyle().Foreground(styles.MutedColor).MarginTop(1)
}

// Model holds the help overlay state.
type Model struct {
	keys   keys.KeyMap
	lang   string
	width  int
	height int

	wrap     int
	rendered string
}

// New creates a help overlay for km.
func New(km keys.KeyMap) Model {
	return Model{keys: km, lang: labels.English}
}

// SetLanguage switches the technique text.
func (m Model) SetLanguage(lang string) Model {
	if lang != m.lang {
		m.lang = lang
		m.rendered = ""
	}
	return m.render()
}

// SetSize updates dimensions and re-renders the markdown when the wrap width
// changes.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.render()
}

func (m Model) render() Model {
	wrap := min(max(m.width-12, minWrap), maxWrap)
	if wrap == m.wrap && m.rendered != "" {
		return m
	}
	m.wrap = wrap

	md := Technique(m.lang)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		var out string
		out, err = r.Render(md)
		if err == nil {
			m.rendered = strings.TrimSpace(out)
			return m
		}
	}
	log.ErrorErr(log.CatUI, "Rendering help markdown", err)
	m.rendered = md
	return m
}

// View renders the help box centered on an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box())
}

// Overlay renders the help box centered over background.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.box(), background)
}

func (m Model) box() string {
	groups := m.keys.FullHelp()
	cols := make([]string, 0, len(groups))
	for i, group := range groups {
		var col strings.Builder
		if i < len(sectionNames) {
			col.WriteString(sectionStyle.Render(sectionNames[i]))
			col.WriteString("\n")
		}
		for _, b := range group {
			col.WriteString(renderBinding(b))
		}
		style := lipgloss.NewStyle()
		if i < len(groups)-1 {
			style = style.MarginRight(3)
		}
		cols = append(cols, style.Render(strings.TrimRight(col.String(), "\n")))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.rendered,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		footerStyle.Render("Press ? or Esc to close"),
	)
	return styles.OverlayStyle.Render(body)
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
