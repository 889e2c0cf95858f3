// Package pulse renders the breathing square: a bordered box that grows on
// inhale and shrinks on exhale, with the phase label, a countdown and a
// progress bar for the current phase.
package pulse

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/cachemanager"
	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/ui/styles"
)

// ZoneID marks the square for mouse clicks.
const ZoneID = "pulse"

const (
	minBoxWidth = 16
	frameTTL    = 5 * time.Minute
)

type frameKey string

// frame holds every input of one rendered frame.
type frame struct {
	Width, Height int
	BoxWidth      int
	Phase         breathing.Phase
	Label         string
	Count         string
	Unit          string
	Badge         string
	Progress      float64
	Generation    int
}

// Model renders the square for a breathing State.
type Model struct {
	state     breathing.State
	labels    labels.Set
	countdown bool
	width     int
	height    int

	cache  cachemanager.CacheManager[frameKey, string]
	frames *cachemanager.ReadThroughCache[frameKey, string, frame]
}

// New creates a pulse with English labels and countdown on.
// Rendered frames are kept in an in-memory cache owned by the Model.
func New() Model {
	cache := cachemanager.NewInMemoryCacheManager[frameKey, string]("pulse-frames", frameTTL, 2*frameTTL)
	return Model{
		labels:    labels.For(labels.English),
		countdown: true,
		cache:     cache,
		frames:    cachemanager.NewReadThroughCache[frameKey, string, frame](cache, renderFrame, frameTTL, false),
	}
}

// CachedFrames reports how many distinct frames are cached.
func (m Model) CachedFrames() int {
	return m.cache.Len()
}

// ClearCache drops every cached frame. The app calls it when the palette
// changes, since frames of the old palette can no longer be hit.
func (m Model) ClearCache() {
	m.frames.Invalidate(context.Background())
}

// SetState updates the state shown.
func (m Model) SetState(s breathing.State) Model {
	m.state = s
	return m
}

// SetLabels switches the language of the text inside the square.
func (m Model) SetLabels(set labels.Set) Model {
	m.labels = set
	return m
}

// SetCountdown shows remaining seconds when true and elapsed seconds when false.
func (m Model) SetCountdown(on bool) Model {
	m.countdown = on
	return m
}

// SetSize sets the area the square and progress bar may fill.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// BoxWidth is the outer width of the square for the current state.
func (m Model) BoxWidth() int {
	return boxWidth(m.width, m.height, m.state.Expansion())
}

// View renders the current frame, marked for mouse clicks.
func (m Model) View() string {
	f := m.frame()
	out, err := m.frames.Get(context.Background(), f.key(), f)
	if err != nil {
		return ""
	}
	return zone.Mark(ZoneID, out)
}

func (m Model) frame() frame {
	s := m.state
	f := frame{
		Width:      m.width,
		Height:     m.height,
		BoxWidth:   m.BoxWidth(),
		Phase:      s.Phase,
		Label:      m.labels.Phase(s.Phase),
		Progress:   s.PhaseProgress(),
		Generation: styles.Generation(),
	}
	if s.Phase != breathing.Idle {
		n := s.SecondsIntoPhase
		if m.countdown {
			n = s.RemainingSeconds()
		}
		f.Count = strconv.Itoa(n)
		f.Unit = m.labels.Seconds
	}
	if s.Paused() {
		f.Badge = m.labels.Paused
	}
	return f
}

func (f frame) key() frameKey {
	return frameKey(fmt.Sprintf("%+v", f))
}

// boxWidth maps expansion onto the widths that fit the area. Terminal cells
// are about twice as tall as wide, so the height budget counts double.
func boxWidth(width, height int, expansion float64) int {
	maxW := min(width-2, 2*(height-3))
	if maxW < minBoxWidth {
		return minBoxWidth
	}
	return minBoxWidth + int(math.Round(float64(maxW-minBoxWidth)*expansion))
}

func borderColor(p breathing.Phase) lipgloss.AdaptiveColor {
	switch p {
	case breathing.Inhale:
		return styles.AccentColor
	case breathing.HoldIn, breathing.HoldOut:
		return styles.SoftColor
	default:
		return styles.MutedColor
	}
}

func renderFrame(_ context.Context, f frame) (string, error) {
	inner := f.BoxWidth - 2
	boxHeight := max(f.BoxWidth/2, 5)

	lines := []string{styles.LabelStyle.Render(runewidth.Truncate(f.Label, inner, "…"))}
	if f.Count != "" {
		lines = append(lines,
			styles.CounterStyle.Render(f.Count),
			styles.HintStyle.Render(runewidth.Truncate(f.Unit, inner, "…")),
		)
	}
	if f.Badge != "" {
		lines = append(lines, styles.BadgeStyle.Render(runewidth.Truncate(f.Badge, max(inner-2, 1), "")))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(f.Phase)).
		Width(inner).
		Height(boxHeight-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	bar := progress.New(
		progress.WithSolidFill(styles.Hex(borderColor(f.Phase))),
		progress.WithoutPercentage(),
		progress.WithWidth(max(f.BoxWidth, minBoxWidth)),
	)

	content := lipgloss.JoinVertical(lipgloss.Center, box, "", bar.ViewAs(f.Progress))
	if f.Width <= 0 || f.Height <= 0 {
		return content, nil
	}
	return lipgloss.Place(f.Width, f.Height, lipgloss.Center, lipgloss.Center, content), nil
}
