// Package stats renders the controls and counters under the breathing square.
package stats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/ui/styles"
)

// Mouse zones.
const (
	ResetZoneID = "reset"
	MuteZoneID  = "mute"
)

const durationZonePrefix = "duration-"

// DurationZoneID is the zone of the selector button for seconds.
func DurationZoneID(seconds int) string {
	return durationZonePrefix + strconv.Itoa(seconds)
}

// DurationFromZone parses a zone ID produced by DurationZoneID.
func DurationFromZone(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, durationZonePrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || !breathing.IsSupportedDuration(n) {
		return 0, false
	}
	return n, true
}

// FormatElapsed renders seconds as m:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Model holds what the stats bar shows.
type Model struct {
	state     breathing.State
	labels    labels.Set
	muted     bool
	showStats bool
	width     int
}

// New creates a stats bar with English labels.
func New() Model {
	return Model{labels: labels.For(labels.English), showStats: true}
}

func (m Model) SetState(s breathing.State) Model {
	m.state = s
	return m
}

func (m Model) SetLabels(set labels.Set) Model {
	m.labels = set
	return m
}

func (m Model) SetMuted(muted bool) Model {
	m.muted = muted
	return m
}

// SetShowStats hides or shows the cycles and time line.
func (m Model) SetShowStats(show bool) Model {
	m.showStats = show
	return m
}

func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// ShowsReset reports whether the reset control is offered.
func (m Model) ShowsReset() bool {
	return m.state.Active || m.state.TotalElapsedSeconds > 0
}

// View renders the selector, counters and controls, centered in the width.
func (m Model) View() string {
	rows := []string{m.durations()}
	if m.showStats {
		rows = append(rows, m.counters())
	}
	rows = append(rows, m.controls())

	out := lipgloss.JoinVertical(lipgloss.Center, rows...)
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, out)
	}
	return out
}

func (m Model) durations() string {
	buttons := make([]string, 0, 4)
	for _, d := range breathing.SupportedDurations() {
		style := styles.DurationStyle
		if d == m.state.CycleDurationSeconds {
			style = styles.SelectedDurationStyle
		}
		buttons = append(buttons, zone.Mark(DurationZoneID(d), style.Render(strconv.Itoa(d))))
	}
	return strings.Join(buttons, " ")
}

func (m Model) counters() string {
	return styles.HintStyle.Render(fmt.Sprintf("%s %d  ·  %s %s",
		m.labels.Cycles, m.state.CyclesCompleted,
		m.labels.Time, FormatElapsed(m.state.TotalElapsedSeconds),
	))
}

func (m Model) controls() string {
	sound := m.labels.Unmuted
	if m.muted {
		sound = m.labels.Muted
	}
	parts := []string{zone.Mark(MuteZoneID, styles.HintStyle.Render("♪ "+sound))}
	if m.ShowsReset() {
		parts = append([]string{zone.Mark(ResetZoneID, styles.HintStyle.Render("↺ "+m.labels.Reset))}, parts...)
	}
	return strings.Join(parts, "   ")
}
