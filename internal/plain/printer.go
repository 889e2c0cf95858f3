// Package plain runs a breathing session without the TUI, printing one
// colored line per phase with a countdown.
package plain

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/labels"
	"github.com/zjrosen/breathe/internal/pubsub"
	"github.com/zjrosen/breathe/internal/ui/stats"
)

// Color printers for each phase.
var (
	inhalePrefix = color.New(color.FgGreen, color.Bold).SprintFunc()
	holdPrefix   = color.New(color.FgYellow).SprintFunc()
	exhalePrefix = color.New(color.FgCyan, color.Bold).SprintFunc()
	countPrefix  = color.New(color.FgWhite).SprintFunc()
	dimPrefix    = color.New(color.Faint).SprintFunc()
)

func phasePrefix(p breathing.Phase) func(a ...any) string {
	switch p {
	case breathing.Inhale:
		return inhalePrefix
	case breathing.Exhale:
		return exhalePrefix
	default:
		return holdPrefix
	}
}

// Printer writes phase lines and countdowns. It implements
// pubsub.Publisher so it can sit behind a Controller.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	labels labels.Set
	width  int
	open   bool
}

// NewPrinter writes to out using the labels of set.
func NewPrinter(out io.Writer, set labels.Set) *Printer {
	width := 0
	for _, p := range breathing.ActivePhases() {
		width = max(width, len([]rune(set.Phase(p))))
	}
	return &Printer{out: out, labels: set, width: width}
}

// Publish implements pubsub.Publisher. A phase change starts a new line
// showing the label and the first count.
func (p *Printer) Publish(eventType pubsub.EventType, t breathing.Transition) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch eventType {
	case breathing.EventStarted:
		fmt.Fprintf(p.out, "%s · %d %s\n",
			p.labels.Title, t.State.CycleDurationSeconds, p.labels.Seconds)
	case breathing.EventPhaseChanged:
		if t.To == breathing.Idle {
			return
		}
		p.endLine()
		label := p.labels.Phase(t.To)
		pad := p.width - len([]rune(label))
		fmt.Fprintf(p.out, "%s%*s %s", phasePrefix(t.To)(label), pad, "", countPrefix(t.State.RemainingSeconds()))
		p.open = true
	}
}

// Count prints the countdown for a tick that stayed in the same phase.
func (p *Printer) Count(s breathing.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	fmt.Fprintf(p.out, " %s", countPrefix(s.RemainingSeconds()))
}

// Summary closes the current line and prints the session totals.
func (p *Printer) Summary(s breathing.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.endLine()
	fmt.Fprintln(p.out, dimPrefix(fmt.Sprintf("%s %d  ·  %s %s",
		p.labels.Cycles, s.CyclesCompleted,
		p.labels.Time, stats.FormatElapsed(s.TotalElapsedSeconds),
	)))
}

func (p *Printer) endLine() {
	if p.open {
		fmt.Fprintln(p.out)
		p.open = false
	}
}
