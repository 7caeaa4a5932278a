package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/styles"
)

const pulseTickInterval = 50 * time.Millisecond

type pulseTickMsg struct {
	seq uint64
	at  time.Time
}

func schedulePulseTick(seq uint64) tea.Cmd {
	return tea.Tick(pulseTickInterval, func(t time.Time) tea.Msg {
		return pulseTickMsg{seq: seq, at: t}
	})
}

// PulseController highlights the focused element of a panel once. The pulse
// fades out over its duration, after which the focus target is acknowledged.
type PulseController struct {
	duration time.Duration
	target   document.FocusTarget
	started  time.Time
	active   bool
}

// NewPulseController returns a controller whose pulses last d.
func NewPulseController(d time.Duration) *PulseController {
	return &PulseController{duration: d}
}

// Start begins a pulse for f. A running pulse is replaced.
func (p *PulseController) Start(f document.FocusTarget, now time.Time) tea.Cmd {
	p.target = f
	p.started = now
	p.active = true
	return schedulePulseTick(f.Seq)
}

// Tick advances the pulse. It returns the sequence number to acknowledge
// once the pulse is over, and whether the pulse ended with this tick. Ticks
// of replaced pulses are ignored.
func (p *PulseController) Tick(msg pulseTickMsg) (seq uint64, done bool, cmd tea.Cmd) {
	if !p.active || msg.seq != p.target.Seq {
		return 0, false, nil
	}
	if msg.at.Sub(p.started) >= p.duration {
		p.active = false
		return p.target.Seq, true, nil
	}
	return 0, false, schedulePulseTick(msg.seq)
}

// Active reports whether a pulse is running.
func (p *PulseController) Active() bool {
	return p.active
}

// Target returns the focus target of the running pulse.
func (p *PulseController) Target() document.FocusTarget {
	return p.target
}

// Progress returns how far the pulse has faded, from 0 to 1.
func (p *PulseController) Progress(now time.Time) float64 {
	if !p.active || p.duration <= 0 {
		return 1
	}
	return min(1, float64(now.Sub(p.started))/float64(p.duration))
}

// Color returns the highlight background at now.
func (p *PulseController) Color(now time.Time) lipgloss.Color {
	return styles.Blend(styles.ColorPrimary, styles.ColorSurface, p.Progress(now))
}
