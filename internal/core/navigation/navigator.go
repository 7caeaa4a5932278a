package navigation

import "github.com/colonyops/folio/internal/core/document"

// State is the navigation state for the pending navigation.
type State int

const (
	StateIdle State = iota
	StateAwaitingModeChoice
	StateHighlighting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingModeChoice:
		return "awaiting-mode-choice"
	case StateHighlighting:
		return "highlighting"
	}
	return "unknown"
}

// Outcome describes what a navigator transition did.
type Outcome struct {
	// Dispatched is set when a panel and focus target were published.
	Dispatched bool
	// AwaitingChoice is set when a content/layout chooser must be shown.
	AwaitingChoice bool
	// Route is the dispatched route. Focus.Seq is assigned.
	Route Route
	// Pending is the target awaiting a mode choice.
	Pending document.ClickTarget
}

// Navigator is the click → panel → focus state machine. It is not safe for
// concurrent use; the editor store serializes access.
type Navigator struct {
	state   State
	panel   Panel
	focus   document.FocusTarget
	pending document.ClickTarget
	seq     uint64
}

// New returns an idle navigator with the info panel active.
func New() *Navigator {
	return &Navigator{panel: PanelInfo}
}

// State returns the current state.
func (n *Navigator) State() State { return n.state }

// Panel returns the active panel.
func (n *Navigator) Panel() Panel { return n.panel }

// Focus returns the pending focus target, zero when none.
func (n *Navigator) Focus() document.FocusTarget { return n.focus }

// Pending returns the click target awaiting a mode choice.
func (n *Navigator) Pending() (document.ClickTarget, bool) {
	return n.pending, n.state == StateAwaitingModeChoice
}

// SetPanel switches the active panel without touching focus. Used for
// keyboard navigation between panels.
func (n *Navigator) SetPanel(p Panel) {
	n.panel = p
}

// Click handles a click on a rendered region. Unambiguous targets dispatch
// immediately; table-backed targets without a mode wait for Choose. A click
// always pre-empts whatever was pending before. Clicks on regions that no
// longer exist leave the navigator unchanged.
func (n *Navigator) Click(inv *document.Invoice, t document.ClickTarget) Outcome {
	route, res := Resolve(inv, t)
	switch res {
	case Resolved:
		return n.dispatch(route)
	case NeedsMode:
		n.state = StateAwaitingModeChoice
		n.pending = t
		return Outcome{AwaitingChoice: true, Pending: t}
	case Unresolved:
	}
	return Outcome{}
}

// Choose resolves the pending target with the chosen mode.
func (n *Navigator) Choose(inv *document.Invoice, mode document.EditMode) Outcome {
	if n.state != StateAwaitingModeChoice || !mode.IsValid() {
		return Outcome{}
	}

	target := n.pending.WithMode(mode)
	n.pending = document.ClickTarget{}
	n.settle()

	route, res := Resolve(inv, target)
	if res != Resolved {
		return Outcome{}
	}
	return n.dispatch(route)
}

// Cancel abandons a pending mode choice. It reports whether anything was
// pending.
func (n *Navigator) Cancel() bool {
	if n.state != StateAwaitingModeChoice {
		return false
	}
	n.pending = document.ClickTarget{}
	n.settle()
	return true
}

// settle leaves the mode choice, returning to the highlight of a focus that
// is still unacknowledged.
func (n *Navigator) settle() {
	n.state = StateIdle
	if !n.focus.IsZero() {
		n.state = StateHighlighting
	}
}

// Clear acknowledges the focus target with the given sequence number and
// returns to idle. Stale acknowledgements, for a target that was already
// pre-empted, are ignored and reported as false.
func (n *Navigator) Clear(seq uint64) bool {
	if n.focus.IsZero() || n.focus.Seq != seq {
		return false
	}
	n.focus = document.FocusTarget{}
	if n.state == StateHighlighting {
		n.state = StateIdle
	}
	return true
}

func (n *Navigator) dispatch(route Route) Outcome {
	n.seq++
	route.Focus.Seq = n.seq

	n.panel = route.Panel
	n.focus = route.Focus
	n.pending = document.ClickTarget{}
	n.state = StateHighlighting

	return Outcome{Dispatched: true, Route: route}
}
