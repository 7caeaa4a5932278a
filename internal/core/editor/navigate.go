package editor

import (
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/eventbus"
	"github.com/colonyops/folio/internal/core/navigation"
)

// Click routes a click on the rendered document. Resolved clicks switch the
// active panel and publish a focus request; clicks on tables without a mode
// publish a mode choice request instead.
func (s *Store) Click(t document.ClickTarget) navigation.Outcome {
	s.mu.Lock()
	out := s.nav.Click(s.inv, t)
	s.mu.Unlock()

	s.publishOutcome(out)
	return out
}

// ChooseMode resolves a pending mode choice.
func (s *Store) ChooseMode(mode document.EditMode) navigation.Outcome {
	s.mu.Lock()
	out := s.nav.Choose(s.inv, mode)
	s.mu.Unlock()

	s.publishOutcome(out)
	return out
}

// CancelChoice abandons a pending mode choice.
func (s *Store) CancelChoice() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Cancel()
}

// ClearFocus acknowledges the focus target with sequence number seq. Stale
// acknowledgements are ignored.
func (s *Store) ClearFocus(seq uint64) bool {
	s.mu.Lock()
	cleared := s.nav.Clear(seq)
	s.mu.Unlock()

	if cleared && s.bus != nil {
		s.bus.PublishFocusCleared(eventbus.FocusClearedPayload{Seq: seq})
	}
	return cleared
}

// SetActivePanel switches panels from the keyboard. Focus is untouched.
func (s *Store) SetActivePanel(p navigation.Panel) {
	s.mu.Lock()
	s.nav.SetPanel(p)
	s.mu.Unlock()
}

// ActivePanel returns the panel currently shown.
func (s *Store) ActivePanel() navigation.Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Panel()
}

// Focus returns the pending focus target, zero when none.
func (s *Store) Focus() document.FocusTarget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Focus()
}

// NavState returns the navigation state.
func (s *Store) NavState() navigation.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.State()
}

// PendingChoice returns the click target waiting for a mode choice.
func (s *Store) PendingChoice() (document.ClickTarget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Pending()
}

func (s *Store) publishOutcome(out navigation.Outcome) {
	if s.bus == nil {
		return
	}
	switch {
	case out.Dispatched:
		s.bus.PublishFocusRequested(eventbus.FocusRequestedPayload{Panel: out.Route.Panel, Focus: out.Route.Focus})
	case out.AwaitingChoice:
		s.bus.PublishModeChoiceRequested(eventbus.ModeChoiceRequestedPayload{Target: out.Pending})
	}
}
