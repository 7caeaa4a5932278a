// Package editor holds the single mutable state container of an editing
// session. Every action clones the current snapshot, applies the change,
// recomputes derived values and publishes the result. Published snapshots
// are never modified.
package editor

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/folio/internal/core/calc"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/eventbus"
	"github.com/colonyops/folio/internal/core/logging"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/internal/core/ordering"
	"github.com/colonyops/folio/pkg/randid"
)

// Listener receives every snapshot published after an accepted action.
type Listener func(snapshot *document.Invoice)

// Store is the editing session's source of truth. Actions are expected from
// a single writer (the UI loop); selectors may be called from any goroutine.
type Store struct {
	mu    sync.RWMutex
	inv   *document.Invoice
	nav   *navigation.Navigator
	bus   *eventbus.EventBus
	log   zerolog.Logger
	newID document.IDFunc

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int
}

// New creates a store owning a private copy of inv. bus may be nil. A nil
// newID generates random 8 character ids.
func New(inv *document.Invoice, bus *eventbus.EventBus, logger zerolog.Logger, newID document.IDFunc) *Store {
	if newID == nil {
		newID = randid.New
	}

	next := inv.Clone()
	next.Blocks = ordering.Sorted(next.Blocks, ordering.BlockOrder)
	ordering.Renumber(next.Blocks, ordering.SetBlockOrder)
	for i := range next.Blocks {
		normalizeColumns(&next.Blocks[i])
	}
	calc.Apply(next)

	return &Store{
		inv:   next,
		nav:   navigation.New(),
		bus:   bus,
		log:   logger,
		newID: newID,
		subs:  make(map[int]Listener),
	}
}

// Subscribe registers fn for every published snapshot and returns a func
// that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// mutation edits a private copy of the document. It reports whether anything
// changed; a non-nil error rejects the action.
type mutation func(inv *document.Invoice) (bool, error)

func (s *Store) apply(action string, fn mutation) error {
	s.mu.Lock()
	ctx := s.logContext(action)
	next := s.inv.Clone()

	changed, err := fn(next)
	if err != nil {
		s.mu.Unlock()
		s.log.Warn().Ctx(ctx).Err(err).Msg("action rejected")
		if s.bus != nil {
			s.bus.PublishActionRejected(eventbus.ActionRejectedPayload{Action: action, Err: err})
		}
		return err
	}
	if !changed {
		s.mu.Unlock()
		s.log.Debug().Ctx(ctx).Msg("action ignored")
		return nil
	}

	calc.Apply(next)
	s.inv = next
	s.mu.Unlock()

	s.log.Debug().Ctx(ctx).Msg("action applied")
	s.notify(action, next)
	return nil
}

func (s *Store) notify(action string, snapshot *document.Invoice) {
	s.subMu.Lock()
	// Listeners run in subscription order.
	subs := make([]Listener, 0, len(s.subs))
	for _, id := range slices.Sorted(maps.Keys(s.subs)) {
		subs = append(subs, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}

	if s.bus != nil {
		s.bus.PublishDocumentChanged(eventbus.DocumentChangedPayload{Action: action, Invoice: snapshot})
	}
}

func (s *Store) logContext(action string) context.Context {
	ctx := logging.WithInvoiceID(context.Background(), s.inv.ID)
	return logging.WithAction(ctx, action)
}

// Snapshot returns the current document. The result is shared and must not
// be modified.
func (s *Store) Snapshot() *document.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inv
}

// Totals returns the document totals of the current snapshot.
func (s *Store) Totals() calc.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calc.Summarize(s.inv.Items, s.inv.TaxRate)
}

// Warnings lists suspicious numeric inputs of the current snapshot.
func (s *Store) Warnings() []calc.Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calc.Warnings(s.inv.Items)
}

// SortedBlocks returns the blocks in display order.
func (s *Store) SortedBlocks() []document.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ordering.Sorted(s.inv.Blocks, ordering.BlockOrder)
}

// ResolvedColumns returns the visible columns of a table-like block with
// their effective widths. Unknown or non-table blocks return nil.
func (s *Store) ResolvedColumns(blockID string) []ordering.ResolvedColumn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.inv.FindBlock(blockID)
	if i < 0 {
		return nil
	}
	return ordering.ResolveWidths(s.inv.Blocks[i].Columns())
}
