package render

import (
	"errors"
	"fmt"
	"slices"

	"github.com/colonyops/folio/internal/core/calc"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/ordering"
	"github.com/colonyops/folio/pkg/kv"
)

// ErrUnknownTemplate is returned by Lookup for template ids without a
// renderer.
var ErrUnknownTemplate = errors.New("unknown template")

// MinWidth is the narrowest frame a renderer lays out.
const MinWidth = 40

// Input is everything a renderer needs. Totals and resolved columns come from
// the editor store; renderers never derive amounts themselves.
type Input struct {
	Invoice *document.Invoice
	Totals  calc.Totals
	// Columns returns the resolved visible columns of a table-like block.
	Columns func(blockID string) []ordering.ResolvedColumn
	Width   int
	// Editing adds affordances such as drag handles and edit hints.
	Editing bool
	// Watermark is printed across the document when non-empty.
	Watermark string
}

func (in Input) width() int {
	return max(MinWidth, in.Width)
}

func (in Input) columns(b document.Block) []ordering.ResolvedColumn {
	if in.Columns != nil {
		return in.Columns(b.ID)
	}
	return ordering.ResolveWidths(b.Columns())
}

// Source is the part of the editor store a frame is rendered from.
type Source interface {
	Snapshot() *document.Invoice
	Totals() calc.Totals
	ResolvedColumns(blockID string) []ordering.ResolvedColumn
}

// NewInput builds an input from the current state of src.
func NewInput(src Source, width int) Input {
	return Input{
		Invoice: src.Snapshot(),
		Totals:  src.Totals(),
		Columns: src.ResolvedColumns,
		Width:   width,
	}
}

// Renderer lays out a document snapshot as a frame.
type Renderer interface {
	ID() document.TemplateID
	Render(in Input) Frame
}

var registry = newRegistry()

func newRegistry() *kv.Store[document.TemplateID, Renderer] {
	s := kv.New[document.TemplateID, Renderer]()
	s.Set(document.TemplateClassic, Classic{})
	s.Set(document.TemplateModern, NewModern())
	return s
}

// Lookup returns the renderer for a template id. The empty id selects the
// classic template.
func Lookup(id document.TemplateID) (Renderer, error) {
	if id == "" {
		id = document.TemplateClassic
	}
	r, ok := registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return r, nil
}

// IDs returns the registered template ids in a stable order.
func IDs() []document.TemplateID {
	ids := registry.Keys()
	slices.Sort(ids)
	return ids
}
