// Package navigation routes clicks on a rendered, read-only document to the
// editing panel and element that produced the clicked region.
package navigation

import "github.com/colonyops/folio/internal/core/document"

// Panel identifies an editing panel.
type Panel string

const (
	PanelInfo   Panel = "info"
	PanelItems  Panel = "items"
	PanelBlocks Panel = "blocks"
	PanelDesign Panel = "design"
)

// Panels lists the panels in tab order.
var Panels = []Panel{PanelInfo, PanelItems, PanelBlocks, PanelDesign}

// Owns reports whether focus targets of section s belong to panel p.
// Panels ignore focus targets they do not own.
func (p Panel) Owns(f document.FocusTarget) bool {
	switch f.Section {
	case document.FocusIssuer, document.FocusClient, document.FocusInvoiceInfo:
		return p == PanelInfo
	case document.FocusLogo:
		return p == PanelDesign
	case document.FocusItems:
		return p == PanelItems
	case document.FocusBlock:
		return p == PanelBlocks
	}
	return false
}

// Route is where a resolved click leads.
type Route struct {
	Panel Panel
	Focus document.FocusTarget
}

// Resolution is the outcome of resolving a click target.
type Resolution int

const (
	// Unresolved targets point at nothing that exists, e.g. a deleted block.
	Unresolved Resolution = iota
	// Resolved targets have exactly one meaning.
	Resolved
	// NeedsMode targets back a table and need a content/layout choice.
	NeedsMode
)

// Resolve maps a click target to a route using inv to look up blocks. A
// target that already carries a valid mode never needs a choice.
func Resolve(inv *document.Invoice, t document.ClickTarget) (Route, Resolution) {
	switch t.Kind {
	case document.TargetIssuer:
		return Route{Panel: PanelInfo, Focus: document.FocusTarget{Section: document.FocusIssuer}}, Resolved
	case document.TargetClient:
		return Route{Panel: PanelInfo, Focus: document.FocusTarget{Section: document.FocusClient}}, Resolved
	case document.TargetInvoiceInfo:
		return Route{Panel: PanelInfo, Focus: document.FocusTarget{Section: document.FocusInvoiceInfo}}, Resolved
	case document.TargetLogo:
		return Route{Panel: PanelDesign, Focus: document.FocusTarget{Section: document.FocusLogo}}, Resolved
	case document.TargetItemsTable:
		return resolveItemsTable(inv, t.Mode)
	case document.TargetBlock:
		return resolveBlock(inv, t.BlockID, t.Mode)
	}
	return Route{}, Unresolved
}

func resolveItemsTable(inv *document.Invoice, mode document.EditMode) (Route, Resolution) {
	switch mode {
	case document.ModeContent:
		return Route{Panel: PanelItems, Focus: document.FocusTarget{Section: document.FocusItems, Mode: mode}}, Resolved
	case document.ModeLayout:
		b := inv.FirstBlockOfType(document.BlockInvoiceItems)
		if b == nil {
			return Route{}, Unresolved
		}
		return Route{
			Panel: PanelBlocks,
			Focus: document.FocusTarget{Section: document.FocusBlock, BlockID: b.ID, Mode: mode},
		}, Resolved
	case document.ModeUnset:
		return Route{}, NeedsMode
	}
	return Route{}, Unresolved
}

func resolveBlock(inv *document.Invoice, id string, mode document.EditMode) (Route, Resolution) {
	i := inv.FindBlock(id)
	if i < 0 {
		return Route{}, Unresolved
	}
	b := inv.Blocks[i]

	if !b.Type().TableLike() {
		return Route{Panel: PanelBlocks, Focus: document.FocusTarget{Section: document.FocusBlock, BlockID: id}}, Resolved
	}

	switch mode {
	case document.ModeUnset:
		return Route{}, NeedsMode
	case document.ModeContent:
		// Item rows of the invoice-items block are edited in the items panel.
		if b.Type() == document.BlockInvoiceItems {
			return resolveItemsTable(inv, mode)
		}
		return Route{Panel: PanelBlocks, Focus: document.FocusTarget{Section: document.FocusBlock, BlockID: id, Mode: mode}}, Resolved
	case document.ModeLayout:
		return Route{Panel: PanelBlocks, Focus: document.FocusTarget{Section: document.FocusBlock, BlockID: id, Mode: mode}}, Resolved
	}
	return Route{}, Unresolved
}
