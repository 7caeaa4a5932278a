package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/navigation"
)

type rowKind int

const (
	rowField rowKind = iota
	rowItem
	rowSubItem
	rowBlock
	rowColumn
	rowTableRow
)

// rowAction runs an editor action on a row.
type rowAction func() tea.Cmd

// row is one selectable line of an editing panel. Rows are rebuilt from the
// current snapshot on every frame; actions capture the ids they act on.
type row struct {
	kind    rowKind
	group   string
	section document.FocusSection
	blockID string
	itemID  string
	// childID is the column or table row id of nested block rows.
	childID string

	label   string
	value   string
	indent  int
	checked *bool
	muted   bool
	locked  bool

	on map[string]rowAction
}

func (r row) matches(f document.FocusTarget) bool {
	if r.section != f.Section {
		return false
	}
	return f.BlockID == "" || r.blockID == f.BlockID
}

// findFocusRow returns the first row that displays f, or -1.
func findFocusRow(rows []row, f document.FocusTarget) int {
	for i, r := range rows {
		if r.matches(f) && r.kind != rowColumn && r.kind != rowTableRow {
			return i
		}
	}
	return -1
}

// panelState is the per-panel cursor and the table block currently
// expanded in the blocks panel.
type panelState struct {
	cursors      map[navigation.Panel]int
	expanded     string
	expandedMode document.EditMode
}

func newPanelState() *panelState {
	return &panelState{cursors: make(map[navigation.Panel]int)}
}

func (p *panelState) expand(blockID string, mode document.EditMode) {
	p.expanded = blockID
	p.expandedMode = mode
}

func (p *panelState) collapse() {
	p.expanded = ""
	p.expandedMode = document.ModeUnset
}

// cursor returns the cursor of panel clamped to n rows.
func (p *panelState) cursor(panel navigation.Panel, n int) int {
	c := p.cursors[panel]
	if c >= n {
		c = n - 1
	}
	return max(0, c)
}

func (p *panelState) move(panel navigation.Panel, delta, n int) {
	p.cursors[panel] = min(max(0, p.cursor(panel, n)+delta), max(0, n-1))
}

func boolPtr(v bool) *bool { return &v }

// rowsFor builds the rows of panel from inv.
func (m *Model) rowsFor(panel navigation.Panel, inv *document.Invoice) []row {
	switch panel {
	case navigation.PanelInfo:
		return m.infoRows(inv)
	case navigation.PanelItems:
		return m.itemRows(inv)
	case navigation.PanelBlocks:
		return m.blockRows(inv)
	case navigation.PanelDesign:
		return m.designRows(inv)
	}
	return nil
}

// panelFallback handles actions no row claims, such as adding the first
// item to an empty list.
func (m *Model) panelFallback(panel navigation.Panel, action string) rowAction {
	switch panel { //nolint:exhaustive // only list panels can add without a row
	case navigation.PanelItems:
		if action == config.ActionAdd {
			return m.addItem
		}
	case navigation.PanelBlocks:
		if action == config.ActionAdd {
			return m.openBlockPalette
		}
	}
	return nil
}

// act wraps a store call as a row action.
func (m *Model) act(fn func() error) rowAction {
	return func() tea.Cmd {
		return m.rejected(fn())
	}
}
