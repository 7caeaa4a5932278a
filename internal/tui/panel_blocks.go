package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/internal/core/ordering"
	"github.com/colonyops/folio/internal/core/styles"
)

const (
	columnWidthStep = 5
	newColumnLabel  = "Column"
)

func (m *Model) blockRows(inv *document.Invoice) []row {
	blocks := m.store.SortedBlocks()
	var rows []row
	for i, b := range blocks {
		t := b.Type()
		r := row{
			kind:    rowBlock,
			section: document.FocusBlock,
			blockID: b.ID,
			label:   styles.IconDrag + " " + t.Label(),
			value:   blockSummary(b, inv),
			checked: boolPtr(b.Enabled),
			muted:   !b.Enabled,
			locked:  t.Required(),
			on: map[string]rowAction{
				config.ActionToggle:   m.act(func() error { return m.store.SetBlockEnabled(b.ID, !b.Enabled) }),
				config.ActionMoveUp:   m.moveBlock(i, i-1),
				config.ActionMoveDown: m.moveBlock(i, i+1),
				config.ActionEdit:     m.editBlock(b),
				config.ActionAdd:      m.openBlockPalette,
				config.ActionDelete:   m.act(func() error { return m.store.RemoveBlock(b.ID) }),
			},
		}
		if t.TableLike() {
			r.on[config.ActionLayout] = m.toggleExpand(b.ID, document.ModeLayout)
		}
		rows = append(rows, r)

		if m.panel.expanded != b.ID {
			continue
		}
		switch m.panel.expandedMode {
		case document.ModeLayout:
			rows = append(rows, m.columnRows(b)...)
		case document.ModeContent:
			if p, ok := b.Payload.(*document.TablePayload); ok {
				rows = append(rows, m.tableRows(b.ID, p)...)
			}
		case document.ModeUnset:
		}
	}
	return rows
}

// editBlock edits the block payload. Detailed tables expand their rows
// instead, and the items block switches to the items panel.
func (m *Model) editBlock(b document.Block) rowAction {
	if b.Type() == document.BlockDetailedTable {
		return m.toggleExpand(b.ID, document.ModeContent)
	}
	return m.openBlockForm(b)
}

func (m *Model) toggleExpand(blockID string, mode document.EditMode) rowAction {
	return func() tea.Cmd {
		if m.panel.expanded == blockID && m.panel.expandedMode == mode {
			m.panel.collapse()
			return nil
		}
		m.panel.expand(blockID, mode)
		return nil
	}
}

func (m *Model) moveBlock(source, target int) rowAction {
	return func() tea.Cmd {
		blocks := m.store.SortedBlocks()
		if target < 0 || target >= len(blocks) {
			return nil
		}
		id := blocks[source].ID
		if err := m.store.ReorderBlocks(source, target); err != nil {
			return m.rejected(err)
		}
		m.followRow(navigation.PanelBlocks, func(r row) bool { return r.kind == rowBlock && r.blockID == id })
		return nil
	}
}

// columnRows lists every column of a table-like block, hidden ones
// included, in display order.
func (m *Model) columnRows(b document.Block) []row {
	cols := ordering.Sorted(b.Columns(), ordering.ColumnOrder)
	resolved := ordering.ResolveWidths(cols)
	effective := make(map[string]ordering.ResolvedColumn, len(resolved))
	for _, rc := range resolved {
		effective[rc.ID] = rc
	}

	rows := make([]row, 0, len(cols))
	for i, c := range cols {
		value := "hidden"
		if rc, ok := effective[c.ID]; ok {
			value = fmt.Sprintf("%.1f%%", rc.Effective)
			if rc.Last {
				value += " (auto)"
			}
		}
		rows = append(rows, row{
			kind:    rowColumn,
			section: document.FocusBlock,
			blockID: b.ID,
			childID: c.ID,
			label:   c.Label,
			value:   value,
			indent:  1,
			checked: boolPtr(c.Visible),
			muted:   !c.Visible,
			locked:  c.Required,
			on: map[string]rowAction{
				config.ActionToggle:   m.act(func() error { return m.store.SetColumnVisible(b.ID, c.ID, !c.Visible) }),
				config.ActionMoveUp:   m.moveColumn(b.ID, c.ID, i, i-1, len(cols)),
				config.ActionMoveDown: m.moveColumn(b.ID, c.ID, i, i+1, len(cols)),
				config.ActionWiden:    m.act(func() error { return m.store.SetColumnWidth(b.ID, c.ID, c.Width+columnWidthStep) }),
				config.ActionNarrow:   m.act(func() error { return m.store.SetColumnWidth(b.ID, c.ID, c.Width-columnWidthStep) }),
				config.ActionEdit:     m.editField("Column label", c.Label, nil, m.renameColumn(b.ID, c.ID)),
				config.ActionAddChild: m.addColumn(b.ID),
				config.ActionAdd:      m.addColumn(b.ID),
				config.ActionDelete:   m.act(func() error { return m.store.RemoveColumn(b.ID, c.ID) }),
				config.ActionLayout:   m.toggleExpand(b.ID, document.ModeLayout),
			},
		})
	}
	return rows
}

func (m *Model) moveColumn(blockID, colID string, source, target, n int) rowAction {
	return func() tea.Cmd {
		if target < 0 || target >= n {
			return nil
		}
		if err := m.store.ReorderColumns(blockID, source, target); err != nil {
			return m.rejected(err)
		}
		m.followRow(navigation.PanelBlocks, func(r row) bool {
			return r.kind == rowColumn && r.childID == colID
		})
		return nil
	}
}

func (m *Model) addColumn(blockID string) rowAction {
	return func() tea.Cmd {
		if _, err := m.store.AddColumn(blockID, newColumnLabel); err != nil {
			return m.rejected(err)
		}
		return nil
	}
}

// renameColumn sets the label of a column through a payload update.
func (m *Model) renameColumn(blockID, colID string) func(string) error {
	return func(label string) error {
		return m.store.UpdateBlock(blockID, func(p document.Payload) document.Payload {
			var cols []document.Column
			switch p := p.(type) {
			case *document.ItemsPayload:
				cols = p.Columns
			case *document.TablePayload:
				cols = p.Columns
			}
			for i := range cols {
				if cols[i].ID == colID {
					cols[i].Label = label
				}
			}
			return p
		})
	}
}

// tableRows lists the rows of a detailed table with their visible cells.
func (m *Model) tableRows(blockID string, p *document.TablePayload) []row {
	cols := m.store.ResolvedColumns(blockID)
	sorted := ordering.Sorted(p.Rows, ordering.RowOrder)
	rows := make([]row, 0, len(sorted)+1)
	for i, r := range sorted {
		label := fmt.Sprintf("Row %d", i+1)
		value := ""
		if len(cols) > 0 {
			value = r.Cells[cols[0].ID]
		}
		rows = append(rows, row{
			kind:    rowTableRow,
			section: document.FocusBlock,
			blockID: blockID,
			childID: r.ID,
			label:   label,
			value:   value,
			indent:  1,
			on: map[string]rowAction{
				config.ActionEdit:     m.openRowForm(blockID, r),
				config.ActionMoveUp:   m.moveRow(blockID, r.ID, i, i-1, len(sorted)),
				config.ActionMoveDown: m.moveRow(blockID, r.ID, i, i+1, len(sorted)),
				config.ActionAdd:      m.addRow(blockID),
				config.ActionAddChild: m.addRow(blockID),
				config.ActionDelete:   m.act(func() error { return m.store.RemoveRow(blockID, r.ID) }),
			},
		})
	}
	if len(sorted) == 0 {
		rows = append(rows, row{
			kind:    rowTableRow,
			section: document.FocusBlock,
			blockID: blockID,
			label:   "No rows",
			indent:  1,
			muted:   true,
			on: map[string]rowAction{
				config.ActionAdd:      m.addRow(blockID),
				config.ActionAddChild: m.addRow(blockID),
			},
		})
	}
	return rows
}

func (m *Model) moveRow(blockID, rowID string, source, target, n int) rowAction {
	return func() tea.Cmd {
		if target < 0 || target >= n {
			return nil
		}
		if err := m.store.ReorderRows(blockID, source, target); err != nil {
			return m.rejected(err)
		}
		m.followRow(navigation.PanelBlocks, func(r row) bool { return r.kind == rowTableRow && r.childID == rowID })
		return nil
	}
}

func (m *Model) addRow(blockID string) rowAction {
	return func() tea.Cmd {
		id, err := m.store.AddRow(blockID)
		if err != nil {
			return m.rejected(err)
		}
		if id != "" {
			m.followRow(navigation.PanelBlocks, func(r row) bool { return r.kind == rowTableRow && r.childID == id })
		}
		return nil
	}
}
