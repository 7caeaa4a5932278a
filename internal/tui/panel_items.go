package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/internal/render"
)

const (
	newItemDescription    = "New item"
	newSubItemDescription = "New sub-item"
)

func (m *Model) itemRows(inv *document.Invoice) []row {
	cur := inv.Currency
	var rows []row
	for i, it := range inv.Items {
		rows = append(rows, row{
			kind:    rowItem,
			section: document.FocusItems,
			itemID:  it.ID,
			label:   it.Description,
			value:   itemSummary(it, cur),
			checked: boolPtr(it.Selected),
			muted:   !it.Selected,
			on: map[string]rowAction{
				config.ActionToggle:    m.act(func() error { return m.store.SetItemSelected(it.ID, !it.Selected) }),
				config.ActionMoveUp:    m.moveItem(i, i-1),
				config.ActionMoveDown:  m.moveItem(i, i+1),
				config.ActionCycleMode: m.act(func() error { return m.cycleSubItems(it) }),
				config.ActionEdit:      m.openItemForm(it),
				config.ActionAdd:       m.addItem,
				config.ActionAddChild:  m.addSubItem(it.ID),
				config.ActionDelete:    m.act(func() error { return m.store.RemoveItem(it.ID) }),
			},
		})

		if !it.HasSubItems {
			continue
		}
		for _, sub := range it.SubItems {
			rows = append(rows, row{
				kind:    rowSubItem,
				section: document.FocusItems,
				itemID:  it.ID,
				label:   sub.Description,
				value:   subItemSummary(it.SubItemsMode, sub, cur),
				indent:  1,
				checked: boolPtr(sub.Selected),
				muted:   !sub.Selected || !it.Selected,
				on: map[string]rowAction{
					config.ActionToggle:   m.act(func() error { return m.store.SetSubItemSelected(it.ID, sub.ID, !sub.Selected) }),
					config.ActionEdit:     m.openSubItemForm(it.ID, it.SubItemsMode, sub),
					config.ActionAdd:      m.addItem,
					config.ActionAddChild: m.addSubItem(it.ID),
					config.ActionDelete:   m.act(func() error { return m.store.RemoveSubItem(it.ID, sub.ID) }),
				},
			})
		}
	}
	return rows
}

func itemSummary(it document.InvoiceItem, cur string) string {
	if it.HasSubItems {
		switch it.SubItemsMode { //nolint:exhaustive // parent quantity falls through to quantity × price
		case document.ModeIndividualQuantities:
			return fmt.Sprintf("Σ = %s  [%s]", render.Money(it.Total, cur), it.SubItemsMode)
		case document.ModeNoPrices:
			return fmt.Sprintf("%s × %s = %s  [%s]", render.Quantity(it.Quantity), render.Money(it.UnitPrice, cur), render.Money(it.Total, cur), it.SubItemsMode)
		}
	}
	return fmt.Sprintf("%s × %s = %s", render.Quantity(it.Quantity), render.Money(it.UnitPrice, cur), render.Money(it.Total, cur))
}

func subItemSummary(mode document.SubItemsMode, sub document.SubItem, cur string) string {
	switch mode {
	case document.ModeParentQuantity:
		return render.Money(sub.UnitPrice, cur)
	case document.ModeIndividualQuantities:
		return fmt.Sprintf("%s × %s = %s", render.Quantity(sub.QuantityOr(1)), render.Money(sub.UnitPrice, cur), render.Money(sub.Total, cur))
	case document.ModeNoPrices:
	}
	return ""
}

// cycleSubItems steps an item through no sub-items and the three pricing
// modes, in that order.
func (m *Model) cycleSubItems(it document.InvoiceItem) error {
	switch {
	case !it.HasSubItems:
		if err := m.store.SetSubItemsMode(it.ID, document.ModeParentQuantity); err != nil {
			return err
		}
		return m.store.ToggleSubItems(it.ID)
	case it.SubItemsMode == document.ModeNoPrices:
		if err := m.store.ToggleSubItems(it.ID); err != nil {
			return err
		}
		return m.store.SetSubItemsMode(it.ID, document.ModeParentQuantity)
	default:
		return m.store.SetSubItemsMode(it.ID, it.SubItemsMode.Next())
	}
}

func (m *Model) moveItem(source, target int) rowAction {
	return func() tea.Cmd {
		n := len(m.store.Snapshot().Items)
		if target < 0 || target >= n {
			return nil
		}
		if err := m.store.ReorderItems(source, target); err != nil {
			return m.rejected(err)
		}
		id := m.store.Snapshot().Items[target].ID
		m.followRow(navigation.PanelItems, func(r row) bool { return r.kind == rowItem && r.itemID == id })
		return nil
	}
}

func (m *Model) addItem() tea.Cmd {
	id, err := m.store.AddItem(newItemDescription)
	if err != nil {
		return m.rejected(err)
	}
	m.followRow(navigation.PanelItems, func(r row) bool { return r.kind == rowItem && r.itemID == id })
	return nil
}

func (m *Model) addSubItem(itemID string) rowAction {
	return func() tea.Cmd {
		if _, err := m.store.AddSubItem(itemID, newSubItemDescription); err != nil {
			return m.rejected(err)
		}
		return nil
	}
}

// followRow moves the cursor of panel to the first row matching fn.
func (m *Model) followRow(panel navigation.Panel, fn func(r row) bool) {
	for i, r := range m.rowsFor(panel, m.store.Snapshot()) {
		if fn(r) {
			m.panel.cursors[panel] = i
			return
		}
	}
}
