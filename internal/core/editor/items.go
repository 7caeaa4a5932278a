package editor

import (
	"fmt"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/ordering"
)

// ItemPatch changes editable item fields. Nil fields are left alone. Totals
// are derived and cannot be patched.
type ItemPatch struct {
	Description *string
	Quantity    *float64
	UnitPrice   *float64
}

// SubItemPatch changes editable sub-item fields. Nil fields are left alone.
// ClearQuantity removes an explicit quantity.
type SubItemPatch struct {
	Description   *string
	Quantity      *float64
	ClearQuantity bool
	UnitPrice     *float64
	HasQuantity   *bool
}

// AddItem appends a selected item with quantity 1 and returns its id.
func (s *Store) AddItem(description string) (string, error) {
	id := s.newID()
	err := s.apply("item.add", func(inv *document.Invoice) (bool, error) {
		inv.Items = append(inv.Items, document.InvoiceItem{
			ID:           id,
			Description:  description,
			Quantity:     1,
			Selected:     true,
			SubItemsMode: document.ModeParentQuantity,
		})
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateItem applies p to the item with the given id.
func (s *Store) UpdateItem(id string, p ItemPatch) error {
	return s.apply("item.update", func(inv *document.Invoice) (bool, error) {
		it := findItem(inv, id)
		if it == nil {
			return false, nil
		}
		if p.Description != nil {
			it.Description = *p.Description
		}
		if p.Quantity != nil {
			it.Quantity = *p.Quantity
		}
		if p.UnitPrice != nil {
			it.UnitPrice = *p.UnitPrice
		}
		return p.Description != nil || p.Quantity != nil || p.UnitPrice != nil, nil
	})
}

// RemoveItem deletes an item and its sub-items.
func (s *Store) RemoveItem(id string) error {
	return s.apply("item.remove", func(inv *document.Invoice) (bool, error) {
		i := inv.FindItem(id)
		if i < 0 {
			return false, nil
		}
		inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
		return true, nil
	})
}

// SetItemSelected includes or excludes an item from the subtotal.
func (s *Store) SetItemSelected(id string, selected bool) error {
	return s.apply("item.select", func(inv *document.Invoice) (bool, error) {
		it := findItem(inv, id)
		if it == nil || it.Selected == selected {
			return false, nil
		}
		it.Selected = selected
		return true, nil
	})
}

// ToggleSubItems switches sub-item pricing on or off for an item. Sub-items
// are kept while switched off.
func (s *Store) ToggleSubItems(id string) error {
	return s.apply("item.toggle-subitems", func(inv *document.Invoice) (bool, error) {
		it := findItem(inv, id)
		if it == nil {
			return false, nil
		}
		it.HasSubItems = !it.HasSubItems
		if !it.SubItemsMode.IsValid() {
			it.SubItemsMode = document.ModeParentQuantity
		}
		return true, nil
	})
}

// SetSubItemsMode selects how an item's sub-items are priced.
func (s *Store) SetSubItemsMode(id string, mode document.SubItemsMode) error {
	return s.apply("item.mode", func(inv *document.Invoice) (bool, error) {
		if !mode.IsValid() {
			return false, fmt.Errorf("%w: %q", ErrInvalidSubItemsMode, mode)
		}
		it := findItem(inv, id)
		if it == nil || it.SubItemsMode == mode {
			return false, nil
		}
		it.SubItemsMode = mode
		return true, nil
	})
}

// ReorderItems moves the item at source to target.
func (s *Store) ReorderItems(source, target int) error {
	return s.apply("item.reorder", func(inv *document.Invoice) (bool, error) {
		items, ok := ordering.Move(inv.Items, source, target)
		if ok {
			inv.Items = items
		}
		return ok, nil
	})
}

// AddSubItem appends a selected sub-item and turns sub-item pricing on for
// the parent. It returns the new id, or "" when the item does not exist.
func (s *Store) AddSubItem(itemID, description string) (string, error) {
	id := s.newID()
	added := false
	err := s.apply("subitem.add", func(inv *document.Invoice) (bool, error) {
		it := findItem(inv, itemID)
		if it == nil {
			return false, nil
		}
		it.SubItems = append(it.SubItems, document.SubItem{
			ID:          id,
			Description: description,
			Selected:    true,
		})
		it.HasSubItems = true
		if !it.SubItemsMode.IsValid() {
			it.SubItemsMode = document.ModeParentQuantity
		}
		added = true
		return true, nil
	})
	if err != nil || !added {
		return "", err
	}
	return id, nil
}

// UpdateSubItem applies p to a sub-item.
func (s *Store) UpdateSubItem(itemID, subID string, p SubItemPatch) error {
	return s.apply("subitem.update", func(inv *document.Invoice) (bool, error) {
		sub := findSubItem(inv, itemID, subID)
		if sub == nil {
			return false, nil
		}
		changed := false
		if p.Description != nil {
			sub.Description = *p.Description
			changed = true
		}
		if p.ClearQuantity {
			sub.Quantity = nil
			changed = true
		} else if p.Quantity != nil {
			sub.Quantity = document.Float(*p.Quantity)
			changed = true
		}
		if p.UnitPrice != nil {
			sub.UnitPrice = *p.UnitPrice
			changed = true
		}
		if p.HasQuantity != nil {
			sub.HasQuantity = *p.HasQuantity
			changed = true
		}
		return changed, nil
	})
}

// RemoveSubItem deletes a sub-item. The parent keeps sub-item pricing on,
// contributing zero until new sub-items are added.
func (s *Store) RemoveSubItem(itemID, subID string) error {
	return s.apply("subitem.remove", func(inv *document.Invoice) (bool, error) {
		it := findItem(inv, itemID)
		if it == nil {
			return false, nil
		}
		j := it.FindSubItem(subID)
		if j < 0 {
			return false, nil
		}
		it.SubItems = append(it.SubItems[:j], it.SubItems[j+1:]...)
		return true, nil
	})
}

// SetSubItemSelected includes or excludes a sub-item from its parent.
func (s *Store) SetSubItemSelected(itemID, subID string, selected bool) error {
	return s.apply("subitem.select", func(inv *document.Invoice) (bool, error) {
		sub := findSubItem(inv, itemID, subID)
		if sub == nil || sub.Selected == selected {
			return false, nil
		}
		sub.Selected = selected
		return true, nil
	})
}

func findItem(inv *document.Invoice, id string) *document.InvoiceItem {
	i := inv.FindItem(id)
	if i < 0 {
		return nil
	}
	return &inv.Items[i]
}

func findSubItem(inv *document.Invoice, itemID, subID string) *document.SubItem {
	it := findItem(inv, itemID)
	if it == nil {
		return nil
	}
	j := it.FindSubItem(subID)
	if j < 0 {
		return nil
	}
	return &it.SubItems[j]
}
