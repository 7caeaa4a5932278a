package editor

import (
	"fmt"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/ordering"
)

// columnsRef returns the column slice of a table-like block for in-place
// edits, or nil for blocks without a table layout.
func columnsRef(b *document.Block) *[]document.Column {
	switch p := b.Payload.(type) {
	case *document.ItemsPayload:
		return &p.Columns
	case *document.TablePayload:
		return &p.Columns
	}
	return nil
}

// normalizeColumns sorts the columns of a table-like block, renumbers them
// and rebalances widths so the last visible column keeps room.
func normalizeColumns(b *document.Block) {
	cols := columnsRef(b)
	if cols == nil {
		return
	}
	sorted := ordering.Sorted(*cols, ordering.ColumnOrder)
	ordering.Renumber(sorted, ordering.SetColumnOrder)
	*cols = ordering.Rebalance(sorted)
}

// editTable runs fn on the columns of the block with the given id. Unknown
// blocks are a no-op; blocks without a table layout are rejected.
func (s *Store) editTable(action, blockID string, fn func(b *document.Block, cols *[]document.Column) (bool, error)) error {
	return s.apply(action, func(inv *document.Invoice) (bool, error) {
		i := inv.FindBlock(blockID)
		if i < 0 {
			return false, nil
		}
		b := &inv.Blocks[i]
		cols := columnsRef(b)
		if cols == nil {
			return false, fmt.Errorf("%w: %s", ErrNotTable, b.Type())
		}

		changed, err := fn(b, cols)
		if err != nil || !changed {
			return false, err
		}
		normalizeColumns(b)
		return true, nil
	})
}

// editRows is editTable for detailed tables, the only blocks with rows.
func (s *Store) editRows(action, blockID string, fn func(p *document.TablePayload) bool) error {
	return s.apply(action, func(inv *document.Invoice) (bool, error) {
		i := inv.FindBlock(blockID)
		if i < 0 {
			return false, nil
		}
		p, ok := inv.Blocks[i].Payload.(*document.TablePayload)
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrNotTable, inv.Blocks[i].Type())
		}
		return fn(p), nil
	})
}

func findColumn(cols []document.Column, id string) int {
	for i := range cols {
		if cols[i].ID == id {
			return i
		}
	}
	return -1
}

// AddColumn appends a visible custom column and returns its id.
func (s *Store) AddColumn(blockID, label string) (string, error) {
	id := s.newID()
	added := false
	err := s.editTable("column.add", blockID, func(_ *document.Block, cols *[]document.Column) (bool, error) {
		*cols = append(ordering.Sorted(*cols, ordering.ColumnOrder), document.Column{
			ID:      id,
			Key:     id,
			Label:   label,
			Width:   ordering.DefaultWidth,
			Align:   document.AlignLeft,
			Visible: true,
			Order:   len(*cols),
		})
		added = true
		return true, nil
	})
	if err != nil || !added {
		return "", err
	}
	return id, nil
}

// RemoveColumn deletes a custom column. Cells stored under it are dropped.
func (s *Store) RemoveColumn(blockID, colID string) error {
	return s.editTable("column.remove", blockID, func(b *document.Block, cols *[]document.Column) (bool, error) {
		i := findColumn(*cols, colID)
		if i < 0 {
			return false, nil
		}
		c := (*cols)[i]
		if c.Required {
			return false, fmt.Errorf("%s: %w", c.Label, ErrRequiredColumn)
		}
		if c.Visible && ordering.VisibleCount(*cols) == 1 {
			return false, ErrLastVisibleColumn
		}

		*cols = append((*cols)[:i], (*cols)[i+1:]...)
		if p, ok := b.Payload.(*document.TablePayload); ok {
			for r := range p.Rows {
				delete(p.Rows[r].Cells, colID)
			}
		}
		return true, nil
	})
}

// SetColumnVisible shows or hides a column. Hiding changes which column is
// last and therefore which width is computed.
func (s *Store) SetColumnVisible(blockID, colID string, visible bool) error {
	return s.editTable("column.visible", blockID, func(_ *document.Block, cols *[]document.Column) (bool, error) {
		i := findColumn(*cols, colID)
		if i < 0 || (*cols)[i].Visible == visible {
			return false, nil
		}
		if !visible && ordering.VisibleCount(*cols) == 1 {
			return false, ErrLastVisibleColumn
		}
		(*cols)[i].Visible = visible
		return true, nil
	})
}

// SetColumnWidth stores a clamped width for a column. The last visible
// column's stored width is kept but never displayed.
func (s *Store) SetColumnWidth(blockID, colID string, width float64) error {
	return s.editTable("column.width", blockID, func(_ *document.Block, cols *[]document.Column) (bool, error) {
		i := findColumn(*cols, colID)
		if i < 0 {
			return false, nil
		}
		w := ordering.ClampWidth(width)
		if (*cols)[i].Width == w {
			return false, nil
		}
		(*cols)[i].Width = w
		return true, nil
	})
}

// ReorderColumns moves the column at position source to target.
func (s *Store) ReorderColumns(blockID string, source, target int) error {
	return s.editTable("column.reorder", blockID, func(_ *document.Block, cols *[]document.Column) (bool, error) {
		next, ok := ordering.Columns(*cols, source, target)
		if ok {
			*cols = next
		}
		return ok, nil
	})
}

// AddRow appends an empty row to a detailed table and returns its id.
func (s *Store) AddRow(blockID string) (string, error) {
	id := s.newID()
	added := false
	err := s.editRows("row.add", blockID, func(p *document.TablePayload) bool {
		p.Rows = ordering.Sorted(p.Rows, ordering.RowOrder)
		p.Rows = append(p.Rows, document.Row{ID: id, Cells: map[string]string{}})
		ordering.Renumber(p.Rows, ordering.SetRowOrder)
		added = true
		return true
	})
	if err != nil || !added {
		return "", err
	}
	return id, nil
}

// RemoveRow deletes a row from a detailed table.
func (s *Store) RemoveRow(blockID, rowID string) error {
	return s.editRows("row.remove", blockID, func(p *document.TablePayload) bool {
		for i := range p.Rows {
			if p.Rows[i].ID == rowID {
				p.Rows = append(p.Rows[:i], p.Rows[i+1:]...)
				p.Rows = ordering.Sorted(p.Rows, ordering.RowOrder)
				ordering.Renumber(p.Rows, ordering.SetRowOrder)
				return true
			}
		}
		return false
	})
}

// ReorderRows moves the row at position source to target.
func (s *Store) ReorderRows(blockID string, source, target int) error {
	return s.editRows("row.reorder", blockID, func(p *document.TablePayload) bool {
		rows, ok := ordering.Rows(p.Rows, source, target)
		if ok {
			p.Rows = rows
		}
		return ok
	})
}

// SetCell sets the value of a cell. Unknown rows or columns are a no-op.
func (s *Store) SetCell(blockID, rowID, colID, value string) error {
	return s.editRows("row.cell", blockID, func(p *document.TablePayload) bool {
		if findColumn(p.Columns, colID) < 0 {
			return false
		}
		for i := range p.Rows {
			if p.Rows[i].ID != rowID {
				continue
			}
			if p.Rows[i].Cells == nil {
				p.Rows[i].Cells = map[string]string{}
			}
			if v, ok := p.Rows[i].Cells[colID]; ok && v == value {
				return false
			}
			p.Rows[i].Cells[colID] = value
			return true
		}
		return false
	})
}
