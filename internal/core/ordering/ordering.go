// Package ordering implements the single reorder operation shared by blocks,
// table columns and table rows, plus the proportional width resolver used by
// column layouts.
//
// All functions are pure: they never modify their input slices.
package ordering

import (
	"cmp"
	"slices"

	"github.com/colonyops/folio/internal/core/document"
)

// Sorted returns a copy of items stably sorted by their order key. Ties keep
// their array position.
func Sorted[T any](items []T, key func(T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
	return out
}

// Move removes the element at source and inserts it so that it ends up at
// index target. It reports false, returning items unchanged, when
// source == target or either index is out of range. Indices may be stale
// when they come from fast pointer drags, so this is not an error.
func Move[T any](items []T, source, target int) ([]T, bool) {
	n := len(items)
	if source == target || source < 0 || target < 0 || source >= n || target >= n {
		return items, false
	}

	out := make([]T, 0, n)
	moved := items[source]
	for i, it := range items {
		if i == source {
			continue
		}
		out = append(out, it)
	}
	out = slices.Insert(out, target, moved)
	return out, true
}

// Reorder sorts items by key, moves source to target and reassigns every
// element's order key to its new index, so the order stays dense and never
// drifts. It reports false and returns items untouched for a no-op move.
func Reorder[T any](items []T, source, target int, key func(T) int, setKey func(*T, int)) ([]T, bool) {
	sorted := Sorted(items, key)
	out, ok := Move(sorted, source, target)
	if !ok {
		return items, false
	}
	Renumber(out, setKey)
	return out, true
}

// Renumber sets each element's order key to its index, in place.
func Renumber[T any](items []T, setKey func(*T, int)) {
	for i := range items {
		setKey(&items[i], i)
	}
}

// BlockOrder returns the display position key of a block.
func BlockOrder(b document.Block) int { return b.Order }

// SetBlockOrder stores a block's display position key.
func SetBlockOrder(b *document.Block, order int) { b.Order = order }

// ColumnOrder returns the display position key of a table column.
func ColumnOrder(c document.Column) int { return c.Order }

// SetColumnOrder stores a table column's display position key.
func SetColumnOrder(c *document.Column, order int) { c.Order = order }

// RowOrder returns the display position key of a detailed table row.
func RowOrder(r document.Row) int { return r.Order }

// SetRowOrder stores a detailed table row's display position key.
func SetRowOrder(r *document.Row, order int) { r.Order = order }

// Blocks reorders document blocks.
func Blocks(blocks []document.Block, source, target int) ([]document.Block, bool) {
	return Reorder(blocks, source, target, BlockOrder, SetBlockOrder)
}

// Columns reorders table columns.
func Columns(cols []document.Column, source, target int) ([]document.Column, bool) {
	return Reorder(cols, source, target, ColumnOrder, SetColumnOrder)
}

// Rows reorders table rows.
func Rows(rows []document.Row, source, target int) ([]document.Row, bool) {
	return Reorder(rows, source, target, RowOrder, SetRowOrder)
}
