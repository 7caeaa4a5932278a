package ordering

import (
	"math"

	"github.com/colonyops/folio/internal/core/document"
)

// Column width bounds, in percent.
const (
	MinWidth     = 5.0
	MaxWidth     = 70.0
	DefaultWidth = 20.0
)

// ClampWidth bounds a user supplied width to [MinWidth, MaxWidth]. NaN
// becomes DefaultWidth.
func ClampWidth(w float64) float64 {
	if math.IsNaN(w) {
		return DefaultWidth
	}
	return math.Min(MaxWidth, math.Max(MinWidth, w))
}

// ResolvedColumn is a visible column with its effective width.
type ResolvedColumn struct {
	document.Column
	Effective float64
	Last      bool
}

// ResolveWidths returns the visible columns in order with their effective
// widths. Every column but the last reports its stored width; the last one
// gets whatever is left of 100, never less than zero. The result is always
// recomputed, so hide/show/reorder sequences that change which column is
// last cannot break the 100% sum.
func ResolveWidths(cols []document.Column) []ResolvedColumn {
	visible := visibleSorted(cols)
	if len(visible) == 0 {
		return nil
	}

	out := make([]ResolvedColumn, len(visible))
	var used float64
	for i, c := range visible[:len(visible)-1] {
		out[i] = ResolvedColumn{Column: c, Effective: c.Width}
		used += c.Width
	}

	last := visible[len(visible)-1]
	out[len(out)-1] = ResolvedColumn{
		Column:    last,
		Effective: math.Max(0, 100-used),
		Last:      true,
	}
	return out
}

// Rebalance returns a copy of cols where the stored widths of the visible
// columns other than the last leave at least MinWidth for the last one.
// Oversized layouts are scaled down proportionally.
func Rebalance(cols []document.Column) []document.Column {
	out := make([]document.Column, len(cols))
	copy(out, cols)

	visible := visibleIndexes(out)
	if len(visible) < 2 {
		return out
	}

	others := visible[:len(visible)-1]
	var sum float64
	for _, i := range others {
		out[i].Width = ClampWidth(out[i].Width)
		sum += out[i].Width
	}

	budget := 100 - MinWidth
	if sum <= budget {
		return out
	}

	scale := budget / sum
	for _, i := range others {
		out[i].Width *= scale
	}
	return out
}

// VisibleCount returns the number of visible columns.
func VisibleCount(cols []document.Column) int {
	n := 0
	for _, c := range cols {
		if c.Visible {
			n++
		}
	}
	return n
}

func visibleSorted(cols []document.Column) []document.Column {
	sorted := Sorted(cols, ColumnOrder)
	out := sorted[:0]
	for _, c := range sorted {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// visibleIndexes returns indexes into cols of the visible columns, in
// order-key order.
func visibleIndexes(cols []document.Column) []int {
	idx := make([]int, len(cols))
	for i := range idx {
		idx[i] = i
	}
	idx = Sorted(idx, func(i int) int { return cols[i].Order })

	out := idx[:0]
	for _, i := range idx {
		if cols[i].Visible {
			out = append(out, i)
		}
	}
	return out
}
