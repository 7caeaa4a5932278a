// Package calc derives every computed amount of an invoice. Nothing outside
// this package writes InvoiceItem.Total or SubItem.Total.
//
// Inputs are never clamped or rejected: negative and NaN quantities or
// prices propagate into totals unchanged. See Warnings.
package calc

import "github.com/colonyops/folio/internal/core/document"

// Totals is the document level summary.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Item returns a copy of it with its derived fields recomputed for the
// item's sub-items mode. In parent-quantity mode the unit price is derived
// too. The input is not modified.
func Item(it document.InvoiceItem) document.InvoiceItem {
	out := it.Clone()

	if !out.HasSubItems {
		zeroSubTotals(out.SubItems)
		out.Total = out.Quantity * out.UnitPrice
		return out
	}

	switch out.SubItemsMode {
	case document.ModeNoPrices:
		zeroSubTotals(out.SubItems)
		out.Total = out.Quantity * out.UnitPrice

	case document.ModeIndividualQuantities:
		var sum float64
		for i := range out.SubItems {
			s := &out.SubItems[i]
			if !s.Selected {
				s.Total = 0
				continue
			}
			s.Total = s.QuantityOr(1) * s.UnitPrice
			sum += s.Total
		}
		out.Total = sum

	case document.ModeParentQuantity:
		out.UnitPrice = selectedPriceSum(out.SubItems)
		out.Total = out.Quantity * out.UnitPrice

	default:
		// Unknown modes price like parent-quantity, the seed default.
		out.UnitPrice = selectedPriceSum(out.SubItems)
		out.Total = out.Quantity * out.UnitPrice
	}

	return out
}

// selectedPriceSum sums the unit prices of selected sub-items and records
// each sub-item's contribution as its total. Quantities are ignored.
func selectedPriceSum(subs []document.SubItem) float64 {
	var sum float64
	for i := range subs {
		if !subs[i].Selected {
			subs[i].Total = 0
			continue
		}
		subs[i].Total = subs[i].UnitPrice
		sum += subs[i].UnitPrice
	}
	return sum
}

func zeroSubTotals(subs []document.SubItem) {
	for i := range subs {
		subs[i].Total = 0
	}
}

// Items returns recomputed copies of all items.
func Items(items []document.InvoiceItem) []document.InvoiceItem {
	out := make([]document.InvoiceItem, len(items))
	for i := range items {
		out[i] = Item(items[i])
	}
	return out
}

// Apply recomputes every item of inv in place. It must only be used on a
// private copy that has not been published yet.
func Apply(inv *document.Invoice) {
	for i := range inv.Items {
		inv.Items[i] = Item(inv.Items[i])
	}
}

// Summarize projects the document totals from the items' current totals.
// It is cheap and is recomputed on every read rather than cached.
func Summarize(items []document.InvoiceItem, taxRate float64) Totals {
	var subtotal float64
	for _, it := range items {
		if !it.Selected {
			continue
		}
		subtotal += it.Total
	}
	tax := subtotal * (taxRate / 100)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Invoice recomputes the items of inv and returns the document totals.
// inv is not modified.
func Invoice(inv *document.Invoice) Totals {
	return Summarize(Items(inv.Items), inv.TaxRate)
}
