package calc

import (
	"fmt"
	"math"

	"github.com/colonyops/folio/internal/core/document"
)

// Warning flags a numeric input that is accepted but probably unintended.
type Warning struct {
	ItemID    string  `json:"itemId"`
	SubItemID string  `json:"subItemId,omitempty"`
	Field     string  `json:"field"`
	Value     float64 `json:"-"`
	Message   string  `json:"message"`
}

func (w Warning) String() string {
	if w.SubItemID != "" {
		return fmt.Sprintf("item %s / sub-item %s: %s %s", w.ItemID, w.SubItemID, w.Field, w.Message)
	}
	return fmt.Sprintf("item %s: %s %s", w.ItemID, w.Field, w.Message)
}

// Warnings lists negative and non-finite quantities and prices. Only the
// fields that participate in the item's current mode are checked.
func Warnings(items []document.InvoiceItem) []Warning {
	var out []Warning

	check := func(itemID, subID, field string, v float64) {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			out = append(out, Warning{ItemID: itemID, SubItemID: subID, Field: field, Value: v, Message: "is not a number"})
		case v < 0:
			out = append(out, Warning{ItemID: itemID, SubItemID: subID, Field: field, Value: v, Message: "is negative"})
		}
	}

	for _, it := range items {
		mode := it.SubItemsMode
		if !it.HasSubItems {
			mode = document.ModeNoPrices
		}

		switch mode {
		case document.ModeIndividualQuantities:
			for _, s := range it.SubItems {
				if !s.Selected {
					continue
				}
				check(it.ID, s.ID, "quantity", s.QuantityOr(1))
				check(it.ID, s.ID, "unitPrice", s.UnitPrice)
			}
		case document.ModeParentQuantity:
			check(it.ID, "", "quantity", it.Quantity)
			for _, s := range it.SubItems {
				if !s.Selected {
					continue
				}
				check(it.ID, s.ID, "unitPrice", s.UnitPrice)
			}
		case document.ModeNoPrices:
			check(it.ID, "", "quantity", it.Quantity)
			check(it.ID, "", "unitPrice", it.UnitPrice)
		}
	}

	return out
}
