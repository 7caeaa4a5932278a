package calc

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/folio/internal/core/document"
)

func sub(id string, price float64, qty *float64) document.SubItem {
	return document.SubItem{ID: id, UnitPrice: price, Quantity: qty, Selected: true}
}

func TestItem_ParentQuantity(t *testing.T) {
	it := document.InvoiceItem{
		ID:           "kit",
		Quantity:     3,
		UnitPrice:    1, // overridden
		Selected:     true,
		HasSubItems:  true,
		SubItemsMode: document.ModeParentQuantity,
		SubItems: []document.SubItem{
			sub("a", 10, document.Float(9)),
			sub("b", 20, nil),
			sub("c", 5, nil),
		},
	}

	got := Item(it)

	assert.Equal(t, 35.0, got.UnitPrice)
	assert.Equal(t, 105.0, got.Total)
	assert.Equal(t, 10.0, got.SubItems[0].Total, "sub-item quantity is ignored")
	assert.Equal(t, 1.0, it.UnitPrice, "input is not modified")
}

func TestItem_ParentQuantity_deselectedSubItem(t *testing.T) {
	it := document.InvoiceItem{
		Quantity:     2,
		HasSubItems:  true,
		SubItemsMode: document.ModeParentQuantity,
		SubItems:     []document.SubItem{sub("a", 10, nil), sub("b", 20, nil)},
	}
	it.SubItems[1].Selected = false

	got := Item(it)

	assert.Equal(t, 10.0, got.UnitPrice)
	assert.Equal(t, 20.0, got.Total)
	assert.Zero(t, got.SubItems[1].Total)
}

func TestItem_IndividualQuantities(t *testing.T) {
	it := document.InvoiceItem{
		Quantity:     100,
		UnitPrice:    100,
		HasSubItems:  true,
		SubItemsMode: document.ModeIndividualQuantities,
		SubItems: []document.SubItem{
			sub("a", 10, document.Float(2)),
			sub("b", 5, document.Float(1)),
		},
	}

	got := Item(it)

	assert.Equal(t, 25.0, got.Total)
	assert.Equal(t, 20.0, got.SubItems[0].Total)
	assert.Equal(t, 5.0, got.SubItems[1].Total)
	assert.Equal(t, 100.0, got.Quantity, "parent fields are retained")
	assert.Equal(t, 100.0, got.UnitPrice, "parent fields are retained")
}

func TestItem_IndividualQuantities_defaultsQuantityToOne(t *testing.T) {
	it := document.InvoiceItem{
		HasSubItems:  true,
		SubItemsMode: document.ModeIndividualQuantities,
		SubItems:     []document.SubItem{sub("a", 12, nil), sub("b", 3, document.Float(4))},
	}
	it.SubItems[1].Selected = false

	got := Item(it)

	assert.Equal(t, 12.0, got.Total)
	assert.Zero(t, got.SubItems[1].Total)
}

func TestItem_NoPrices(t *testing.T) {
	it := document.InvoiceItem{
		Quantity:     4,
		UnitPrice:    50,
		HasSubItems:  true,
		SubItemsMode: document.ModeNoPrices,
		SubItems: []document.SubItem{
			sub("a", 1000, document.Float(3)),
			{ID: "b", Total: 77},
		},
	}

	got := Item(it)

	assert.Equal(t, 200.0, got.Total)
	assert.Equal(t, 50.0, got.UnitPrice)
	for _, s := range got.SubItems {
		assert.Zero(t, s.Total)
	}
}

func TestItem_EmptySubItemsDegradeToZero(t *testing.T) {
	tests := []struct {
		mode document.SubItemsMode
		want float64
	}{
		{document.ModeParentQuantity, 0},
		{document.ModeIndividualQuantities, 0},
		{document.ModeNoPrices, 30},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := Item(document.InvoiceItem{
				Quantity:     3,
				UnitPrice:    10,
				HasSubItems:  true,
				SubItemsMode: tt.mode,
			})
			assert.Equal(t, tt.want, got.Total)
		})
	}
}

func TestItem_WithoutSubItemsIgnoresMode(t *testing.T) {
	got := Item(document.InvoiceItem{
		Quantity:     2,
		UnitPrice:    7.5,
		SubItemsMode: document.ModeIndividualQuantities,
		SubItems:     []document.SubItem{sub("a", 100, nil)},
	})
	assert.Equal(t, 15.0, got.Total)
}

func TestItem_NegativeAndNaNPropagate(t *testing.T) {
	neg := Item(document.InvoiceItem{Quantity: 1, UnitPrice: -40})
	assert.Equal(t, -40.0, neg.Total)

	nan := Item(document.InvoiceItem{Quantity: math.NaN(), UnitPrice: 3})
	assert.True(t, math.IsNaN(nan.Total))
}

func TestSummarize_SelectionExclusion(t *testing.T) {
	items := Items([]document.InvoiceItem{
		{ID: "a", Quantity: 1, UnitPrice: 100, Selected: true},
		{ID: "b", Quantity: 2, UnitPrice: 25, Selected: true},
	})

	before := Summarize(items, 10)
	assert.Equal(t, 150.0, before.Subtotal)

	items[1].Selected = false
	excluded := Summarize(items, 10)
	assert.Equal(t, 100.0, excluded.Subtotal)
	assert.InDelta(t, 10.0, excluded.Tax, 1e-9)

	items[1].Selected = true
	assert.Equal(t, before, Summarize(items, 10))
}

func TestInvoice_SeedScenario(t *testing.T) {
	n := 0
	ids := func() string { n++; return strconv.Itoa(n) }
	inv := document.NewSeed(time.Now(), ids, document.SeedOptions{TaxRate: 20})

	totals := Invoice(inv)

	assert.Equal(t, 1450.0, totals.Subtotal)
	assert.Equal(t, 290.0, totals.Tax)
	assert.Equal(t, 1740.0, totals.Total)
	assert.Zero(t, inv.Items[0].Total, "Invoice does not modify its input")

	Apply(inv)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, 600.0, inv.Items[0].UnitPrice)
	assert.Equal(t, 1200.0, inv.Items[0].Total)
	assert.Equal(t, 250.0, inv.Items[1].Total)
}

func TestWarnings(t *testing.T) {
	items := []document.InvoiceItem{
		{ID: "plain", Quantity: -1, UnitPrice: 10},
		{ID: "kit", Quantity: 1, HasSubItems: true, SubItemsMode: document.ModeIndividualQuantities, SubItems: []document.SubItem{
			sub("ok", 5, nil),
			sub("nan", math.NaN(), nil),
			{ID: "ignored", UnitPrice: -3},
		}},
		{ID: "desc", Quantity: 1, UnitPrice: 1, HasSubItems: true, SubItemsMode: document.ModeNoPrices, SubItems: []document.SubItem{
			sub("notread", -100, nil),
		}},
	}

	got := Warnings(items)

	require.Len(t, got, 2)
	assert.Equal(t, "plain", got[0].ItemID)
	assert.Equal(t, "quantity", got[0].Field)
	assert.Equal(t, "is negative", got[0].Message)
	assert.Equal(t, "nan", got[1].SubItemID)
	assert.Equal(t, "is not a number", got[1].Message)
	assert.Contains(t, got[1].String(), "sub-item nan")
}
