package codec

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/folio/internal/core/calc"
	"github.com/colonyops/folio/internal/core/document"
)

func seqIDs(prefix string) document.IDFunc {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

func seed() *document.Invoice {
	inv := document.NewSeed(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), seqIDs("id"), document.SeedOptions{TaxRate: 20})
	calc.Apply(inv)
	return inv
}

func TestSerializeHydrate_RoundTrip(t *testing.T) {
	inv := seed()
	inv.Blocks = append(inv.Blocks, document.Block{
		ID: "notes", Order: 3, Enabled: false,
		Payload: &document.FreeTextPayload{Title: "Notes", Content: "**thanks**"},
	})

	triple, err := Serialize(inv, "modern")
	require.NoError(t, err)
	assert.Equal(t, "modern", triple.TemplateID)

	got, err := Hydrate(triple, seqIDs("new"))
	require.NoError(t, err)

	assert.Equal(t, inv.Items, got.Items)
	assert.Equal(t, inv.Blocks, got.Blocks)
	assert.Equal(t, calc.Invoice(inv), calc.Invoice(got))
}

func TestSerializeHydrate_NonFiniteAmounts(t *testing.T) {
	inv := seed()
	inv.Items[0].Quantity = math.NaN()
	inv.Items[1].UnitPrice = math.Inf(1)
	inv.Items[0].SubItems[0].Quantity = document.Float(math.Inf(-1))
	inv.TaxRate = math.NaN()
	calc.Apply(inv)

	triple, err := Serialize(inv, "classic")
	require.NoError(t, err)
	assert.Contains(t, string(triple.InvoiceData), `"quantity":"NaN"`)
	assert.Contains(t, string(triple.InvoiceData), `"unitPrice":"Infinity"`)

	got, err := Hydrate(triple, seqIDs("new"))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Items[0].Quantity))
	assert.True(t, math.IsNaN(got.Items[0].Total))
	assert.True(t, math.IsInf(got.Items[1].UnitPrice, 1))
	require.NotNil(t, got.Items[0].SubItems[0].Quantity)
	assert.True(t, math.IsInf(*got.Items[0].SubItems[0].Quantity, -1))
	assert.True(t, math.IsNaN(got.TaxRate))
}

func TestHydrate_InvalidNumberString(t *testing.T) {
	triple := Triple{
		InvoiceData: json.RawMessage(`{"id":"x","items":[{"id":"a","quantity":"lots"}]}`),
	}
	_, err := Hydrate(triple, seqIDs("n"))
	require.ErrorIs(t, err, ErrInvalidTriple)
}

func TestHydrate_RecomputesTotals(t *testing.T) {
	triple := Triple{
		InvoiceData: json.RawMessage(`{"id":"x","taxRate":10,"items":[
			{"id":"a","quantity":2,"unitPrice":5,"total":9999,"selected":true}
		]}`),
	}

	got, err := Hydrate(triple, seqIDs("n"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Items[0].Total)
}

func TestHydrate_MissingSelectedDefaultsToTrue(t *testing.T) {
	triple := Triple{
		InvoiceData: json.RawMessage(`{"id":"x","items":[
			{"id":"a","quantity":1,"unitPrice":5,"hasSubItems":true,"subItemsMode":"individual-quantities",
			 "subItems":[{"id":"s1","unitPrice":3},{"id":"s2","unitPrice":4,"selected":false}]},
			{"id":"b","quantity":1,"unitPrice":5,"selected":false}
		]}`),
	}

	got, err := Hydrate(triple, seqIDs("n"))
	require.NoError(t, err)

	assert.True(t, got.Items[0].Selected)
	assert.True(t, got.Items[0].SubItems[0].Selected)
	assert.False(t, got.Items[0].SubItems[1].Selected)
	assert.False(t, got.Items[1].Selected)
	assert.Equal(t, 3.0, got.Items[0].Total)
}

func TestHydrate_ReaddsRequiredBlocks(t *testing.T) {
	triple := Triple{
		InvoiceData: json.RawMessage(`{"id":"x"}`),
		BlocksData:  json.RawMessage(`[{"id":"t","type":"totals","order":4,"data":{"label":"Due"}}]`),
	}

	got, err := Hydrate(triple, seqIDs("n"))
	require.NoError(t, err)

	require.Len(t, got.Blocks, 3)
	totals := got.FirstBlockOfType(document.BlockTotals)
	require.NotNil(t, totals)
	p := totals.Payload.(*document.TotalsPayload)
	assert.Equal(t, "Due", p.Label)
	assert.True(t, p.ShowSubtotal, "absent keys keep defaults")
	assert.True(t, totals.Enabled, "absent enabled defaults to true")

	items := got.FirstBlockOfType(document.BlockInvoiceItems)
	require.NotNil(t, items)
	assert.Equal(t, 5, items.Order)
	assert.NotNil(t, got.FirstBlockOfType(document.BlockPaymentTerms))
}

func TestHydrate_RepairsItemColumns(t *testing.T) {
	triple := Triple{
		InvoiceData: json.RawMessage(`{"id":"x"}`),
		BlocksData: json.RawMessage(`[{"id":"i","type":"invoice-items","data":{"columns":[
			{"id":"c1","key":"description","label":"What","width":60,"visible":true,"order":0},
			{"id":"c2","key":"sku","label":"SKU","width":10,"visible":true,"order":1}
		]}}]`),
	}

	got, err := Hydrate(triple, seqIDs("n"))
	require.NoError(t, err)

	cols := got.FirstBlockOfType(document.BlockInvoiceItems).Columns()
	require.Len(t, cols, 5)
	assert.True(t, cols[0].Required)
	assert.Equal(t, "What", cols[0].Label)
	assert.False(t, cols[1].Required)
	assert.Equal(t, document.ColumnQuantity, cols[2].Key)
}

func TestHydrate_FieldErrors(t *testing.T) {
	triple := Triple{
		InvoiceData: json.RawMessage(`{"id":"x"}`),
		BlocksData: json.RawMessage(`[
			{"id":"a","type":"free-text"},
			{"id":"a","type":"free-text"},
			{"id":"b","type":"hologram"}
		]`),
	}

	_, err := Hydrate(triple, seqIDs("n"))

	require.ErrorIs(t, err, ErrInvalidTriple)
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestHydrate_InvalidItems(t *testing.T) {
	triple := Triple{
		InvoiceData: json.RawMessage(`{"id":"x","items":[
			{"id":"a","subItemsMode":"weird"},
			{"id":"a"}
		]}`),
	}

	_, err := Hydrate(triple, seqIDs("n"))

	require.ErrorIs(t, err, ErrInvalidTriple)
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestHydrate_Malformed(t *testing.T) {
	_, err := Hydrate(Triple{}, seqIDs("n"))
	require.ErrorIs(t, err, ErrInvalidTriple)

	_, err = Hydrate(Triple{InvoiceData: json.RawMessage(`{"id":`)}, seqIDs("n"))
	require.ErrorIs(t, err, ErrInvalidTriple)

	_, err = Hydrate(Triple{InvoiceData: json.RawMessage(`{}`), BlocksData: json.RawMessage(`{}`)}, seqIDs("n"))
	require.ErrorIs(t, err, ErrInvalidTriple)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts", "inv.json")
	triple, err := Serialize(seed(), "classic")
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, triple))
	got, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "classic", got.TemplateID)
	assert.JSONEq(t, string(triple.InvoiceData), string(got.InvoiceData))
	assert.JSONEq(t, string(triple.BlocksData), string(got.BlocksData))
}
