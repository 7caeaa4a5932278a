package document

// Align is the horizontal alignment of a column.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Canonical keys of the invoice-items columns. Columns with these keys are
// required and cannot be removed or hidden.
const (
	ColumnDescription = "description"
	ColumnQuantity    = "quantity"
	ColumnUnitPrice   = "unitPrice"
	ColumnTotal       = "total"
)

// Column is a table column. Width is a percentage of the table width; the
// width of the last visible column is computed, see ordering.ResolveWidths.
type Column struct {
	ID       string  `json:"id"`
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Width    float64 `json:"width"`
	Align    Align   `json:"align"`
	Visible  bool    `json:"visible"`
	Order    int     `json:"order"`
	Required bool    `json:"required,omitempty"`
}

// IsCanonicalItemKey reports whether key is one of the built-in item columns.
func IsCanonicalItemKey(key string) bool {
	switch key {
	case ColumnDescription, ColumnQuantity, ColumnUnitPrice, ColumnTotal:
		return true
	}
	return false
}

// Row is a row of a detailed-table block. Cells are keyed by column id.
type Row struct {
	ID    string            `json:"id"`
	Order int               `json:"order"`
	Cells map[string]string `json:"cells"`
}

// DefaultItemColumns returns the canonical invoice-items columns.
func DefaultItemColumns() []Column {
	return []Column{
		{ID: "col-description", Key: ColumnDescription, Label: "Description", Width: 50, Align: AlignLeft, Visible: true, Order: 0, Required: true},
		{ID: "col-quantity", Key: ColumnQuantity, Label: "Qty", Width: 15, Align: AlignRight, Visible: true, Order: 1, Required: true},
		{ID: "col-unit-price", Key: ColumnUnitPrice, Label: "Unit price", Width: 17.5, Align: AlignRight, Visible: true, Order: 2, Required: true},
		{ID: "col-total", Key: ColumnTotal, Label: "Total", Width: 17.5, Align: AlignRight, Visible: true, Order: 3, Required: true},
	}
}

// DefaultTableColumns returns the starting columns of a detailed table.
func DefaultTableColumns() []Column {
	return []Column{
		{ID: "col-a", Key: "a", Label: "Item", Width: 50, Align: AlignLeft, Visible: true, Order: 0},
		{ID: "col-b", Key: "b", Label: "Detail", Width: 50, Align: AlignLeft, Visible: true, Order: 1},
	}
}
