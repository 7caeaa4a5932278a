package document

// SubItemsMode selects how sub-items contribute to their parent's price.
type SubItemsMode string

const (
	// ModeParentQuantity forces the parent unit price to the sum of the
	// selected sub-item prices; the parent quantity multiplies it.
	ModeParentQuantity SubItemsMode = "parent-quantity"
	// ModeIndividualQuantities sums quantity × price of each selected
	// sub-item. The parent quantity and unit price are not used.
	ModeIndividualQuantities SubItemsMode = "individual-quantities"
	// ModeNoPrices makes sub-items descriptive only.
	ModeNoPrices SubItemsMode = "no-prices"
)

// SubItemsModes lists the modes in cycling order.
var SubItemsModes = []SubItemsMode{ModeParentQuantity, ModeIndividualQuantities, ModeNoPrices}

// IsValid reports whether m is a known mode.
func (m SubItemsMode) IsValid() bool {
	switch m {
	case ModeParentQuantity, ModeIndividualQuantities, ModeNoPrices:
		return true
	}
	return false
}

// Next returns the mode after m in SubItemsModes, wrapping around.
func (m SubItemsMode) Next() SubItemsMode {
	for i, mode := range SubItemsModes {
		if mode == m {
			return SubItemsModes[(i+1)%len(SubItemsModes)]
		}
	}
	return ModeParentQuantity
}

// InvoiceItem is a priced line of the invoice.
//
// Total is derived by the calc package and must not be set by callers.
type InvoiceItem struct {
	ID           string       `json:"id"`
	Description  string       `json:"description"`
	Quantity     float64      `json:"quantity"`
	UnitPrice    float64      `json:"unitPrice"`
	Total        float64      `json:"total"`
	Selected     bool         `json:"selected"`
	HasSubItems  bool         `json:"hasSubItems"`
	SubItemsMode SubItemsMode `json:"subItemsMode"`
	SubItems     []SubItem    `json:"subItems"`
}

// FindSubItem returns the index of the sub-item with the given id, or -1.
func (it *InvoiceItem) FindSubItem(id string) int {
	for i := range it.SubItems {
		if it.SubItems[i].ID == id {
			return i
		}
	}
	return -1
}

// SubItem is a child line nested under an InvoiceItem.
type SubItem struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   float64  `json:"unitPrice"`
	HasQuantity bool     `json:"hasQuantity"`
	Total       float64  `json:"total"`
	Selected    bool     `json:"selected"`
}

// QuantityOr returns the sub-item quantity, or def when unset.
func (s SubItem) QuantityOr(def float64) float64 {
	if s.Quantity == nil {
		return def
	}
	return *s.Quantity
}

// Float returns a pointer to v. Used for optional quantities.
func Float(v float64) *float64 {
	return &v
}
