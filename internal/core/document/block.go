package document

// BlockType discriminates the Block payload variants.
type BlockType string

const (
	BlockInvoiceItems  BlockType = "invoice-items"
	BlockFreeText      BlockType = "free-text"
	BlockDetailedTable BlockType = "detailed-table"
	BlockTotals        BlockType = "totals"
	BlockPaymentTerms  BlockType = "payment-terms"
	BlockSignature     BlockType = "signature"
	BlockQRCode        BlockType = "qr-code"
	BlockConditions    BlockType = "conditions"
)

// BlockTypes lists every block type in palette order.
var BlockTypes = []BlockType{
	BlockInvoiceItems,
	BlockFreeText,
	BlockDetailedTable,
	BlockTotals,
	BlockPaymentTerms,
	BlockSignature,
	BlockQRCode,
	BlockConditions,
}

// IsValid reports whether t is a known block type.
func (t BlockType) IsValid() bool {
	switch t {
	case BlockInvoiceItems, BlockFreeText, BlockDetailedTable, BlockTotals,
		BlockPaymentTerms, BlockSignature, BlockQRCode, BlockConditions:
		return true
	}
	return false
}

// Required reports whether blocks of this type may only be disabled,
// never removed from a document.
func (t BlockType) Required() bool {
	switch t { //nolint:exhaustive // only required types return true
	case BlockInvoiceItems, BlockTotals, BlockPaymentTerms:
		return true
	}
	return false
}

// TableLike reports whether blocks of this type carry columns and
// therefore support both content and layout editing.
func (t BlockType) TableLike() bool {
	switch t { //nolint:exhaustive // only column-bearing types return true
	case BlockInvoiceItems, BlockDetailedTable:
		return true
	}
	return false
}

// Label is the human readable block name.
func (t BlockType) Label() string {
	switch t {
	case BlockInvoiceItems:
		return "Items"
	case BlockFreeText:
		return "Free text"
	case BlockDetailedTable:
		return "Table"
	case BlockTotals:
		return "Totals"
	case BlockPaymentTerms:
		return "Payment terms"
	case BlockSignature:
		return "Signature"
	case BlockQRCode:
		return "QR code"
	case BlockConditions:
		return "Conditions"
	}
	return string(t)
}

// Payload is the variant-specific data of a Block. The set of
// implementations is closed to this package.
type Payload interface {
	BlockType() BlockType
	clone() Payload
}

// Block is an orderable, independently enable-able section of a document.
type Block struct {
	ID      string  `json:"id"`
	Order   int     `json:"order"`
	Enabled bool    `json:"enabled"`
	Payload Payload `json:"-"`
}

// Type returns the block type derived from the payload.
func (b Block) Type() BlockType {
	if b.Payload == nil {
		return ""
	}
	return b.Payload.BlockType()
}

// Columns returns the columns of a table-like block, or nil.
func (b Block) Columns() []Column {
	switch p := b.Payload.(type) {
	case *ItemsPayload:
		return p.Columns
	case *TablePayload:
		return p.Columns
	}
	return nil
}

// ItemsPayload configures the invoice-items table.
type ItemsPayload struct {
	Columns []Column `json:"columns"`
}

func (*ItemsPayload) BlockType() BlockType { return BlockInvoiceItems }

// FreeTextPayload is a markdown paragraph with an optional title.
type FreeTextPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (*FreeTextPayload) BlockType() BlockType { return BlockFreeText }

// TablePayload is a free-form table with user defined columns and rows.
type TablePayload struct {
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

func (*TablePayload) BlockType() BlockType { return BlockDetailedTable }

// TotalsPayload controls the totals summary.
type TotalsPayload struct {
	Label        string `json:"label"`
	ShowSubtotal bool   `json:"showSubtotal"`
	ShowTax      bool   `json:"showTax"`
}

func (*TotalsPayload) BlockType() BlockType { return BlockTotals }

// PaymentTermsPayload carries payment instructions.
type PaymentTermsPayload struct {
	Terms    string `json:"terms"`
	BankName string `json:"bankName"`
	IBAN     string `json:"iban"`
	BIC      string `json:"bic"`
	DueNote  string `json:"dueNote"`
}

func (*PaymentTermsPayload) BlockType() BlockType { return BlockPaymentTerms }

// SignaturePayload renders a signature area.
type SignaturePayload struct {
	Label      string `json:"label"`
	SignerName string `json:"signerName"`
	Place      string `json:"place"`
	ShowDate   bool   `json:"showDate"`
}

func (*SignaturePayload) BlockType() BlockType { return BlockSignature }

// QRCodePayload renders a QR code for the encoded payload.
type QRCodePayload struct {
	Data    string `json:"data"`
	Caption string `json:"caption"`
	Size    int    `json:"size"`
}

func (*QRCodePayload) BlockType() BlockType { return BlockQRCode }

// ConditionsPayload holds general terms and conditions as markdown.
type ConditionsPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (*ConditionsPayload) BlockType() BlockType { return BlockConditions }

// NewPayload returns the default payload for a block type, or nil if the
// type is unknown.
func NewPayload(t BlockType) Payload {
	switch t {
	case BlockInvoiceItems:
		return &ItemsPayload{Columns: DefaultItemColumns()}
	case BlockFreeText:
		return &FreeTextPayload{Title: "Notes"}
	case BlockDetailedTable:
		return &TablePayload{Title: "Details", Columns: DefaultTableColumns()}
	case BlockTotals:
		return &TotalsPayload{Label: "Total", ShowSubtotal: true, ShowTax: true}
	case BlockPaymentTerms:
		return &PaymentTermsPayload{Terms: "Payment due within 30 days."}
	case BlockSignature:
		return &SignaturePayload{Label: "Signature", ShowDate: true}
	case BlockQRCode:
		return &QRCodePayload{Caption: "Scan to pay", Size: 8}
	case BlockConditions:
		return &ConditionsPayload{Title: "Terms & conditions"}
	}
	return nil
}
