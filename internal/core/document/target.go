package document

// TargetKind identifies a clickable region of a rendered document, and the
// logical section a FocusTarget points at.
type TargetKind string

const (
	TargetIssuer      TargetKind = "issuer"
	TargetClient      TargetKind = "client"
	TargetLogo        TargetKind = "logo"
	TargetInvoiceInfo TargetKind = "invoice-info"
	TargetItemsTable  TargetKind = "items-table"
	TargetBlock       TargetKind = "block"
)

// EditMode disambiguates editing the data of a table-like region from
// editing its structure.
type EditMode string

const (
	ModeUnset   EditMode = ""
	ModeContent EditMode = "content"
	ModeLayout  EditMode = "layout"
)

// IsValid reports whether m is content or layout.
func (m EditMode) IsValid() bool {
	return m == ModeContent || m == ModeLayout
}

// ClickTarget is an ephemeral identifier of a clickable region in a rendered
// view. BlockID is set only for TargetBlock.
type ClickTarget struct {
	Kind    TargetKind `json:"type"`
	BlockID string     `json:"blockId,omitempty"`
	Mode    EditMode   `json:"mode,omitempty"`
}

// Click constructors keep call sites in renderers short.
func IssuerTarget() ClickTarget      { return ClickTarget{Kind: TargetIssuer} }
func ClientTarget() ClickTarget      { return ClickTarget{Kind: TargetClient} }
func LogoTarget() ClickTarget        { return ClickTarget{Kind: TargetLogo} }
func InvoiceInfoTarget() ClickTarget { return ClickTarget{Kind: TargetInvoiceInfo} }
func ItemsTableTarget() ClickTarget  { return ClickTarget{Kind: TargetItemsTable} }

// BlockTarget returns a click target for the block with the given id.
func BlockTarget(id string) ClickTarget {
	return ClickTarget{Kind: TargetBlock, BlockID: id}
}

// WithMode returns a copy of t with the mode set.
func (t ClickTarget) WithMode(m EditMode) ClickTarget {
	t.Mode = m
	return t
}

// FocusSection is the logical section a FocusTarget points at.
type FocusSection string

const (
	FocusIssuer      FocusSection = "issuer"
	FocusClient      FocusSection = "client"
	FocusLogo        FocusSection = "logo"
	FocusInvoiceInfo FocusSection = "invoice-info"
	FocusItems       FocusSection = "items"
	FocusBlock       FocusSection = "block"
)

// FocusTarget asks the panel owning Section to scroll the element into view
// and highlight it once. Seq increases with every published target so that
// a late acknowledgement cannot clear a newer pulse.
type FocusTarget struct {
	Section FocusSection `json:"type"`
	BlockID string       `json:"blockId,omitempty"`
	Mode    EditMode     `json:"mode,omitempty"`
	Seq     uint64       `json:"seq"`
}

// IsZero reports whether no focus is pending.
func (f FocusTarget) IsZero() bool {
	return f.Section == ""
}
