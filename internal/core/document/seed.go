package document

import "time"

// IDFunc generates identifiers for new entities.
type IDFunc func() string

// SeedOptions customises NewSeed.
type SeedOptions struct {
	Issuer   Party
	Client   Party
	Currency string
	TaxRate  float64
}

// NewSeed returns the default document of a new editing session: one kit
// item priced from three sub-items, one plain item and the three required
// blocks. Totals are left zero; the editor store derives them.
func NewSeed(now time.Time, newID IDFunc, opts SeedOptions) *Invoice {
	if opts.Currency == "" {
		opts.Currency = "€"
	}
	if opts.Issuer.Name == "" {
		opts.Issuer = Party{Name: "Your Company", Address: "1 Main Street", Show: PartyVisibility{Address: true, Email: true}}
	}
	if opts.Client.Name == "" {
		opts.Client = Party{Name: "Client Name", Address: "2 Market Square", Show: PartyVisibility{Address: true}}
	}

	issued := now.Truncate(24 * time.Hour)

	return &Invoice{
		ID:        newID(),
		Number:    issued.Format("2006") + "-0001",
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 30),
		Issuer:    opts.Issuer,
		Client:    opts.Client,
		TaxRate:   opts.TaxRate,
		Currency:  opts.Currency,
		Styling:   Styling{PrimaryColor: "#7aa2f7", AccentColor: "#565f89", Font: "Inter"},
		Logo:      Logo{Position: LogoLeft, Size: LogoMedium},
		Items: []InvoiceItem{
			{
				ID:           newID(),
				Description:  "Website redesign",
				Quantity:     2,
				Selected:     true,
				HasSubItems:  true,
				SubItemsMode: ModeParentQuantity,
				SubItems: []SubItem{
					{ID: newID(), Description: "Design", UnitPrice: 300, Selected: true},
					{ID: newID(), Description: "Development", UnitPrice: 200, Selected: true},
					{ID: newID(), Description: "QA", UnitPrice: 100, Selected: true},
				},
			},
			{
				ID:           newID(),
				Description:  "Hosting (12 months)",
				Quantity:     1,
				UnitPrice:    250,
				Selected:     true,
				SubItemsMode: ModeParentQuantity,
			},
		},
		Blocks: []Block{
			{ID: newID(), Order: 0, Enabled: true, Payload: NewPayload(BlockInvoiceItems)},
			{ID: newID(), Order: 1, Enabled: true, Payload: NewPayload(BlockTotals)},
			{ID: newID(), Order: 2, Enabled: true, Payload: NewPayload(BlockPaymentTerms)},
		},
	}
}
