// Package document defines the invoice document model: the invoice root,
// its line items, and the ordered, typed blocks it is composed of.
//
// Values in this package are plain data. Published snapshots are never
// mutated in place; callers that need to change a document take a Clone,
// modify the copy and publish it as a new snapshot.
package document

import "time"

// LogoPosition places the logo in the document header.
type LogoPosition string

const (
	LogoLeft   LogoPosition = "left"
	LogoCenter LogoPosition = "center"
	LogoRight  LogoPosition = "right"
)

// IsValid reports whether p is a known logo position.
func (p LogoPosition) IsValid() bool {
	switch p {
	case LogoLeft, LogoCenter, LogoRight:
		return true
	}
	return false
}

// LogoSize is the rendered logo size.
type LogoSize string

const (
	LogoSmall  LogoSize = "small"
	LogoMedium LogoSize = "medium"
	LogoLarge  LogoSize = "large"
)

// IsValid reports whether s is a known logo size.
func (s LogoSize) IsValid() bool {
	switch s {
	case LogoSmall, LogoMedium, LogoLarge:
		return true
	}
	return false
}

// Logo references an image owned by an external storage collaborator.
type Logo struct {
	Ref      string       `json:"ref,omitempty"`
	Position LogoPosition `json:"position"`
	Size     LogoSize     `json:"size"`
}

// Styling holds the visual settings shared by all templates.
type Styling struct {
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
	Font         string `json:"font"`
}

// CustomField is a free-form label/value pair shown under a party.
type CustomField struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Visible bool   `json:"visible"`
}

// PartyVisibility toggles individual party fields in rendered output.
type PartyVisibility struct {
	Address bool `json:"address"`
	Email   bool `json:"email"`
	Phone   bool `json:"phone"`
	TaxID   bool `json:"taxId"`
}

// Party is the issuer or the client of an invoice.
type Party struct {
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	TaxID        string          `json:"taxId"`
	Show         PartyVisibility `json:"show"`
	CustomFields []CustomField   `json:"customFields,omitempty"`
}

// Invoice is the root aggregate of an editing session.
type Invoice struct {
	ID        string        `json:"id"`
	Number    string        `json:"number"`
	IssueDate time.Time     `json:"issueDate"`
	DueDate   time.Time     `json:"dueDate"`
	Issuer    Party         `json:"issuer"`
	Client    Party         `json:"client"`
	Items     []InvoiceItem `json:"items"`
	Blocks    []Block       `json:"-"` // serialized separately as blocksData
	TaxRate   float64       `json:"taxRate"`
	Currency  string        `json:"currency"`
	Styling   Styling       `json:"styling"`
	Logo      Logo          `json:"logo"`
}

// FindItem returns the index of the item with the given id, or -1.
func (inv *Invoice) FindItem(id string) int {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// FindBlock returns the index of the block with the given id, or -1.
func (inv *Invoice) FindBlock(id string) int {
	for i := range inv.Blocks {
		if inv.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// FirstBlockOfType returns the first block of type t, or nil.
func (inv *Invoice) FirstBlockOfType(t BlockType) *Block {
	for i := range inv.Blocks {
		if inv.Blocks[i].Type() == t {
			return &inv.Blocks[i]
		}
	}
	return nil
}
