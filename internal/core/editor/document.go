package editor

import (
	"fmt"
	"time"

	"github.com/colonyops/folio/internal/core/document"
)

// InfoPatch changes the invoice header fields. Nil fields are left alone.
type InfoPatch struct {
	Number    *string
	IssueDate *time.Time
	DueDate   *time.Time
}

// UpdateIssuer replaces the issuer party.
func (s *Store) UpdateIssuer(p document.Party) error {
	return s.apply("document.issuer", func(inv *document.Invoice) (bool, error) {
		inv.Issuer = p.Clone()
		return true, nil
	})
}

// UpdateClient replaces the client party.
func (s *Store) UpdateClient(p document.Party) error {
	return s.apply("document.client", func(inv *document.Invoice) (bool, error) {
		inv.Client = p.Clone()
		return true, nil
	})
}

// UpdateInfo applies p to the invoice number and dates.
func (s *Store) UpdateInfo(p InfoPatch) error {
	return s.apply("document.info", func(inv *document.Invoice) (bool, error) {
		if p.Number != nil {
			inv.Number = *p.Number
		}
		if p.IssueDate != nil {
			inv.IssueDate = *p.IssueDate
		}
		if p.DueDate != nil {
			inv.DueDate = *p.DueDate
		}
		return p.Number != nil || p.IssueDate != nil || p.DueDate != nil, nil
	})
}

// SetTaxRate sets the tax rate in percent. Out of range values are kept and
// reported by the calc warnings.
func (s *Store) SetTaxRate(rate float64) error {
	return s.apply("document.tax-rate", func(inv *document.Invoice) (bool, error) {
		if inv.TaxRate == rate {
			return false, nil
		}
		inv.TaxRate = rate
		return true, nil
	})
}

// SetCurrency sets the display currency symbol.
func (s *Store) SetCurrency(symbol string) error {
	return s.apply("document.currency", func(inv *document.Invoice) (bool, error) {
		if inv.Currency == symbol {
			return false, nil
		}
		inv.Currency = symbol
		return true, nil
	})
}

// SetStyling replaces the template styling.
func (s *Store) SetStyling(st document.Styling) error {
	return s.apply("document.styling", func(inv *document.Invoice) (bool, error) {
		if inv.Styling == st {
			return false, nil
		}
		inv.Styling = st
		return true, nil
	})
}

// SetLogo replaces the logo reference and placement.
func (s *Store) SetLogo(l document.Logo) error {
	return s.apply("document.logo", func(inv *document.Invoice) (bool, error) {
		if !l.Position.IsValid() || !l.Size.IsValid() {
			return false, fmt.Errorf("%w: position %q size %q", ErrInvalidLogo, l.Position, l.Size)
		}
		if inv.Logo == l {
			return false, nil
		}
		inv.Logo = l
		return true, nil
	})
}
