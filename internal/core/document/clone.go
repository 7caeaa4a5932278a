package document

import (
	"maps"
	"slices"
)

// Clone returns a deep copy of the invoice. The copy shares no slices,
// maps or payloads with inv.
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}

	out := *inv
	out.Issuer = inv.Issuer.Clone()
	out.Client = inv.Client.Clone()

	out.Items = make([]InvoiceItem, len(inv.Items))
	for i := range inv.Items {
		out.Items[i] = inv.Items[i].Clone()
	}

	out.Blocks = make([]Block, len(inv.Blocks))
	for i := range inv.Blocks {
		out.Blocks[i] = inv.Blocks[i].Clone()
	}

	return &out
}

// Clone returns a deep copy of the party.
func (p Party) Clone() Party {
	p.CustomFields = slices.Clone(p.CustomFields)
	return p
}

// Clone returns a deep copy of the item and its sub-items.
func (it InvoiceItem) Clone() InvoiceItem {
	subs := make([]SubItem, len(it.SubItems))
	for i, s := range it.SubItems {
		subs[i] = s.Clone()
	}
	it.SubItems = subs
	return it
}

// Clone returns a copy of the sub-item with its own quantity pointer.
func (s SubItem) Clone() SubItem {
	if s.Quantity != nil {
		s.Quantity = Float(*s.Quantity)
	}
	return s
}

// Clone returns a copy of the block with a deep-copied payload.
func (b Block) Clone() Block {
	if b.Payload != nil {
		b.Payload = b.Payload.clone()
	}
	return b
}

// ClonePayload returns a deep copy of p. It returns nil for nil.
func ClonePayload(p Payload) Payload {
	if p == nil {
		return nil
	}
	return p.clone()
}

func (p *ItemsPayload) clone() Payload {
	out := *p
	out.Columns = slices.Clone(p.Columns)
	return &out
}

func (p *FreeTextPayload) clone() Payload {
	out := *p
	return &out
}

func (p *TablePayload) clone() Payload {
	out := *p
	out.Columns = slices.Clone(p.Columns)
	out.Rows = make([]Row, len(p.Rows))
	for i, r := range p.Rows {
		r.Cells = maps.Clone(r.Cells)
		out.Rows[i] = r
	}
	return &out
}

func (p *TotalsPayload) clone() Payload {
	out := *p
	return &out
}

func (p *PaymentTermsPayload) clone() Payload {
	out := *p
	return &out
}

func (p *SignaturePayload) clone() Payload {
	out := *p
	return &out
}

func (p *QRCodePayload) clone() Payload {
	out := *p
	return &out
}

func (p *ConditionsPayload) clone() Payload {
	out := *p
	return &out
}
