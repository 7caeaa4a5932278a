// Package codec converts documents to and from the (invoiceData, blocksData,
// templateId) triple exchanged with storage collaborators.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/folio/internal/core/calc"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/ordering"
)

// ErrInvalidTriple is returned for triples that cannot be hydrated. Field
// level problems are joined as criterio.FieldErrors.
var ErrInvalidTriple = errors.New("invalid document triple")

// Triple is the persisted form of a document.
type Triple struct {
	InvoiceData json.RawMessage `json:"invoiceData"`
	BlocksData  json.RawMessage `json:"blocksData"`
	TemplateID  string          `json:"templateId"`
}

type blockEnvelope struct {
	ID      string             `json:"id"`
	Type    document.BlockType `json:"type"`
	Order   int                `json:"order"`
	Enabled *bool              `json:"enabled,omitempty"`
	Data    json.RawMessage    `json:"data"`
}

// selectionProbe finds items and sub-items whose "selected" key is absent.
type selectionProbe struct {
	Items []struct {
		Selected *bool `json:"selected"`
		SubItems []struct {
			Selected *bool `json:"selected"`
		} `json:"subItems"`
	} `json:"items"`
}

// Hydrate builds a document from t. Derived totals are recomputed, absent
// selection flags default to true and missing required blocks are added
// back. newID names repaired entities.
func Hydrate(t Triple, newID document.IDFunc) (*document.Invoice, error) {
	if len(t.InvoiceData) == 0 {
		return nil, fmt.Errorf("%w: invoiceData is empty", ErrInvalidTriple)
	}

	var inv document.Invoice
	if err := json.Unmarshal(t.InvoiceData, &inv); err != nil {
		return nil, fmt.Errorf("%w: invoiceData: %w", ErrInvalidTriple, err)
	}
	var probe selectionProbe
	if err := json.Unmarshal(t.InvoiceData, &probe); err != nil {
		return nil, fmt.Errorf("%w: invoiceData: %w", ErrInvalidTriple, err)
	}
	defaultSelection(&inv, probe)

	var envelopes []blockEnvelope
	if len(t.BlocksData) > 0 && string(t.BlocksData) != "null" {
		if err := json.Unmarshal(t.BlocksData, &envelopes); err != nil {
			return nil, fmt.Errorf("%w: blocksData: %w", ErrInvalidTriple, err)
		}
	}

	blocks, err := decodeBlocks(envelopes, newID)
	if err != nil {
		return nil, errors.Join(ErrInvalidTriple, err)
	}
	inv.Blocks = blocks

	if err := validateInvoice(&inv); err != nil {
		return nil, errors.Join(ErrInvalidTriple, err)
	}

	repairRequiredBlocks(&inv, newID)
	calc.Apply(&inv)
	return &inv, nil
}

// Serialize produces the triple for inv. Blocks are written in display order.
func Serialize(inv *document.Invoice, templateID string) (Triple, error) {
	invoiceData, err := json.Marshal(inv)
	if err != nil {
		return Triple{}, fmt.Errorf("marshal invoice: %w", err)
	}

	sorted := ordering.Sorted(inv.Blocks, ordering.BlockOrder)
	envelopes := make([]blockEnvelope, 0, len(sorted))
	for _, b := range sorted {
		data, err := json.Marshal(b.Payload)
		if err != nil {
			return Triple{}, fmt.Errorf("marshal block %s: %w", b.ID, err)
		}
		enabled := b.Enabled
		envelopes = append(envelopes, blockEnvelope{
			ID:      b.ID,
			Type:    b.Type(),
			Order:   b.Order,
			Enabled: &enabled,
			Data:    data,
		})
	}

	blocksData, err := json.Marshal(envelopes)
	if err != nil {
		return Triple{}, fmt.Errorf("marshal blocks: %w", err)
	}

	return Triple{InvoiceData: invoiceData, BlocksData: blocksData, TemplateID: templateID}, nil
}

func defaultSelection(inv *document.Invoice, probe selectionProbe) {
	for i := range inv.Items {
		if i >= len(probe.Items) {
			break
		}
		if probe.Items[i].Selected == nil {
			inv.Items[i].Selected = true
		}
		for j := range inv.Items[i].SubItems {
			if j < len(probe.Items[i].SubItems) && probe.Items[i].SubItems[j].Selected == nil {
				inv.Items[i].SubItems[j].Selected = true
			}
		}
	}
}

func decodeBlocks(envelopes []blockEnvelope, newID document.IDFunc) ([]document.Block, error) {
	var errs criterio.FieldErrorsBuilder
	blocks := make([]document.Block, 0, len(envelopes))
	seen := make(map[string]bool, len(envelopes))

	for i, env := range envelopes {
		field := fmt.Sprintf("blocksData[%d]", i)

		payload := document.NewPayload(env.Type)
		if payload == nil {
			errs = errs.Append(field+".type", fmt.Errorf("unknown block type %q", env.Type))
			continue
		}
		if err := decodePayload(payload, env.Data); err != nil {
			errs = errs.Append(field+".data", err)
			continue
		}

		id := env.ID
		if id == "" {
			id = newID()
		}
		if seen[id] {
			errs = errs.Append(field+".id", fmt.Errorf("duplicate block id %q", id))
			continue
		}
		seen[id] = true

		enabled := true
		if env.Enabled != nil {
			enabled = *env.Enabled
		}

		b := document.Block{ID: id, Order: env.Order, Enabled: enabled, Payload: payload}
		if p, ok := payload.(*document.ItemsPayload); ok {
			p.Columns = repairItemColumns(p.Columns)
		}
		blocks = append(blocks, b)
	}

	return blocks, errs.ToError()
}

// decodePayload decodes data over the defaults in p so absent keys keep
// their default. Default columns are only kept when data has none, since
// decoding an array into a populated slice merges element fields.
func decodePayload(p document.Payload, data json.RawMessage) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var defaults []document.Column
	switch v := p.(type) {
	case *document.ItemsPayload:
		defaults, v.Columns = v.Columns, nil
	case *document.TablePayload:
		defaults, v.Columns = v.Columns, nil
	}

	if err := json.Unmarshal(data, p); err != nil {
		return err
	}

	switch v := p.(type) {
	case *document.ItemsPayload:
		if len(v.Columns) == 0 {
			v.Columns = defaults
		}
	case *document.TablePayload:
		if len(v.Columns) == 0 {
			v.Columns = defaults
		}
	}
	return nil
}

func validateInvoice(inv *document.Invoice) error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(inv.Items))

	for i := range inv.Items {
		it := &inv.Items[i]
		field := fmt.Sprintf("invoiceData.items[%d]", i)

		if it.ID == "" {
			errs = errs.Append(field+".id", errors.New("is required"))
		} else if seen[it.ID] {
			errs = errs.Append(field+".id", fmt.Errorf("duplicate item id %q", it.ID))
		}
		seen[it.ID] = true

		switch {
		case it.SubItemsMode == "":
			it.SubItemsMode = document.ModeParentQuantity
		case !it.SubItemsMode.IsValid():
			errs = errs.Append(field+".subItemsMode", fmt.Errorf("unknown mode %q", it.SubItemsMode))
		}
	}

	if inv.Logo.Position == "" {
		inv.Logo.Position = document.LogoLeft
	}
	if inv.Logo.Size == "" {
		inv.Logo.Size = document.LogoMedium
	}

	return criterio.ValidateStruct(
		errs.ToError(),
		criterio.Run("invoiceData.logo.position", string(inv.Logo.Position), func(p string) error {
			if !document.LogoPosition(p).IsValid() {
				return fmt.Errorf("unknown position %q", p)
			}
			return nil
		}),
		criterio.Run("invoiceData.logo.size", string(inv.Logo.Size), func(s string) error {
			if !document.LogoSize(s).IsValid() {
				return fmt.Errorf("unknown size %q", s)
			}
			return nil
		}),
	)
}

// repairRequiredBlocks appends any missing required block after the
// existing ones, enabled and with default content.
func repairRequiredBlocks(inv *document.Invoice, newID document.IDFunc) {
	next := 0
	for _, b := range inv.Blocks {
		next = max(next, b.Order+1)
	}
	for _, t := range document.BlockTypes {
		if !t.Required() || inv.FirstBlockOfType(t) != nil {
			continue
		}
		inv.Blocks = append(inv.Blocks, document.Block{ID: newID(), Order: next, Enabled: true, Payload: document.NewPayload(t)})
		next++
	}
}

// repairItemColumns restores canonical item columns that are missing and
// marks the canonical ones required.
func repairItemColumns(cols []document.Column) []document.Column {
	present := make(map[string]bool, len(cols))
	for i := range cols {
		if document.IsCanonicalItemKey(cols[i].Key) {
			cols[i].Required = true
			present[cols[i].Key] = true
		}
	}
	for _, c := range document.DefaultItemColumns() {
		if !present[c.Key] {
			c.Order = len(cols)
			cols = append(cols, c)
		}
	}
	return cols
}
