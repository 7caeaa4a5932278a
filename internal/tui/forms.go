package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/editor"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/internal/core/validate"
	"github.com/colonyops/folio/internal/render"
)

const (
	formWidth  = 56
	qrSizeMin  = 4
	qrSizeMax  = 16
	textLines  = 6
	priceField = "Unit price"
)

// openForm shows a form over the editor. apply runs once the form is
// submitted; aborting discards the input.
func (m *Model) openForm(title string, apply func() error, fields ...huh.Field) tea.Cmd {
	f := huh.NewForm(huh.NewGroup(fields...).Title(title)).
		WithShowHelp(true).
		WithTheme(styles.FormTheme()).
		WithWidth(formWidth)
	m.form = f
	m.formApply = apply
	return f.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		apply := m.formApply
		m.form, m.formApply = nil, nil
		return m, m.rejected(apply())
	case huh.StateAborted:
		m.form, m.formApply = nil, nil
		return m, nil
	case huh.StateNormal:
	}
	return m, cmd
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *Model) openItemForm(it document.InvoiceItem) rowAction {
	return func() tea.Cmd {
		desc := it.Description
		qty := formatAmount(it.Quantity)
		price := formatAmount(it.UnitPrice)

		// Sub-item modes derive the parent price, and individual
		// quantities ignore the parent quantity as well.
		editQty := !it.HasSubItems || it.SubItemsMode != document.ModeIndividualQuantities
		editPrice := !it.HasSubItems || it.SubItemsMode == document.ModeNoPrices

		fields := []huh.Field{huh.NewInput().Title("Description").Value(&desc)}
		if editQty {
			fields = append(fields, huh.NewInput().Title("Quantity").Value(&qty).Validate(validate.AmountText))
		}
		if editPrice {
			fields = append(fields, huh.NewInput().Title(priceField).Value(&price).Validate(validate.AmountText))
		}

		return m.openForm("Item", func() error {
			patch := editor.ItemPatch{Description: &desc}
			if editQty {
				q, _ := validate.Amount(qty)
				patch.Quantity = &q
			}
			if editPrice {
				p, _ := validate.Amount(price)
				patch.UnitPrice = &p
			}
			return m.store.UpdateItem(it.ID, patch)
		}, fields...)
	}
}

func (m *Model) openSubItemForm(itemID string, mode document.SubItemsMode, sub document.SubItem) rowAction {
	return func() tea.Cmd {
		desc := sub.Description
		price := formatAmount(sub.UnitPrice)
		qty := ""
		if sub.Quantity != nil {
			qty = formatAmount(*sub.Quantity)
		}

		fields := []huh.Field{huh.NewInput().Title("Description").Value(&desc)}
		if mode != document.ModeNoPrices {
			fields = append(fields, huh.NewInput().Title(priceField).Value(&price).Validate(validate.AmountText))
		}
		if mode == document.ModeIndividualQuantities {
			fields = append(fields, huh.NewInput().
				Title("Quantity").
				Description("Empty counts as 1").
				Value(&qty).
				Validate(validate.AmountText))
		}

		return m.openForm("Sub-item", func() error {
			patch := editor.SubItemPatch{Description: &desc}
			if mode != document.ModeNoPrices {
				p, _ := validate.Amount(price)
				patch.UnitPrice = &p
			}
			if mode == document.ModeIndividualQuantities {
				if strings.TrimSpace(qty) == "" {
					patch.ClearQuantity = true
				} else {
					q, _ := validate.Amount(qty)
					patch.Quantity = &q
				}
			}
			return m.store.UpdateSubItem(itemID, sub.ID, patch)
		}, fields...)
	}
}

// openBlockForm edits the payload of a non-table block.
func (m *Model) openBlockForm(b document.Block) rowAction {
	return func() tea.Cmd {
		p := document.ClonePayload(b.Payload)
		update := func() error {
			return m.store.UpdateBlock(b.ID, func(document.Payload) document.Payload { return p })
		}
		title := b.Type().Label()

		switch p := p.(type) {
		case *document.FreeTextPayload:
			return m.openForm(title, update,
				huh.NewInput().Title("Title").Value(&p.Title),
				huh.NewText().Title("Content").Description("Markdown").Lines(textLines).Value(&p.Content),
			)
		case *document.ConditionsPayload:
			return m.openForm(title, update,
				huh.NewInput().Title("Title").Value(&p.Title),
				huh.NewText().Title("Content").Description("Markdown").Lines(textLines).Value(&p.Content),
			)
		case *document.TotalsPayload:
			return m.openForm(title, update,
				huh.NewInput().Title("Label").Value(&p.Label),
				huh.NewConfirm().Title("Show subtotal").Value(&p.ShowSubtotal),
				huh.NewConfirm().Title("Show tax").Value(&p.ShowTax),
			)
		case *document.PaymentTermsPayload:
			return m.openForm(title, update,
				huh.NewText().Title("Terms").Lines(3).Value(&p.Terms),
				huh.NewInput().Title("Bank").Value(&p.BankName),
				huh.NewInput().Title("IBAN").Value(&p.IBAN),
				huh.NewInput().Title("BIC").Value(&p.BIC),
				huh.NewInput().Title("Due note").Value(&p.DueNote),
			)
		case *document.SignaturePayload:
			return m.openForm(title, update,
				huh.NewInput().Title("Label").Value(&p.Label),
				huh.NewInput().Title("Signer").Value(&p.SignerName),
				huh.NewInput().Title("Place").Value(&p.Place),
				huh.NewConfirm().Title("Show date").Value(&p.ShowDate),
			)
		case *document.QRCodePayload:
			size := strconv.Itoa(p.Size)
			return m.openForm(title, func() error {
				p.Size, _ = strconv.Atoi(strings.TrimSpace(size))
				return update()
			},
				huh.NewInput().Title("Data").Description("Encoded payload, e.g. an EPC payment string").Value(&p.Data),
				huh.NewInput().Title("Caption").Value(&p.Caption),
				huh.NewInput().Title("Size").Value(&size).Validate(validateQRSize),
			)
		case *document.TablePayload:
			return m.openForm(title, update, huh.NewInput().Title("Title").Value(&p.Title))
		case *document.ItemsPayload:
			// Item rows are edited in the items panel.
			m.store.SetActivePanel(navigation.PanelItems)
		}
		return nil
	}
}

func validateQRSize(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < qrSizeMin || n > qrSizeMax {
		return fmt.Errorf("size must be a whole number from %d to %d", qrSizeMin, qrSizeMax)
	}
	return nil
}

// openBlockPalette asks for the type of a new block.
func (m *Model) openBlockPalette() tea.Cmd {
	var choice document.BlockType
	opts := make([]huh.Option[document.BlockType], 0, len(document.BlockTypes))
	for _, t := range document.BlockTypes {
		if t.Required() {
			continue
		}
		opts = append(opts, huh.NewOption(t.Label(), t))
	}

	return m.openForm("Add block", func() error {
		id, err := m.store.AddBlock(choice)
		if err != nil {
			return err
		}
		m.followRow(navigation.PanelBlocks, func(r row) bool { return r.kind == rowBlock && r.blockID == id })
		return nil
	}, huh.NewSelect[document.BlockType]().Title("Block type").Options(opts...).Value(&choice))
}

// openRowForm edits every visible cell of a detailed-table row.
func (m *Model) openRowForm(blockID string, r document.Row) rowAction {
	return func() tea.Cmd {
		cols := m.store.ResolvedColumns(blockID)
		if len(cols) == 0 {
			return nil
		}
		values := make([]string, len(cols))
		fields := make([]huh.Field, len(cols))
		for i, c := range cols {
			values[i] = r.Cells[c.ID]
			fields[i] = huh.NewInput().Title(c.Label).Value(&values[i])
		}

		return m.openForm("Row", func() error {
			for i, c := range cols {
				if values[i] == r.Cells[c.ID] {
					continue
				}
				if err := m.store.SetCell(blockID, r.ID, c.ID, values[i]); err != nil {
					return err
				}
			}
			return nil
		}, fields...)
	}
}

// blockSummary is the short description shown next to a block row.
func blockSummary(b document.Block, inv *document.Invoice) string {
	switch p := b.Payload.(type) {
	case *document.ItemsPayload:
		return fmt.Sprintf("%d items", len(inv.Items))
	case *document.FreeTextPayload:
		return p.Title
	case *document.ConditionsPayload:
		return p.Title
	case *document.TablePayload:
		return fmt.Sprintf("%s, %d rows", p.Title, len(p.Rows))
	case *document.TotalsPayload:
		return p.Label
	case *document.PaymentTermsPayload:
		return "due " + render.Date(inv.DueDate)
	case *document.SignaturePayload:
		return p.SignerName
	case *document.QRCodePayload:
		return p.Caption
	}
	return ""
}
