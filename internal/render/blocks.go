package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/ordering"
	"github.com/colonyops/folio/internal/core/styles"
)

// theme is the set of styles a template lays blocks out with.
type theme struct {
	title     lipgloss.Style
	heading   lipgloss.Style
	label     lipgloss.Style
	text      lipgloss.Style
	muted     lipgloss.Style
	total     lipgloss.Style
	rule      lipgloss.Style
	handle    lipgloss.Style
	disabled  lipgloss.Style
	watermark lipgloss.Style
	header    lipgloss.Style

	// markdown renders free-text content to lines. raw lines carry their
	// own ANSI styling.
	markdown func(content string, width int) (lines []string, raw bool)
}

// doc renders the parts shared by every template.
type doc struct {
	b  *builder
	th theme
	in Input
}

func blockTarget(b document.Block) document.ClickTarget {
	if b.Type() == document.BlockInvoiceItems {
		return document.ItemsTableTarget()
	}
	return document.BlockTarget(b.ID)
}

// blocks renders the enabled blocks in display order. While editing,
// disabled blocks keep a placeholder so they stay clickable.
func (d *doc) blocks() {
	for _, blk := range ordering.Sorted(d.in.Invoice.Blocks, ordering.BlockOrder) {
		if !blk.Enabled && !d.in.Editing {
			continue
		}
		d.b.region(blockTarget(blk), func() {
			if d.in.Editing {
				d.toolbar(blk)
			}
			if !blk.Enabled {
				return
			}
			d.block(blk)
		})
		d.b.blank()
	}
}

// toolbar is the excluded handle line above a block in editing mode.
func (d *doc) toolbar(blk document.Block) {
	label := styles.IconDrag + " " + blk.Type().Label()
	if blk.Type().Required() {
		label += " " + styles.IconLock
	}
	if !blk.Enabled {
		label += " (hidden)"
	}
	d.b.line(d.b.affordance(d.th.handle, fit(label, d.b.width, document.AlignLeft)))
}

func (d *doc) block(blk document.Block) {
	switch p := blk.Payload.(type) {
	case *document.ItemsPayload:
		d.items(blk)
	case *document.FreeTextPayload:
		d.markdown(p.Title, p.Content)
	case *document.TablePayload:
		d.table(blk, p)
	case *document.TotalsPayload:
		d.totals(p)
	case *document.PaymentTermsPayload:
		d.paymentTerms(p)
	case *document.SignaturePayload:
		d.signature(p)
	case *document.QRCodePayload:
		d.qrCode(p)
	case *document.ConditionsPayload:
		d.markdown(p.Title, p.Content)
	}
}

// cellWidths splits width across cols by their effective percentages. The
// last column takes the rounding remainder.
func cellWidths(cols []ordering.ResolvedColumn, width int) []int {
	out := make([]int, len(cols))
	used := 0
	for i, c := range cols {
		if i == len(cols)-1 {
			out[i] = max(0, width-used)
			break
		}
		w := int(c.Effective / 100 * float64(width))
		out[i] = w
		used += w
	}
	return out
}

// row lays cells out in one line. Cells are separated by a space.
func (d *doc) row(style lipgloss.Style, cols []ordering.ResolvedColumn, widths []int, cells []string) {
	var sb strings.Builder
	for i, c := range cols {
		w := widths[i]
		if i < len(cols)-1 {
			sb.WriteString(fit(cells[i], w-1, c.Align))
			if w > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteString(fit(cells[i], w, c.Align))
	}
	d.b.line(d.b.span(style, sb.String()))
}

func (d *doc) tableHeader(cols []ordering.ResolvedColumn, widths []int) {
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
	}
	d.row(d.th.header, cols, widths, labels)
	d.b.rule(d.th.rule)
}

func (d *doc) items(blk document.Block) {
	cols := d.in.columns(blk)
	if len(cols) == 0 {
		return
	}
	widths := cellWidths(cols, d.b.width)
	cur := d.in.Invoice.Currency

	d.tableHeader(cols, widths)
	for _, it := range d.in.Invoice.Items {
		if !it.Selected && !d.in.Editing {
			continue
		}
		style := d.th.text
		if !it.Selected {
			style = d.th.disabled
		}

		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = itemCell(c.Key, it, cur)
		}
		d.row(style, cols, widths, cells)

		if !it.HasSubItems {
			continue
		}
		for _, sub := range it.SubItems {
			if !sub.Selected && !d.in.Editing {
				continue
			}
			subStyle := d.th.muted
			if !sub.Selected || !it.Selected {
				subStyle = d.th.disabled
			}
			for i, c := range cols {
				cells[i] = subItemCell(c.Key, it.SubItemsMode, sub, cur)
			}
			d.row(subStyle, cols, widths, cells)
		}
	}
}

func itemCell(key string, it document.InvoiceItem, cur string) string {
	individual := it.HasSubItems && it.SubItemsMode == document.ModeIndividualQuantities
	switch key {
	case document.ColumnDescription:
		return it.Description
	case document.ColumnQuantity:
		if individual {
			return ""
		}
		return Quantity(it.Quantity)
	case document.ColumnUnitPrice:
		if individual {
			return ""
		}
		return Money(it.UnitPrice, cur)
	case document.ColumnTotal:
		return Money(it.Total, cur)
	}
	return ""
}

func subItemCell(key string, mode document.SubItemsMode, sub document.SubItem, cur string) string {
	if key == document.ColumnDescription {
		return "  · " + sub.Description
	}
	switch mode { //nolint:exhaustive // no-prices sub-items only show a description
	case document.ModeParentQuantity:
		if key == document.ColumnUnitPrice {
			return Money(sub.UnitPrice, cur)
		}
	case document.ModeIndividualQuantities:
		switch key {
		case document.ColumnQuantity:
			return Quantity(sub.QuantityOr(1))
		case document.ColumnUnitPrice:
			return Money(sub.UnitPrice, cur)
		case document.ColumnTotal:
			return Money(sub.Total, cur)
		}
	}
	return ""
}

func (d *doc) table(blk document.Block, p *document.TablePayload) {
	if p.Title != "" {
		d.b.line(d.b.span(d.th.heading, fit(p.Title, d.b.width, document.AlignLeft)))
	}
	cols := d.in.columns(blk)
	if len(cols) == 0 {
		return
	}
	widths := cellWidths(cols, d.b.width)
	d.tableHeader(cols, widths)

	cells := make([]string, len(cols))
	for _, r := range ordering.Sorted(p.Rows, ordering.RowOrder) {
		for i, c := range cols {
			cells[i] = r.Cells[c.ID]
		}
		d.row(d.th.text, cols, widths, cells)
	}
}

// amountLine right-aligns a label and an amount.
func (d *doc) amountLine(style lipgloss.Style, label, amount string) {
	const labelW, amountW = 18, 20
	line := fit(label, labelW, document.AlignLeft) + fit(amount, amountW, document.AlignRight)
	d.b.line(d.b.pad(d.b.width-labelW-amountW), d.b.span(style, line))
}

func (d *doc) totals(p *document.TotalsPayload) {
	inv, t := d.in.Invoice, d.in.Totals
	if p.ShowSubtotal {
		d.amountLine(d.th.label, "Subtotal", Money(t.Subtotal, inv.Currency))
	}
	if p.ShowTax {
		d.amountLine(d.th.label, fmt.Sprintf("Tax (%s)", Percent(inv.TaxRate)), Money(t.Tax, inv.Currency))
	}
	label := p.Label
	if label == "" {
		label = "Total"
	}
	d.amountLine(d.th.total, label, Money(t.Total, inv.Currency))
}

func (d *doc) paymentTerms(p *document.PaymentTermsPayload) {
	d.b.line(d.b.span(d.th.heading, fit("Payment terms", d.b.width, document.AlignLeft)))
	if p.Terms != "" {
		d.b.text(d.th.text, p.Terms)
	}
	d.labelled("Due date", Date(d.in.Invoice.DueDate))
	d.labelled("Bank", p.BankName)
	d.labelled("IBAN", p.IBAN)
	d.labelled("BIC", p.BIC)
	if p.DueNote != "" {
		d.b.text(d.th.muted, p.DueNote)
	}
}

// labelled adds "label: value", skipping empty values.
func (d *doc) labelled(label, value string) {
	if value == "" {
		return
	}
	d.b.line(d.b.span(d.th.label, label+": "), d.b.span(d.th.text, value))
}

func (d *doc) signature(p *document.SignaturePayload) {
	if p.Label != "" {
		d.b.line(d.b.span(d.th.heading, fit(p.Label, d.b.width, document.AlignLeft)))
	}
	d.b.blank()
	d.b.line(d.b.span(d.th.rule, strings.Repeat("_", min(32, d.b.width))))
	if p.SignerName != "" {
		d.b.line(d.b.span(d.th.text, p.SignerName))
	}
	place := p.Place
	if p.ShowDate {
		if place != "" {
			place += ", "
		}
		place += Date(d.in.Invoice.IssueDate)
	}
	if place != "" {
		d.b.line(d.b.span(d.th.muted, place))
	}
}

// qrCode draws a framed placeholder; encoding is left to export tooling.
func (d *doc) qrCode(p *document.QRCodePayload) {
	size := min(max(p.Size, 4), 16)
	inner := size * 2
	d.b.line(d.b.span(d.th.rule, "┌"+strings.Repeat("─", inner)+"┐"))
	for i := range size / 2 {
		label := ""
		if i == size/4 {
			label = "QR"
		}
		d.b.line(d.b.span(d.th.rule, "│"), d.b.span(d.th.label, fit(label, inner, document.AlignCenter)), d.b.span(d.th.rule, "│"))
	}
	d.b.line(d.b.span(d.th.rule, "└"+strings.Repeat("─", inner)+"┘"))
	if p.Caption != "" {
		d.b.line(d.b.span(d.th.muted, p.Caption))
	}
	if p.Data != "" {
		d.b.line(d.b.span(d.th.label, fit(p.Data, d.b.width, document.AlignLeft)))
	}
}

func (d *doc) markdown(title, content string) {
	if title != "" {
		d.b.line(d.b.span(d.th.heading, fit(title, d.b.width, document.AlignLeft)))
	}
	if strings.TrimSpace(content) == "" {
		if d.in.Editing {
			d.b.line(d.b.affordance(d.th.handle, styles.IconEdit+" click to add text"))
		}
		return
	}
	lines, raw := d.th.markdown(content, d.b.width)
	for _, l := range lines {
		if raw {
			d.b.line(d.b.raw(l))
			continue
		}
		d.b.line(d.b.span(d.th.text, l))
	}
}

// partyLines lists the visible fields of a party.
func partyLines(p document.Party) []string {
	lines := []string{p.Name}
	if p.Show.Address && p.Address != "" {
		lines = append(lines, strings.Split(p.Address, "\n")...)
	}
	if p.Show.Email && p.Email != "" {
		lines = append(lines, p.Email)
	}
	if p.Show.Phone && p.Phone != "" {
		lines = append(lines, p.Phone)
	}
	if p.Show.TaxID && p.TaxID != "" {
		lines = append(lines, "Tax ID: "+p.TaxID)
	}
	for _, f := range p.CustomFields {
		if f.Visible {
			lines = append(lines, f.Label+": "+f.Value)
		}
	}
	return lines
}

// party renders p into a column builder of width w.
func (d *doc) party(t document.ClickTarget, heading string, p document.Party, w int) []Line {
	col := d.b.sub(w)
	col.region(t, func() {
		if heading != "" {
			col.line(col.span(d.th.label, fit(heading, w, document.AlignLeft)))
		}
		for i, l := range partyLines(p) {
			style := d.th.text
			if i == 0 {
				style = d.th.heading
			}
			col.line(col.span(style, fit(l, w, document.AlignLeft)))
		}
	})
	return col.lines
}

// logo adds the logo aligned to its position. A ref naming an image file is
// drawn as a thumbnail; any other ref is shown as a label. Without a logo
// only an excluded placeholder is shown while editing.
func (d *doc) logo() {
	logo := d.in.Invoice.Logo
	align := document.AlignLeft
	switch logo.Position {
	case document.LogoCenter:
		align = document.AlignCenter
	case document.LogoRight:
		align = document.AlignRight
	case document.LogoLeft:
	}

	d.b.region(document.LogoTarget(), func() {
		if logo.Ref == "" {
			if d.in.Editing {
				d.b.line(d.b.affordance(d.th.handle, fit("[+ logo]", d.b.width, align)))
			}
			return
		}
		cols := logoCols(logo.Size, d.b.width)
		if lines, ok := logoThumbnail(logo.Ref, cols); ok {
			d.b.thumbnail(lines, cols, align)
			return
		}
		label := "[" + logo.Ref + "]"
		if logo.Size == document.LogoLarge {
			label = "[ " + strings.ToUpper(logo.Ref) + " ]"
		}
		d.b.aligned(d.th.title, label, align)
	})
}

// watermark adds the watermark line and, while editing, the control that
// removes it.
func (d *doc) watermark() {
	if d.in.Watermark == "" {
		return
	}
	d.b.aligned(d.th.watermark, "── "+d.in.Watermark+" ──", document.AlignCenter)
	if d.in.Editing {
		d.b.line(d.b.affordance(d.th.handle, fit("remove watermark ›", d.b.width, document.AlignCenter)))
	}
	d.b.blank()
}
