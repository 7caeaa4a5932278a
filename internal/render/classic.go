package render

import (
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/styles"
)

// Classic is a conservative layout: issuer on the left, invoice details on
// the right, the client below and blocks in order.
type Classic struct{}

func (Classic) ID() document.TemplateID { return document.TemplateClassic }

func classicTheme(accent string) theme {
	return theme{
		title:     styles.DocTitleStyle.Foreground(styles.Accent(accent)),
		heading:   styles.DocHeadingStyle,
		label:     styles.DocLabelStyle,
		text:      styles.DocTextStyle,
		muted:     styles.DocMutedStyle,
		total:     styles.DocTotalStyle,
		rule:      styles.DocRuleStyle,
		handle:    styles.DocHandleStyle,
		disabled:  styles.DisabledStyle,
		watermark: styles.DocWatermarkStyle,
		header:    styles.DocHeadingStyle,
		markdown:  plainMarkdown,
	}
}

func plainMarkdown(content string, width int) ([]string, bool) {
	return wrap(content, width), false
}

func (Classic) Render(in Input) Frame {
	w := in.width()
	d := &doc{b: newBuilder(w), th: classicTheme(in.Invoice.Styling.PrimaryColor), in: in}
	inv := in.Invoice

	d.logo()

	left := w / 2
	issuer := d.party(document.IssuerTarget(), "", inv.Issuer, left)

	info := d.b.sub(w - left)
	info.region(document.InvoiceInfoTarget(), func() {
		iw := info.width
		info.line(info.span(d.th.title, fit("INVOICE", iw, document.AlignRight)))
		info.line(info.span(d.th.text, fit("No. "+inv.Number, iw, document.AlignRight)))
		info.line(info.span(d.th.label, fit("Issued "+Date(inv.IssueDate), iw, document.AlignRight)))
		info.line(info.span(d.th.label, fit("Due "+Date(inv.DueDate), iw, document.AlignRight)))
	})
	d.b.columns(issuer, info.lines, left)
	d.b.blank()

	for _, l := range d.party(document.ClientTarget(), "Bill to", inv.Client, w) {
		d.b.line(l...)
	}
	d.b.rule(d.th.rule)
	d.b.blank()

	d.watermark()
	d.blocks()

	return d.b.frame()
}
