package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/pkg/kv"
)

type glamourKey struct {
	accent lipgloss.Color
	width  int
}

// Modern opens with an accent banner, shows both parties side by side and
// renders free text as markdown.
type Modern struct {
	renderers *kv.Store[glamourKey, *glamour.TermRenderer]
}

// NewModern returns a modern renderer with an empty markdown renderer cache.
func NewModern() Modern {
	return Modern{renderers: kv.New[glamourKey, *glamour.TermRenderer]()}
}

func (Modern) ID() document.TemplateID { return document.TemplateModern }

func (m Modern) theme(accent lipgloss.Color) theme {
	return theme{
		title:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		heading:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		label:     styles.DocLabelStyle,
		text:      styles.DocTextStyle,
		muted:     styles.DocMutedStyle,
		total:     styles.DocTotalStyle.Foreground(accent),
		rule:      lipgloss.NewStyle().Foreground(accent),
		handle:    styles.DocHandleStyle,
		disabled:  styles.DisabledStyle,
		watermark: styles.DocWatermarkStyle,
		header:    lipgloss.NewStyle().Foreground(styles.ColorBackground).Background(accent).Bold(true),
		markdown: func(content string, width int) ([]string, bool) {
			return m.markdown(accent, content, width)
		},
	}
}

// markdown renders content with glamour, falling back to wrapped plain text
// when rendering fails.
func (m Modern) markdown(accent lipgloss.Color, content string, width int) ([]string, bool) {
	key := glamourKey{accent: accent, width: width}
	r, err := m.renderers.GetOrCreate(key, func() (*glamour.TermRenderer, error) {
		return glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle(accent)),
			glamour.WithWordWrap(width),
		)
	})
	if err != nil {
		log.Warn().Err(err).Msg("create markdown renderer")
		return plainMarkdown(content, width)
	}

	out, err := r.Render(content)
	if err != nil {
		log.Warn().Err(err).Msg("render markdown")
		return plainMarkdown(content, width)
	}
	out = strings.Trim(out, "\n")
	return strings.Split(out, "\n"), true
}

func (m Modern) Render(in Input) Frame {
	w := in.width()
	accent := styles.Accent(in.Invoice.Styling.PrimaryColor)
	th := m.theme(accent)
	d := &doc{b: newBuilder(w), th: th, in: in}
	inv := in.Invoice

	banner := th.header
	d.b.region(document.InvoiceInfoTarget(), func() {
		half := w / 2
		d.b.line(
			d.b.span(banner, fit(" INVOICE", half, document.AlignLeft)),
			d.b.span(banner, fit("#"+inv.Number+" ", w-half, document.AlignRight)),
		)
		d.b.aligned(th.label, "Issued "+Date(inv.IssueDate)+"  ·  Due "+Date(inv.DueDate), document.AlignRight)
	})
	d.b.blank()

	d.logo()

	left := w / 2
	from := d.party(document.IssuerTarget(), "FROM", inv.Issuer, left)
	to := d.party(document.ClientTarget(), "BILL TO", inv.Client, w-left)
	d.b.columns(from, to, left)
	d.b.blank()

	d.watermark()
	d.blocks()

	return d.b.frame()
}
