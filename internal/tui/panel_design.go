package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/internal/core/validate"
	"github.com/colonyops/folio/internal/render"
)

var (
	logoPositions = []document.LogoPosition{document.LogoLeft, document.LogoCenter, document.LogoRight}
	logoSizes     = []document.LogoSize{document.LogoSmall, document.LogoMedium, document.LogoLarge}
)

// cycle returns the element after cur in list, wrapping around. Unknown
// values restart at the first element.
func cycle[T comparable](list []T, cur T) T {
	i := slices.Index(list, cur)
	return list[(i+1)%len(list)]
}

func (m *Model) designRows(inv *document.Invoice) []row {
	styling := inv.Styling
	logo := inv.Logo

	setStyling := func(field func(s *document.Styling) *string) func(string) error {
		return func(v string) error {
			st := styling
			*field(&st) = strings.TrimSpace(v)
			return m.store.SetStyling(st)
		}
	}
	setLogo := func(fn func(l *document.Logo)) rowAction {
		return m.act(func() error {
			l := logo
			fn(&l)
			return m.store.SetLogo(l)
		})
	}
	design := func(group, label, value string, on map[string]rowAction) row {
		return row{kind: rowField, group: group, label: label, value: value, on: on}
	}

	logoRef := logo.Ref
	if logoRef == "" {
		logoRef = "none"
	}
	logoRow := func(label, value string, on map[string]rowAction) row {
		r := design("Logo", label, value, on)
		r.section = document.FocusLogo
		return r
	}

	watermark := "off"
	if m.watermark {
		watermark = m.cfg.WatermarkText
	}

	return []row{
		design("Document", "Template", string(m.template), map[string]rowAction{
			config.ActionEdit:   m.nextTemplate,
			config.ActionToggle: m.nextTemplate,
		}),
		design("Document", "Primary color", styling.PrimaryColor, map[string]rowAction{
			config.ActionEdit: m.editField("Primary color", styling.PrimaryColor, validate.HexColor,
				setStyling(func(s *document.Styling) *string { return &s.PrimaryColor })),
		}),
		design("Document", "Accent color", styling.AccentColor, map[string]rowAction{
			config.ActionEdit: m.editField("Accent color", styling.AccentColor, validate.HexColor,
				setStyling(func(s *document.Styling) *string { return &s.AccentColor })),
		}),
		design("Document", "Font", styling.Font, map[string]rowAction{
			config.ActionEdit: m.editField("Font", styling.Font, nil, setStyling(func(s *document.Styling) *string { return &s.Font })),
		}),
		logoRow("Image", logoRef, map[string]rowAction{
			config.ActionEdit: m.editField("Logo", logo.Ref, nil, func(v string) error {
				l := logo
				l.Ref = strings.TrimSpace(v)
				return m.store.SetLogo(l)
			}),
			config.ActionDelete: setLogo(func(l *document.Logo) { l.Ref = "" }),
		}),
		logoRow("Position", string(logo.Position), map[string]rowAction{
			config.ActionToggle: setLogo(func(l *document.Logo) { l.Position = cycle(logoPositions, l.Position) }),
			config.ActionEdit:   setLogo(func(l *document.Logo) { l.Position = cycle(logoPositions, l.Position) }),
		}),
		logoRow("Size", string(logo.Size), map[string]rowAction{
			config.ActionToggle: setLogo(func(l *document.Logo) { l.Size = cycle(logoSizes, l.Size) }),
			config.ActionEdit:   setLogo(func(l *document.Logo) { l.Size = cycle(logoSizes, l.Size) }),
		}),
		design("Preview", "Watermark", watermark, map[string]rowAction{
			config.ActionToggle: m.toggleWatermark,
			config.ActionEdit:   m.toggleWatermark,
		}),
		design("Preview", "Theme", m.theme, map[string]rowAction{
			config.ActionToggle: m.nextTheme,
			config.ActionEdit:   m.nextTheme,
		}),
	}
}

func (m *Model) nextTemplate() tea.Cmd {
	m.template = cycle(render.IDs(), m.template)
	return nil
}

func (m *Model) toggleWatermark() tea.Cmd {
	m.watermark = !m.watermark
	return nil
}

// nextTheme switches the editor palette. The document colors are part of
// the styling and do not change with it.
func (m *Model) nextTheme() tea.Cmd {
	name := cycle(styles.ThemeNames(), m.theme)
	p, ok := styles.GetPalette(name)
	if !ok {
		return nil
	}
	styles.SetTheme(p)
	m.theme = name
	return nil
}
