package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/editor"
	"github.com/colonyops/folio/internal/core/validate"
	"github.com/colonyops/folio/internal/render"
	"github.com/colonyops/folio/pkg/randid"
)

// partyField is an editable party attribute with an optional visibility
// toggle.
type partyField struct {
	label string
	get   func(p *document.Party) *string
	show  func(p *document.Party) *bool
}

var partyFields = []partyField{
	{label: "Name", get: func(p *document.Party) *string { return &p.Name }},
	{label: "Address", get: func(p *document.Party) *string { return &p.Address }, show: func(p *document.Party) *bool { return &p.Show.Address }},
	{label: "Email", get: func(p *document.Party) *string { return &p.Email }, show: func(p *document.Party) *bool { return &p.Show.Email }},
	{label: "Phone", get: func(p *document.Party) *string { return &p.Phone }, show: func(p *document.Party) *bool { return &p.Show.Phone }},
	{label: "Tax ID", get: func(p *document.Party) *string { return &p.TaxID }, show: func(p *document.Party) *bool { return &p.Show.TaxID }},
}

func (m *Model) infoRows(inv *document.Invoice) []row {
	rows := m.partyRows("Issuer", document.FocusIssuer, inv.Issuer, m.store.UpdateIssuer)
	rows = append(rows, m.partyRows("Client", document.FocusClient, inv.Client, m.store.UpdateClient)...)
	return append(rows, m.invoiceInfoRows(inv)...)
}

func (m *Model) partyRows(group string, section document.FocusSection, party document.Party, update func(document.Party) error) []row {
	// edit applies fn to a private copy of party.
	edit := func(fn func(p *document.Party)) error {
		p := party.Clone()
		fn(&p)
		return update(p)
	}
	addField := m.act(func() error {
		return edit(func(p *document.Party) {
			p.CustomFields = append(p.CustomFields, document.CustomField{
				ID: randid.New(), Label: "Field", Visible: true,
			})
		})
	})

	rows := make([]row, 0, len(partyFields)+len(party.CustomFields))
	for _, f := range partyFields {
		r := row{
			kind:    rowField,
			group:   group,
			section: section,
			label:   f.label,
			value:   strings.ReplaceAll(*f.get(&party), "\n", ", "),
			on:      map[string]rowAction{config.ActionAdd: addField},
		}

		var check func(string) error
		switch f.label {
		case "Name":
			check = validate.PartyName
		case "Phone":
			check = validate.Phone(m.cfg.PhoneRegion)
		}
		r.on[config.ActionEdit] = m.editField(group+" "+strings.ToLower(f.label), *f.get(&party), check, func(v string) error {
			if f.label == "Phone" {
				v = validate.FormatPhone(v, m.cfg.PhoneRegion)
			}
			return edit(func(p *document.Party) { *f.get(p) = v })
		})

		if f.show != nil {
			shown := *f.show(&party)
			r.checked = boolPtr(shown)
			r.on[config.ActionToggle] = m.act(func() error {
				return edit(func(p *document.Party) { *f.show(p) = !shown })
			})
		}
		rows = append(rows, r)
	}

	for i, cf := range party.CustomFields {
		rows = append(rows, row{
			kind:    rowField,
			group:   group,
			section: section,
			label:   cf.Label,
			value:   cf.Value,
			checked: boolPtr(cf.Visible),
			on: map[string]rowAction{
				config.ActionAdd: addField,
				config.ActionToggle: m.act(func() error {
					return edit(func(p *document.Party) { p.CustomFields[i].Visible = !cf.Visible })
				}),
				config.ActionEdit: m.editField(cf.Label, cf.Label+": "+cf.Value, nil, func(v string) error {
					label, value, ok := strings.Cut(v, ":")
					return edit(func(p *document.Party) {
						if ok {
							p.CustomFields[i].Label = strings.TrimSpace(label)
							p.CustomFields[i].Value = strings.TrimSpace(value)
							return
						}
						p.CustomFields[i].Value = strings.TrimSpace(v)
					})
				}),
				config.ActionDelete: m.act(func() error {
					return edit(func(p *document.Party) {
						p.CustomFields = append(p.CustomFields[:i:i], p.CustomFields[i+1:]...)
					})
				}),
			},
		})
	}
	return rows
}

func (m *Model) invoiceInfoRows(inv *document.Invoice) []row {
	info := func(label, value string, edit rowAction) row {
		return row{
			kind:    rowField,
			group:   "Invoice",
			section: document.FocusInvoiceInfo,
			label:   label,
			value:   value,
			on:      map[string]rowAction{config.ActionEdit: edit},
		}
	}
	date := func(label string, v time.Time, patch func(t time.Time) editor.InfoPatch) row {
		return info(label, render.Date(v), m.editField(label, render.Date(v), validate.DateText, func(s string) error {
			t, err := validate.Date(s)
			if err != nil {
				return err
			}
			return m.store.UpdateInfo(patch(t))
		}))
	}

	return []row{
		info("Number", inv.Number, m.editField("Number", inv.Number, nil, func(s string) error {
			s = strings.TrimSpace(s)
			return m.store.UpdateInfo(editor.InfoPatch{Number: &s})
		})),
		date("Issued", inv.IssueDate, func(t time.Time) editor.InfoPatch { return editor.InfoPatch{IssueDate: &t} }),
		date("Due", inv.DueDate, func(t time.Time) editor.InfoPatch { return editor.InfoPatch{DueDate: &t} }),
		info("Currency", inv.Currency, m.editField("Currency", inv.Currency, validate.Currency, m.store.SetCurrency)),
		info("Tax rate", render.Percent(inv.TaxRate), m.editField("Tax rate", strconv.FormatFloat(inv.TaxRate, 'f', -1, 64), validate.TaxRate, func(s string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return err
			}
			return m.store.SetTaxRate(v)
		})),
	}
}
