package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/internal/render"
	"github.com/colonyops/folio/internal/tui/components"
)

// renderFrame renders the document for the preview. Unknown templates fall
// back to classic.
func (m Model) renderFrame(width int) render.Frame {
	r, err := render.Lookup(m.template)
	if err != nil {
		r, _ = render.Lookup("")
	}
	in := render.NewInput(m.store, width)
	in.Editing = true
	if m.watermark {
		in.Watermark = m.cfg.WatermarkText
	}
	return r.Render(in)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	preview := lipgloss.NewStyle().
		Width(m.previewWidth()).
		Height(m.bodyHeight()).
		Render(m.preview.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, preview, m.renderPanel())
	out := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderStatus())

	switch {
	case m.chooser != nil:
		out = m.chooser.Overlay(out, m.width, m.height)
	case m.helpDialog != nil:
		out = m.helpDialog.Overlay(out, m.width, m.height)
	case m.confirm != nil:
		box := styles.ModalStyle.Render(m.confirm.View())
		x, y := components.Center(lipgloss.Width(box), lipgloss.Height(box), m.width, m.height)
		out = components.PlaceOverlay(x, y, box, out)
	}
	return m.toastView.Overlay(out, m.width, m.height)
}

func (m Model) renderHeader() string {
	inv := m.store.Snapshot()
	title := styles.CommandHeaderStyle.Render(styles.IconInvoice + " " + inv.Number)
	meta := styles.HelpStyle.Render("  " + string(m.template))
	if m.Dirty() {
		meta += styles.StatusDirtyStyle.Render("  ● modified")
	}
	return lipgloss.NewStyle().Width(m.width).MaxHeight(headerHeight).Render(title + meta)
}

func (m Model) renderTabs() string {
	active := m.store.ActivePanel()
	tabs := make([]string, 0, len(navigation.Panels))
	for _, p := range navigation.Panels {
		label := panelTitle(p)
		if p == active {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func panelTitle(p navigation.Panel) string {
	switch p {
	case navigation.PanelInfo:
		return "Info"
	case navigation.PanelItems:
		return "Items"
	case navigation.PanelBlocks:
		return "Blocks"
	case navigation.PanelDesign:
		return "Design"
	}
	return string(p)
}

func (m Model) renderPanel() string {
	width := m.panelWidth()
	inner := max(1, width-4) // border and padding
	height := max(1, m.bodyHeight()-2)

	var content string
	if m.form != nil {
		content = m.form.View()
	} else {
		content = m.renderRows(inner, height-2)
	}

	style := styles.PanelStyle
	if m.form != nil || m.input != nil {
		style = styles.PanelFocusedStyle
	}
	return style.
		Width(width - 2).
		Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", content))
}

// renderRows renders the rows of the active panel, scrolled so the cursor
// stays visible.
func (m Model) renderRows(width, height int) string {
	panel := m.store.ActivePanel()
	rows := m.rowsFor(panel, m.store.Snapshot())
	if len(rows) == 0 {
		hint := "Nothing here yet."
		if keys := m.keys.Keys(config.ActionAdd); len(keys) > 0 {
			hint += " Press " + displayKey(keys[0]) + " to add one."
		}
		return styles.HelpStyle.Render(hint)
	}

	cursor := m.panel.cursor(panel, len(rows))
	pulseRow := -1
	if m.pulse.Active() && panel.Owns(m.pulse.Target()) {
		pulseRow = findFocusRow(rows, m.pulse.Target())
	}

	var lines []string
	cursorLine := 0
	group := ""
	for i, r := range rows {
		if r.group != "" && r.group != group {
			group = r.group
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.DocLabelStyle.Render(strings.ToUpper(group)))
		}
		if i == cursor {
			cursorLine = len(lines)
			if m.input != nil {
				lines = append(lines, strings.Split(m.input.view(width), "\n")...)
				continue
			}
		}
		lines = append(lines, m.renderRow(r, width, i == cursor, i == pulseRow))
	}

	start := 0
	if cursorLine >= height {
		start = cursorLine - height + 1
	}
	end := min(len(lines), start+height)
	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderRow(r row, width int, selected, pulsing bool) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.indent))
	if r.checked != nil {
		if *r.checked {
			b.WriteString(styles.IconChecked + " ")
		} else {
			b.WriteString(styles.IconUnchecked + " ")
		}
	}
	b.WriteString(r.label)
	if r.locked {
		b.WriteString(" " + styles.IconLock)
	}

	label := b.String()
	value := r.value
	gap := width - lipgloss.Width(label) - lipgloss.Width(value)
	if gap < 1 {
		value = ansi.Truncate(value, max(0, width-lipgloss.Width(label)-1), "…")
		gap = max(1, width-lipgloss.Width(label)-lipgloss.Width(value))
	}
	line := label + components.Pad(gap) + value

	style := styles.CommandStyle
	if r.muted {
		style = styles.DisabledStyle
	}
	switch {
	case pulsing:
		style = style.Background(m.pulse.Color(m.now()))
	case selected:
		style = styles.CursorStyle
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func (m Model) renderStatus() string {
	left := m.path
	if left == "" {
		left = "unsaved draft"
	}
	left = styles.HelpStyle.Render(left)
	if warnings := m.store.Warnings(); len(warnings) > 0 {
		left += "  " + styles.StatusWarningStyle.Render(styles.IconWarning+" "+warnings[0].String())
	}

	help := m.help.ShortHelpView(m.keys.KeyBindings(
		config.ActionSave,
		config.ActionEdit,
		config.ActionToggle,
		config.ActionAdd,
		config.ActionDelete,
		config.ActionToggleHelp,
		config.ActionQuit,
	))

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(help)-2)
	return styles.StatusBarStyle.MaxWidth(m.width).Render(left + components.Pad(gap) + help)
}
