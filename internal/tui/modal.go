package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/internal/tui/components"
)

// ModeChooser asks whether a click on a table edits its content or its
// layout.
type ModeChooser struct {
	target   document.ClickTarget
	selected document.EditMode
}

// NewModeChooser returns a chooser for target with content preselected.
func NewModeChooser(target document.ClickTarget) *ModeChooser {
	return &ModeChooser{target: target, selected: document.ModeContent}
}

// Target returns the click target awaiting the choice.
func (c *ModeChooser) Target() document.ClickTarget {
	return c.target
}

// Selected returns the highlighted mode.
func (c *ModeChooser) Selected() document.EditMode {
	return c.selected
}

// Update handles a key. It returns the chosen mode once confirmed, and
// cancelled when the chooser was dismissed.
func (c *ModeChooser) Update(msg tea.KeyMsg) (mode document.EditMode, cancelled bool) {
	switch msg.String() {
	case "left", "right", "tab", "shift+tab":
		if c.selected == document.ModeContent {
			c.selected = document.ModeLayout
		} else {
			c.selected = document.ModeContent
		}
	case "c":
		return document.ModeContent, false
	case "l":
		return document.ModeLayout, false
	case "enter":
		return c.selected, false
	case "esc", "q":
		return document.ModeUnset, true
	}
	return document.ModeUnset, false
}

func (c *ModeChooser) title() string {
	if c.target.Kind == document.TargetItemsTable {
		return "Edit invoice items"
	}
	return "Edit table"
}

// View renders the chooser box.
func (c *ModeChooser) View() string {
	button := func(mode document.EditMode, label string) string {
		if c.selected == mode {
			return styles.ModalButtonSelectedStyle.Render(label)
		}
		return styles.ModalButtonStyle.Render(label)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		button(document.ModeContent, "Content"), "  ", button(document.ModeLayout, "Layout"))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(c.title()),
		"",
		"Edit the rows or the columns?",
		lipgloss.NewStyle().MarginTop(1).Render(buttons),
		styles.ModalHelpStyle.Render("c content  l layout  enter confirm  esc cancel"),
	)
	return styles.ModalStyle.Render(content)
}

// Overlay renders the chooser centered over background.
func (c *ModeChooser) Overlay(background string, width, height int) string {
	box := c.View()
	x, y := components.Center(lipgloss.Width(box), lipgloss.Height(box), width, height)
	return components.PlaceOverlay(x, y, box, background)
}
