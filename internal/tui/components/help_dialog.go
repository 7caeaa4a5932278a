// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/folio/internal/core/styles"
)

// HelpEntry is one key and what it does.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog lists the active keybindings. Sections flow into a second
// column when one column would not fit the screen.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
	keyWidth int
}

// NewHelpDialog creates a help dialog. Sections without entries are skipped.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	h := &HelpDialog{title: title}
	for _, s := range sections {
		if len(s.Entries) == 0 {
			continue
		}
		h.sections = append(h.sections, s)
		for _, e := range s.Entries {
			h.keyWidth = max(h.keyWidth, lipgloss.Width(e.Key))
		}
	}
	return h
}

// View renders the dialog in a single column.
func (h *HelpDialog) View() string {
	return h.render(0)
}

// Overlay renders the dialog centered over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.render(height)
	x, y := Center(lipgloss.Width(modal), lipgloss.Height(modal), width, height)
	return PlaceOverlay(x, y, modal, background)
}

// chromeLines is the height of the title, spacing, footer and modal border.
const chromeLines = 6

func (h *HelpDialog) render(maxHeight int) string {
	blocks := make([]string, len(h.sections))
	total := 0
	for i, s := range h.sections {
		blocks[i] = h.section(s)
		total += lipgloss.Height(blocks[i]) + 1
	}

	var body string
	if maxHeight > 0 && total+chromeLines > maxHeight && len(blocks) > 1 {
		split := splitHalf(blocks, total)
		left := strings.Join(blocks[:split], "\n\n")
		right := strings.Join(blocks[split:], "\n\n")
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	} else {
		body = strings.Join(blocks, "\n\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(h.title),
		"",
		body,
		styles.ModalHelpStyle.Render("esc/? close"),
	)
	return styles.ModalStyle.Render(content)
}

func (h *HelpDialog) section(s HelpDialogSection) string {
	lines := make([]string, 0, len(s.Entries)+2)
	if s.Title != "" {
		lines = append(lines,
			styles.CommandHeaderStyle.Render(s.Title),
			styles.DividerStyle.Render(strings.Repeat("─", h.keyWidth+14)),
		)
	}
	for _, e := range s.Entries {
		key := e.Key + Pad(h.keyWidth+2-lipgloss.Width(e.Key))
		lines = append(lines, styles.CommandHeaderStyle.Render(key)+styles.CommandStyle.Render(e.Desc))
	}
	return strings.Join(lines, "\n")
}

// splitHalf returns the index that divides blocks into two columns of
// roughly equal height.
func splitHalf(blocks []string, total int) int {
	acc := 0
	for i, b := range blocks {
		acc += lipgloss.Height(b) + 1
		if acc*2 >= total {
			return max(1, min(i+1, len(blocks)-1))
		}
	}
	return len(blocks) - 1
}
