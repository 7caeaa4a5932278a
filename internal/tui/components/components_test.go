package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestConfirmModal(t *testing.T) {
	m := NewConfirmModal("Discard changes?")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, m.Confirmed())
	assert.False(t, m.Cancelled())

	yes, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")})
	assert.True(t, yes.Confirmed())

	no, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.True(t, no.Cancelled())

	esc, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, esc.Cancelled())
	assert.Empty(t, esc.Chosen())

	assert.Contains(t, ansi.Strip(m.View()), "Discard changes?")
}

func TestChoiceModal(t *testing.T) {
	m := NewChoiceModal("Unsaved changes",
		Choice{Key: "s", Label: "save and quit"},
		Choice{Key: "d", Label: "discard"},
	)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "s save and quit")
	assert.Contains(t, view, "d discard")

	d, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Equal(t, "d", d.Chosen())
	assert.False(t, d.Confirmed())

	enter, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "s", enter.Chosen())
}

func TestHelpDialog_View(t *testing.T) {
	d := NewHelpDialog("Keys", []HelpDialogSection{
		{Title: "General", Entries: []HelpEntry{{Key: "ctrl+s", Desc: "save"}}},
	})

	out := ansi.Strip(d.View())
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "ctrl+s")
	assert.Contains(t, out, "save")
}

func TestHelpDialog_SplitsColumnsWhenTall(t *testing.T) {
	sections := make([]HelpDialogSection, 0, 4)
	for _, title := range []string{"General", "Navigation", "Editing", "Layout"} {
		entries := make([]HelpEntry, 0, 6)
		for _, k := range []string{"a", "b", "c", "d", "e", "f"} {
			entries = append(entries, HelpEntry{Key: k, Desc: title + " " + k})
		}
		sections = append(sections, HelpDialogSection{Title: title, Entries: entries})
	}
	sections = append(sections, HelpDialogSection{Title: "Empty"})
	d := NewHelpDialog("Keys", sections)

	single := ansi.Strip(d.View())
	assert.NotContains(t, single, "Empty")

	bg := strings.Repeat(strings.Repeat(" ", 120)+"\n", 29) + strings.Repeat(" ", 120)
	split := ansi.Strip(d.Overlay(bg, 120, 30))
	var both bool
	for _, line := range strings.Split(split, "\n") {
		if strings.Contains(line, "General") && strings.Contains(line, "Editing") {
			both = true
		}
	}
	assert.True(t, both, "sections laid out side by side")
}

func TestPad(t *testing.T) {
	assert.Empty(t, Pad(-1))
	assert.Equal(t, "   ", Pad(3))
	assert.Len(t, Pad(250), 250)
}
