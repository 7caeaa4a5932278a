package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/styles"
)

// fieldEditor edits a single text value in place of a panel row.
type fieldEditor struct {
	label    string
	input    textinput.Model
	validate func(string) error
	set      func(string) error
	err      error
}

func newFieldEditor(label, value string, validate func(string) error, set func(string) error) *fieldEditor {
	ti := textinput.New()
	ti.Prompt = label + ": "
	ti.PromptStyle = styles.FormFieldFocusedStyle
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return &fieldEditor{label: label, input: ti, validate: validate, set: set}
}

// editField returns a row action opening an inline editor.
func (m *Model) editField(label, value string, validate func(string) error, set func(string) error) rowAction {
	return func() tea.Cmd {
		m.input = newFieldEditor(label, value, validate, set)
		return textinput.Blink
	}
}

// update handles a key for the editor. done is set once the value was
// committed or the edit was cancelled.
func (f *fieldEditor) update(msg tea.KeyMsg) (cmd tea.Cmd, done bool, err error) {
	switch msg.Type { //nolint:exhaustive // remaining keys go to the text input
	case tea.KeyEsc:
		return nil, true, nil
	case tea.KeyEnter:
		v := f.input.Value()
		if f.validate != nil {
			if err := f.validate(v); err != nil {
				f.err = err
				return nil, false, nil
			}
		}
		return nil, true, f.set(v)
	}

	f.err = nil
	f.input, cmd = f.input.Update(msg)
	return cmd, false, nil
}

func (f *fieldEditor) view(width int) string {
	f.input.Width = max(1, width-len(f.input.Prompt)-1)
	out := f.input.View()
	if f.err != nil {
		out += "\n" + styles.FormErrorStyle.Render(f.err.Error())
	}
	return out
}
