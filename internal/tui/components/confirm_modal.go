package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/styles"
)

// Choice is one answer of a ChoiceModal, picked by pressing Key.
type Choice struct {
	Key   string
	Label string
}

// ChoiceModal asks a question with a fixed set of single key answers. Esc
// cancels.
type ChoiceModal struct {
	message   string
	choices   []Choice
	chosen    string
	cancelled bool
}

// NewChoiceModal creates a modal for message. The first choice is also
// picked by enter.
func NewChoiceModal(message string, choices ...Choice) ChoiceModal {
	return ChoiceModal{message: message, choices: choices}
}

// NewConfirmModal creates a yes/no modal.
func NewConfirmModal(message string) ChoiceModal {
	return NewChoiceModal(message, Choice{Key: "y", Label: "yes"}, Choice{Key: "n", Label: "no"})
}

// Update handles input for the modal.
func (m ChoiceModal) Update(msg tea.Msg) (ChoiceModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := strings.ToLower(keyMsg.String())
	switch key {
	case "esc":
		m.cancelled = true
		return m, nil
	case "enter":
		if len(m.choices) > 0 {
			m.chosen = m.choices[0].Key
		}
		return m, nil
	}

	for _, c := range m.choices {
		if c.Key == key {
			m.chosen = c.Key
		}
	}
	return m, nil
}

// View renders the modal.
func (m ChoiceModal) View() string {
	opts := make([]string, 0, len(m.choices))
	for _, c := range m.choices {
		opts = append(opts, styles.CommandHeaderStyle.Render(c.Key)+" "+styles.HelpStyle.Render(c.Label))
	}
	return styles.ModalTitleStyle.Render(m.message) + "\n" + strings.Join(opts, "  ")
}

// Chosen returns the key of the picked choice, or "" while undecided.
func (m ChoiceModal) Chosen() string {
	return m.chosen
}

// Confirmed reports whether "y" was picked.
func (m ChoiceModal) Confirmed() bool {
	return m.chosen == "y"
}

// Cancelled reports whether the modal was dismissed or "n" was picked.
func (m ChoiceModal) Cancelled() bool {
	return m.cancelled || m.chosen == "n"
}
