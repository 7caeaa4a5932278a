package tui

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/tui/components"
)

// actionHelp is the help text shown for each editor action.
var actionHelp = map[string]string{
	config.ActionQuit:         "quit",
	config.ActionSave:         "save",
	config.ActionNextPanel:    "next panel",
	config.ActionPrevPanel:    "previous panel",
	config.ActionUp:           "up",
	config.ActionDown:         "down",
	config.ActionMoveUp:       "move up",
	config.ActionMoveDown:     "move down",
	config.ActionToggle:       "toggle",
	config.ActionCycleMode:    "cycle sub-item mode",
	config.ActionEdit:         "edit",
	config.ActionAdd:          "add",
	config.ActionAddChild:     "add sub-item / row",
	config.ActionDelete:       "delete",
	config.ActionLayout:       "table layout",
	config.ActionWiden:        "widen column",
	config.ActionNarrow:       "narrow column",
	config.ActionNextTemplate: "next template",
	config.ActionToggleHelp:   "help",
}

// helpSections groups actions for the help dialog.
var helpSections = []struct {
	title   string
	actions []string
}{
	{"General", []string{config.ActionSave, config.ActionNextTemplate, config.ActionToggleHelp, config.ActionQuit}},
	{"Navigation", []string{config.ActionNextPanel, config.ActionPrevPanel, config.ActionUp, config.ActionDown}},
	{"Editing", []string{
		config.ActionEdit, config.ActionToggle, config.ActionAdd, config.ActionAddChild, config.ActionDelete,
		config.ActionMoveUp, config.ActionMoveDown, config.ActionCycleMode,
	}},
	{"Tables", []string{config.ActionLayout, config.ActionWiden, config.ActionNarrow}},
}

// KeyMap resolves key presses to editor actions.
type KeyMap struct {
	actions map[string]string // key -> action
}

// NewKeyMap builds a key map from the merged keybinding config.
func NewKeyMap(bindings map[string]string) KeyMap {
	return KeyMap{actions: maps.Clone(bindings)}
}

// Action returns the action bound to msg.
func (k KeyMap) Action(msg tea.KeyMsg) (string, bool) {
	a, ok := k.actions[msg.String()]
	return a, ok
}

// Keys returns the keys bound to action, sorted.
func (k KeyMap) Keys(action string) []string {
	var keys []string
	for bound, a := range k.actions {
		if a == action {
			keys = append(keys, bound)
		}
	}
	slices.Sort(keys)
	return keys
}

// KeyBindings returns key.Binding objects for the short help line.
func (k KeyMap) KeyBindings(actions ...string) []key.Binding {
	bindings := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		keys := k.Keys(a)
		if len(keys) == 0 {
			continue
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(displayKey(keys[0]), actionHelp[a]),
		))
	}
	return bindings
}

// HelpSections returns the help dialog contents. Actions without a key are
// left out.
func (k KeyMap) HelpSections() []components.HelpDialogSection {
	sections := make([]components.HelpDialogSection, 0, len(helpSections))
	for _, s := range helpSections {
		section := components.HelpDialogSection{Title: s.title}
		for _, a := range s.actions {
			keys := k.Keys(a)
			if len(keys) == 0 {
				continue
			}
			labels := make([]string, len(keys))
			for i, bound := range keys {
				labels[i] = displayKey(bound)
			}
			section.Entries = append(section.Entries, components.HelpEntry{
				Key:  strings.Join(labels, "/"),
				Desc: actionHelp[a],
			})
		}
		if len(section.Entries) > 0 {
			sections = append(sections, section)
		}
	}
	return sections
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
