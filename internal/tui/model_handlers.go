package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/folio/internal/core/codec"
	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/eventbus"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/internal/core/notify"
	"github.com/colonyops/folio/internal/tui/components"
)

// Answers of the quit modal.
const (
	quitSave    = "s"
	quitDiscard = "d"
)

const (
	headerHeight = 1
	statusHeight = 1
	// previewGutter separates the preview from the panel.
	previewGutter = 1
)

// previewWidth is the width of the preview column including its gutter.
func (m Model) previewWidth() int {
	share := m.cfg.Editor.PreviewWidth
	if share <= 0 || share >= 100 {
		share = config.DefaultConfig().Editor.PreviewWidth
	}
	return m.width * share / 100
}

func (m Model) frameWidth() int {
	return max(1, m.previewWidth()-previewGutter)
}

func (m Model) bodyHeight() int {
	return max(1, m.height-headerHeight-statusHeight)
}

func (m Model) panelWidth() int {
	return max(1, m.width-m.previewWidth())
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.preview.Width = m.frameWidth()
	m.preview.Height = m.bodyHeight()
	m.help.Width = m.width
	if m.form != nil {
		m.form = m.form.WithWidth(min(formWidth, m.panelWidth()-4))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.form != nil:
		if msg.Type == tea.KeyEsc {
			m.form, m.formApply = nil, nil
			return m, nil
		}
		return m.updateForm(msg)

	case m.chooser != nil:
		mode, cancelled := m.chooser.Update(msg)
		if cancelled {
			m.store.CancelChoice()
			m.chooser = nil
			return m, nil
		}
		if mode.IsValid() {
			m.chooser = nil
			return m, m.handleOutcome(m.store.ChooseMode(mode))
		}
		return m, nil

	case m.input != nil:
		cmd, done, err := m.input.update(msg)
		if done {
			m.input = nil
			return m, tea.Batch(cmd, m.rejected(err))
		}
		return m, cmd

	case m.helpDialog != nil:
		switch msg.String() {
		case "esc", "?", "q", "enter":
			m.helpDialog = nil
		}
		return m, nil

	case m.confirm != nil:
		next, _ := m.confirm.Update(msg)
		switch {
		case next.Chosen() == quitDiscard:
			m.confirm = nil
			return m, tea.Quit
		case next.Chosen() == quitSave:
			m.confirm = nil
			m.quitAfterSave = true
			return m, m.save()
		case next.Cancelled():
			m.confirm = nil
		default:
			m.confirm = &next
		}
		return m, nil
	}

	if msg.Type == tea.KeyEsc {
		m.panel.collapse()
		return m, nil
	}

	action, ok := m.keys.Action(msg)
	if !ok || action == "" {
		return m, nil
	}
	return m.dispatchAction(action)
}

// dispatchAction runs a global action, or the action of the row under the
// cursor.
func (m Model) dispatchAction(action string) (tea.Model, tea.Cmd) {
	panel := m.store.ActivePanel()

	switch action {
	case config.ActionQuit:
		if m.Dirty() {
			c := m.quitModal()
			m.confirm = &c
			return m, nil
		}
		return m, tea.Quit
	case config.ActionSave:
		return m, m.save()
	case config.ActionNextPanel:
		m.switchPanel(1)
		return m, nil
	case config.ActionPrevPanel:
		m.switchPanel(-1)
		return m, nil
	case config.ActionUp, config.ActionDown:
		delta := 1
		if action == config.ActionUp {
			delta = -1
		}
		n := len(m.rowsFor(panel, m.store.Snapshot()))
		m.panel.move(panel, delta, n)
		return m, nil
	case config.ActionNextTemplate:
		return m, m.nextTemplate()
	case config.ActionToggleHelp:
		m.helpDialog = components.NewHelpDialog("Keybindings", m.keys.HelpSections())
		return m, nil
	}

	rows := m.rowsFor(panel, m.store.Snapshot())
	var run rowAction
	if len(rows) > 0 {
		run = rows[m.panel.cursor(panel, len(rows))].on[action]
	}
	if run == nil {
		run = m.panelFallback(panel, action)
	}
	if run == nil {
		return m, nil
	}
	cmd := run()
	m.clampCursor()
	return m, cmd
}

// quitModal asks what to do with unsaved changes. Saving is only offered
// when the draft has a path.
func (m Model) quitModal() components.ChoiceModal {
	choices := []components.Choice{{Key: quitDiscard, Label: "discard and quit"}}
	if m.path != "" {
		choices = append([]components.Choice{{Key: quitSave, Label: "save and quit"}}, choices...)
	}
	return components.NewChoiceModal("Unsaved changes", choices...)
}

func (m *Model) switchPanel(delta int) {
	panels := navigation.Panels
	cur := 0
	for i, p := range panels {
		if p == m.store.ActivePanel() {
			cur = i
		}
	}
	next := (cur + delta + len(panels)) % len(panels)
	m.store.SetActivePanel(panels[next])
}

// clampCursor keeps the active cursor on an existing row after deletions.
func (m *Model) clampCursor() {
	panel := m.store.ActivePanel()
	n := len(m.rowsFor(panel, m.store.Snapshot()))
	m.panel.cursors[panel] = m.panel.cursor(panel, n)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.form != nil || m.input != nil || m.helpDialog != nil || m.confirm != nil {
		return m, nil
	}

	inPreview := msg.X < m.frameWidth() && msg.Y >= headerHeight && msg.Y < headerHeight+m.bodyHeight()
	if !inPreview {
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	target, ok := m.frame.HitTest(msg.X, msg.Y-headerHeight+m.preview.YOffset)
	if !ok {
		return m, nil
	}
	m.log.Debug().
		Str("target", string(target.Kind)).
		Str("block", target.BlockID).
		Msg("preview click")

	// A click replaces a pending choice.
	m.chooser = nil
	return m, m.handleOutcome(m.store.Click(target))
}

// save writes the current snapshot to the draft path.
func (m *Model) save() tea.Cmd {
	if m.path == "" {
		return m.notify(notify.LevelWarning, "no file to save to")
	}
	inv := m.store.Snapshot()
	path := m.path
	tmpl := string(m.template)
	return func() tea.Msg {
		t, err := codec.Serialize(inv, tmpl)
		if err == nil {
			err = codec.WriteFile(path, t)
		}
		return savedMsg{path: path, snapshot: inv, err: err}
	}
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.quitAfterSave = false
		m.log.Error().Err(msg.err).Str("path", msg.path).Msg("save failed")
		return m, m.notify(notify.LevelError, "save failed: "+msg.err.Error())
	}

	m.saved = msg.snapshot
	m.log.Info().Str("path", msg.path).Msg("document saved")
	if m.bus != nil {
		m.bus.PublishDocumentSaved(eventbus.DocumentSavedPayload{Path: msg.path})
	}
	if m.quitAfterSave {
		return m, tea.Quit
	}
	if m.bus != nil {
		return m, nil
	}
	return m, m.notify(notify.LevelInfo, "saved "+msg.path)
}

// syncPreview re-renders the document into the preview viewport.
func (m *Model) syncPreview() {
	m.frame = m.renderFrame(m.frameWidth())
	m.preview.SetContent(m.frame.String())
}

// Template returns the template the preview is rendered with.
func (m Model) Template() document.TemplateID {
	return m.template
}
