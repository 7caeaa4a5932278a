// Package tui implements the interactive invoice editor: a clickable
// preview of the rendered document next to the editing panels.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/editor"
	"github.com/colonyops/folio/internal/core/eventbus"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/internal/core/notify"
	"github.com/colonyops/folio/internal/render"
	"github.com/colonyops/folio/internal/tui/components"
)

// Options configures the editor model.
type Options struct {
	Store  *editor.Store
	Config *config.Config
	// Bus may be nil. Without a bus, rejected actions are reported directly.
	Bus *eventbus.EventBus
	// Path is the draft file ctrl+s writes to. Empty disables saving.
	Path     string
	Template document.TemplateID
	// History keeps every notification shown as a toast. May be nil.
	History notify.Store
	// Buffer receives notifications published on Bus. May be nil.
	Buffer *NotificationBuffer
	Logger zerolog.Logger
	// Now is the clock used for pulses. Defaults to time.Now.
	Now func() time.Time
}

// Model is the editor's bubbletea model.
type Model struct {
	store    *editor.Store
	cfg      *config.Config
	bus      *eventbus.EventBus
	keys     KeyMap
	log      zerolog.Logger
	now      func() time.Time
	path     string
	template document.TemplateID
	theme    string
	history  notify.Store
	buffer   *NotificationBuffer

	width, height int
	preview       viewport.Model
	frame         render.Frame
	help          help.Model

	panel     *panelState
	watermark bool

	pulse     *PulseController
	toasts    *ToastController
	toastView *ToastView

	chooser    *ModeChooser
	input      *fieldEditor
	form       *huh.Form
	formApply  func() error
	helpDialog *components.HelpDialog
	confirm    *components.ChoiceModal

	saved *document.Invoice
	// quitAfterSave quits once the pending save succeeds.
	quitAfterSave bool
}

// New returns an editor model for opts.Store.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		d := config.DefaultConfig()
		d.Keybindings = config.DefaultKeybindings()
		cfg = &d
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tmplID := opts.Template
	if tmplID == "" {
		tmplID = document.TemplateID(cfg.Template)
	}

	toasts := NewToastController(0)
	m := Model{
		store:     opts.Store,
		cfg:       cfg,
		bus:       opts.Bus,
		keys:      NewKeyMap(cfg.Keybindings),
		log:       opts.Logger,
		now:       now,
		path:      opts.Path,
		template:  tmplID,
		theme:     cfg.Theme,
		history:   opts.History,
		buffer:    opts.Buffer,
		preview:   viewport.New(0, 0),
		help:      help.New(),
		panel:     newPanelState(),
		watermark: cfg.Watermark,
		pulse:     NewPulseController(cfg.HighlightDuration),
		toasts:    toasts,
		toastView: NewToastView(toasts),
		saved:     opts.Store.Snapshot(),
	}
	m.preview.MouseWheelEnabled = true
	return m
}

// Dirty reports whether the document changed since it was opened or saved.
func (m Model) Dirty() bool {
	return m.store.Snapshot() != m.saved
}

func (m Model) Init() tea.Cmd {
	if m.buffer == nil {
		return nil
	}
	return m.buffer.WaitForSignal()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if nm, ok := next.(Model); ok {
		nm.syncPreview()
		return nm, cmd
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pulseTickMsg:
		return m.handlePulseTick(msg)
	case toastTickMsg:
		return m.handleToastTick(msg)
	case drainNotificationsMsg:
		return m.handleDrainNotifications()
	case savedMsg:
		return m.handleSaved(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

type savedMsg struct {
	path     string
	snapshot *document.Invoice
	err      error
}

type drainNotificationsMsg struct{}

// notify shows a toast and records it in the history.
func (m *Model) notify(level notify.Level, msg string) tea.Cmd {
	n := notify.Notification{Level: level, Message: msg, CreatedAt: m.now()}
	if m.history != nil {
		if _, err := m.history.Save(context.Background(), n); err != nil {
			m.log.Warn().Err(err).Msg("save notification")
		}
	}
	m.toasts.Push(n)
	return m.ensureToastTick()
}

// rejected reports an error returned by a store action. With a bus the
// store has already published it and the notification router turns it into
// a toast.
func (m *Model) rejected(err error) tea.Cmd {
	if err == nil || m.bus != nil {
		return nil
	}
	return m.notify(notify.LevelWarning, err.Error())
}

// ensureToastTick starts the toast tick chain unless one is running.
func (m *Model) ensureToastTick() tea.Cmd {
	if !m.toasts.HasToasts() || m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.toasts.Tick(toastTickInterval)
	if m.toasts.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toasts.SetTicking(false)
	return m, nil
}

func (m Model) handleDrainNotifications() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, n := range m.buffer.Drain() {
		cmds = append(cmds, m.notify(n.Level, n.Message))
	}
	cmds = append(cmds, m.buffer.WaitForSignal())
	return m, tea.Batch(cmds...)
}

func (m Model) handlePulseTick(msg pulseTickMsg) (tea.Model, tea.Cmd) {
	seq, done, cmd := m.pulse.Tick(msg)
	if done {
		m.store.ClearFocus(seq)
	}
	return m, cmd
}

// focusRoute moves the cursor of the dispatched panel to the focused element
// and starts its highlight pulse.
func (m *Model) focusRoute(route navigation.Route) tea.Cmd {
	inv := m.store.Snapshot()
	if route.Focus.Section == document.FocusBlock && route.Focus.Mode.IsValid() {
		m.panel.expand(route.Focus.BlockID, route.Focus.Mode)
	}
	rows := m.rowsFor(route.Panel, inv)
	if i := findFocusRow(rows, route.Focus); i >= 0 {
		m.panel.cursors[route.Panel] = i
	}
	if m.cfg.HighlightDuration <= 0 {
		m.store.ClearFocus(route.Focus.Seq)
		return nil
	}
	return m.pulse.Start(route.Focus, m.now())
}

// handleOutcome reacts to a navigation outcome of a click or mode choice.
func (m *Model) handleOutcome(out navigation.Outcome) tea.Cmd {
	switch {
	case out.Dispatched:
		m.chooser = nil
		return m.focusRoute(out.Route)
	case out.AwaitingChoice:
		m.chooser = NewModeChooser(out.Pending)
	}
	return nil
}
