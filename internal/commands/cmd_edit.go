package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/editor"
	"github.com/colonyops/folio/internal/core/eventbus"
	"github.com/colonyops/folio/internal/core/logging"
	"github.com/colonyops/folio/internal/core/notify"
	"github.com/colonyops/folio/internal/store/jsonfile"
	"github.com/colonyops/folio/internal/tui"
	"github.com/colonyops/folio/pkg/iojson"
	"github.com/colonyops/folio/pkg/profiler"
	"github.com/colonyops/folio/pkg/utils"
)

// notificationHistory bounds the notifications kept per editing session.
const notificationHistory = 200

type EditCmd struct {
	flags *Flags

	// flags
	template     string
	noMouse      bool
	profilerPort int
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Flags returns the editor flags for registration on the root command
func (cmd *EditCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "template",
			Aliases:     []string{"t"},
			Usage:       "template to preview with (overrides the draft's template)",
			Destination: &cmd.template,
		},
		&cli.BoolFlag{
			Name:        "no-mouse",
			Usage:       "disable mouse support in the preview",
			Sources:     cli.EnvVars("FOLIO_NO_MOUSE"),
			Destination: &cmd.noMouse,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof and document debug endpoints on localhost at this port (e.g., 6060)",
			Sources:     cli.EnvVars("FOLIO_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Open a draft in the interactive editor",
		UsageText: "folio edit [options] [file]",
		Description: `Opens the invoice editor: a live preview of the document on the left and
the editing panels on the right.

Click anything in the preview to jump to the field that controls it. When
a file is given but does not exist yet, a new draft is created and saved
there on ctrl+s. Without a file the draft is saved to the drafts directory.`,
		Flags:         cmd.Flags(),
		ShellComplete: DraftCompleter(cmd.flags),
		Action:        cmd.Run,
	})

	return app
}

// Run executes the editor. Exported for use as default command.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	inv, tmplID, path, err := openDraft(cfg, c.Args().First(), time.Now())
	if err != nil {
		return err
	}
	if cmd.template != "" {
		tmplID = document.TemplateID(cmd.template)
	}
	if !tmplID.IsValid() {
		return fmt.Errorf("unknown template %q", tmplID)
	}

	ctx, cancel := context.WithCancel(logging.WithInvoiceID(ctx, inv.ID))
	defer cancel()
	log := logging.Component("edit")
	log.Info().Ctx(ctx).Str("path", path).Str("template", string(tmplID)).Msg("opening editor")

	bus := cmd.flags.Bus
	store := editor.New(inv, bus, logging.Component("store"), newID)

	buffer := tui.NewNotificationBuffer()
	if bus != nil {
		buffer.Attach(bus)
	}

	if cmd.profilerPort > 0 {
		if err := startProfiler(ctx, cmd.profilerPort, store); err != nil {
			return err
		}
	}

	m := tui.New(tui.Options{
		Store:    store,
		Config:   cfg,
		Bus:      bus,
		Path:     path,
		Template: tmplID,
		History:  notify.NewMemoryStore(notificationHistory),
		Buffer:   buffer,
		Logger:   logging.Component("editor"),
	})

	// Anything printed while the alternate screen is up is lost; hold it
	// until the program exits.
	var deferred utils.DeferredWriter
	for _, w := range cfg.Warnings() {
		deferred.Printf("warning: %s: %s", w.Category, w.Message)
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !cfg.Editor.DisableMouse && !cmd.noMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if bus != nil {
		bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
			if p.Level != notify.LevelInfo {
				deferred.Printf("%s: %s", p.Level, p.Message)
			}
		})
		stop := watchDraft(ctx, bus, path)
		defer stop()
		bus.PublishEditorStarted(eventbus.EditorStartedPayload{InvoiceID: inv.ID})
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if bus != nil {
		bus.PublishEditorStopped(eventbus.EditorStoppedPayload{})
	}
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	if fm, ok := final.(tui.Model); ok && fm.Dirty() {
		deferred.Printf("unsaved changes to %s were discarded", path)
	}
	return deferred.Flush(os.Stderr)
}

// watchDraft publishes DraftChangedOnDisk whenever another program rewrites
// path while the editor is open. Saves made by the editor are not reported.
func watchDraft(ctx context.Context, bus *eventbus.EventBus, path string) func() {
	log := logging.Component("watcher")

	w, err := jsonfile.NewDraftWatcher(filepath.Dir(path))
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("draft watcher unavailable")
		return func() {}
	}
	w.MarkSaved(path)
	bus.SubscribeDocumentSaved(func(p eventbus.DocumentSavedPayload) {
		w.MarkSaved(p.Path)
	})

	events, err := w.Watch(ctx, filepath.Base(path))
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("draft watcher unavailable")
		_ = w.Close()
		return func() {}
	}

	go func() {
		for ev := range events {
			log.Debug().Str("path", ev.Path).Msg("draft changed on disk")
			bus.PublishDraftChangedOnDisk(eventbus.DraftChangedOnDiskPayload{Path: ev.Path})
		}
	}()

	return func() { _ = w.Close() }
}

// startProfiler serves pprof plus the current document and its totals as
// JSON. The server stops with ctx.
func startProfiler(ctx context.Context, port int, store *editor.Store) error {
	log := logging.Component("profiler")
	srv := profiler.New(port, log)
	srv.Handle("/debug/document", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = iojson.WriteLine(w, map[string]any{
			"invoice": store.Snapshot(),
			"totals":  store.Totals(),
		})
	}))
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start profiler: %w", err)
	}
	log.Info().Str("url", fmt.Sprintf("http://%s/debug/pprof/", srv.Addr())).Msg("profiler endpoint available")
	return nil
}
