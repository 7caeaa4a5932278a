package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/folio/internal/core/codec"
	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/editor"
	"github.com/colonyops/folio/internal/core/logging"
	"github.com/colonyops/folio/internal/render"
	"github.com/colonyops/folio/pkg/executil"
	"github.com/colonyops/folio/pkg/iojson"
)

// defaultRenderWidth is used when stdout is not a terminal and no width is
// given.
const defaultRenderWidth = 80

type RenderCmd struct {
	flags *Flags
	exec  executil.Executor

	// flags
	input    iojson.FileReader[codec.Triple]
	template string
	export   string
	width    int
	editing  bool
	color    bool
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags, exec: executil.RealExecutor{}}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Print a draft rendered with a template",
		UsageText: "folio render [options] [file]",
		Description: `Renders a draft the way the editor previews it, without editing
affordances. The draft is read from the file argument, the --file flag,
or stdin.

Use --export to write the plain text output to a file. When export.command
is configured it runs after the file is written, with the export path,
invoice number and template available as template fields.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       "template id (defaults to the draft's template)",
				Destination: &cmd.template,
			},
			&cli.StringFlag{
				Name:        "export",
				Aliases:     []string{"o"},
				Usage:       "write the plain output to this path and run export.command",
				Destination: &cmd.export,
			},
			&cli.IntFlag{
				Name:        "width",
				Aliases:     []string{"w"},
				Usage:       "render width in cells (defaults to the terminal width)",
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "editing",
				Usage:       "keep editing affordances such as drag handles",
				Destination: &cmd.editing,
			},
			&cli.BoolFlag{
				Name:        "color",
				Usage:       "keep styling when stdout is not a terminal",
				Destination: &cmd.color,
			},
		},
		ShellComplete: DraftCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	if path := c.Args().First(); path != "" {
		cmd.input.Set(path)
	}
	t, err := cmd.input.Read()
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}
	inv, err := codec.Hydrate(t, newID)
	if err != nil {
		return fmt.Errorf("hydrate draft: %w", err)
	}

	tmplID := document.TemplateID(cmd.template)
	if tmplID == "" {
		tmplID = document.TemplateID(t.TemplateID)
	}
	r, err := render.Lookup(tmplID)
	if err != nil {
		return err
	}

	frame := cmd.renderFrame(r, inv, cmd.resolveWidth())

	if cmd.export != "" {
		return cmd.writeExport(ctx, frame, inv, r.ID())
	}

	out := frame.Plain()
	if cmd.color || isTerminal(os.Stdout) {
		out = frame.String()
	}
	_, err = fmt.Fprintln(c.Root().Writer, out)
	return err
}

func (cmd *RenderCmd) renderFrame(r render.Renderer, inv *document.Invoice, width int) render.Frame {
	store := editor.New(inv, nil, logging.Component("render"), newID)
	in := render.NewInput(store, width)
	if cmd.flags.Config.Watermark {
		in.Watermark = cmd.flags.Config.WatermarkText
	}
	if cmd.editing {
		in.Editing = true
		return r.Render(in)
	}
	return render.Export{Base: r}.Render(in)
}

func (cmd *RenderCmd) resolveWidth() int {
	if cmd.width > 0 {
		return cmd.width
	}
	if isTerminal(os.Stdout) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultRenderWidth
}

func (cmd *RenderCmd) writeExport(ctx context.Context, frame render.Frame, inv *document.Invoice, tmplID document.TemplateID) error {
	path, err := filepath.Abs(cmd.export)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", cmd.export, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(frame.Plain()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	logger := logging.Component("export")
	logger.Info().Str("path", path).Str("template", string(tmplID)).Msg("export written")

	hook, err := cmd.flags.Config.ExportCommand(config.ExportTemplateData{
		Path:     path,
		Number:   inv.Number,
		Template: string(tmplID),
	})
	if err != nil || hook == "" {
		return err
	}

	logger.Debug().Str("command", hook).Msg("running export command")
	err = cmd.exec.Run(ctx, executil.Command{
		Dir:    filepath.Dir(path),
		Script: hook,
		Env: []string{
			"FOLIO_EXPORT_PATH=" + path,
			"FOLIO_INVOICE_NUMBER=" + inv.Number,
			"FOLIO_TEMPLATE=" + string(tmplID),
		},
	})
	if err != nil {
		return fmt.Errorf("export command: %w", err)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
