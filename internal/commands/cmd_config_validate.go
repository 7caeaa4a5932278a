package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "folio config validate [options]",
				Description: "Validates the configuration file, checking the number and export templates, the currency and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one failed check.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	result := validationResult{
		Errors:   toValidationErrors(cfg.ValidateDeep(cmd.flags.ConfigPath)),
		Warnings: cfg.Warnings(),
	}
	result.Valid = len(result.Errors) == 0

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		cmd.outputText(out, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func toValidationErrors(err error) []validationError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationError{{Field: "config", Message: err.Error()}}
	}

	out := make([]validationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, result validationResult) {
	for _, warn := range result.Warnings {
		item := ""
		if warn.Item != "" {
			item = " (" + warn.Item + ")"
		}
		_, _ = fmt.Fprintf(w, "%s %s%s: %s\n",
			styles.StatusWarningStyle.Render(styles.IconWarning), warn.Category, item, warn.Message)
	}

	for _, e := range result.Errors {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", lipgloss.NewStyle().Foreground(styles.ColorError).Render("✗"), e.Field, e.Message)
	}

	_, _ = fmt.Fprintln(w)
	if result.Valid {
		_, _ = fmt.Fprintf(w, "%s Configuration is valid\n", lipgloss.NewStyle().Foreground(styles.ColorSuccess).Render("✓"))
		return
	}
	_, _ = fmt.Fprintf(w, "%d error(s) found\n", len(result.Errors))
}
