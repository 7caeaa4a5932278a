package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/folio/internal/core/validate"
	"github.com/colonyops/folio/pkg/tmpl"
)

// NumberTemplateData defines available fields for the number_format template.
type NumberTemplateData struct {
	Year   int       // Year of the issue date
	Seq    int       // 1-based sequence of the invoice
	Date   time.Time // Issue date
	Client string    // Client name
}

// ExportTemplateData defines available fields for the export.command template.
type ExportTemplateData struct {
	Path     string // Absolute path of the written export
	Number   string // Invoice number
	Template string // Template id the export was rendered with
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// InvoiceNumber renders the number_format template.
func (c *Config) InvoiceNumber(data NumberTemplateData) (string, error) {
	out, err := tmpl.Render(c.NumberFormat, data)
	if err != nil {
		return "", fmt.Errorf("render number_format: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ExportCommand renders the export.command template. It returns "" when no
// command is configured.
func (c *Config) ExportCommand(data ExportTemplateData) (string, error) {
	if c.Export.Command == "" {
		return "", nil
	}
	out, err := tmpl.Render(c.Export.Command, data)
	if err != nil {
		return "", fmt.Errorf("render export.command: %w", err)
	}
	return out, nil
}

// ValidateDeep performs comprehensive validation of the configuration including
// template syntax and file accessibility. The configPath argument specifies the
// config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateTemplates(),
		criterio.Run("currency", c.Currency, validate.Currency),
		criterio.Run("issuer.phone", c.Issuer.Phone, validate.Phone(c.PhoneRegion)),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if strings.TrimSpace(c.Issuer.Name) == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Issuer",
			Item:     "name",
			Message:  "no issuer name set; new invoices use a placeholder",
		})
	}

	if c.HighlightDuration > 0 && c.HighlightDuration < 200*time.Millisecond {
		warnings = append(warnings, ValidationWarning{
			Category: "Editor",
			Item:     "highlight_duration",
			Message:  fmt.Sprintf("%s is too short to notice", c.HighlightDuration),
		})
	}

	for key, action := range c.Keybindings {
		if def, ok := defaultKeybindings[key]; ok && def != action {
			warnings = append(warnings, ValidationWarning{
				Category: "Keybindings",
				Item:     key,
				Message:  fmt.Sprintf("overrides default action %q with %q", def, action),
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateTemplates checks number_format renders to a non-empty number and
// export.command parses.
func (c *Config) validateTemplates() error {
	var errs criterio.FieldErrorsBuilder

	number, err := c.InvoiceNumber(NumberTemplateData{Year: 2026, Seq: 1, Date: time.Now(), Client: "test"})
	switch {
	case err != nil:
		errs = errs.Append("number_format", fmt.Errorf("template error: %w", err))
	case number == "":
		errs = errs.Append("number_format", fmt.Errorf("renders an empty number"))
	}

	if _, err := c.ExportCommand(ExportTemplateData{Path: "/tmp/invoice.txt", Number: "1", Template: c.Template}); err != nil {
		errs = errs.Append("export.command", fmt.Errorf("template error: %w", err))
	}

	return errs.ToError()
}
