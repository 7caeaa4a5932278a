// Package config handles configuration loading and validation for folio.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/internal/core/validate"
)

// Built-in action names for keybindings.
const (
	ActionQuit         = "quit"
	ActionSave         = "save"
	ActionNextPanel    = "next-panel"
	ActionPrevPanel    = "prev-panel"
	ActionUp           = "up"
	ActionDown         = "down"
	ActionMoveUp       = "move-up"
	ActionMoveDown     = "move-down"
	ActionToggle       = "toggle"
	ActionCycleMode    = "cycle-mode"
	ActionEdit         = "edit"
	ActionAdd          = "add"
	ActionAddChild     = "add-child"
	ActionDelete       = "delete"
	ActionLayout       = "layout"
	ActionWiden        = "widen"
	ActionNarrow       = "narrow"
	ActionNextTemplate = "next-template"
	ActionToggleHelp   = "help"
)

// defaultKeybindings maps keys to built-in actions. Users can override or
// add keys; an empty action unbinds a key.
var defaultKeybindings = map[string]string{
	"q":         ActionQuit,
	"ctrl+c":    ActionQuit,
	"ctrl+s":    ActionSave,
	"tab":       ActionNextPanel,
	"shift+tab": ActionPrevPanel,
	"k":         ActionUp,
	"up":        ActionUp,
	"j":         ActionDown,
	"down":      ActionDown,
	"K":         ActionMoveUp,
	"J":         ActionMoveDown,
	" ":         ActionToggle,
	"m":         ActionCycleMode,
	"e":         ActionEdit,
	"enter":     ActionEdit,
	"a":         ActionAdd,
	"A":         ActionAddChild,
	"d":         ActionDelete,
	"L":         ActionLayout,
	">":         ActionWiden,
	"<":         ActionNarrow,
	"t":         ActionNextTemplate,
	"?":         ActionToggleHelp,
}

// DefaultKeybindings returns a copy of the built-in keybindings.
func DefaultKeybindings() map[string]string {
	return mergeKeybindings(defaultKeybindings, nil)
}

// Config holds the application configuration.
type Config struct {
	Template          string            `yaml:"template"`
	Theme             string            `yaml:"theme"`
	Currency          string            `yaml:"currency"`
	TaxRate           *float64          `yaml:"tax_rate"`
	NumberFormat      string            `yaml:"number_format"`
	DueDays           int               `yaml:"due_days"`
	HighlightDuration time.Duration     `yaml:"highlight_duration"`
	Watermark         bool              `yaml:"watermark"`
	WatermarkText     string            `yaml:"watermark_text"`
	PhoneRegion       string            `yaml:"phone_region"`
	Issuer            Issuer            `yaml:"issuer"`
	Editor            EditorConfig      `yaml:"editor"`
	Export            ExportConfig      `yaml:"export"`
	Keybindings       map[string]string `yaml:"keybindings"`
	DataDir           string            `yaml:"-"` // set by caller, not from config file
}

// Issuer holds the default issuer of new invoices.
type Issuer struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	TaxID   string `yaml:"tax_id"`
}

// Party converts the issuer defaults to a document party. Fields that are
// set are shown.
func (i Issuer) Party() document.Party {
	return document.Party{
		Name:    i.Name,
		Address: i.Address,
		Email:   i.Email,
		Phone:   i.Phone,
		TaxID:   i.TaxID,
		Show: document.PartyVisibility{
			Address: i.Address != "",
			Email:   i.Email != "",
			Phone:   i.Phone != "",
			TaxID:   i.TaxID != "",
		},
	}
}

// EditorConfig holds editor TUI settings.
type EditorConfig struct {
	// PreviewWidth is the share of the screen, in percent, given to the
	// document preview.
	PreviewWidth int  `yaml:"preview_width"`
	DisableMouse bool `yaml:"disable_mouse"`
}

// ExportConfig configures the optional export hook.
type ExportConfig struct {
	// Command is a shell command template run after an export is written.
	// See ExportTemplateData for the available fields.
	Command string `yaml:"command"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	taxRate := 20.0
	return Config{
		Template:          string(document.TemplateClassic),
		Theme:             styles.DefaultTheme,
		Currency:          "€",
		TaxRate:           &taxRate,
		NumberFormat:      "{{ .Year }}-{{ pad 4 .Seq }}",
		DueDays:           30,
		HighlightDuration: 2 * time.Second,
		WatermarkText:     "DRAFT",
		Editor: EditorConfig{
			PreviewWidth: 55,
		},
		Keybindings: map[string]string{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Template == "" {
		c.Template = defaults.Template
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Currency == "" {
		c.Currency = defaults.Currency
	}
	if c.TaxRate == nil {
		c.TaxRate = defaults.TaxRate
	}
	if c.NumberFormat == "" {
		c.NumberFormat = defaults.NumberFormat
	}
	if c.DueDays == 0 {
		c.DueDays = defaults.DueDays
	}
	if c.HighlightDuration == 0 {
		c.HighlightDuration = defaults.HighlightDuration
	}
	if c.WatermarkText == "" {
		c.WatermarkText = defaults.WatermarkText
	}
	if c.Editor.PreviewWidth == 0 {
		c.Editor.PreviewWidth = defaults.Editor.PreviewWidth
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key; an empty action
// removes the key.
func mergeKeybindings(defaults, user map[string]string) map[string]string {
	result := make(map[string]string, len(defaults)+len(user))

	for k, v := range defaults {
		result[k] = v
	}

	for k, v := range user {
		if v == "" {
			delete(result, k)
			continue
		}
		result[k] = v
	}

	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !document.TemplateID(c.Template).IsValid() {
		return fmt.Errorf("template %q is not one of %v", c.Template, document.TemplateIDs)
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("theme %q is not one of %v", c.Theme, styles.ThemeNames())
	}

	if c.TaxRate != nil {
		if err := validate.TaxRateValue(*c.TaxRate); err != nil {
			return fmt.Errorf("tax_rate: %w", err)
		}
	}

	if c.HighlightDuration < 0 {
		return fmt.Errorf("highlight_duration cannot be negative")
	}

	if c.DueDays < 0 {
		return fmt.Errorf("due_days cannot be negative")
	}

	if c.Editor.PreviewWidth < 20 || c.Editor.PreviewWidth > 80 {
		return fmt.Errorf("editor.preview_width must be between 20 and 80")
	}

	for key, action := range c.Keybindings {
		if !isValidAction(action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, action)
		}
	}

	return nil
}

// TaxRateOrDefault returns the configured tax rate.
func (c *Config) TaxRateOrDefault() float64 {
	if c.TaxRate == nil {
		return *DefaultConfig().TaxRate
	}
	return *c.TaxRate
}

// DraftsDir returns the directory new drafts are written to when no path is
// given.
func (c *Config) DraftsDir() string {
	return filepath.Join(c.DataDir, "drafts")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "folio.log")
}

func isValidAction(action string) bool {
	switch action {
	case ActionQuit, ActionSave, ActionNextPanel, ActionPrevPanel, ActionUp,
		ActionDown, ActionMoveUp, ActionMoveDown, ActionToggle, ActionCycleMode,
		ActionEdit, ActionAdd, ActionAddChild, ActionDelete, ActionLayout,
		ActionWiden, ActionNarrow, ActionNextTemplate, ActionToggleHelp:
		return true
	default:
		return false
	}
}
