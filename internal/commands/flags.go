package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/eventbus"
)

// Flags holds the global flag values and the state the root Before hook
// builds from them.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Bus carries editor events. Started in the Before hook.
	Bus *eventbus.EventBus
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/folio/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/folio. Drafts live under it unless
// the config says otherwise.
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// xdgDir resolves the folio directory under the XDG base directory named by
// env, falling back to fallback under the home directory.
func xdgDir(env string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, "folio")
}
