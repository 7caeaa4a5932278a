// Package logutils builds the process logger.
package logutils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Stderr selects human readable output on stderr instead of a log file.
const Stderr = "-"

// MaxSize is the size above which an existing log file is rotated to
// "<file>.1" when the logger is created.
const MaxSize = 5 << 20

// New returns a logger that appends JSON lines to file. The returned closer
// closes the file.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	if file == Stderr || file == "" {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		return zerolog.New(w).With().Timestamp().Logger().Level(lvl), closer, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
	}
	if err := rotate(file); err != nil {
		return zerolog.Logger{}, closer, err
	}

	osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}
	closer = func() { _ = osFile.Close() }

	l := zerolog.New(osFile).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger().
		Level(lvl)

	return l, closer, nil
}

// rotate moves file aside once it grows past MaxSize, replacing any earlier
// rotation.
func rotate(file string) error {
	info, err := os.Stat(file)
	if err != nil || info.Size() <= MaxSize {
		return nil
	}
	if err := os.Rename(file, file+".1"); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}
