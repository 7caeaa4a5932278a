package codec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile reads a triple stored as a JSON file.
func ReadFile(path string) (Triple, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Triple{}, fmt.Errorf("read %s: %w", path, err)
	}

	var t Triple
	if err := json.Unmarshal(data, &t); err != nil {
		return Triple{}, fmt.Errorf("%w: %s: %w", ErrInvalidTriple, path, err)
	}
	return t, nil
}

// WriteFile stores t as indented JSON. The file is replaced atomically so a
// failed write never leaves a truncated document behind.
func WriteFile(path string, t Triple) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal triple: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".folio-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
