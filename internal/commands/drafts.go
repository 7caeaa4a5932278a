package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/colonyops/folio/internal/core/codec"
	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/pkg/randid"
)

// draftPattern matches saved drafts below the drafts directory.
const draftPattern = "**/*.json"

var newID document.IDFunc = randid.New

// loadDraft reads and hydrates the draft stored at path.
func loadDraft(path string) (*document.Invoice, document.TemplateID, error) {
	t, err := codec.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	inv, err := codec.Hydrate(t, newID)
	if err != nil {
		return nil, "", fmt.Errorf("hydrate %s: %w", path, err)
	}
	return inv, document.TemplateID(t.TemplateID), nil
}

// seedDraft returns a new document built from the configured defaults. The
// invoice number is rendered from number_format with the next free sequence
// of the drafts directory. Invoices get a UUID; items and blocks keep short
// ids.
func seedDraft(cfg *config.Config, now time.Time, client document.Party) (*document.Invoice, error) {
	inv := document.NewSeed(now, newID, document.SeedOptions{
		Issuer:   cfg.Issuer.Party(),
		Client:   client,
		Currency: cfg.Currency,
		TaxRate:  cfg.TaxRateOrDefault(),
	})
	inv.ID = uuid.NewString()

	existing, err := expandDrafts(nil, cfg.DraftsDir())
	if err != nil {
		return nil, err
	}

	number, err := cfg.InvoiceNumber(config.NumberTemplateData{
		Year:   inv.IssueDate.Year(),
		Seq:    len(existing) + 1,
		Date:   inv.IssueDate,
		Client: inv.Client.Name,
	})
	if err != nil {
		return nil, err
	}
	inv.Number = number
	inv.DueDate = inv.IssueDate.AddDate(0, 0, cfg.DueDays)
	return inv, nil
}

// openDraft returns the document to edit at path. A missing file, or an
// empty path, starts a new draft; for an empty path the draft is placed in
// the drafts directory under its invoice number.
func openDraft(cfg *config.Config, path string, now time.Time) (*document.Invoice, document.TemplateID, string, error) {
	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			inv, tmplID, err := loadDraft(path)
			return inv, tmplID, path, err
		case !errors.Is(err, os.ErrNotExist):
			return nil, "", "", fmt.Errorf("stat %s: %w", path, err)
		}
	}

	inv, err := seedDraft(cfg, now, document.Party{})
	if err != nil {
		return nil, "", "", err
	}
	if path == "" {
		path = draftPath(cfg, inv.Number)
	}
	return inv, document.TemplateID(cfg.Template), path, nil
}

var numberReplacer = strings.NewReplacer("/", "-", "\\", "-", " ", "-")

// draftPath is the default location of the draft numbered number.
func draftPath(cfg *config.Config, number string) string {
	return filepath.Join(cfg.DraftsDir(), numberReplacer.Replace(number)+".json")
}

// expandDrafts expands doublestar patterns into a sorted, de-duplicated list
// of files. Without patterns every draft below dir is listed. Patterns
// without glob meta characters are kept even when nothing matches so the
// read error names the file.
func expandDrafts(patterns []string, dir string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{filepath.Join(dir, draftPattern)}
	}

	var out []string
	for _, p := range patterns {
		if !doublestar.ValidatePathPattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", p, err)
		}
		if len(matches) == 0 && !strings.ContainsAny(p, "*?[{") {
			matches = []string{p}
		}
		out = append(out, matches...)
	}

	slices.Sort(out)
	return slices.Compact(out), nil
}
