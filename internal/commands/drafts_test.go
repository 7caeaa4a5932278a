package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/folio/internal/core/document"
)

func TestExpandDrafts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "clients/acme/b.json", "clients/c.json", "notes.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("{}"), 0o644))
	}

	t.Run("all drafts", func(t *testing.T) {
		got, err := expandDrafts(nil, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.json"),
			filepath.Join(dir, "clients/acme/b.json"),
			filepath.Join(dir, "clients/c.json"),
		}, got)
	})

	t.Run("doublestar pattern", func(t *testing.T) {
		got, err := expandDrafts([]string{filepath.Join(dir, "clients/**/*.json")}, dir)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("overlapping patterns are deduplicated", func(t *testing.T) {
		got, err := expandDrafts([]string{
			filepath.Join(dir, "*.json"),
			filepath.Join(dir, "a.json"),
		}, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.json")}, got)
	})

	t.Run("missing literal path is kept", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.json")
		got, err := expandDrafts([]string{missing}, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{missing}, got)
	})

	t.Run("unmatched glob is dropped", func(t *testing.T) {
		got, err := expandDrafts([]string{filepath.Join(dir, "*.yaml")}, dir)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := expandDrafts([]string{filepath.Join(dir, "[")}, dir)
		assert.Error(t, err)
	})
}

func TestDraftPath(t *testing.T) {
	a := newTestApp(t)
	cfg := a.flags.Config

	assert.Equal(t, filepath.Join(cfg.DraftsDir(), "2026-0001.json"), draftPath(cfg, "2026-0001"))
	assert.Equal(t, filepath.Join(cfg.DraftsDir(), "INV-2026-7.json"), draftPath(cfg, "INV/2026 7"))
}

func TestSeedDraft_NumberFormat(t *testing.T) {
	a := newTestApp(t)
	cfg := a.flags.Config
	cfg.NumberFormat = "INV-{{ .Year }}/{{ pad 3 .Seq }}"
	cfg.Issuer.Name = "Folio Studio"
	cfg.DueDays = 14

	inv, err := seedDraft(cfg, testNow, document.Party{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026/001", inv.Number)
	assert.Equal(t, "Folio Studio", inv.Issuer.Name)
	assert.Equal(t, "Acme", inv.Client.Name)
	assert.Equal(t, 14, int(inv.DueDate.Sub(inv.IssueDate).Hours()/24))
}

func TestOpenDraft(t *testing.T) {
	a := newTestApp(t)
	cfg := a.flags.Config

	t.Run("empty path seeds into drafts dir", func(t *testing.T) {
		inv, tmplID, path, err := openDraft(cfg, "", testNow)
		require.NoError(t, err)
		assert.Equal(t, document.TemplateID(cfg.Template), tmplID)
		assert.Equal(t, draftPath(cfg, inv.Number), path)
	})

	t.Run("missing file seeds at path", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "new.json")
		_, _, path, err := openDraft(cfg, want, testNow)
		require.NoError(t, err)
		assert.Equal(t, want, path)
		assert.NoFileExists(t, want)
	})

	t.Run("existing file loads", func(t *testing.T) {
		existing := writeDraft(t, cfg, t.TempDir(), "Globex")
		inv, tmplID, path, err := openDraft(cfg, existing, testNow)
		require.NoError(t, err)
		assert.Equal(t, existing, path)
		assert.Equal(t, document.TemplateClassic, tmplID)
		assert.Equal(t, "Globex", inv.Client.Name)
	})
}

func TestMatchesDraftPrefix(t *testing.T) {
	assert.True(t, matchesDraftPrefix("/data/drafts/2026-0001.json", ""))
	assert.True(t, matchesDraftPrefix("/data/drafts/2026-0001.json", "2026"))
	assert.True(t, matchesDraftPrefix("/data/drafts/2026-0001.json", "/data/dr"))
	assert.False(t, matchesDraftPrefix("/data/drafts/2026-0001.json", "acme"))
}
