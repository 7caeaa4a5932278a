package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/folio/internal/core/document"
)

func runNew(t *testing.T, a *testApp, args ...string) error {
	t.Helper()
	cmd := NewNewCmd(a.flags)
	cmd.now = func() time.Time { return testNow }
	return a.run(t, cmd.Register(a.root()), append([]string{"new"}, args...)...)
}

func TestNew_WritesDraft(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "acme.json")

	err := runNew(t, a, "--client", "Acme GmbH", "--address", "Hafenstraße 1", "--currency", "USD", "--tax-rate", "7", path)
	require.NoError(t, err)
	assert.Contains(t, a.out.String(), "2026-0001")
	assert.Contains(t, a.out.String(), path)

	inv, tmplID, err := loadDraft(path)
	require.NoError(t, err)
	assert.Equal(t, document.TemplateClassic, tmplID)
	assert.Equal(t, "Acme GmbH", inv.Client.Name)
	assert.True(t, inv.Client.Show.Address)
	assert.Equal(t, "USD", inv.Currency)
	assert.InDelta(t, 7, inv.TaxRate, 1e-9)
	assert.True(t, inv.DueDate.Equal(testNow.Truncate(24*time.Hour).AddDate(0, 0, 30)), "due date %s", inv.DueDate)

	_, err = uuid.Parse(inv.ID)
	assert.NoError(t, err, "invoice id should be a uuid")
}

func TestNew_DefaultsToDraftsDir(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, runNew(t, a, "--client", "Acme"))
	require.NoError(t, runNew(t, a, "--client", "Globex"))

	drafts, err := expandDrafts(nil, a.flags.Config.DraftsDir())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(a.flags.Config.DraftsDir(), "2026-0001.json"),
		filepath.Join(a.flags.Config.DraftsDir(), "2026-0002.json"),
	}, drafts)
}

func TestNew_RefusesOverwrite(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "acme.json")

	require.NoError(t, runNew(t, a, "--client", "Acme", path))

	err := runNew(t, a, "--client", "Globex", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, runNew(t, a, "--client", "Globex", "--force", path))
	inv, _, err := loadDraft(path)
	require.NoError(t, err)
	assert.Equal(t, "Globex", inv.Client.Name)
}

func TestNew_ValidatesFlags(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "acme.json")

	err := runNew(t, a, "--client", "Acme", "--tax-rate", "120", "--template", "fancy", path)
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"tax-rate", "template"}, fields)
	assert.NoFileExists(t, path)
}

func TestNew_ClientFromFile(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	clientPath := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(clientPath,
		[]byte(`{"name":"Globex","email":"ap@globex.test","taxId":"DE123456789"}`), 0o644))
	path := filepath.Join(dir, "globex.json")

	require.NoError(t, runNew(t, a, "--file", clientPath, path))

	inv, _, err := loadDraft(path)
	require.NoError(t, err)
	assert.Equal(t, "Globex", inv.Client.Name)
	assert.Equal(t, "ap@globex.test", inv.Client.Email)
	assert.True(t, inv.Client.Show.Email)
	assert.True(t, inv.Client.Show.TaxID)
	assert.False(t, inv.Client.Show.Address)
}

func TestNew_ClientFileOverriddenByFlags(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	clientPath := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(clientPath, []byte(`{"name":"Globex","phone":"not a number"}`), 0o644))

	err := runNew(t, a, "-f", clientPath, "--client", "Initech", filepath.Join(dir, "x.json"))
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "client.phone", fieldErrs[0].Field)
}
