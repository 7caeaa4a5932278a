package iojson

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	TemplateID string `json:"templateId"`
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"templateId":"modern"}`), 0o644))

	var fr FileReader[doc]
	fr.Set(path)
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "modern", got.TemplateID)
	assert.Equal(t, path, fr.Path())
}

func TestFileReader_Stdin(t *testing.T) {
	fr := FileReader[doc]{stdin: strings.NewReader(`{"templateId":"classic"}`)}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "classic", got.TemplateID)
}

func TestFileReader_Errors(t *testing.T) {
	var fr FileReader[doc]
	fr.Set(filepath.Join(t.TempDir(), "missing.json"))
	_, err := fr.Read()
	require.ErrorContains(t, err, "open file")

	fr = FileReader[doc]{stdin: strings.NewReader("{")}
	_, err = fr.Read()
	require.ErrorContains(t, err, "decode JSON")
}

func TestFileReader_RejectsUnknownFields(t *testing.T) {
	fr := FileReader[doc]{stdin: strings.NewReader(`{"templateID":"classic"}`)}
	_, err := fr.Read()
	require.ErrorContains(t, err, "unknown field")
}

func TestFileReader_Flag(t *testing.T) {
	var fr FileReader[doc]
	f := fr.Flag()
	assert.Equal(t, "file", f.Name)
	assert.True(t, f.TakesFile)
	*f.Destination = "client.json"
	assert.Equal(t, "client.json", fr.Path())
}
