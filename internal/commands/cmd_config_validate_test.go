package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate_JSON(t *testing.T) {
	a := newTestApp(t)

	app := NewConfigValidateCmd(a.flags).Register(a.root())
	require.NoError(t, a.run(t, app, "config", "validate", "--format", "json"))

	var got validationResult
	require.NoError(t, json.Unmarshal(a.out.Bytes(), &got))
	assert.True(t, got.Valid)
	assert.Empty(t, got.Errors)

	require.NotEmpty(t, got.Warnings, "missing issuer name is reported")
	assert.Equal(t, "Issuer", got.Warnings[0].Category)
}

func TestConfigValidate_Invalid(t *testing.T) {
	a := newTestApp(t)
	a.flags.Config.NumberFormat = "{{ .Year }-{{ .Seq }}"
	a.flags.Config.Currency = "EURO"

	app := NewConfigValidateCmd(a.flags).Register(a.root())
	err := a.run(t, app, "config", "validate", "--format", "json")
	require.Error(t, err)

	var got validationResult
	require.NoError(t, json.Unmarshal(a.out.Bytes(), &got))
	assert.False(t, got.Valid)

	fields := make([]string, 0, len(got.Errors))
	for _, e := range got.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"number_format", "currency"}, fields)
}

func TestConfigValidate_Text(t *testing.T) {
	a := newTestApp(t)
	a.flags.Config.Issuer.Name = "Folio Studio"

	app := NewConfigValidateCmd(a.flags).Register(a.root())
	require.NoError(t, a.run(t, app, "config", "validate"))
	assert.Contains(t, a.out.String(), "valid")
}
