package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/folio/internal/core/codec"
	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
)

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type testApp struct {
	flags  *Flags
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	return &testApp{flags: &Flags{Config: cfg}}
}

// root returns a fresh root command writing to the app buffers. Exit codes
// are returned as errors instead of terminating the test binary.
func (a *testApp) root() *cli.Command {
	return &cli.Command{
		Name:           "folio",
		Writer:         &a.out,
		ErrWriter:      &a.errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func (a *testApp) run(t *testing.T, app *cli.Command, args ...string) error {
	t.Helper()
	a.out.Reset()
	a.errOut.Reset()
	return app.Run(context.Background(), append([]string{"folio"}, args...))
}

// writeDraft seeds a draft for client and saves it under dir.
func writeDraft(t *testing.T, cfg *config.Config, dir, client string) string {
	t.Helper()
	inv, err := seedDraft(cfg, testNow, document.Party{Name: client})
	require.NoError(t, err)

	tr, err := codec.Serialize(inv, string(document.TemplateClassic))
	require.NoError(t, err)

	path := filepath.Join(dir, client+".json")
	require.NoError(t, codec.WriteFile(path, tr))
	return path
}
