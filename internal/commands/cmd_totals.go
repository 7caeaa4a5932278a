package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v3"
	"github.com/xuri/excelize/v2"

	"github.com/colonyops/folio/internal/core/calc"
	"github.com/colonyops/folio/internal/core/logging"
	"github.com/colonyops/folio/internal/render"
	"github.com/colonyops/folio/pkg/iojson"
)

type TotalsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	xlsx       string
}

// NewTotalsCmd creates a new totals command
func NewTotalsCmd(flags *Flags) *TotalsCmd {
	return &TotalsCmd{flags: flags}
}

// Register adds the totals command to the application
func (cmd *TotalsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "totals",
		Usage:     "Summarize the totals of drafts",
		UsageText: "folio totals [--json] [--xlsx file] [pattern...]",
		Description: `Hydrates every draft matching the given patterns and prints its subtotal,
tax and total. Patterns support ** (e.g. "clients/**/*.json"). Without
patterns every draft in the drafts directory is listed.

Use --json for one JSON object per draft. --xlsx additionally writes the
summary to a spreadsheet.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "xlsx",
				Usage:       "also write the summary to an Excel workbook",
				Destination: &cmd.xlsx,
			},
		},
		ShellComplete: DraftCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

// draftTotals is the JSON output format for folio totals --json.
type draftTotals struct {
	Path     string   `json:"path"`
	Number   string   `json:"number,omitempty"`
	Client   string   `json:"client,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Subtotal float64  `json:"subtotal"`
	Tax      float64  `json:"tax"`
	Total    float64  `json:"total"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (cmd *TotalsCmd) run(ctx context.Context, c *cli.Command) error {
	paths, err := expandDrafts(c.Args().Slice(), cmd.flags.Config.DraftsDir())
	if err != nil {
		return err
	}

	out := c.Root().Writer
	errOut := c.Root().ErrWriter

	if len(paths) == 0 {
		if !cmd.jsonOutput {
			_, _ = fmt.Fprintln(errOut, "No drafts found")
		}
		return nil
	}

	rows := make([]draftTotals, 0, len(paths))
	failed := 0
	for _, p := range paths {
		row := summarizeDraft(p)
		if row.Error != "" {
			failed++
		}
		rows = append(rows, row)
	}

	if cmd.jsonOutput {
		for _, row := range rows {
			if err := iojson.WriteLine(out, row); err != nil {
				return fmt.Errorf("encode totals: %w", err)
			}
		}
	} else {
		writeTotalsTable(out, errOut, rows)
	}

	if cmd.xlsx != "" {
		if err := writeTotalsWorkbook(cmd.xlsx, rows); err != nil {
			return err
		}
		log := logging.Component("totals")
		log.Info().Str("path", cmd.xlsx).Int("drafts", len(rows)).Msg("workbook written")
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d draft(s) could not be read", failed), 1)
	}
	return nil
}

func summarizeDraft(path string) draftTotals {
	inv, _, err := loadDraft(path)
	if err != nil {
		return draftTotals{Path: path, Error: err.Error()}
	}

	t := calc.Invoice(inv)
	row := draftTotals{
		Path:     path,
		Number:   inv.Number,
		Client:   inv.Client.Name,
		Currency: inv.Currency,
		Subtotal: t.Subtotal,
		Tax:      t.Tax,
		Total:    t.Total,
	}
	for _, w := range calc.Warnings(inv.Items) {
		row.Warnings = append(row.Warnings, w.String())
	}
	return row
}

func writeTotalsTable(out, errOut io.Writer, rows []draftTotals) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("NUMBER", "CLIENT", "SUBTOTAL", "TAX", "TOTAL")
	for col := 2; col <= 4; col++ {
		tbl.RightAlign(col)
	}

	var sum float64
	currency := ""
	mixed := false
	for _, r := range rows {
		if r.Error != "" {
			continue
		}
		tbl.AddRow(r.Number, r.Client,
			render.Money(r.Subtotal, r.Currency),
			render.Money(r.Tax, r.Currency),
			render.Money(r.Total, r.Currency))

		sum += r.Total
		switch {
		case currency == "":
			currency = r.Currency
		case currency != r.Currency:
			mixed = true
		}
	}
	if currency != "" && !mixed {
		tbl.AddRow("", "", "", "", render.Money(sum, currency))
	}
	_, _ = fmt.Fprintln(out, tbl)

	for _, r := range rows {
		if r.Error != "" {
			_, _ = fmt.Fprintf(errOut, "%s: %s\n", r.Path, r.Error)
		}
		for _, warn := range r.Warnings {
			_, _ = fmt.Fprintf(errOut, "%s: warning: %s\n", r.Path, warn)
		}
	}
}

const totalsSheet = "Totals"

// writeTotalsWorkbook writes one row per readable draft to an xlsx file.
// Amounts are stored as numbers so they can be summed in the sheet.
func writeTotalsWorkbook(path string, rows []draftTotals) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", totalsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := []any{"Number", "Client", "Currency", "Subtotal", "Tax", "Total", "File"}
	if err := f.SetSheetRow(totalsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetRowStyle(totalsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	n := 2
	for _, r := range rows {
		if r.Error != "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		values := []any{r.Number, r.Client, r.Currency, r.Subtotal, r.Tax, r.Total, r.Path}
		if err := f.SetSheetRow(totalsSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", n, err)
		}
		n++
	}

	if err := f.SetColWidth(totalsSheet, "A", "B", 24); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
