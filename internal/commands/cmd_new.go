package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/folio/internal/core/calc"
	"github.com/colonyops/folio/internal/core/codec"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/styles"
	"github.com/colonyops/folio/internal/core/validate"
	"github.com/colonyops/folio/pkg/iojson"
)

type NewCmd struct {
	flags *Flags

	// Command-specific flags
	issuer   string
	client   string
	address  string
	currency string
	taxRate  string
	template string
	force    bool

	// clientFile reads the client party as JSON from --file or stdin.
	clientFile iojson.FileReader[document.Party]
	party      document.Party

	// now is the clock the draft is dated with.
	now func() time.Time
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags) *NewCmd {
	return &NewCmd{flags: flags, now: time.Now}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Create a new invoice draft",
		UsageText: "folio new [options] [file]",
		Description: `Creates a draft from the configured defaults: the issuer, currency, tax
rate and template of the config file, one kit item priced from its
sub-items, one plain item and the required blocks.

When --client is omitted and stdin is a terminal, an interactive form
prompts for input. A client can also be given as a JSON party with --file
or on stdin:

  echo '{"name":"Acme GmbH","email":"billing@acme.test"}' | folio new

Without a file argument the draft is written to the drafts directory,
named after its invoice number.`,
		Flags: []cli.Flag{
			cmd.clientFile.Flag(),
			&cli.StringFlag{
				Name:        "client",
				Usage:       "client name",
				Destination: &cmd.client,
			},
			&cli.StringFlag{
				Name:        "address",
				Usage:       "client address",
				Destination: &cmd.address,
			},
			&cli.StringFlag{
				Name:        "issuer",
				Usage:       "issuer name (defaults to issuer.name from config)",
				Destination: &cmd.issuer,
			},
			&cli.StringFlag{
				Name:        "currency",
				Usage:       "currency symbol or code (defaults to currency from config)",
				Destination: &cmd.currency,
			},
			&cli.StringFlag{
				Name:        "tax-rate",
				Usage:       "tax rate in percent (defaults to tax_rate from config)",
				Destination: &cmd.taxRate,
			},
			&cli.StringFlag{
				Name:        "template",
				Aliases:     []string{"t"},
				Usage:       "template id (classic, modern)",
				Destination: &cmd.template,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite an existing file",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	cmd.applyDefaults()

	switch {
	case cmd.clientFile.Path() != "" || (cmd.client == "" && !term.IsTerminal(int(os.Stdin.Fd()))):
		party, err := cmd.clientFile.Read()
		if err != nil {
			return fmt.Errorf("read client (pass --client or a JSON party): %w", err)
		}
		cmd.party = party
		if cmd.client == "" {
			cmd.client = party.Name
		}
		if cmd.address == "" {
			cmd.address = party.Address
		}
	case cmd.client == "":
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if err := cmd.validate(); err != nil {
		return err
	}

	client := cmd.party
	client.Name = strings.TrimSpace(cmd.client)
	client.Address = cmd.address
	client.Show = document.PartyVisibility{
		Address: client.Address != "",
		Email:   client.Email != "",
		Phone:   client.Phone != "",
		TaxID:   client.TaxID != "",
	}
	inv, err := seedDraft(cfg, cmd.now(), client)
	if err != nil {
		return fmt.Errorf("seed draft: %w", err)
	}
	if cmd.issuer != "" {
		inv.Issuer.Name = cmd.issuer
	}
	inv.Currency = cmd.currency
	inv.TaxRate, _ = strconv.ParseFloat(strings.TrimSpace(cmd.taxRate), 64)
	calc.Apply(inv)

	path := c.Args().First()
	if path == "" {
		path = draftPath(cfg, inv.Number)
	}
	if _, err := os.Stat(path); err == nil && !cmd.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	t, err := codec.Serialize(inv, cmd.template)
	if err != nil {
		return err
	}
	if err := codec.WriteFile(path, t); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s %s\n",
		styles.CommandHeaderStyle.Render(styles.IconInvoice+" "+inv.Number),
		styles.CommandStyle.Render(path))
	return nil
}

func (cmd *NewCmd) applyDefaults() {
	cfg := cmd.flags.Config
	if cmd.issuer == "" {
		cmd.issuer = cfg.Issuer.Name
	}
	if cmd.currency == "" {
		cmd.currency = cfg.Currency
	}
	if cmd.taxRate == "" {
		cmd.taxRate = strconv.FormatFloat(cfg.TaxRateOrDefault(), 'f', -1, 64)
	}
	if cmd.template == "" {
		cmd.template = cfg.Template
	}
}

func (cmd *NewCmd) validate() error {
	return criterio.ValidateStruct(
		validate.PartyNameField("client", cmd.client),
		criterio.Run("currency", cmd.currency, validate.Currency),
		criterio.Run("tax-rate", cmd.taxRate, validate.TaxRate),
		criterio.Run("template", cmd.template, validateTemplate),
		criterio.Run("client.phone", cmd.party.Phone, validate.Phone(cmd.flags.Config.PhoneRegion)),
	)
}

func validateTemplate(id string) error {
	if !document.TemplateID(id).IsValid() {
		return fmt.Errorf("must be one of %v", document.TemplateIDs)
	}
	return nil
}

func (cmd *NewCmd) runForm() error {
	options := make([]huh.Option[string], 0, len(document.TemplateIDs))
	for _, id := range document.TemplateIDs {
		options = append(options, huh.NewOption(string(id), string(id)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Issuer").
				Description("Your name or company").
				Value(&cmd.issuer),
			huh.NewInput().
				Title("Client").
				Validate(validate.PartyName).
				Value(&cmd.client),
			huh.NewInput().
				Title("Client address").
				Value(&cmd.address),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency").
				Validate(validate.Currency).
				Value(&cmd.currency),
			huh.NewInput().
				Title("Tax rate").
				Description("Percent").
				Validate(validate.TaxRate).
				Value(&cmd.taxRate),
			huh.NewSelect[string]().
				Title("Template").
				Options(options...).
				Value(&cmd.template),
		),
	).WithTheme(styles.FormTheme()).Run()
}
