package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mbeutler/holdings"
)

// initCmd holds the flags for the 'init' subcommand.
type initCmd struct {
	name string
	base string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new, empty portfolio document" }
func (*initCmd) Usage() string {
	return `hld init [-n <name>] [-b <iso>]

  Creates a new portfolio document with the default currency set from the
  user settings. Fails if the document already exists.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "Portfolio", "Display name of the new portfolio")
	f.StringVar(&c.base, "b", "", "Base currency ISO code (defaults to the settings value)")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*portfolioFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %q already exists\n", *portfolioFile)
		return subcommands.ExitFailure
	}

	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot read settings, using defaults: %v\n", err)
	}
	base := c.base
	if base == "" {
		base = settings.DefaultBaseCurrency
	}

	p := holdings.NewPortfolio(c.name, base)
	for _, iso := range settings.DefaultCurrencies {
		p.AddCurrency(&holdings.Currency{ISO: iso})
	}

	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *portfolioFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created %s (base currency %s)\n", *portfolioFile, base)
	return subcommands.ExitSuccess
}
