package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mbeutler/holdings"
)

// ratesCmd holds the flags for the 'rates' subcommand.
type ratesCmd struct {
	currency  string
	frequency string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "refresh a currency's FX rate history" }
func (*ratesCmd) Usage() string {
	return `hld rates -c <iso> [-f monthly|quarterly]

  Fetches daily rates against the base currency for the whole date span the
  document needs, downsamples them to one point per month or quarter, and
  replaces the currency's recorded history.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "ISO code of the currency to refresh")
	f.StringVar(&c.frequency, "f", "monthly", "Recording frequency: monthly or quarterly")
}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	freq, err := holdings.ParseFrequency(c.frequency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	currency := p.Currency(c.currency)
	if currency == nil {
		fmt.Fprintf(os.Stderr, "Error: no currency %q in portfolio\n", c.currency)
		return subcommands.ExitUsageError
	}

	if err := holdings.RefreshRates(holdings.Frankfurter(), currency, p.BaseCurrency, p, freq); err != nil {
		fmt.Fprintf(os.Stderr, "Error refreshing rates: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %d %s rate points for %s\n", len(currency.Rates), freq, currency.ISO)
	return subcommands.ExitSuccess
}
