package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mbeutler/holdings"
)

// xirrCmd holds the flags for the 'xirr' subcommand.
type xirrCmd struct {
	entity string
	asset  string
}

func (*xirrCmd) Name() string     { return "xirr" }
func (*xirrCmd) Synopsis() string { return "compute the annualized return of an asset or the portfolio" }
func (*xirrCmd) Usage() string {
	return `hld xirr [-e <entity> -a <asset>]

  Computes the annualized internal rate of return over the recorded cash
  flows plus a terminal mark-to-market flow. Without -e/-a the whole
  portfolio is pooled in the base currency.
`
}

func (c *xirrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entity, "e", "", "Entity holding the asset")
	f.StringVar(&c.asset, "a", "", "Asset to compute the return of")
}

func (c *xirrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	now := holdings.Now()
	var rate float64
	var name string
	if c.entity == "" && c.asset == "" {
		name = p.Name
		rate, err = holdings.PortfolioXIRR(p, now)
	} else {
		var asset *holdings.Asset
		asset, err = findAsset(p, c.entity, c.asset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		name = asset.Name
		rate, err = holdings.AssetXIRR(asset, now)
	}

	switch {
	case errors.Is(err, holdings.ErrInvalidCashflows), errors.Is(err, holdings.ErrNoConvergence):
		fmt.Printf("%s: N/A (%v)\n", name, err)
		return subcommands.ExitSuccess
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %.2f%% annualized\n", name, rate*100)
	return subcommands.ExitSuccess
}
