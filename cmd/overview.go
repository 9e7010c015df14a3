package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/mbeutler/holdings"
)

// overviewCmd holds the flags for the 'overview' subcommand.
type overviewCmd struct {
	year int
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "display the cross-portfolio report for one year" }
func (*overviewCmd) Usage() string {
	return `hld overview [-y <year>]

  Displays one row per asset for the requested year, with the flows
  converted to the base currency, and a portfolio total.
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", holdings.Now().Year(), "Calendar year to report on")
}

func (c *overviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	report := holdings.NewPortfolioReport(p, c.year)
	base := p.BaseCurrency.ISO

	fmt.Printf("%s — %d\n\n", report.Name, report.Year)
	w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Entity\tAsset\tType\tNet Invested\tNet Revenue\tNAV\tOpen Commitment\t\n")
	for _, row := range report.Rows {
		if !row.Active {
			fmt.Fprintf(w, "%s\t%s\t%s\t-\t-\t-\t-\t\n", row.EntityName, row.AssetName, row.Type)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.EntityName,
			row.AssetName,
			row.Type,
			holdings.DisplaySignedAmount(row.NetInvestedBase, base),
			holdings.DisplaySignedAmount(row.NetRevenueBase, base),
			holdings.DisplayAmount(row.NetAssetValueBase, base),
			holdings.DisplayAmount(row.OpenCommitment, base),
		)
	}
	t := report.Total
	fmt.Fprintf(w, "\t%s\t\t%s\t%s\t%s\t\t\n",
		t.AssetName,
		holdings.DisplaySignedAmount(t.NetInvestedBase, base),
		holdings.DisplaySignedAmount(t.NetRevenueBase, base),
		holdings.DisplayAmount(t.NetAssetValueBase, base),
	)
	w.Flush()
	return subcommands.ExitSuccess
}
