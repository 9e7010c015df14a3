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

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	entity string
	asset  string
	by     string
	sparse bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the periodic report of a single asset" }
func (*reportCmd) Usage() string {
	return `hld report -e <entity> -a <asset> [-by year|quarter] [-sparse]

  Displays an asset's transactions aggregated by year or quarter, with
  running unit counts and mark-to-market valuation. By default every period
  from the first transaction to today appears; -sparse limits the output to
  periods with activity.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entity, "e", "", "Entity holding the asset")
	f.StringVar(&c.asset, "a", "", "Asset to report on")
	f.StringVar(&c.by, "by", "year", "Aggregation granularity: year or quarter")
	f.BoolVar(&c.sparse, "sparse", false, "only emit periods with at least one transaction")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	by, err := holdings.ParseAggregateBy(c.by)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	asset, err := findAsset(p, c.entity, c.asset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report := holdings.NewAssetReport(asset, by, !c.sparse)
	iso := p.BaseCurrency.ISO
	if report.Currency != nil {
		iso = report.Currency.ISO
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Period\tInvested\tDivested\tRevenue\tCost\tUnits\tValuation\tNAV\t\n")
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Period,
			holdings.DisplayAmount(row.Invested, iso),
			holdings.DisplayAmount(row.Divested, iso),
			holdings.DisplayAmount(row.Revenue, iso),
			holdings.DisplayAmount(row.Cost, iso),
			row.EndUnits.String(),
			holdings.DisplayAmount(row.Valuation, iso),
			holdings.DisplayAmount(row.NetAssetValue, iso),
		)
	}
	t := report.Total
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
		t.Period,
		holdings.DisplayAmount(t.Invested, iso),
		holdings.DisplayAmount(t.Divested, iso),
		holdings.DisplayAmount(t.Revenue, iso),
		holdings.DisplayAmount(t.Cost, iso),
		t.EndUnits.String(),
		holdings.DisplayAmount(t.Valuation, iso),
		holdings.DisplayAmount(t.NetAssetValue, iso),
	)
	w.Flush()
	return subcommands.ExitSuccess
}
