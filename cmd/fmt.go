package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrites the portfolio document in canonical form"
}
func (*fmtCmd) Usage() string {
	return `hld fmt

  Reads the portfolio document, relinks the currency and entity references,
  and writes it back pretty-printed in canonical field order.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Formatted %s\n", *portfolioFile)
	return subcommands.ExitSuccess
}
