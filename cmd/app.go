// Package cmd implements the CLI application to manage a portfolio document.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/mbeutler/holdings"
)

// Register the subcommands.
// A main package calls Register() to declare them, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "document")
	c.Register(&fmtCmd{}, "document")

	c.Register(&reportCmd{}, "reports")
	c.Register(&overviewCmd{}, "reports")
	c.Register(&xirrCmd{}, "reports")

	c.Register(&ratesCmd{}, "rates")
}

// as a CLI application it is very short lived, so global flags are fine.

var portfolioFile = flag.String("portfolio-file", "portfolio.json", "Path to the portfolio document")

// DecodePortfolio loads the app portfolio document and records the document
// root folder for this run.
func DecodePortfolio() (*holdings.Portfolio, error) {
	f, err := os.Open(*portfolioFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := holdings.DecodePortfolio(f)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(*portfolioFile); err == nil {
		p.DocRoot = filepath.Dir(abs)
	}
	return p, nil
}

// EncodePortfolio writes the portfolio document back to the app file.
func EncodePortfolio(p *holdings.Portfolio) error {
	f, err := os.Create(*portfolioFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return holdings.EncodePortfolio(f, p)
}

// findAsset resolves an asset by entity and asset name.
func findAsset(p *holdings.Portfolio, entityName, assetName string) (*holdings.Asset, error) {
	for _, e := range p.Entities {
		if e.Name != entityName {
			continue
		}
		for _, a := range e.Assets {
			if a.Name == assetName {
				return a, nil
			}
		}
		return nil, fmt.Errorf("entity %q has no asset %q", entityName, assetName)
	}
	return nil, fmt.Errorf("no entity %q in portfolio", entityName)
}
