package holdings

import (
	"time"

	"github.com/shopspring/decimal"
)

// helpers shared by the package tests.

func dt(y int, m time.Month, d int) DateTime { return NewDateTime(y, m, d) }

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func fxp(f float64) *decimal.Decimal {
	v := decimal.NewFromFloat(f)
	return &v
}

func inv(on DateTime, units, value float64) Investment {
	return Investment{
		Valuta:      on,
		Description: "test investment",
		Units:       dec(units),
		Value:       dec(value),
	}
}

func rev(on DateTime, value float64) Revenue {
	return Revenue{Valuta: on, Description: "test revenue", Value: dec(value)}
}

// newTestPortfolio builds a portfolio with a CHF base, a USD currency with
// a small rate history, and one USD entity holding one empty asset.
func newTestPortfolio() *Portfolio {
	p := NewPortfolio("Test Portfolio", "CHF")
	usd := p.AddCurrency(&Currency{ISO: "USD", Rates: []RatePoint{
		{Date: dt(2020, time.January, 1), Rate: dec(0.97)},
		{Date: dt(2022, time.January, 1), Rate: dec(0.91)},
		{Date: dt(2024, time.January, 1), Rate: dec(0.85)},
	}})
	e := p.AddEntity(&Entity{
		Name:      "Alpine Ventures AG",
		Address:   "Bahnhofstrasse 1, Zurich",
		Country:   "CH",
		Currency:  usd,
		DocFolder: "docs/alpine/",
	})
	e.AddAsset(&Asset{Name: "Growth Fund I", Type: Equity, Unit: Shares})
	return p
}
