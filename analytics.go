package holdings

import (
	"github.com/shopspring/decimal"
)

// assetFlows collects an asset's cash flows up to asOf, in the asset's own
// currency when base is false, otherwise converted with the recorded rate
// snapshots. Investment and revenue values are already signed from the
// investor's perspective: capital deployed is negative, money received
// positive. When the asset still holds units at asOf and a unit price is
// known, a terminal mark-to-market flow stands in for a liquidation.
func assetFlows(a *Asset, asOf DateTime, base bool) []CashFlow {
	var flows []CashFlow
	amount := func(value, converted decimal.Decimal) float64 {
		if base {
			return converted.InexactFloat64()
		}
		return value.InexactFloat64()
	}

	units := decimal.Decimal{}
	for _, inv := range a.Investments {
		if inv.Valuta.After(asOf) {
			continue
		}
		flows = append(flows, CashFlow{Date: inv.Valuta, Amount: amount(inv.Value, inv.BaseValue())})
		units = units.Add(inv.Units)
	}
	for _, rev := range a.Revenues {
		if rev.Valuta.After(asOf) {
			continue
		}
		flows = append(flows, CashFlow{Date: rev.Valuta, Amount: amount(rev.Value, rev.BaseValue())})
	}

	if units.IsZero() {
		return flows
	}
	pt, ok := priceAt(valuationSeries(a), asOf)
	if !ok {
		return flows
	}
	// Holdings accumulate as negative units, so the liquidation value is
	// the negated mark-to-market position.
	nav := pt.price.Mul(units)
	if base && a.Entity != nil && a.Entity.Currency != nil {
		nav = nav.Mul(a.Entity.Currency.RateOn(asOf))
	}
	flows = append(flows, CashFlow{Date: asOf, Amount: nav.Neg().InexactFloat64()})
	return flows
}

// AssetXIRR computes the annualized return of a single asset as of the
// given date, from its recorded cash flows plus a terminal mark-to-market
// flow. It fails with ErrInvalidCashflows when the asset has too little
// history to define a return.
func AssetXIRR(a *Asset, asOf DateTime) (float64, error) {
	return XIRR(assetFlows(a, asOf, false))
}

// PortfolioXIRR computes the annualized return of the whole portfolio as of
// the given date, pooling every asset's cash flows in the base currency.
func PortfolioXIRR(p *Portfolio, asOf DateTime) (float64, error) {
	var flows []CashFlow
	for _, e := range p.Entities {
		for _, a := range e.Assets {
			flows = append(flows, assetFlows(a, asOf, true)...)
		}
	}
	return XIRR(flows)
}
