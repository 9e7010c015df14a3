package holdings

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DisplayAmount formats an amount for terminal output with the symbol,
// fraction digits and grouping of the given ISO currency.
func DisplayAmount(v decimal.Decimal, iso string) string {
	// the Money constructor is the one way to a never-nil currency
	cur := *money.New(0, iso).Currency()
	shifted := v.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.IntPart())
}

// DisplaySignedAmount is DisplayAmount with an explicit sign, rendering
// zero as "-" so flow tables stay readable.
func DisplaySignedAmount(v decimal.Decimal, iso string) string {
	if v.IsZero() {
		return "-"
	}
	if v.IsPositive() {
		return "+" + DisplayAmount(v, iso)
	}
	return DisplayAmount(v, iso)
}
