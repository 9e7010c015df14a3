package holdings

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AssetReportRow is one period of an asset report. Amounts are in the
// asset's own currency except the Base columns, which were converted with
// the per-transaction rate snapshots (or, for the net asset value, the
// currency's recorded rate at period end).
type AssetReportRow struct {
	Period string

	Invested decimal.Decimal // capital in, sum of non-negative investment values
	Divested decimal.Decimal // capital out, absolute sum of negative investment values
	Revenue  decimal.Decimal // distributions received
	Cost     decimal.Decimal // fees and costs charged

	StartUnits decimal.Decimal // units carried in from the previous period
	EndUnits   decimal.Decimal // StartUnits plus this period's signed unit deltas

	Valuation     decimal.Decimal // unit price effective at period end, 0 when unmarked
	ValuationDate DateTime        // date of the mark applied, zero when unmarked
	NetAssetValue decimal.Decimal // Valuation times EndUnits

	NetInvestedBase   decimal.Decimal // signed investment values in base currency
	NetRevenueBase    decimal.Decimal // signed revenue values in base currency
	NetAssetValueBase decimal.Decimal // NetAssetValue at the recorded period-end rate
}

// AssetReport is the periodic view of a single asset: one row per year or
// quarter, gap-filled, plus a total row whose flow columns are sums and
// whose unit and valuation columns snapshot the first and last rows.
type AssetReport struct {
	Name         string
	AggregatedBy AggregateBy
	Type         AssetType
	Unit         UnitKind
	Currency     *Currency
	Rows         []AssetReportRow
	Total        AssetReportRow
}

// event is an investment or revenue line flattened for accumulation.
type event struct {
	date    DateTime
	revenue bool
	value   decimal.Decimal
	units   decimal.Decimal
	base    decimal.Decimal // value at the recorded rate snapshot
}

// pricePoint is one entry of an asset's unit-price series.
type pricePoint struct {
	date  DateTime
	price decimal.Decimal
}

// valuationSeries builds the date-sorted unit-price series of an asset:
// every explicit mark, plus an implied point per investment with a non-zero
// unit delta (price = value / units).
func valuationSeries(a *Asset) []pricePoint {
	points := make([]pricePoint, 0, len(a.Valuations)+len(a.Investments))
	for _, v := range a.Valuations {
		points = append(points, pricePoint{date: v.Date, price: v.UnitPrice})
	}
	for _, inv := range a.Investments {
		if !inv.Units.IsZero() {
			points = append(points, pricePoint{date: inv.Valuta, price: inv.Value.Div(inv.Units)})
		}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].date.Before(points[j].date) })
	return points
}

// priceAt returns the latest point with date <= on: the step-function,
// last-observation-carried-forward lookup.
func priceAt(series []pricePoint, on DateTime) (pricePoint, bool) {
	var found pricePoint
	var ok bool
	for _, p := range series {
		if p.date.After(on) {
			break
		}
		found, ok = p, true
	}
	return found, ok
}

// NewAssetReport converts an asset's transactions and valuations into a
// periodic report. With fillGaps, one row is emitted for every period from
// the earliest observed to the later of the last observed period and the
// current one, even when no transaction fell in it; without it, only
// periods with at least one event appear. Either way units and valuations
// carry forward from row to row. The asset graph is never mutated.
func NewAssetReport(a *Asset, by AggregateBy, fillGaps bool) *AssetReport {
	events := make([]event, 0, len(a.Investments)+len(a.Revenues))
	for _, inv := range a.Investments {
		events = append(events, event{date: inv.Valuta, value: inv.Value, units: inv.Units, base: inv.BaseValue()})
	}
	for _, rev := range a.Revenues {
		events = append(events, event{date: rev.Valuta, revenue: true, value: rev.Value, base: rev.BaseValue()})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].date.Before(events[j].date) })

	series := valuationSeries(a)

	rowFor := make(map[string]*AssetReportRow)
	unitDelta := make(map[string]decimal.Decimal)
	for _, ev := range events {
		key := periodKey(ev.date, by)
		row := rowFor[key]
		if row == nil {
			row = &AssetReportRow{Period: key}
			rowFor[key] = row
		}
		if ev.revenue {
			if ev.value.Sign() >= 0 {
				row.Revenue = row.Revenue.Add(ev.value)
			} else {
				row.Cost = row.Cost.Sub(ev.value)
			}
			row.NetRevenueBase = row.NetRevenueBase.Add(ev.base)
		} else {
			if ev.value.Sign() >= 0 {
				row.Invested = row.Invested.Add(ev.value)
			} else {
				row.Divested = row.Divested.Sub(ev.value)
			}
			row.NetInvestedBase = row.NetInvestedBase.Add(ev.base)
			unitDelta[key] = unitDelta[key].Add(ev.units)
		}
	}

	keys := make([]string, 0, len(rowFor))
	for k := range rowFor {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var currency *Currency
	if a.Entity != nil {
		currency = a.Entity.Currency
	}

	// finish fills the carried-forward columns of a row and returns its
	// end-of-period unit count for the next one.
	finish := func(row *AssetReportRow, prevUnits decimal.Decimal) decimal.Decimal {
		row.StartUnits = prevUnits
		row.EndUnits = prevUnits.Add(unitDelta[row.Period])
		end := periodEnd(row.Period, by)
		if pt, ok := priceAt(series, end); ok {
			row.Valuation = pt.price
			row.ValuationDate = pt.date
			row.NetAssetValue = pt.price.Mul(row.EndUnits)
			if currency != nil {
				row.NetAssetValueBase = row.NetAssetValue.Mul(currency.RateOn(end))
			} else {
				row.NetAssetValueBase = row.NetAssetValue
			}
		}
		return row.EndUnits
	}

	var rows []AssetReportRow
	var prevUnits decimal.Decimal
	if len(keys) > 0 && fillGaps {
		last := keys[len(keys)-1]
		if now := periodKey(Now(), by); now > last {
			last = now
		}
		for key := keys[0]; key <= last; key = nextPeriod(key, by) {
			row := rowFor[key]
			if row == nil {
				row = &AssetReportRow{Period: key}
			}
			prevUnits = finish(row, prevUnits)
			rows = append(rows, *row)
		}
	} else {
		for _, key := range keys {
			row := rowFor[key]
			prevUnits = finish(row, prevUnits)
			rows = append(rows, *row)
		}
	}

	// The total row sums the flow columns; units and valuation are
	// snapshots of the first and last rows, not sums.
	total := AssetReportRow{Period: "Total"}
	for _, row := range rows {
		total.Invested = total.Invested.Add(row.Invested)
		total.Divested = total.Divested.Add(row.Divested)
		total.Revenue = total.Revenue.Add(row.Revenue)
		total.Cost = total.Cost.Add(row.Cost)
		total.NetInvestedBase = total.NetInvestedBase.Add(row.NetInvestedBase)
		total.NetRevenueBase = total.NetRevenueBase.Add(row.NetRevenueBase)
	}
	if len(rows) > 0 {
		first, last := rows[0], rows[len(rows)-1]
		total.StartUnits = first.StartUnits
		total.EndUnits = last.EndUnits
		total.Valuation = last.Valuation
		total.ValuationDate = last.ValuationDate
		total.NetAssetValue = last.NetAssetValue
		total.NetAssetValueBase = last.NetAssetValueBase
	}

	return &AssetReport{
		Name:         a.Name,
		AggregatedBy: by,
		Type:         a.Type,
		Unit:         a.Unit,
		Currency:     currency,
		Rows:         rows,
		Total:        total,
	}
}

// PortfolioReportRow is one asset's contribution to a portfolio year
// report. Placeholder rows for assets inactive that year carry identity
// fields only, with Active false.
type PortfolioReportRow struct {
	EntityName string
	Country    string
	AssetName  string
	Type       AssetType
	Currency   *Currency
	Active     bool

	Invested   decimal.Decimal
	Divested   decimal.Decimal
	StartUnits decimal.Decimal
	EndUnits   decimal.Decimal

	NetInvestedBase   decimal.Decimal
	NetRevenueBase    decimal.Decimal
	NetAssetValueBase decimal.Decimal

	Committed      decimal.Decimal // total capital committed, all years
	TotalInvested  decimal.Decimal // total capital drawn, all years
	OpenCommitment decimal.Decimal // Committed minus TotalInvested
}

// PortfolioReport is the cross-portfolio roll-up for one calendar year:
// exactly one row per asset regardless of activity, and a total row summing
// the base-currency columns only. The total carries no currency other than
// the portfolio's base currency; raw invested and divested figures are
// never aggregated across currencies.
type PortfolioReport struct {
	Name  string
	Year  int
	Rows  []PortfolioReportRow
	Total PortfolioReportRow
}

// Committed returns the total capital committed to the asset, as the
// absolute sum of its commitment values.
func Committed(a *Asset) decimal.Decimal {
	var sum decimal.Decimal
	for _, c := range a.Commitments {
		sum = sum.Add(c.Value.Abs())
	}
	return sum
}

// Drawn returns the total capital deployed into the asset: the absolute
// sum of its negative investment values.
func Drawn(a *Asset) decimal.Decimal {
	var sum decimal.Decimal
	for _, inv := range a.Investments {
		if inv.Value.Sign() < 0 {
			sum = sum.Sub(inv.Value)
		}
	}
	return sum
}

// NewPortfolioReport rolls every asset's yearly report into a portfolio
// view for the requested year.
func NewPortfolioReport(p *Portfolio, year int) *PortfolioReport {
	report := &PortfolioReport{Name: p.Name, Year: year}
	yearKey := periodKey(NewDateTime(year, 1, 1), ByYear)

	for _, e := range p.Entities {
		for _, a := range e.Assets {
			row := PortfolioReportRow{
				EntityName: e.Name,
				Country:    e.Country,
				AssetName:  a.Name,
				Type:       a.Type,
				Currency:   e.Currency,
			}
			ar := NewAssetReport(a, ByYear, true)
			for _, r := range ar.Rows {
				if r.Period != yearKey {
					continue
				}
				row.Active = true
				row.Invested = r.Invested
				row.Divested = r.Divested
				row.StartUnits = r.StartUnits
				row.EndUnits = r.EndUnits
				row.NetInvestedBase = r.NetInvestedBase
				row.NetRevenueBase = r.NetRevenueBase
				row.NetAssetValueBase = r.NetAssetValueBase
				row.Committed = Committed(a)
				row.TotalInvested = Drawn(a)
				row.OpenCommitment = row.Committed.Sub(row.TotalInvested)
				break
			}
			report.Rows = append(report.Rows, row)
		}
	}

	total := PortfolioReportRow{AssetName: "Total", Type: OtherAsset, Currency: p.BaseCurrency}
	for _, row := range report.Rows {
		total.NetInvestedBase = total.NetInvestedBase.Add(row.NetInvestedBase)
		total.NetRevenueBase = total.NetRevenueBase.Add(row.NetRevenueBase)
		total.NetAssetValueBase = total.NetAssetValueBase.Add(row.NetAssetValueBase)
	}
	report.Total = total
	return report
}

// YearRange returns every calendar year from the earliest to the latest
// investment or revenue valuta date across the portfolio, inclusive. A
// portfolio with no transactions yields just the current year.
func YearRange(p *Portfolio) []int {
	now := Now().Year()
	min, max := now, now
	for _, e := range p.Entities {
		for _, a := range e.Assets {
			for _, inv := range a.Investments {
				if y := inv.Valuta.Year(); y < min {
					min = y
				} else if y > max {
					max = y
				}
			}
			for _, rev := range a.Revenues {
				if y := rev.Valuta.Year(); y < min {
					min = y
				} else if y > max {
					max = y
				}
			}
		}
	}
	years := make([]int, 0, max-min+1)
	for y := min; y <= max; y++ {
		years = append(years, y)
	}
	return years
}
