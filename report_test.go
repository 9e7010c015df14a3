package holdings

import (
	"fmt"
	"testing"
	"time"
)

func TestReportGapFilling(t *testing.T) {
	p := newTestPortfolio()
	a := p.Entities[0].Assets[0]
	a.AddInvestment(inv(dt(2020, time.March, 1), -100, -1000))
	a.AddInvestment(inv(dt(2023, time.June, 15), -50, -700))

	report := NewAssetReport(a, ByYear, true)

	wantRows := Now().Year() - 2020 + 1
	if len(report.Rows) != wantRows {
		t.Fatalf("got %d rows, want %d (2020 through the current year)", len(report.Rows), wantRows)
	}
	for i, row := range report.Rows {
		if want := fmt.Sprintf("%d", 2020+i); row.Period != want {
			t.Errorf("row %d period = %q, want %q", i, row.Period, want)
		}
	}

	// 2021 and 2022 are synthesized: no flows, carried-forward units
	for _, i := range []int{1, 2} {
		row := report.Rows[i]
		if !row.Invested.IsZero() || !row.Divested.IsZero() || !row.Revenue.IsZero() || !row.Cost.IsZero() {
			t.Errorf("gap row %s carries flows", row.Period)
		}
		if !row.StartUnits.Equal(dec(-100)) || !row.EndUnits.Equal(dec(-100)) {
			t.Errorf("gap row %s units = %s..%s, want carried -100", row.Period, row.StartUnits, row.EndUnits)
		}
	}
	if !report.Rows[3].EndUnits.Equal(dec(-150)) {
		t.Errorf("2023 endUnits = %s, want -150", report.Rows[3].EndUnits)
	}
}

func TestReportUnitContinuity(t *testing.T) {
	p := newTestPortfolio()
	a := p.Entities[0].Assets[0]
	a.AddInvestment(inv(dt(2020, time.March, 1), -100, -1000))
	a.AddInvestment(inv(dt(2021, time.April, 1), -40, -480))
	a.AddInvestment(inv(dt(2023, time.September, 1), 60, 900)) // partial sale
	a.AddRevenue(rev(dt(2022, time.May, 1), 120))

	for _, by := range []AggregateBy{ByYear, ByQuarter} {
		report := NewAssetReport(a, by, true)
		if len(report.Rows) == 0 {
			t.Fatalf("%v: no rows", by)
		}
		if !report.Rows[0].StartUnits.IsZero() {
			t.Errorf("%v: first row startUnits = %s, want 0", by, report.Rows[0].StartUnits)
		}
		for i := 1; i < len(report.Rows); i++ {
			if !report.Rows[i].StartUnits.Equal(report.Rows[i-1].EndUnits) {
				t.Errorf("%v: row %s startUnits %s != previous endUnits %s",
					by, report.Rows[i].Period, report.Rows[i].StartUnits, report.Rows[i-1].EndUnits)
			}
		}
		last := report.Rows[len(report.Rows)-1]
		if !report.Total.EndUnits.Equal(last.EndUnits) {
			t.Errorf("%v: total endUnits %s != last row endUnits %s", by, report.Total.EndUnits, last.EndUnits)
		}
	}
}

func TestReportSparse(t *testing.T) {
	p := newTestPortfolio()
	a := p.Entities[0].Assets[0]
	a.AddInvestment(inv(dt(2020, time.March, 1), -100, -1000))
	a.AddInvestment(inv(dt(2023, time.June, 15), -50, -700))

	report := NewAssetReport(a, ByYear, false)
	if len(report.Rows) != 2 {
		t.Fatalf("got %d rows, want only the 2 active years", len(report.Rows))
	}
	if report.Rows[0].Period != "2020" || report.Rows[1].Period != "2023" {
		t.Errorf("rows = %s, %s; want 2020, 2023", report.Rows[0].Period, report.Rows[1].Period)
	}
	// units still carry across the omitted years
	if !report.Rows[1].StartUnits.Equal(dec(-100)) || !report.Rows[1].EndUnits.Equal(dec(-150)) {
		t.Errorf("sparse rows lost unit continuity: %s..%s", report.Rows[1].StartUnits, report.Rows[1].EndUnits)
	}
}

func TestReportAccumulation(t *testing.T) {
	p := newTestPortfolio()
	a := p.Entities[0].Assets[0]
	buy := inv(dt(2020, time.March, 1), -100, -1000)
	buy.FXRate = fxp(0.9)
	a.AddInvestment(buy)
	a.AddInvestment(inv(dt(2020, time.August, 1), 30, 450)) // sale, no fx snapshot
	dividend := rev(dt(2020, time.May, 1), 200)
	dividend.FXRate = fxp(0.9)
	a.AddRevenue(dividend)
	a.AddRevenue(rev(dt(2020, time.October, 1), -25)) // fee

	report := NewAssetReport(a, ByYear, false)
	row := report.Rows[0]

	if !row.Invested.Equal(dec(450)) {
		t.Errorf("invested = %s, want 450", row.Invested)
	}
	if !row.Divested.Equal(dec(1000)) {
		t.Errorf("divested = %s, want 1000", row.Divested)
	}
	if !row.Revenue.Equal(dec(200)) {
		t.Errorf("revenue = %s, want 200", row.Revenue)
	}
	if !row.Cost.Equal(dec(25)) {
		t.Errorf("cost = %s, want 25", row.Cost)
	}
	// -1000*0.9 + 450*1
	if !row.NetInvestedBase.Equal(dec(-450)) {
		t.Errorf("netInvestedBase = %s, want -450", row.NetInvestedBase)
	}
	// 200*0.9 + -25*1
	if !row.NetRevenueBase.Equal(dec(155)) {
		t.Errorf("netRevenueBase = %s, want 155", row.NetRevenueBase)
	}
	if !row.EndUnits.Equal(dec(-70)) {
		t.Errorf("endUnits = %s, want -70", row.EndUnits)
	}
}

func TestValuationCarryForward(t *testing.T) {
	p := newTestPortfolio()
	a := p.Entities[0].Assets[0]
	a.AddInvestment(inv(dt(2020, time.March, 1), -100, -1000))
	a.AddInvestment(inv(dt(2022, time.June, 1), -10, -150))
	a.AddValuation(Valuation{Date: dt(2020, time.December, 1), UnitPrice: dec(12)})

	report := NewAssetReport(a, ByYear, true)

	// 2020: explicit mark of 12 beats the implied 10 from March
	if !report.Rows[0].Valuation.Equal(dec(12)) {
		t.Errorf("2020 valuation = %s, want 12", report.Rows[0].Valuation)
	}
	if !report.Rows[0].NetAssetValue.Equal(dec(-1200)) {
		t.Errorf("2020 NAV = %s, want -1200", report.Rows[0].NetAssetValue)
	}
	// 2021: no activity, mark carried forward
	if !report.Rows[1].Valuation.Equal(dec(12)) {
		t.Errorf("2021 valuation = %s, want carried 12", report.Rows[1].Valuation)
	}
	if !report.Rows[1].NetAssetValue.Equal(dec(-1200)) {
		t.Errorf("2021 NAV = %s, want -1200", report.Rows[1].NetAssetValue)
	}
	// 2022: implied price 150/10 = 15 from the June investment
	if !report.Rows[2].Valuation.Equal(dec(15)) {
		t.Errorf("2022 valuation = %s, want implied 15", report.Rows[2].Valuation)
	}
	if !report.Rows[2].NetAssetValue.Equal(dec(-1650)) {
		t.Errorf("2022 NAV = %s, want -1650", report.Rows[2].NetAssetValue)
	}
}

func TestReportWithoutValuation(t *testing.T) {
	p := newTestPortfolio()
	a := p.Entities[0].Assets[0]
	a.AddRevenue(rev(dt(2020, time.May, 1), 100)) // revenue only, no units, no marks

	report := NewAssetReport(a, ByYear, true)
	if !report.Rows[0].Valuation.IsZero() || !report.Rows[0].NetAssetValue.IsZero() {
		t.Errorf("unmarked asset carries a valuation: %s / %s",
			report.Rows[0].Valuation, report.Rows[0].NetAssetValue)
	}
}

func TestReportTotalRow(t *testing.T) {
	p := newTestPortfolio()
	a := p.Entities[0].Assets[0]
	a.AddInvestment(inv(dt(2020, time.March, 1), -100, -1000))
	a.AddInvestment(inv(dt(2021, time.March, 1), 20, 300))
	a.AddRevenue(rev(dt(2020, time.May, 1), 50))

	report := NewAssetReport(a, ByYear, true)
	total := report.Total

	if !total.Invested.Equal(dec(300)) || !total.Divested.Equal(dec(1000)) {
		t.Errorf("total flows = %s/%s, want 300/1000", total.Invested, total.Divested)
	}
	if !total.Revenue.Equal(dec(50)) {
		t.Errorf("total revenue = %s, want 50", total.Revenue)
	}
	if !total.StartUnits.IsZero() {
		t.Errorf("total startUnits = %s, want the first row's 0", total.StartUnits)
	}
	last := report.Rows[len(report.Rows)-1]
	if !total.EndUnits.Equal(last.EndUnits) || !total.Valuation.Equal(last.Valuation) ||
		!total.NetAssetValue.Equal(last.NetAssetValue) {
		t.Errorf("total snapshot columns do not mirror the last row")
	}
}

func TestEmptyAssetReport(t *testing.T) {
	p := newTestPortfolio()
	report := NewAssetReport(p.Entities[0].Assets[0], ByYear, true)
	if len(report.Rows) != 0 {
		t.Errorf("asset without transactions produced %d rows", len(report.Rows))
	}
	if report.Currency == nil || report.Currency.ISO != "USD" {
		t.Errorf("report does not carry the owning entity's currency")
	}
}

func TestPortfolioReport(t *testing.T) {
	p := newTestPortfolio()
	a := p.Entities[0].Assets[0]
	first := inv(dt(2020, time.March, 1), -100, -1000)
	first.FXRate = fxp(0.97)
	a.AddInvestment(first)
	a.AddCommitment(inv(dt(2020, time.January, 1), 0, -2500))

	chf := p.Currency("CHF")
	e := p.AddEntity(&Entity{Name: "Helvetia Holding", Country: "CH", Currency: chf})
	idle := e.AddAsset(&Asset{Name: "Office Building", Type: OtherAsset, Unit: Amount})
	idle.AddInvestment(inv(dt(2023, time.February, 1), -1, -900000))

	report := NewPortfolioReport(p, 2020)

	if len(report.Rows) != 2 {
		t.Fatalf("got %d rows, want one per asset", len(report.Rows))
	}

	active := report.Rows[0]
	if !active.Active {
		t.Fatalf("asset with 2020 activity reported inactive")
	}
	if !active.NetInvestedBase.Equal(dec(-970)) {
		t.Errorf("netInvestedBase = %s, want -970", active.NetInvestedBase)
	}
	if !active.Committed.Equal(dec(2500)) {
		t.Errorf("committed = %s, want 2500", active.Committed)
	}
	if !active.TotalInvested.Equal(dec(1000)) {
		t.Errorf("totalInvested = %s, want 1000", active.TotalInvested)
	}
	if !active.OpenCommitment.Equal(dec(1500)) {
		t.Errorf("openCommitment = %s, want 1500", active.OpenCommitment)
	}

	placeholder := report.Rows[1]
	if placeholder.Active {
		t.Errorf("asset first active in 2023 reported active for 2020")
	}
	if placeholder.EntityName != "Helvetia Holding" || placeholder.AssetName != "Office Building" {
		t.Errorf("placeholder row lost its identity fields")
	}
	if !placeholder.NetInvestedBase.IsZero() {
		t.Errorf("placeholder row carries flows")
	}

	if report.Total.Currency != p.BaseCurrency {
		t.Errorf("total row does not carry the base currency")
	}
	if !report.Total.NetInvestedBase.Equal(dec(-970)) {
		t.Errorf("total netInvestedBase = %s, want -970", report.Total.NetInvestedBase)
	}
}

func TestYearRange(t *testing.T) {
	p := newTestPortfolio()

	now := Now().Year()
	if got := YearRange(p); len(got) != 1 || got[0] != now {
		t.Errorf("empty portfolio YearRange = %v, want [%d]", got, now)
	}

	a := p.Entities[0].Assets[0]
	a.AddInvestment(inv(dt(2019, time.March, 1), -10, -100))
	a.AddRevenue(rev(dt(2021, time.June, 1), 5))

	got := YearRange(p)
	if got[0] != 2019 || got[len(got)-1] != now {
		t.Errorf("YearRange = %v, want 2019..%d", got, now)
	}
	for i := 1; i < len(got); i++ {
		if got[i] != got[i-1]+1 {
			t.Errorf("YearRange is not contiguous: %v", got)
		}
	}
}
