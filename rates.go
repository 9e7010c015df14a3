package holdings

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DayFormat is the calendar-day format rate sources key their series by.
const DayFormat = "2006-01-02"

// RateSource supplies a fine-grained FX rate series for a currency pair
// over a date range: a mapping from calendar day ("2006-01-02") to a
// per-currency rate table. A failed fetch is a hard failure for the single
// refresh operation consuming it; nothing retries internally.
type RateSource interface {
	Series(currency, target string, from, to DateTime) (map[string]map[string]decimal.Decimal, error)
}

// dayRate is one retrieved entry keyed by its calendar-day string.
type dayRate struct {
	day  string
	rate decimal.Decimal
}

// downsample buckets daily entries by month or quarter, keeps only the
// chronologically latest entry of each bucket, and returns the result as a
// date-ascending rate history.
func downsample(entries []dayRate, freq Frequency) ([]RatePoint, error) {
	latest := make(map[string]dayRate)
	for _, e := range entries {
		key := bucketKey(e.day, freq)
		if kept, ok := latest[key]; !ok || e.day > kept.day {
			latest[key] = e
		}
	}

	points := make([]RatePoint, 0, len(latest))
	for _, e := range latest {
		t, err := time.Parse(DayFormat, e.day)
		if err != nil {
			return nil, fmt.Errorf("rate source returned invalid day %q: %w", e.day, err)
		}
		points = append(points, RatePoint{Date: At(t), Rate: e.rate})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

// rateSpan returns the date span a currency's history must cover: the union
// of every investment and revenue valuta date of entities denominated in
// the currency, and every date already recorded in its own history. The
// second return is false when that set is empty.
func rateSpan(c *Currency, p *Portfolio) (from, to DateTime, ok bool) {
	grow := func(d DateTime) {
		if !ok {
			from, to, ok = d, d, true
			return
		}
		if d.Before(from) {
			from = d
		}
		if d.After(to) {
			to = d
		}
	}

	for _, e := range p.Entities {
		if e.Currency == nil || e.Currency.ISO != c.ISO {
			continue
		}
		for _, a := range e.Assets {
			for _, inv := range a.Investments {
				grow(inv.Valuta)
			}
			for _, rev := range a.Revenues {
				grow(rev.Valuta)
			}
		}
	}
	for _, r := range c.Rates {
		grow(r.Date)
	}
	return from, to, ok
}

// RefreshRates replaces a currency's rate history with a freshly fetched,
// downsampled series covering every date the portfolio needs. It is a no-op
// when the currency is the base currency or when nothing in the document is
// denominated in it. A fetch failure propagates to the caller and leaves
// the existing history untouched: the wholesale replace happens only after
// a fully successful fetch and downsample.
func RefreshRates(src RateSource, c, base *Currency, p *Portfolio, freq Frequency) error {
	if c.ISO == base.ISO {
		return nil
	}
	from, to, ok := rateSpan(c, p)
	if !ok {
		return nil
	}

	series, err := src.Series(c.ISO, base.ISO, from, to)
	if err != nil {
		return fmt.Errorf("cannot refresh %s rates: %w", c.ISO, err)
	}

	entries := make([]dayRate, 0, len(series))
	for day, table := range series {
		rate, ok := table[base.ISO]
		if !ok {
			continue
		}
		entries = append(entries, dayRate{day: day, rate: rate})
	}

	points, err := downsample(entries, freq)
	if err != nil {
		return fmt.Errorf("cannot refresh %s rates: %w", c.ISO, err)
	}
	c.Rates = points
	return nil
}
