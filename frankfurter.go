package holdings

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file contains the RateSource backed by the Frankfurter API, a free
// ECB-based FX rate service.
//
//	https://api.frankfurter.dev/v1/2024-01-01..2024-03-31?base=USD&symbols=CHF
//	{
//	  "base": "USD",
//	  "start_date": "2024-01-01",
//	  "end_date": "2024-03-31",
//	  "rates": { "2024-01-02": { "CHF": 0.8504 }, ... }
//	}

const frankfurterAddr = "https://api.frankfurter.dev/v1"

// Frankfurter returns a RateSource fetching daily rate series from the
// Frankfurter API, with responses cached on disk for a day.
func Frankfurter() RateSource {
	return frankfurter{}
}

type frankfurter struct{}

func (frankfurter) Series(currency, target string, from, to DateTime) (map[string]map[string]decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/%s..%s?base=%s&symbols=%s",
		frankfurterAddr,
		from.Time().Format(DayFormat), to.Time().Format(DayFormat),
		currency, target)

	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error fetching %s/%s rates: %w", currency, target, err)
	}

	jval, err := jsonpath.Get("$.rates", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s/%s rates: %w", currency, target, err)
	}
	tables, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %s/%s rates: unexpected shape %T", currency, target, jval)
	}

	series := make(map[string]map[string]decimal.Decimal, len(tables))
	for day, jtable := range tables {
		table, ok := jtable.(map[string]any)
		if !ok {
			continue
		}
		row := make(map[string]decimal.Decimal, len(table))
		for iso, jrate := range table {
			rate, ok := jrate.(float64)
			if !ok {
				return nil, fmt.Errorf("error parsing %s/%s rates: %s on %s is not a number", currency, target, iso, day)
			}
			row[iso] = decimal.NewFromFloat(rate)
		}
		series[day] = row
	}
	return series, nil
}
