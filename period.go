package holdings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AggregateBy selects the report granularity.
type AggregateBy string

const (
	ByYear    AggregateBy = "year"
	ByQuarter AggregateBy = "quarter"
)

// ParseAggregateBy parses a string into an AggregateBy.
func ParseAggregateBy(s string) (AggregateBy, error) {
	switch strings.ToLower(s) {
	case "year", "yearly":
		return ByYear, nil
	case "quarter", "quarterly":
		return ByQuarter, nil
	default:
		return "", fmt.Errorf("unknown aggregation %q, want year or quarter", s)
	}
}

// periodKey buckets a date into its period key: "YYYY" for years,
// "YYYY-Qn" for quarters. Keys compare chronologically as plain strings
// because the year is fixed-width and the quarter a single digit.
func periodKey(d DateTime, by AggregateBy) string {
	if by == ByQuarter {
		return fmt.Sprintf("%04d-Q%d", d.Year(), d.Quarter())
	}
	return fmt.Sprintf("%04d", d.Year())
}

// splitPeriodKey parses a period key back into year and quarter (0 for
// yearly keys). Keys only ever come from periodKey, so a malformed one is a
// programmer error.
func splitPeriodKey(key string, by AggregateBy) (year, quarter int) {
	if by == ByQuarter {
		yStr, qStr, ok := strings.Cut(key, "-Q")
		if !ok {
			panic(fmt.Sprintf("malformed quarter key %q", key))
		}
		year, _ = strconv.Atoi(yStr)
		quarter, _ = strconv.Atoi(qStr)
		return year, quarter
	}
	year, _ = strconv.Atoi(key)
	return year, 0
}

// periodEnd returns the last calendar day of the period.
func periodEnd(key string, by AggregateBy) DateTime {
	y, q := splitPeriodKey(key, by)
	if by == ByQuarter {
		// day 0 of the month after the quarter is its last day
		return NewDateTime(y, time.Month(q*3)+1, 0)
	}
	return NewDateTime(y, time.December, 31)
}

// nextPeriod returns the key of the immediately following period.
func nextPeriod(key string, by AggregateBy) string {
	y, q := splitPeriodKey(key, by)
	if by == ByQuarter {
		q++
		if q > 4 {
			q = 1
			y++
		}
		return fmt.Sprintf("%04d-Q%d", y, q)
	}
	return fmt.Sprintf("%04d", y+1)
}

// Frequency selects how often the FX aggregator records a rate point.
type Frequency string

const (
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
)

// ParseFrequency parses a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(s) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	default:
		return "", fmt.Errorf("unknown frequency %q, want monthly or quarterly", s)
	}
}

// bucketKey buckets a calendar-day string ("2006-01-02") by month or
// quarter for rate downsampling.
func bucketKey(day string, freq Frequency) string {
	if freq == Quarterly {
		y, rest, _ := strings.Cut(day, "-")
		mStr, _, _ := strings.Cut(rest, "-")
		m, _ := strconv.Atoi(mStr)
		return fmt.Sprintf("%s-Q%d", y, (m+2)/3)
	}
	if len(day) >= 7 {
		return day[:7]
	}
	return day
}
