package holdings

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// DateTimeFormat is the wire format for every date in a portfolio document:
// strict ISO-8601 with millisecond precision and a Z suffix for UTC.
const DateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// dateTimeRE matches exactly the strings the document codec revives into
// DateTime values, anywhere they appear in a document.
var dateTimeRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// DateTime is an instant with millisecond wire precision. Valuta dates,
// valuation marks and FX rate points all use it. Calendar accessors and day
// arithmetic work on the UTC calendar day, ignoring the time of day.
type DateTime struct {
	t time.Time
}

// NewDateTime returns the DateTime at midnight UTC of the given calendar day.
func NewDateTime(year int, month time.Month, day int) DateTime {
	return DateTime{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// At returns the DateTime for an instant, normalized to UTC and truncated to
// the millisecond precision the wire format can carry.
func At(t time.Time) DateTime {
	return DateTime{t.UTC().Truncate(time.Millisecond)}
}

// Now returns the current instant as a DateTime.
func Now() DateTime { return At(time.Now()) }

// Time returns the underlying instant in UTC.
func (d DateTime) Time() time.Time { return d.t }

// Year returns the UTC calendar year.
func (d DateTime) Year() int { return d.t.Year() }

// Month returns the UTC calendar month.
func (d DateTime) Month() time.Month { return d.t.Month() }

// Day returns the UTC day of the month.
func (d DateTime) Day() int { return d.t.Day() }

// Quarter returns the calendar quarter in [1..4].
func (d DateTime) Quarter() int { return (int(d.t.Month())-1)/3 + 1 }

// Before reports whether d is strictly before x.
func (d DateTime) Before(x DateTime) bool { return d.t.Before(x.t) }

// After reports whether d is strictly after x.
func (d DateTime) After(x DateTime) bool { return d.t.After(x.t) }

// Equal reports whether d and x are the same instant.
func (d DateTime) Equal(x DateTime) bool { return d.t.Equal(x.t) }

// IsZero reports whether d is the zero value.
func (d DateTime) IsZero() bool { return d.t.IsZero() }

// day returns the canonical midnight-UTC time of d's calendar day.
func (d DateTime) day() time.Time {
	y, m, dd := d.t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// String formats d in the document wire format.
func (d DateTime) String() string { return d.t.Format(DateTimeFormat) }

// IsDateTime reports whether s matches the strict wire format. The codec
// applies this to string values regardless of the field they sit in.
func IsDateTime(s string) bool { return dateTimeRE.MatchString(s) }

// ParseDateTime parses a string in the strict wire format.
func ParseDateTime(s string) (DateTime, error) {
	if !IsDateTime(s) {
		return DateTime{}, fmt.Errorf("invalid datetime %q, want format %q", s, DateTimeFormat)
	}
	t, err := time.Parse(DateTimeFormat, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid datetime %q: %w", s, err)
	}
	return At(t), nil
}

// MustParseDateTime is like ParseDateTime but panics on error.
func MustParseDateTime(s string) DateTime {
	d, err := ParseDateTime(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// check that a DateTime pointer is a valid json marshal/unmarshal type.
var _ json.Marshaler = (*DateTime)(nil)
var _ json.Unmarshaler = (*DateTime)(nil)

// DaysBetween returns the number of whole UTC calendar days from a to b,
// negative when b is before a. Time of day is ignored on both sides.
func DaysBetween(a, b DateTime) int {
	return int(b.day().Sub(a.day()) / (24 * time.Hour))
}
