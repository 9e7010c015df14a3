package holdings

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIsDateTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2023-01-15T00:00:00.000Z", true},
		{"1999-12-31T23:59:59.999Z", true},
		{"2023-01-15", false},                 // date only
		{"2023-01-15T00:00:00Z", false},       // missing milliseconds
		{"2023-01-15T00:00:00.000+01:00", false}, // offset instead of Z
		{"2023-01-15T00:00:00.000Z extra", false},
		{"Initial investment", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDateTime(tt.input); got != tt.want {
			t.Errorf("IsDateTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	d, err := ParseDateTime("2023-06-01T12:30:45.500Z")
	if err != nil {
		t.Fatalf("ParseDateTime failed: %v", err)
	}
	if d.Year() != 2023 || d.Month() != time.June || d.Day() != 1 {
		t.Errorf("got %v, want 2023-06-01", d)
	}
	if got := d.String(); got != "2023-06-01T12:30:45.500Z" {
		t.Errorf("String() = %q, want the input back", got)
	}

	if _, err := ParseDateTime("2023-06-01"); err == nil {
		t.Errorf("expected error for date without time part")
	}
}

func TestDateTimeJSONRoundTrip(t *testing.T) {
	in := NewDateTime(2024, time.February, 29)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2024-02-29T00:00:00.000Z"` {
		t.Errorf("marshal = %s", data)
	}
	var out DateTime
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !in.Equal(out) {
		t.Errorf("round trip changed the value: %v != %v", in, out)
	}
}

func TestQuarter(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 1}, {time.March, 1},
		{time.April, 2}, {time.June, 2},
		{time.July, 3}, {time.September, 3},
		{time.October, 4}, {time.December, 4},
	}
	for _, tt := range tests {
		d := NewDateTime(2024, tt.month, 15)
		if got := d.Quarter(); got != tt.want {
			t.Errorf("Quarter(%v) = %d, want %d", tt.month, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b DateTime
		want int
	}{
		{"same day", NewDateTime(2020, 1, 1), NewDateTime(2020, 1, 1), 0},
		{"one day", NewDateTime(2020, 1, 1), NewDateTime(2020, 1, 2), 1},
		{"leap year", NewDateTime(2020, 1, 1), NewDateTime(2021, 1, 1), 366},
		{"regular year", NewDateTime(2019, 1, 1), NewDateTime(2020, 1, 1), 365},
		{"negative", NewDateTime(2020, 1, 10), NewDateTime(2020, 1, 1), -9},
		{
			"time of day ignored",
			At(time.Date(2020, 1, 1, 23, 59, 0, 0, time.UTC)),
			At(time.Date(2020, 1, 2, 0, 1, 0, 0, time.UTC)),
			1,
		},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: DaysBetween = %d, want %d", tt.name, got, tt.want)
		}
	}
}
