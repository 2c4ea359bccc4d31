package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/almanac/internal/constants"
)

// ErrInvalidDay is returned when a string cannot be interpreted as a calendar date.
var ErrInvalidDay = errors.New("invalid date")

const secondsPerDay = 24 * 60 * 60

// Day is a calendar date with no time-of-day, stored as the number of days
// since 1970-01-01 in the proleptic Gregorian calendar. Comparison and
// subtraction work directly on the underlying integer.
type Day int64

// NewDay returns the Day for the given calendar date. Out-of-range month and
// day values are normalized the same way time.Date normalizes them.
func NewDay(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// DayOf returns the calendar date of t as observed in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// ParseDay parses a date-only string (YYYY-MM-DD). RFC 3339 timestamps are
// also accepted; their date component is taken as written, ignoring the offset.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DayOf(t), nil
	}
	return 0, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDay, s)
}

// Date returns the year, month and day of d.
func (d Day) Date() (int, time.Month, int) {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC().Date()
}

// Time returns d at noon in loc. Noon keeps the value on the same calendar
// date across DST transitions.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 12, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

// Weekday returns the day of the week of d.
func (d Day) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Day) String() string {
	return d.Time(time.UTC).Format(constants.DateFormat)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
