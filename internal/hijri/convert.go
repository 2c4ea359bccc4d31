// Package hijri converts between the proleptic Gregorian calendar and the
// tabular Hijri calendar using the Kuwaiti algorithm, and looks up the named
// Islamic observances that fall on a given date.
//
// The Kuwaiti algorithm is an arithmetic approximation. It does not follow
// moon sighting and can differ by a day or two from locally announced dates.
package hijri

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidDateRange is returned when a Hijri month or day is outside the
// calendar's range (month 1-12, day 1-30).
var ErrInvalidDateRange = errors.New("hijri date out of range")

// Epoch constants of the tabular calendar.
const (
	islamicEpoch  = 1948440 // Julian Day Number of 1 Muharram 1 AH
	cycleDays     = 10631   // days in a 30-year intercalation cycle
	cycleOffset   = 10632
	epochAdjust   = 385
	maxHijriMonth = 12
	maxHijriDay   = 30
)

// MonthNames holds the Hijri month names, indexed by month-1.
var MonthNames = [12]string{
	"Muharram",
	"Safar",
	"Rabi al-Awwal",
	"Rabi al-Thani",
	"Jumada al-Awwal",
	"Jumada al-Thani",
	"Rajab",
	"Sha'ban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qi'dah",
	"Dhu al-Hijjah",
}

// Date is a position in the tabular Hijri calendar.
type Date struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
	// DayOfWeek is the weekday of the Gregorian date the value was derived
	// from. Both calendars share the same seven-day week.
	DayOfWeek string `json:"day_of_week"`
}

func (d Date) String() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, d.MonthName, d.Year)
}

// Key returns the "{day}-{month}" lookup key used by observance tables.
func (d Date) Key() string {
	return observanceKey(d.Day, d.Month)
}

// GregorianToJulianDay returns the astronomical Julian Day at 00:00 of the
// given proleptic Gregorian date. January and February are treated as months
// 13 and 14 of the previous year.
func GregorianToJulianDay(year, month, day int) float64 {
	y, m := float64(year), float64(month)
	if month < 3 {
		y--
		m += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + float64(day) + b - 1524.5
}

// JulianDayToGregorian converts a Julian Day to a proleptic Gregorian date
// using the Fliegel-Van Flandern algorithm. Non-finite input yields zeros.
func JulianDayToGregorian(jd float64) (year, month, day int) {
	jdn, ok := dayNumber(jd)
	if !ok {
		return 0, 0, 0
	}
	l := jdn + 68569
	n := floorDiv(4*l, 146097)
	l -= floorDiv(146097*n+3, 4)
	i := floorDiv(4000*(l+1), 1461001)
	l = l - floorDiv(1461*i, 4) + 31
	j := floorDiv(80*l, 2447)
	day = l - floorDiv(2447*j, 80)
	l = floorDiv(j, 11)
	month = j + 2 - 12*l
	year = 100*(n-49) + i + l
	return year, month, day
}

// JulianDayToHijri applies the Kuwaiti algorithm to a Julian Day and returns
// the tabular Hijri year, month and day. Non-finite input yields zeros.
func JulianDayToHijri(jd float64) (year, month, day int) {
	jdn, ok := dayNumber(jd)
	if !ok {
		return 0, 0, 0
	}
	l := jdn - islamicEpoch + cycleOffset
	n := floorDiv(l-1, cycleDays)
	l = l - cycleDays*n + 354
	j := floorDiv(10985-l, 5316)*floorDiv(50*l, 17719) + floorDiv(l, 5670)*floorDiv(43*l, 15238)
	l = l - floorDiv(30-j, 15)*floorDiv(17719*j, 50) - floorDiv(j, 16)*floorDiv(15238*j, 43) + 29
	month = floorDiv(24*l, 709)
	day = l - floorDiv(709*month, 24)
	year = 30*n + j - 30
	return year, month, day
}

// HijriToJulianDay returns the Julian Day Number of a tabular Hijri date.
// Month and day are not range checked; out-of-range values produce a
// consistent but calendrically meaningless result.
func HijriToJulianDay(year, month, day int) int {
	return floorDiv(11*year+3, 30) + 354*year + 30*month - floorDiv(month-1, 2) + day + islamicEpoch - epochAdjust
}

// GregorianToHijri converts the calendar date of t (in t's own location) to
// the tabular Hijri calendar.
func GregorianToHijri(t time.Time) Date {
	y, m, d := t.Date()
	hy, hm, hd := JulianDayToHijri(GregorianToJulianDay(y, int(m), d))
	return Date{
		Year:      hy,
		Month:     hm,
		Day:       hd,
		MonthName: monthName(hm),
		DayOfWeek: t.Weekday().String(),
	}
}

// HijriToGregorian converts a tabular Hijri date to a Gregorian date at
// midnight UTC. It returns ErrInvalidDateRange when month is outside 1-12 or
// day is outside 1-30.
func HijriToGregorian(year, month, day int) (time.Time, error) {
	if month < 1 || month > maxHijriMonth {
		return time.Time{}, fmt.Errorf("%w: month %d not in [1, %d]", ErrInvalidDateRange, month, maxHijriMonth)
	}
	if day < 1 || day > maxHijriDay {
		return time.Time{}, fmt.Errorf("%w: day %d not in [1, %d]", ErrInvalidDateRange, day, maxHijriDay)
	}
	gy, gm, gd := JulianDayToGregorian(float64(HijriToJulianDay(year, month, day)))
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC), nil
}

func monthName(month int) string {
	if month < 1 || month > maxHijriMonth {
		return ""
	}
	return MonthNames[month-1]
}

// dayNumber reduces a Julian Day to the integer Julian Day Number of the
// civil day containing it.
func dayNumber(jd float64) (int, bool) {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return 0, false
	}
	return int(math.Floor(jd + 0.5)), true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
