package solar

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// minJulianDay leaves room for noon anchoring east of UTC (one day)
	// and the longitude shift of the transit (half a day), keeping every
	// event on a valid date at a non-negative Julian date.
	minJulianDay = 2
)

var (
	// ErrInvalidDate is returned for dates that do not exist in the
	// proleptic Gregorian calendar or precede the Julian day epoch.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNoEvent is returned when the sun does not cross the horizon
	// on the requested date (polar day or polar night).
	ErrNoEvent = errors.New("no event")
)

// Date is a proleptic Gregorian calendar date without a time of day
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO 8601 calendar date such as 2022-06-21
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse %q: %w", s, ErrInvalidDate)
	}
	return DateOf(t), nil
}

// Valid reports whether the date exists and lies at least two days
// after the Julian day epoch (4714-11-24 BC, proleptic Gregorian).
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}

	// time.Date normalizes out-of-range days, e.g. Feb 30 -> Mar 2
	if DateOf(d.midnight(time.UTC)) != d {
		return false
	}

	return d.Year >= -4713 && JulianDay(d) >= minJulianDay
}

// AddDays returns the date n days after d
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is earlier than other
func (d Date) Before(other Date) bool {
	return d.midnight(time.UTC).Before(other.midnight(time.UTC))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) noon(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, loc)
}
