package solar

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian date of 2000-01-01 12:00 UTC
	J2000 = 2451545.0

	MillisecondsPerDay = 86400 * 1000
)

// JulianDay returns the Julian day number of a calendar date. Day
// numbers begin at noon UTC, so the number returned is the one in
// effect during the afternoon of d.
func JulianDay(d Date) int {
	a := (14 - int(d.Month)) / 12
	y := d.Year + 4800 - a
	m := int(d.Month) + 12*a - 3

	return d.Day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// JulianDayDate is the inverse of JulianDay
func JulianDayDate(jdn int) Date {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153

	return Date{
		Year:  100*b + d - 4800 + m/10,
		Month: time.Month(m + 3 - 12*(m/10)),
		Day:   e - (153*m+2)/5 + 1,
	}
}

// JulianDate returns the continuous Julian date for an instant,
// ignoring leap seconds. A fraction of 0 is noon UTC.
func JulianDate(t time.Time) float64 {
	u := t.UTC()
	d := DateOf(u)
	sinceNoon := u.Sub(d.noon(time.UTC))

	return float64(JulianDay(d)) + sinceNoon.Seconds()/86400
}

// JulianTime converts a continuous Julian date to an instant in loc,
// rounded to the millisecond. Negative Julian dates are outside the
// calendar and yield ErrNoEvent.
func JulianTime(julian float64, loc *time.Location) (time.Time, error) {
	if julian < 0 || math.IsNaN(julian) || math.IsInf(julian, 0) {
		return time.Time{}, ErrNoEvent
	}
	if loc == nil {
		loc = time.Local
	}

	day := math.Floor(julian)
	millis := math.Round((julian - day) * MillisecondsPerDay)

	noon := JulianDayDate(int(day)).noon(time.UTC)
	return noon.Add(time.Duration(millis) * time.Millisecond).In(loc), nil
}
