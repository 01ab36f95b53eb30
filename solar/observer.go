package solar

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Observer is a fixed position on the earth's surface. Observers are
// immutable and safe for concurrent use.
type Observer struct {
	latitude      float64
	longitudeWest float64 // formulas use west-positive longitude
	elevation     float64
	location      *time.Location
}

// Option configures an Observer
type Option func(*Observer)

// WithElevation sets the observer's height above sea level in meters.
// Elevations at or below sea level apply no horizon correction.
func WithElevation(meters float64) Option {
	return func(o *Observer) {
		o.elevation = meters
	}
}

// WithLocation sets the time zone used to anchor dates and present
// results. The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *Observer) {
		if loc != nil {
			o.location = loc
		}
	}
}

// New returns an Observer at the given latitude and longitude in
// degrees. Latitude is positive north and longitude is positive east.
//
// Coordinates are not validated; out-of-range values produce
// ErrNoEvent rather than failing. Use Validate to check them.
func New(latitude, longitude float64, opts ...Option) Observer {
	o := Observer{
		latitude:      latitude,
		longitudeWest: -longitude,
		location:      time.Local,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Latitude returns degrees north
func (o Observer) Latitude() float64 { return o.latitude }

// Longitude returns degrees east
func (o Observer) Longitude() float64 { return -o.longitudeWest }

// Elevation returns meters above sea level
func (o Observer) Elevation() float64 { return o.elevation }

// Location returns the time zone results are presented in
func (o Observer) Location() *time.Location { return o.location }

// Validate checks that the observer's coordinates are usable
func (o Observer) Validate() error {
	var errs []error
	if !(math.Abs(o.latitude) < 90) {
		errs = append(errs, fmt.Errorf("latitude must be within (-90, 90), got %v", o.latitude))
	}
	if !(math.Abs(o.longitudeWest) <= 180) {
		errs = append(errs, fmt.Errorf("longitude must be within [-180, 180], got %v", o.Longitude()))
	}
	if math.IsNaN(o.elevation) || math.IsInf(o.elevation, 0) {
		errs = append(errs, fmt.Errorf("elevation must be finite, got %v", o.elevation))
	}
	return errors.Join(errs...)
}

// JulianDayNumber returns the Julian day number used for events on d.
// Local noon of d is converted to UTC and the UTC date's day number
// is returned, so every time zone maps a date to the day containing
// its own midday.
func (o Observer) JulianDayNumber(d Date) int {
	return JulianDay(DateOf(d.noon(o.location).UTC()))
}

// Sunrise returns the time of sunrise on d. It returns ErrNoEvent if
// the sun does not rise or does not set that day.
func (o Observer) Sunrise(d Date) (time.Time, error) {
	if !d.Valid() {
		return time.Time{}, fmt.Errorf("sunrise %s: %w", d, ErrInvalidDate)
	}

	julian, ok := o.sunriseJulian(o.JulianDayNumber(d))
	if !ok {
		return time.Time{}, fmt.Errorf("sunrise %s: %w", d, ErrNoEvent)
	}
	return o.present(EventSunrise, d, julian)
}

// Noon returns the time of solar noon on d. Solar transit happens at
// every latitude, so Noon fails only for invalid dates.
func (o Observer) Noon(d Date) (time.Time, error) {
	if !d.Valid() {
		return time.Time{}, fmt.Errorf("noon %s: %w", d, ErrInvalidDate)
	}

	return o.present(EventNoon, d, o.noonJulian(o.JulianDayNumber(d)))
}

// Sunset returns the time of sunset on d. It returns ErrNoEvent if the
// sun does not rise or does not set that day.
func (o Observer) Sunset(d Date) (time.Time, error) {
	if !d.Valid() {
		return time.Time{}, fmt.Errorf("sunset %s: %w", d, ErrInvalidDate)
	}

	julian, ok := o.sunsetJulian(o.JulianDayNumber(d))
	if !ok {
		return time.Time{}, fmt.Errorf("sunset %s: %w", d, ErrNoEvent)
	}
	return o.present(EventSunset, d, julian)
}

func (o Observer) present(e Event, d Date, julian float64) (time.Time, error) {
	t, err := JulianTime(julian, o.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %s: %w", e, d, err)
	}
	return t, nil
}

func (o Observer) noonJulian(jdn int) float64 {
	return solarTransit(approxTransit(jdn, o.longitudeWest))
}

// The values of the mean anomaly and ecliptic longitude don't
// really change from solar noon to sunset, so sunset reuses the
// transit correction from noon.
func (o Observer) sunsetJulian(jdn int) (float64, bool) {
	approx := approxTransit(jdn, o.longitudeWest)
	h, ok := hourAngle(approx, o.latitude, o.elevation)
	if !ok {
		return 0, false
	}

	return meanNoonEpoch + (h+o.longitudeWest)/360 + julianCycle(jdn, o.longitudeWest) + transitCorrection(meanAnomaly(approx)), true
}

// sunriseJulian assumes solar noon is half-way between sunrise and
// sunset. This holds well for latitudes below about 60 degrees.
func (o Observer) sunriseJulian(jdn int) (float64, bool) {
	set, ok := o.sunsetJulian(jdn)
	if !ok {
		return 0, false
	}

	transit := o.noonJulian(jdn)
	return transit - (set - transit), true
}
