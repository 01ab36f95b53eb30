package solar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Event is one of the solar events computed for a date
type Event int

const (
	EventSunrise Event = iota
	EventNoon
	EventSunset
)

var eventNames = map[Event]string{
	EventSunrise: "sunrise",
	EventNoon:    "noon",
	EventSunset:  "sunset",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// ParseEvent parses an event name, case insensitively
func ParseEvent(s string) (Event, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for e, n := range eventNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown solar event %q", s)
}

// At returns the time of event e on d
func (o Observer) At(e Event, d Date) (time.Time, error) {
	switch e {
	case EventSunrise:
		return o.Sunrise(d)
	case EventNoon:
		return o.Noon(d)
	case EventSunset:
		return o.Sunset(d)
	default:
		return time.Time{}, fmt.Errorf("unknown solar event %d", int(e))
	}
}

// Polar describes a day on which the sun never crosses the horizon
type Polar int

const (
	PolarNone Polar = iota
	PolarDay        // sun stays above the horizon
	PolarNight      // sun stays below the horizon
)

func (p Polar) String() string {
	switch p {
	case PolarDay:
		return "polar day"
	case PolarNight:
		return "polar night"
	default:
		return "none"
	}
}

// Events holds all solar events for one date. Sunrise and Sunset are
// zero when Polar is not PolarNone.
type Events struct {
	Date    Date
	Sunrise time.Time
	Noon    time.Time
	Sunset  time.Time
	Polar   Polar
}

// DayLength is the time between sunrise and sunset. Polar days last
// 24 hours and polar nights last zero.
func (e Events) DayLength() time.Duration {
	switch e.Polar {
	case PolarDay:
		return 24 * time.Hour
	case PolarNight:
		return 0
	default:
		return e.Sunset.Sub(e.Sunrise)
	}
}

// Events computes sunrise, noon and sunset for d. Polar days and
// nights are reported through Events.Polar rather than as an error.
func (o Observer) Events(d Date) (Events, error) {
	events := Events{Date: d}

	noon, err := o.Noon(d)
	if err != nil {
		return events, err
	}
	events.Noon = noon

	events.Sunrise, err = o.Sunrise(d)
	if errors.Is(err, ErrNoEvent) {
		events.Polar = o.polar(d)
		return events, nil
	} else if err != nil {
		return events, err
	}

	events.Sunset, err = o.Sunset(d)
	if err != nil {
		return events, err
	}

	return events, nil
}

func (o Observer) polar(d Date) Polar {
	approx := approxTransit(o.JulianDayNumber(d), o.longitudeWest)
	if noonAltitude(approx, o.latitude) > horizon+refraction(o.elevation) {
		return PolarDay
	}
	return PolarNight
}
