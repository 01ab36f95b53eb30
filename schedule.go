package suntimes

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/subtlepseudonym/suntimes/solar"
)

const (
	eventPrefix = "@"
	searchLimit = 366 // days; long enough to outlast any polar night
)

// Location is an observer's position
type Location struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"` // degrees east
	Elevation float64 `yaml:"elevation" json:"elevation"` // meters
}

// Observer returns a solar.Observer at l presenting times in tz
func (l Location) Observer(tz *time.Location) solar.Observer {
	return solar.New(l.Latitude, l.Longitude, solar.WithElevation(l.Elevation), solar.WithLocation(tz))
}

// EventSchedule fires at a solar event, shifted by Offset
type EventSchedule struct {
	Observer solar.Observer
	Event    solar.Event
	Offset   time.Duration
}

// Next returns the first event time plus offset after now. Days on
// which the event does not occur are skipped; if none occurs within
// a year the zero time is returned and cron will not run the job.
//
// This implements robfig/cron.Schedule
func (s EventSchedule) Next(now time.Time) time.Time {
	// an offset may move an earlier day's event past now
	lead := 1 + int(absDuration(s.Offset)/(24*time.Hour))
	start := solar.DateOf(now.In(s.Observer.Location())).AddDays(-lead)

	for i := 0; i < searchLimit+lead; i++ {
		d := start.AddDays(i)
		t, err := s.Observer.At(s.Event, d)
		if err != nil {
			log.Debug().Err(err).Str("date", d.String()).Msg("skip day")
			continue
		}

		at := t.Add(s.Offset)
		if at.After(now) {
			return at
		}
	}

	log.Warn().Str("event", s.Event.String()).Time("after", now).Msg("no occurrence within search limit")
	return time.Time{}
}

// Prev returns the latest event time plus offset at or before now,
// i.e. the instant a job fired at now was scheduled for. It returns
// the zero time if no event occurred within a year.
func (s EventSchedule) Prev(now time.Time) time.Time {
	lead := 1 + int(absDuration(s.Offset)/(24*time.Hour))
	start := solar.DateOf(now.In(s.Observer.Location())).AddDays(lead)

	for i := 0; i < searchLimit+lead; i++ {
		t, err := s.Observer.At(s.Event, start.AddDays(-i))
		if err != nil {
			continue
		}

		at := t.Add(s.Offset)
		if !at.After(now) {
			return at
		}
	}
	return time.Time{}
}

func (s EventSchedule) String() string {
	if s.Offset == 0 {
		return eventPrefix + s.Event.String()
	}
	return fmt.Sprintf("%s%s %s", eventPrefix, s.Event, s.Offset)
}

// ParseSchedule parses either a solar event schedule such as
// "@sunset" or "@sunrise -30m", or a standard cron expression.
func ParseSchedule(spec string, observer solar.Observer) (cron.Schedule, error) {
	fields := strings.Fields(spec)
	if len(fields) > 0 && strings.HasPrefix(fields[0], eventPrefix) {
		event, err := solar.ParseEvent(strings.TrimPrefix(fields[0], eventPrefix))
		if err == nil {
			schedule := EventSchedule{
				Observer: observer,
				Event:    event,
			}

			switch len(fields) {
			case 1:
			case 2:
				schedule.Offset, err = time.ParseDuration(fields[1])
				if err != nil {
					return nil, fmt.Errorf("parse %s offset: %w", event, err)
				}
			default:
				return nil, fmt.Errorf("parse %s schedule: unexpected fields %q", event, fields[2:])
			}

			return schedule, nil
		}
		// fall through for cron descriptors like @daily
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return schedule, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
