package suntimes

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const defaultNotifyTimeout = 30 * time.Second

// Occurrence describes a watcher firing. At is the scheduled instant,
// e.g. sunset plus the schedule's offset; Fired is when the job ran.
// Plain cron schedules report the fire time for both.
type Occurrence struct {
	Job   string    `json:"job"`
	Event string    `json:"event,omitempty"`
	At    time.Time `json:"at"`
	Fired time.Time `json:"fired"`
}

// Notifier is told about each occurrence of a watched schedule
type Notifier interface {
	Notify(context.Context, Occurrence) error
}

// Watcher is a named schedule with a set of notifiers that should be
// told each time the schedule fires
type Watcher struct {
	Name      string
	Schedule  cron.Schedule
	Notifiers []Notifier
	Timeout   time.Duration

	now func() time.Time
}

func NewWatcher(name string, schedule cron.Schedule, notifiers ...Notifier) Watcher {
	return Watcher{
		Name:      name,
		Schedule:  schedule,
		Notifiers: notifiers,
		Timeout:   defaultNotifyTimeout,
		now:       time.Now,
	}
}

// Run notifies all notifiers concurrently and waits for them
//
// This implements robfig/cron.Job
func (w Watcher) Run() {
	now := time.Now
	if w.now != nil {
		now = w.now
	}

	fired := now()
	occurrence := Occurrence{
		Job:   w.Name,
		At:    fired,
		Fired: fired,
	}
	if es, ok := w.Schedule.(EventSchedule); ok {
		occurrence.Event = es.Event.String()
		if at := es.Prev(fired); !at.IsZero() {
			occurrence.At = at
		}
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, notifier := range w.Notifiers {
		wg.Add(1)
		go func(n Notifier) {
			defer wg.Done()
			err := n.Notify(ctx, occurrence)
			if err != nil {
				log.Error().Err(err).Str("job", w.Name).Msg("notify")
			}
		}(notifier)
	}
	wg.Wait()
}

// Register schedules every watcher on c and returns their entry IDs
func Register(c *cron.Cron, watchers ...Watcher) []cron.EntryID {
	ids := make([]cron.EntryID, 0, len(watchers))
	for _, w := range watchers {
		id := c.Schedule(w.Schedule, w)
		ids = append(ids, id)

		log.Info().
			Str("job", w.Name).
			Time("next", w.Schedule.Next(time.Now())).
			Msg("registered watcher")
	}
	return ids
}
