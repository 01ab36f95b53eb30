package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/subtlepseudonym/suntimes/solar"
)

const clockFormat = "15:04:05"

// ShowCommand prints the events of a single date
type ShowCommand struct {
	Date    string `short:"d" long:"date" description:"Date as YYYY-MM-DD, default today"`
	Compare bool   `long:"compare" description:"Also print go-sunrise's times for comparison"`

	out io.Writer
}

func (c *ShowCommand) Execute(args []string) error {
	_, observer, err := load()
	if err != nil {
		return err
	}

	d, err := parseDate(c.Date, today(observer))
	if err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	return show(out, observer, d, c.Compare)
}

func show(w io.Writer, observer solar.Observer, d solar.Date, compare bool) error {
	events, err := observer.Events(d)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("Mon Jan 2 2006"))
	fmt.Fprintf(w, "sunrise: %s\n", formatEvent(events.Sunrise, events.Polar))
	fmt.Fprintf(w, "noon:    %s\n", events.Noon.Format(clockFormat))
	fmt.Fprintf(w, "sunset:  %s\n", formatEvent(events.Sunset, events.Polar))

	if compare {
		rise, set := sunrise.SunriseSunset(observer.Latitude(), observer.Longitude(), d.Year, d.Month, d.Day)
		fmt.Fprintf(w, "go-sunrise: %s - %s\n", formatReference(rise, observer), formatReference(set, observer))
	}

	return nil
}

func formatEvent(t time.Time, polar solar.Polar) string {
	if polar != solar.PolarNone {
		return fmt.Sprintf("none (%s)", polar)
	}
	return t.Format(clockFormat)
}

func formatReference(t time.Time, observer solar.Observer) string {
	if t.IsZero() {
		return "none"
	}
	return t.In(observer.Location()).Format(clockFormat)
}
