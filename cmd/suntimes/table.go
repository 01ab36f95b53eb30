package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/subtlepseudonym/suntimes/solar"
)

const defaultTableDays = 7

// TableCommand prints one line of events per date
type TableCommand struct {
	From string `long:"from" description:"First date as YYYY-MM-DD, default today"`
	To   string `long:"to" description:"Last date as YYYY-MM-DD, default a week after --from"`

	out io.Writer
}

func (c *TableCommand) Execute(args []string) error {
	_, observer, err := load()
	if err != nil {
		return err
	}

	from, err := parseDate(c.From, today(observer))
	if err != nil {
		return err
	}
	to, err := parseDate(c.To, from.AddDays(defaultTableDays-1))
	if err != nil {
		return err
	}
	if to.Before(from) {
		return fmt.Errorf("--to %s is before --from %s", to, from)
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	return table(out, observer, from, to)
}

func table(w io.Writer, observer solar.Observer, from, to solar.Date) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tsunrise\tnoon\tsunset\tday length")

	for d := from; !to.Before(d); d = d.AddDays(1) {
		events, err := observer.Events(d)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d,
			formatEvent(events.Sunrise, events.Polar),
			events.Noon.Format(clockFormat),
			formatEvent(events.Sunset, events.Polar),
			events.DayLength().Round(time.Second),
		)
	}

	return tw.Flush()
}
