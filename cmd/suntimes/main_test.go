package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/subtlepseudonym/suntimes"
	"github.com/subtlepseudonym/suntimes/config"
	"github.com/subtlepseudonym/suntimes/solar"
)

var cest = time.FixedZone("CEST", 2*3600)

func TestShow(t *testing.T) {
	observer := solar.New(52.386667, 9.697778, solar.WithLocation(cest))
	d := solar.Date{Year: 2022, Month: time.June, Day: 21}

	var buf bytes.Buffer
	if err := show(&buf, observer, d, true); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("wanted 5 lines got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "Tue Jun 21 2022" {
		t.Errorf("unexpected header %q", lines[0])
	}
	for i, prefix := range []string{"sunrise: 0", "noon:    13:", "sunset:  21:", "go-sunrise: "} {
		if !strings.HasPrefix(lines[i+1], prefix) {
			t.Errorf("line %d: wanted prefix %q got %q", i+1, prefix, lines[i+1])
		}
	}
}

func TestShowPolar(t *testing.T) {
	observer := solar.New(75, 15, solar.WithLocation(time.UTC))
	d := solar.Date{Year: 2022, Month: time.June, Day: 21}

	var buf bytes.Buffer
	if err := show(&buf, observer, d, false); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(buf.String(), "sunrise: none (polar day)") {
		t.Errorf("polar day not reported: %q", buf.String())
	}
}

func TestShowInvalidDate(t *testing.T) {
	observer := solar.New(52.4, 9.7)
	err := show(&bytes.Buffer{}, observer, solar.Date{Year: 2022, Month: time.February, Day: 30}, false)
	if !errors.Is(err, solar.ErrInvalidDate) {
		t.Errorf("wanted ErrInvalidDate got %v", err)
	}

	if _, err := parseDate("2022-02-30", solar.Date{}); !errors.Is(err, solar.ErrInvalidDate) {
		t.Errorf("wanted ErrInvalidDate got %v", err)
	}
}

func TestTable(t *testing.T) {
	observer := solar.New(52.386667, 9.697778, solar.WithLocation(cest))
	from := solar.Date{Year: 2022, Month: time.June, Day: 20}

	var buf bytes.Buffer
	if err := table(&buf, observer, from, from.AddDays(2)); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("wanted header and 3 rows got %d: %q", len(lines), buf.String())
	}
	for i, date := range []string{"2022-06-20", "2022-06-21", "2022-06-22"} {
		if !strings.HasPrefix(lines[i+1], date) {
			t.Errorf("row %d: wanted %s got %q", i, date, lines[i+1])
		}
	}
}

func TestBuildWatchers(t *testing.T) {
	cfg := config.Default()
	cfg.Jobs = []config.Job{
		{Name: "porch", Schedule: "@sunset -30m", Command: "true", Timeout: "3s"},
		{Name: "morning", Schedule: "0 7 * * *"},
	}
	observer := solar.New(52.4, 9.7, solar.WithLocation(cest))

	watchers, err := buildWatchers(cfg, observer)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(watchers) != 2 {
		t.Fatalf("wanted 2 watchers got %d", len(watchers))
	}

	porch := watchers[0]
	if porch.Name != "porch" || len(porch.Notifiers) != 2 || porch.Timeout != 3*time.Second {
		t.Errorf("unexpected watcher %+v", porch)
	}
	if s, ok := porch.Schedule.(suntimes.EventSchedule); !ok || s.Offset != -30*time.Minute {
		t.Errorf("unexpected schedule %#v", porch.Schedule)
	}
	if len(watchers[1].Notifiers) != 1 {
		t.Errorf("wanted only the log notifier got %d", len(watchers[1].Notifiers))
	}
}
