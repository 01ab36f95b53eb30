package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/subtlepseudonym/suntimes/config"
	"github.com/subtlepseudonym/suntimes/solar"
)

// Options are the global command line options, for go-flags to parse
type Options struct {
	Config    string   `short:"c" long:"config" env:"SUNTIMES_CONFIG" description:"YAML config file"`
	Latitude  *float64 `long:"latitude" description:"Observer latitude, degrees north"`
	Longitude *float64 `long:"longitude" description:"Observer longitude, degrees east"`
	Elevation *float64 `long:"elevation" description:"Observer elevation, meters"`
	Timezone  string   `long:"timezone" description:"IANA time zone for dates and output"`
	LogLevel  string   `long:"log-level" description:"Log level (trace, debug, info, warn, error)"`

	Show  ShowCommand  `command:"show" description:"Print sunrise, noon and sunset for a date"`
	Table TableCommand `command:"table" description:"Print solar events for a range of dates"`
	Watch WatchCommand `command:"watch" description:"Run configured jobs at solar events"`
	Serve ServeCommand `command:"serve" description:"Serve solar events over HTTP"`
}

var opts Options

func main() {
	// manually set local timezone for docker container
	if tz := os.Getenv("TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load tz location: %s\n", err)
			os.Exit(1)
		}
		time.Local = loc
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.Parse()
	if flags.WroteHelp(err) {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(0)
	} else if errors.Is(err, solar.ErrInvalidDate) {
		fmt.Fprintf(os.Stderr, "Invalid date: %s\n", err)
		os.Exit(1)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "exited with error:\n > %s\n", err)
		os.Exit(1)
	}
}

// load builds the configuration from file, environment and flags,
// in increasing order of precedence
func load() (*config.Config, solar.Observer, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		cfg, err = config.Open(opts.Config)
		if err != nil {
			return nil, solar.Observer{}, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, solar.Observer{}, err
	}

	if opts.Latitude != nil {
		cfg.Location.Latitude = *opts.Latitude
	}
	if opts.Longitude != nil {
		cfg.Location.Longitude = *opts.Longitude
	}
	if opts.Elevation != nil {
		cfg.Location.Elevation = *opts.Elevation
	}
	if opts.Timezone != "" {
		cfg.Timezone = opts.Timezone
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, solar.Observer{}, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	observer, err := cfg.Observer()
	if err != nil {
		return nil, solar.Observer{}, err
	}

	log.Debug().
		Float64("latitude", observer.Latitude()).
		Float64("longitude", observer.Longitude()).
		Float64("elevation", observer.Elevation()).
		Str("timezone", observer.Location().String()).
		Msg("observer")

	return cfg, observer, nil
}

// today is the current date in the observer's time zone
func today(observer solar.Observer) solar.Date {
	return solar.DateOf(time.Now().In(observer.Location()))
}

func parseDate(value string, fallback solar.Date) (solar.Date, error) {
	if value == "" {
		return fallback, nil
	}
	return solar.ParseDate(value)
}
