package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/subtlepseudonym/suntimes"
	"github.com/subtlepseudonym/suntimes/solar"
)

const envPrefix = "SUNTIMES_"

// Config is the configuration data as present in a config file.
// JSON files are accepted as well, being a subset of YAML.
type Config struct {
	Location suntimes.Location `yaml:"location"`
	Timezone string            `yaml:"timezone"` // IANA name, empty for local
	Listen   string            `yaml:"listen"`
	LogLevel string            `yaml:"log_level"`
	MQTT     *MQTT             `yaml:"mqtt,omitempty"`
	Jobs     []Job             `yaml:"jobs"`
}

// MQTT holds the broker settings used by jobs publishing to MQTT
type MQTT struct {
	Server   string `yaml:"server"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

// Job defines when to run and who should be told about it.
//
// Schedule is either a solar event with an optional offset, such as
// "@sunset -30m", or a standard cron expression.
type Job struct {
	Name     string `yaml:"name"`
	Schedule string `yaml:"schedule"`
	Command  string `yaml:"command,omitempty"`
	MQTT     bool   `yaml:"mqtt,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"`
}

// Default returns the configuration used when no file is given:
// Hannover, 52° 23' 12" N, 9° 41' 52" E.
func Default() *Config {
	return &Config{
		Location: suntimes.Location{
			Latitude:  solar.Angle(52, 23, 12),
			Longitude: solar.Angle(9, 41, 52),
		},
		Listen:   ":9000",
		LogLevel: "info",
	}
}

// Open reads a config file, filling unset fields from Default
func Open(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	defer f.Close()

	config := Default()
	err = yaml.NewDecoder(f).Decode(config)
	if err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	return config, nil
}

// ApplyEnv loads a .env file if present and overrides fields from
// SUNTIMES_* environment variables
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	floats := map[string]*float64{
		"LATITUDE":  &c.Location.Latitude,
		"LONGITUDE": &c.Location.Longitude,
		"ELEVATION": &c.Location.Elevation,
	}
	for key, field := range floats {
		value, ok := lookupEnv(key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
			continue
		}
		*field = f
	}

	strs := map[string]*string{
		"TIMEZONE":  &c.Timezone,
		"LISTEN":    &c.Listen,
		"LOG_LEVEL": &c.LogLevel,
	}
	for key, field := range strs {
		if value, ok := lookupEnv(key); ok {
			*field = value
		}
	}

	return errors.Join(errs...)
}

// Validate checks that the configuration is complete and consistent
func (c *Config) Validate() error {
	var errs []error

	loc, err := c.TimeLocation()
	if err != nil {
		errs = append(errs, err)
	}

	observer := c.Location.Observer(loc)
	if err := observer.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Location.Elevation < 0 {
		errs = append(errs, fmt.Errorf("elevation must not be negative, got %v", c.Location.Elevation))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	names := make(map[string]bool)
	for i, job := range c.Jobs {
		if job.Name == "" {
			errs = append(errs, fmt.Errorf("job %d has no name", i))
		} else if names[job.Name] {
			errs = append(errs, fmt.Errorf("duplicate job name %q", job.Name))
		}
		names[job.Name] = true

		if _, err := suntimes.ParseSchedule(job.Schedule, observer); err != nil {
			errs = append(errs, fmt.Errorf("job %q: %w", job.Name, err))
		}
		if _, err := job.NotifyTimeout(); err != nil {
			errs = append(errs, fmt.Errorf("job %q: %w", job.Name, err))
		}
		if job.MQTT && (c.MQTT == nil || c.MQTT.Server == "") {
			errs = append(errs, fmt.Errorf("job %q publishes to mqtt but no mqtt server is configured", job.Name))
		}
	}

	return errors.Join(errs...)
}

// TimeLocation loads the configured time zone, or time.Local
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	return loc, nil
}

// Observer returns the configured observer
func (c *Config) Observer() (solar.Observer, error) {
	loc, err := c.TimeLocation()
	if err != nil {
		return solar.Observer{}, err
	}
	return c.Location.Observer(loc), nil
}

// NotifyTimeout parses the job's timeout, zero if unset
func (j Job) NotifyTimeout() (time.Duration, error) {
	if j.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(j.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parse timeout: %w", err)
	}
	return d, nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(envPrefix + key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}
