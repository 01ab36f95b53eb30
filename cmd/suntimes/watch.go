package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/subtlepseudonym/suntimes"
	"github.com/subtlepseudonym/suntimes/config"
	"github.com/subtlepseudonym/suntimes/solar"
)

// WatchCommand runs the configured jobs until interrupted
type WatchCommand struct{}

func (c *WatchCommand) Execute(args []string) error {
	cfg, observer, err := load()
	if err != nil {
		return err
	}
	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("no jobs configured")
	}

	watchers, err := buildWatchers(cfg, observer)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobCron := cron.New(cron.WithLocation(observer.Location()))
	suntimes.Register(jobCron, watchers...)
	jobCron.Start()
	log.Info().Int("jobs", len(watchers)).Msg("watching")

	<-ctx.Done()
	log.Info().Msg("stopping")
	<-jobCron.Stop().Done()
	return nil
}

func buildWatchers(cfg *config.Config, observer solar.Observer) ([]suntimes.Watcher, error) {
	var mqttNotifier *suntimes.MQTTNotifier
	for _, job := range cfg.Jobs {
		if !job.MQTT || mqttNotifier != nil {
			continue
		}

		client, err := suntimes.ConnectMQTT(suntimes.MQTTOptions{
			Server:   cfg.MQTT.Server,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			ClientID: cfg.MQTT.ClientID,
		})
		if err != nil {
			// the client keeps retrying in the background
			log.Error().Err(err).Msg("connect mqtt")
		}

		topic := cfg.MQTT.Topic
		if topic == "" {
			topic = "suntimes"
		}
		mqttNotifier = &suntimes.MQTTNotifier{Client: client, Topic: topic}
	}

	watchers := make([]suntimes.Watcher, 0, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		schedule, err := suntimes.ParseSchedule(job.Schedule, observer)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", job.Name, err)
		}

		notifiers := []suntimes.Notifier{suntimes.LogNotifier{Logger: log.Logger}}
		if job.Command != "" {
			notifiers = append(notifiers, suntimes.CommandNotifier{Command: job.Command})
		}
		if job.MQTT && mqttNotifier != nil {
			notifiers = append(notifiers, *mqttNotifier)
		}

		w := suntimes.NewWatcher(job.Name, schedule, notifiers...)
		if timeout, _ := job.NotifyTimeout(); timeout > 0 {
			w.Timeout = timeout
		}
		watchers = append(watchers, w)
	}

	return watchers, nil
}
