package suntimes

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// LogNotifier writes each occurrence to a logger
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Notify(_ context.Context, o Occurrence) error {
	n.Logger.Info().
		Str("job", o.Job).
		Str("event", o.Event).
		Time("at", o.At).
		Time("fired", o.Fired).
		Msg("solar event")
	return nil
}

// CommandNotifier runs a shell command for each occurrence. The
// occurrence is passed in SUNTIMES_JOB, SUNTIMES_EVENT, SUNTIMES_AT
// (scheduled instant) and SUNTIMES_FIRED.
type CommandNotifier struct {
	Command string
	Shell   string // defaults to /bin/sh
}

func (n CommandNotifier) Notify(ctx context.Context, o Occurrence) error {
	shell := n.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", n.Command)
	cmd.Env = append(os.Environ(),
		"SUNTIMES_JOB="+o.Job,
		"SUNTIMES_EVENT="+o.Event,
		"SUNTIMES_AT="+o.At.Format(time.RFC3339),
		"SUNTIMES_FIRED="+o.Fired.Format(time.RFC3339),
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("run %q: %w: %s", n.Command, err, out)
	}
	return nil
}

// Publisher is the subset of mqtt.Client used to publish occurrences
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTNotifier publishes each occurrence as JSON to Topic/<job>
type MQTTNotifier struct {
	Client Publisher
	Topic  string
	QoS    byte
	Retain bool
}

func (n MQTTNotifier) Notify(ctx context.Context, o Occurrence) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal occurrence: %w", err)
	}

	topic := path.Join(n.Topic, o.Job)
	tok := n.Client.Publish(topic, n.QoS, n.Retain, payload)
	select {
	case <-tok.Done():
		if err := tok.Error(); err != nil {
			return fmt.Errorf("publish %s: %w", topic, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish %s: %w", topic, ctx.Err())
	}
}

// MQTTOptions are the broker settings for ConnectMQTT
type MQTTOptions struct {
	Server   string
	Username string
	Password string
	ClientID string
}

// ConnectMQTT connects to a broker. The client keeps retrying in the
// background if the first attempt fails.
func ConnectMQTT(opts MQTTOptions) (mqtt.Client, error) {
	clientID := opts.ClientID
	if clientID == "" {
		clientID = "suntimes"
	}

	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Server).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetClientID(clientID).
		SetDialer(&net.Dialer{KeepAlive: -1}).
		SetKeepAlive(60 * time.Second).
		SetPingTimeout(2 * time.Second).
		SetConnectRetry(true)

	client := mqtt.NewClient(clientOpts)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return client, fmt.Errorf("connect to %s: %w", opts.Server, tok.Error())
	}
	return client, nil
}
