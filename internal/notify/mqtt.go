// Package notify forwards committed gate-book changes to an MQTT broker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
	"github.com/BrandonDHaskell/gatelog/server/internal/logging"
)

// QoS for change events: at least once.
const qos = 1

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// client is the part of mqtt.Client the publisher uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

type Config struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string
	Topic    string // base topic, e.g. gatelog/events
}

// Publisher sends each Change as JSON to <topic>/<entity>/<op>.
type Publisher struct {
	client  client
	topic   string
	log     logging.Logger
	pending sync.WaitGroup
}

// Connect dials the broker and returns a ready publisher.
func Connect(ctx context.Context, cfg Config, log logging.Logger) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect %s: timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}

	log.Info(ctx, "connected to MQTT broker", "broker", cfg.Broker, "client_id", cfg.ClientID)
	return newPublisher(c, cfg.Topic, log), nil
}

func newPublisher(c client, topic string, log logging.Logger) *Publisher {
	return &Publisher{client: c, topic: topic, log: log.With("module", "mqtt_notify")}
}

func Topic(base string, c types.Change) string {
	return fmt.Sprintf("%s/%s/%s", base, c.Entity, c.Op)
}

// Publish hands the change to the client and returns without waiting for
// the broker. Failures are logged only; the mutation has already happened.
func (p *Publisher) Publish(c types.Change) {
	data, err := json.Marshal(c)
	if err != nil {
		p.log.Error(context.Background(), "encode change", "error", err)
		return
	}

	topic := Topic(p.topic, c)
	token := p.client.Publish(topic, qos, false, data)

	p.pending.Add(1)
	go func() {
		defer p.pending.Done()
		ctx := context.Background()
		if !token.WaitTimeout(publishTimeout) {
			p.log.Warn(ctx, "mqtt publish timed out", "topic", topic)
			return
		}
		if err := token.Error(); err != nil {
			p.log.Error(ctx, "mqtt publish failed", "topic", topic, "error", err)
			return
		}
		p.log.Debug(ctx, "change published", "topic", topic)
	}()
}

// Close waits for in-flight publishes and disconnects.
func (p *Publisher) Close() {
	p.pending.Wait()
	p.client.Disconnect(quiesceMillis)
}
