// Package publisher sends computed stats to an MQTT broker so Home
// Assistant can pick them up as sensor values.
package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jhanlon/heatreport/internal/config"
	"github.com/jhanlon/heatreport/pkg/models"
)

// Publisher handles publishing stats over MQTT
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New creates a connected publisher
func New(cfg config.MQTTConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	// Configure MQTT client options
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("heatreport")
	opts.SetConnectRetry(false)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	// Create and connect client
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.GetTopicPrefix(),
	}, nil
}

// Topic returns the stats topic for a label, e.g. "heatpump/stats/2023"
func (p *Publisher) Topic(label string) string {
	return fmt.Sprintf("%s/stats/%s", p.topicPrefix, label)
}

// PublishStats sends one stats aggregate as a retained JSON message
func (p *Publisher) PublishStats(s *models.Stats) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding stats payload: %w", err)
	}

	token := p.client.Publish(p.Topic(s.Label), 1, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing stats for %s: %w", s.Label, token.Error())
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
