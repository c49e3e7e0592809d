// Package mqtt publishes status snapshots to an MQTT broker so home
// automation systems can observe the translated fan state.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/fanbridge/fanbridge/internal/configuration"
	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/fanbridge/fanbridge/internal/ui"
)

// Publisher implements engine.Reporter by publishing each status
// snapshot as retained JSON.
type Publisher struct {
	client paho.Client
	topic  string
}

func NewPublisher(config configuration.MqttConfig) (*Publisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientId).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &Publisher{
		client: client,
		topic:  config.Topic,
	}, nil
}

func (p *Publisher) Report(status engine.Status) {
	payload, err := json.Marshal(status)
	if err != nil {
		ui.Warning("Unable to marshal status: %v", err)
		return
	}

	// retained so late subscribers see the last known state
	token := p.client.Publish(p.topic, 0, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		ui.Warning("Publish to %s timed out", p.topic)
		return
	}
	if err := token.Error(); err != nil {
		ui.Warning("Unable to publish to %s: %v", p.topic, err)
	}
}

func (p *Publisher) Close() {
	p.client.Disconnect(1000)
}
