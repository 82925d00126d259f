package render

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"vitalguard/internal/metrics"
)

// Publisher is the part of an MQTT client the renderer needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTOptions configures the broker connection.
type MQTTOptions struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// ConnectMQTT dials the broker, retrying with backoff until policy is
// exhausted or ctx is done.
func ConnectMQTT(ctx context.Context, opts MQTTOptions, policy RetryPolicy, logger *zap.Logger) (mqtt.Client, error) {
	clientOpts := mqtt.NewClientOptions()
	clientOpts.AddBroker(opts.Broker)
	clientOpts.SetClientID(opts.ClientID)

	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		clientOpts.SetPassword(opts.Password)
	}

	clientOpts.SetAutoReconnect(true)
	clientOpts.SetCleanSession(true)

	client := mqtt.NewClient(clientOpts)

	err := Retry(ctx, policy, func() error {
		token := client.Connect()
		if token.Wait() && token.Error() != nil {
			logger.Warn("mqtt connect failed", zap.String("broker", opts.Broker), zap.Error(token.Error()))
			return token.Error()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", opts.Broker, err)
	}

	logger.Info("mqtt connected", zap.String("broker", opts.Broker))
	return client, nil
}

// MQTTRenderer publishes every frame as JSON to
// <topic>/<session id>/frame.
type MQTTRenderer struct {
	client  Publisher
	topic   string
	qos     byte
	timeout time.Duration
	metrics *metrics.Registry
}

func NewMQTTRenderer(client Publisher, topic string, qos byte, timeout time.Duration, reg *metrics.Registry) *MQTTRenderer {
	return &MQTTRenderer{
		client:  client,
		topic:   topic,
		qos:     qos,
		timeout: timeout,
		metrics: reg,
	}
}

// FrameTopic returns the topic frames of sessionID are published to.
func (m *MQTTRenderer) FrameTopic(sessionID string) string {
	return fmt.Sprintf("%s/%s/frame", m.topic, sessionID)
}

func (m *MQTTRenderer) Render(ctx context.Context, f Frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		m.metrics.Inc(metrics.MQTTPublishFailuresTotal)
		return fmt.Errorf("encode frame: %w", err)
	}

	topic := m.FrameTopic(f.SessionID)
	token := m.client.Publish(topic, m.qos, false, payload)

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-timer.C:
		m.metrics.Inc(metrics.MQTTPublishFailuresTotal)
		return fmt.Errorf("publish to topic %s: timed out after %s", topic, m.timeout)
	case <-ctx.Done():
		m.metrics.Inc(metrics.MQTTPublishFailuresTotal)
		return ctx.Err()
	}

	if err := token.Error(); err != nil {
		m.metrics.Inc(metrics.MQTTPublishFailuresTotal)
		return fmt.Errorf("failed to publish to topic %s: %w", topic, err)
	}

	m.metrics.Inc(metrics.MQTTPublishedTotal)
	return nil
}
