package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"chargectl/internal/poller"
)

// MQTTConfig holds broker settings for the event bridge.
type MQTTConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	QoS         byte
	Retained    bool
}

// MQTTPublisher forwards poller events to an MQTT broker so
// home-automation consumers see the same stream as the CLI.
type MQTTPublisher struct {
	client mqtt.Client
	config MQTTConfig
	logger *zap.Logger
}

// statusMessage is the payload published to <prefix>/status.
type statusMessage struct {
	Timestamp   time.Time `json:"timestamp"`
	State       string    `json:"state"`
	StatusText  string    `json:"statusText"`
	QueueLength int       `json:"queueLength"`
	ChargeID    string    `json:"chargeId,omitempty"`
	ServerTime  string    `json:"serverTime"`
}

// completionMessage is the payload published to <prefix>/session_completed.
type completionMessage struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// NewMQTTPublisher builds the publisher; Connect must be called before
// publishing.
func NewMQTTPublisher(config MQTTConfig, logger *zap.Logger) *MQTTPublisher {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.BrokerURL)
	opts.SetClientID(config.ClientID)
	if config.Username != "" {
		opts.SetUsername(config.Username)
	}
	if config.Password != "" {
		opts.SetPassword(config.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(30 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", zap.Error(err))
	})
	opts.SetOnConnectHandler(func(mqtt.Client) {
		logger.Info("mqtt connected", zap.String("broker", config.BrokerURL))
	})

	return &MQTTPublisher{
		client: mqtt.NewClient(opts),
		config: config,
		logger: logger,
	}
}

// Connect establishes the broker connection.
func (p *MQTTPublisher) Connect() error {
	if token := p.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("notify: connect mqtt broker: %w", token.Error())
	}
	return nil
}

// Disconnect closes the broker connection.
func (p *MQTTPublisher) Disconnect() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// Publish forwards one poller event. The bridge is best-effort:
// failures are logged, never fatal.
func (p *MQTTPublisher) Publish(ev poller.Event) {
	switch ev.Type {
	case poller.EventStatus:
		p.publish("status", statusMessage{
			Timestamp:   time.Now(),
			State:       string(ev.Status.State),
			StatusText:  ev.StatusText,
			QueueLength: ev.Status.QueueLength,
			ChargeID:    ev.Status.ChargeID,
			ServerTime:  ev.ServerTime.DateTime,
		})
	case poller.EventCompleted:
		p.publish("session_completed", completionMessage{
			Timestamp: time.Now(),
			Message:   ev.Message,
		})
	}
}

func (p *MQTTPublisher) publish(suffix string, payload any) {
	if !p.client.IsConnected() {
		return
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("encode mqtt payload", zap.Error(err))
		return
	}
	topic := fmt.Sprintf("%s/%s", p.config.TopicPrefix, suffix)
	token := p.client.Publish(topic, p.config.QoS, p.config.Retained, encoded)
	if !token.WaitTimeout(5 * time.Second) {
		p.logger.Warn("mqtt publish timed out", zap.String("topic", topic))
		return
	}
	if err := token.Error(); err != nil {
		p.logger.Warn("mqtt publish failed", zap.String("topic", topic), zap.Error(err))
	}
}
