package config

import (
	"errors"
	"strings"
	"time"
)

// Config defines client configuration.
type Config struct {
	API struct {
		BaseURL        string `yaml:"baseUrl" env:"CHARGECTL_API_BASE_URL"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" env:"CHARGECTL_API_TIMEOUT"`
	} `yaml:"api"`
	Poll struct {
		IntervalSeconds int `yaml:"intervalSeconds" env:"CHARGECTL_POLL_INTERVAL"`
	} `yaml:"poll"`
	MQTT struct {
		BrokerURL   string `yaml:"brokerUrl" env:"CHARGECTL_MQTT_BROKER_URL"`
		ClientID    string `yaml:"clientId" env:"CHARGECTL_MQTT_CLIENT_ID"`
		Username    string `yaml:"username" env:"CHARGECTL_MQTT_USERNAME"`
		Password    string `yaml:"password" env:"CHARGECTL_MQTT_PASSWORD"`
		TopicPrefix string `yaml:"topicPrefix" env:"CHARGECTL_MQTT_TOPIC_PREFIX"`
		QoS         int    `yaml:"qos" env:"CHARGECTL_MQTT_QOS"`
		Retained    bool   `yaml:"retained" env:"CHARGECTL_MQTT_RETAINED"`
	} `yaml:"mqtt"`
}

// Load reads the optional yaml file plus env overrides.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.API.BaseURL = "http://127.0.0.1:8000"
	cfg.API.TimeoutSeconds = 5
	cfg.Poll.IntervalSeconds = 1
	cfg.MQTT.ClientID = "chargectl"
	cfg.MQTT.TopicPrefix = "chargectl"

	if err := loadInto(cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return nil, errors.New("config: api base url required")
	}
	return cfg, nil
}

// HTTPTimeout returns the transport timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PollInterval returns the poller period.
func (c *Config) PollInterval() time.Duration {
	if c.Poll.IntervalSeconds <= 0 {
		return time.Second
	}
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}

// MQTTEnabled reports whether the event bridge should start.
func (c *Config) MQTTEnabled() bool {
	return strings.TrimSpace(c.MQTT.BrokerURL) != ""
}
