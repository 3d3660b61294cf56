// Package mqtt publishes completed forecasts to an MQTT broker using the
// Eclipse Paho client.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/cyclecast/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled    bool        `json:"enabled"`
	Broker     string      `json:"broker"`
	ClientID   string      `json:"client_id"`
	Username   string      `json:"username"`
	Password   string      `json:"password"`
	Topic      string      `json:"topic"`
	QoS        byte        `json:"qos"`
	Retained   bool        `json:"retained"`
	UseTLS     bool        `json:"use_tls"`
	ClientCert string      `json:"client_cert"`
	ClientKey  string      `json:"client_key"`
	CABundle   string      `json:"ca_bundle"`
	TimeoutS   int         `json:"timeout_seconds"`
	TLSConfig  *tls.Config `json:"-"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "cyclecast-" + uuid.NewString()[:8]
	}
	if c.Topic == "" {
		c.Topic = "cyclecast/forecast"
	}
	if c.TimeoutS == 0 {
		c.TimeoutS = 10
	}
}

// ForecastPublisher publishes forecast payloads.
type ForecastPublisher interface {
	PublishForecast(runID, batteryID string, values []float64) error
	Close() error
}

// forecastMessage is the wire format published to the forecast topic.
type forecastMessage struct {
	RunID       string    `json:"run_id"`
	BatteryID   string    `json:"battery_id"`
	GeneratedAt time.Time `json:"generated_at"`
	HorizonDays int       `json:"horizon_days"`
	Values      []float64 `json:"values"`
}

// PahoPublisher implements ForecastPublisher over Eclipse Paho.
type PahoPublisher struct {
	cli     paho.Client
	topic   string
	qos     byte
	retain  bool
	timeout time.Duration
	log     logger.Logger
}

// NewPahoPublisher connects to the broker and returns a ready publisher.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt-publisher")
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &PahoPublisher{
		cli:     cli,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		retain:  cfg.Retained,
		timeout: time.Duration(cfg.TimeoutS) * time.Second,
		log:     log,
	}, nil
}

// PublishForecast sends the forecast as a JSON payload to the configured topic.
func (p *PahoPublisher) PublishForecast(runID, batteryID string, values []float64) error {
	msg := forecastMessage{
		RunID:       runID,
		BatteryID:   batteryID,
		GeneratedAt: time.Now().UTC(),
		HorizonDays: len(values),
		Values:      values,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal forecast: %w", err)
	}
	token := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish timeout after %s", p.timeout)
	}
	if token.Error() != nil {
		return fmt.Errorf("publish: %w", token.Error())
	}
	p.log.Infof("published %d-day forecast for %s", len(values), batteryID)
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() error {
	p.cli.Disconnect(250)
	return nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}
