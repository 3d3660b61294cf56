// Package infra holds the technical adapters around the forecasting core:
// structured logging, Prometheus and InfluxDB metrics sinks, the MQTT
// forecast publisher and PNG plot rendering. These packages depend only on
// the interfaces and event types defined under core.
package infra
