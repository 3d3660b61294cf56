package mqtt

import (
	"encoding/json"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	if cfg.Topic != "cyclecast/forecast" {
		t.Fatalf("unexpected default topic %q", cfg.Topic)
	}
	if cfg.ClientID == "" {
		t.Fatalf("client id must be generated")
	}
	if cfg.TimeoutS != 10 {
		t.Fatalf("unexpected default timeout %d", cfg.TimeoutS)
	}
}

func TestLoadTLSConfigRequiresFiles(t *testing.T) {
	cfg := Config{UseTLS: true}
	if _, err := cfg.LoadTLSConfig(); err == nil {
		t.Fatalf("expected error for missing cert files")
	}
}

func TestForecastMessageShape(t *testing.T) {
	msg := forecastMessage{RunID: "r", BatteryID: "b", HorizonDays: 2, Values: []float64{1, 2}}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"run_id", "battery_id", "generated_at", "horizon_days", "values"} {
		if _, ok := decoded[k]; !ok {
			t.Fatalf("payload missing key %q", k)
		}
	}
}

func TestMockPublisher(t *testing.T) {
	m := NewMockPublisher()
	if err := m.PublishForecast("r", "b1", []float64{1, 2, 3}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := m.Published["b1"]; len(got) != 3 || got[2] != 3 {
		t.Fatalf("unexpected recorded forecast: %v", got)
	}
	m.Fail = true
	if err := m.PublishForecast("r", "b2", nil); err == nil {
		t.Fatalf("expected failure")
	}
}
