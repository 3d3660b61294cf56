package config

import "fmt"

// DatasetConfig locates the telemetry data and selects the battery to model.
type DatasetConfig struct {
	// URL is the telemetry export location used by the fetch command.
	URL string `json:"url"`
	// DBPath is the sqlite database holding ingested observations.
	DBPath string `json:"db_path"`
	// BatteryID selects the battery whose series is trained on.
	BatteryID string `json:"battery_id"`
}

// SetDefaults applies sane defaults.
func (c *DatasetConfig) SetDefaults() {
	if c.DBPath == "" {
		c.DBPath = "cyclecast.db"
	}
}

// Validate checks mandatory fields.
func (c DatasetConfig) Validate() error {
	if c.BatteryID == "" {
		return fmt.Errorf("dataset.battery_id is required")
	}
	return nil
}
