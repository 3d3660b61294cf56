package config

// OutputConfig controls where run artifacts are written.
type OutputConfig struct {
	// Dir receives the forecast CSV/JSON and the diagnostic plots.
	Dir string `json:"dir"`
	// Plots toggles PNG rendering of the loss curve and forecast.
	Plots bool `json:"plots"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "out"
	}
}
