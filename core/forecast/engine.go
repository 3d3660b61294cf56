package forecast

// Engine produces cycle-usage forecasts for a battery.
type Engine interface {
	// ForecastCycles returns predicted daily cycle usage for the next
	// horizon days. The slice may be empty if no forecast is available.
	ForecastCycles(batteryID string, horizon int) ([]float64, error)
}
