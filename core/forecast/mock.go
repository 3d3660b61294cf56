package forecast

// MockEngine returns canned forecasts keyed by battery ID.
type MockEngine struct {
	Forecasts map[string][]float64
}

// ForecastCycles returns the configured forecast truncated to horizon, or an
// empty slice when none is configured.
func (m MockEngine) ForecastCycles(batteryID string, horizon int) ([]float64, error) {
	s, ok := m.Forecasts[batteryID]
	if !ok {
		return nil, nil
	}
	if horizon < len(s) {
		s = s[:horizon]
	}
	cp := make([]float64, len(s))
	copy(cp, s)
	return cp, nil
}
