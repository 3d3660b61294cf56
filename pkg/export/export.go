// Package export serialises forecast results for downstream consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

// ForecastEntry is one predicted day of cycle usage.
type ForecastEntry struct {
	BatteryID       string    `json:"battery_id"`
	Date            time.Time `json:"date"`
	DayOffset       int       `json:"day_offset"`
	PredictedCycles float64   `json:"predicted_cycles"`
}

// Entries builds forecast entries from raw predictions, dating them from the
// day after lastObserved.
func Entries(batteryID string, lastObserved time.Time, values []float64) []ForecastEntry {
	entries := make([]ForecastEntry, len(values))
	for i, v := range values {
		entries[i] = ForecastEntry{
			BatteryID:       batteryID,
			Date:            lastObserved.AddDate(0, 0, i+1),
			DayOffset:       i + 1,
			PredictedCycles: v,
		}
	}
	return entries
}

// WriteJSON writes the forecast to w in JSON format.
func WriteJSON(w io.Writer, entries []ForecastEntry) error {
	enc := json.NewEncoder(w)
	return enc.Encode(entries)
}

// WriteCSV writes the forecast to w in CSV format.
func WriteCSV(w io.Writer, entries []ForecastEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"battery_id", "date", "day_offset", "predicted_cycles"}); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.BatteryID,
			e.Date.Format("2006-01-02"),
			strconv.Itoa(e.DayOffset),
			strconv.FormatFloat(e.PredictedCycles, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
