// Package ingest downloads and decodes battery telemetry exports. The rest of
// the pipeline only ever sees an ordered sequence of observations; this
// package is the boundary where files, networks and schemas live.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/cyclecast/core/series"
)

// Record is one row of the telemetry export.
type Record struct {
	Date              time.Time
	BatteryID         string
	BatteryAgeDays    int
	NumberOfTrips     int
	DailyTripDuration float64
	DailyCyclesUsed   float64
	LifetimeCycles    float64
	RatedCycles       float64
}

// expected header of the telemetry export, in order.
var header = []string{
	"Date", "Battery_ID", "Battery_Age_Days", "Number_Of_Trips",
	"Daily_Trip_Duration", "Daily_Cycles_Used", "Lifetime_Cycles_Used",
	"Battery_Rated_Cycles",
}

// ParseCSV decodes the telemetry export from r.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(head) != len(header) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(header), len(head))
	}
	for i, h := range header {
		if head[i] != h {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, head[i], h)
		}
	}

	var recs []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRow(row []string) (Record, error) {
	var rec Record
	var err error
	if rec.Date, err = time.Parse("2006-01-02", row[0]); err != nil {
		return rec, fmt.Errorf("date: %w", err)
	}
	rec.BatteryID = row[1]
	if rec.BatteryAgeDays, err = strconv.Atoi(row[2]); err != nil {
		return rec, fmt.Errorf("battery age: %w", err)
	}
	if rec.NumberOfTrips, err = strconv.Atoi(row[3]); err != nil {
		return rec, fmt.Errorf("trips: %w", err)
	}
	if rec.DailyTripDuration, err = strconv.ParseFloat(row[4], 64); err != nil {
		return rec, fmt.Errorf("trip duration: %w", err)
	}
	if rec.DailyCyclesUsed, err = strconv.ParseFloat(row[5], 64); err != nil {
		return rec, fmt.Errorf("daily cycles: %w", err)
	}
	if rec.LifetimeCycles, err = strconv.ParseFloat(row[6], 64); err != nil {
		return rec, fmt.Errorf("lifetime cycles: %w", err)
	}
	if rec.RatedCycles, err = strconv.ParseFloat(row[7], 64); err != nil {
		return rec, fmt.Errorf("rated cycles: %w", err)
	}
	return rec, nil
}

// SeriesFor extracts the ordered Daily_Cycles_Used series for one battery.
// Records are assumed chronologically ordered within a battery, as exported.
func SeriesFor(recs []Record, batteryID string) series.Series {
	var s series.Series
	for _, r := range recs {
		if r.BatteryID == batteryID {
			s = append(s, r.DailyCyclesUsed)
		}
	}
	return s
}
