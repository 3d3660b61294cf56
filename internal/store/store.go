// Package store persists battery telemetry in sqlite so repeated training
// runs do not re-download the dataset.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kilianp07/cyclecast/core/series"
	"github.com/kilianp07/cyclecast/internal/ingest"
)

// Store wraps the observations database.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// InsertRecords upserts telemetry rows; duplicates by (battery, day) are
// ignored so a re-fetch is idempotent.
func (s *Store) InsertRecords(recs []ingest.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO cycle_observations
			(battery_id, observed_on, battery_age_days, number_of_trips,
			 daily_trip_duration, daily_cycles_used, lifetime_cycles_used, battery_rated_cycles)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(battery_id, observed_on) DO NOTHING
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for _, r := range recs {
		if _, err := stmt.Exec(r.BatteryID, r.Date.Format("2006-01-02"), r.BatteryAgeDays,
			r.NumberOfTrips, r.DailyTripDuration, r.DailyCyclesUsed,
			r.LifetimeCycles, r.RatedCycles); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s/%s: %w", r.BatteryID, r.Date.Format("2006-01-02"), err)
		}
	}
	return tx.Commit()
}

// LoadSeries returns the chronologically ordered Daily_Cycles_Used series for
// one battery.
func (s *Store) LoadSeries(batteryID string) (series.Series, error) {
	rows, err := s.db.Query(`
		SELECT daily_cycles_used FROM cycle_observations
		WHERE battery_id = ?
		ORDER BY observed_on ASC
	`, batteryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out series.Series
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// LastObserved returns the date of the most recent observation for one
// battery. Forecast entries are dated from the day after.
func (s *Store) LastObserved(batteryID string) (time.Time, error) {
	var day string
	err := s.db.QueryRow(`
		SELECT observed_on FROM cycle_observations
		WHERE battery_id = ?
		ORDER BY observed_on DESC
		LIMIT 1
	`, batteryID).Scan(&day)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse("2006-01-02", day)
}

// Batteries lists the distinct battery IDs present in the store.
func (s *Store) Batteries() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT battery_id FROM cycle_observations ORDER BY battery_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
