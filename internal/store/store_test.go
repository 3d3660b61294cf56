package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/cyclecast/internal/ingest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func day(n int) time.Time {
	return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestInsertAndLoadSeries(t *testing.T) {
	s := newTestStore(t)
	recs := []ingest.Record{
		{Date: day(0), BatteryID: "BAT-001", DailyCyclesUsed: 1.2},
		{Date: day(1), BatteryID: "BAT-001", DailyCyclesUsed: 1.8},
		{Date: day(0), BatteryID: "BAT-002", DailyCyclesUsed: 0.4},
	}
	if err := s.InsertRecords(recs); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.LoadSeries("BAT-001")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0] != 1.2 || got[1] != 1.8 {
		t.Fatalf("unexpected series: %v", got)
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	recs := []ingest.Record{{Date: day(0), BatteryID: "BAT-001", DailyCyclesUsed: 1.2}}
	if err := s.InsertRecords(recs); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertRecords(recs); err != nil {
		t.Fatalf("reinsert: %v", err)
	}
	got, err := s.LoadSeries("BAT-001")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 observation after duplicate insert, got %d", len(got))
	}
}

func TestBatteries(t *testing.T) {
	s := newTestStore(t)
	recs := []ingest.Record{
		{Date: day(0), BatteryID: "BAT-002", DailyCyclesUsed: 0.4},
		{Date: day(0), BatteryID: "BAT-001", DailyCyclesUsed: 1.2},
	}
	if err := s.InsertRecords(recs); err != nil {
		t.Fatalf("insert: %v", err)
	}
	ids, err := s.Batteries()
	if err != nil {
		t.Fatalf("batteries: %v", err)
	}
	if len(ids) != 2 || ids[0] != "BAT-001" || ids[1] != "BAT-002" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestMigrateTwice(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate must be a no-op: %v", err)
	}
}

func TestLastObserved(t *testing.T) {
	s := newTestStore(t)
	recs := []ingest.Record{
		{Date: day(0), BatteryID: "BAT-001", DailyCyclesUsed: 1.2},
		{Date: day(5), BatteryID: "BAT-001", DailyCyclesUsed: 1.8},
		{Date: day(2), BatteryID: "BAT-001", DailyCyclesUsed: 1.1},
	}
	if err := s.InsertRecords(recs); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := s.LastObserved("BAT-001")
	if err != nil {
		t.Fatalf("last observed: %v", err)
	}
	if !got.Equal(day(5)) {
		t.Fatalf("last observed = %v, want %v", got, day(5))
	}
}
