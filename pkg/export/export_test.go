package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleEntries() []ForecastEntry {
	last := time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)
	return Entries("BAT-001", last, []float64{1.5, 2.25})
}

func TestEntriesDating(t *testing.T) {
	entries := sampleEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].Date.Format("2006-01-02"); got != "2023-07-01" {
		t.Fatalf("first forecast day = %s, want 2023-07-01", got)
	}
	if entries[1].DayOffset != 2 {
		t.Fatalf("unexpected day offset %d", entries[1].DayOffset)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleEntries()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "battery_id,date,day_offset,predicted_cycles" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "BAT-001,2023-07-01,1,1.5") {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEntries()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var decoded []ForecastEntry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[1].PredictedCycles != 2.25 {
		t.Fatalf("unexpected decoded entries: %+v", decoded)
	}
}
