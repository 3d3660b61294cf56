package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/cyclecast/core/series"
)

func TestLossCurveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loss.png")
	if err := LossCurve([]float64{3, 2, 1, 0.5}, path); err != nil {
		t.Fatalf("loss curve: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty file, err=%v", err)
	}
}

func TestForecastWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.png")
	tail := series.Series{1, 2, 3, 4}
	if err := Forecast(tail, []float64{5, 6}, path); err != nil {
		t.Fatalf("forecast plot: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty file, err=%v", err)
	}
}
