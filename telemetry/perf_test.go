package telemetry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few dispatches
	for i := 0; i < 5; i++ {
		pc.StartDispatch()
		pc.StartPhase(PhaseValidate)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDispatch)
		time.Sleep(200 * time.Microsecond)
		pc.EndDispatch()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgDispatchDuration <= 0 {
		t.Error("expected positive average dispatch duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseValidate]; !ok {
		t.Error("expected validate phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseDispatch]; !ok {
		t.Error("expected dispatch phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartDispatch()
		pc.StartPhase(PhaseDispatch)
		pc.EndDispatch()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgDispatchDuration <= 0 {
		t.Error("expected positive average dispatch duration after window filled")
	}

	if stats.DispatchesPerSecond <= 0 {
		t.Error("expected positive dispatches per second")
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)
	stats := pc.Stats()

	if stats.AvgDispatchDuration != 0 {
		t.Error("expected zero average with no samples")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps with no samples")
	}
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All methods must be safe on a nil manager.
	if err := om.WriteDispatch(DispatchRecord{}); err != nil {
		t.Errorf("nil WriteDispatch = %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir() = %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close = %v", err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	records := []DispatchRecord{
		{Frame: 0, Cells: 1024, DurationMs: 1.5, CellsPerSec: 682666},
		{Frame: 1, Cells: 1024, DurationMs: 1.2, CellsPerSec: 853333},
	}
	for _, rec := range records {
		if err := om.WriteDispatch(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// One header row plus one row per record.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "frame" {
		t.Errorf("header = %v, want frame first", rows[0])
	}
	if rows[1][0] != "0" || rows[2][0] != "1" {
		t.Errorf("frame column = %v, %v, want 0, 1", rows[1][0], rows[2][0])
	}
}
