package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// DispatchRecord is one row of perf.csv.
type DispatchRecord struct {
	Frame       int     `csv:"frame"`
	Cells       int     `csv:"cells"`
	DurationMs  float64 `csv:"duration_ms"`
	CellsPerSec float64 `csv:"cells_per_sec"`
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir      string
	perfFile *os.File

	// Track if the header has been written
	perfHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	perfPath := filepath.Join(dir, "perf.csv")
	f, err := os.Create(perfPath)
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteDispatch writes one dispatch record to perf.csv.
func (om *OutputManager) WriteDispatch(rec DispatchRecord) error {
	if om == nil {
		return nil
	}

	records := []DispatchRecord{rec}

	if !om.perfHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	if om.perfFile != nil {
		return om.perfFile.Close()
	}
	return nil
}
