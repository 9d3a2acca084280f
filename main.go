package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/fieldgen/config"
	"github.com/pthm-cable/fieldgen/field"
	"github.com/pthm-cable/fieldgen/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("out", "out", "Output directory for PNG slices and perf CSV")
	frames := flag.Int("frames", 1, "Number of frames to generate (z advances per frame)")
	seed := flag.Float64("seed", 0, "Hash seed override (0 = use config)")
	logStats := flag.Bool("log-stats", false, "Log perf stats after the run")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	params := cfg.ToParams()
	if *seed != 0 {
		params.Seed = float32(*seed)
	} else if cfg.Animation.TimeSeed {
		params.Seed = float32(time.Now().Unix())
	}
	if err := params.Validate(); err != nil {
		slog.Error("invalid field parameters", "error", err)
		os.Exit(1)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	slog.Info("starting generation",
		"seed", params.Seed,
		"dims", params.Dims,
		"octaves", params.Octaves,
		"orientation", params.Orientation.String(),
		"frames", *frames,
	)

	// z advance per frame, matching the preview's animation rate.
	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	zStep := float32(cfg.Animation.ZSpeed / float64(fps))

	dst := make([]byte, params.BufferLen())
	for frame := 0; frame < *frames; frame++ {
		perf.StartDispatch()
		perf.StartPhase(telemetry.PhaseValidate)
		if err := params.Validate(); err != nil {
			slog.Error("invalid field parameters", "error", err)
			os.Exit(1)
		}

		perf.StartPhase(telemetry.PhaseDispatch)
		start := time.Now()
		if err := field.Generate(params, dst); err != nil {
			slog.Error("dispatch failed", "error", err, "frame", frame)
			os.Exit(1)
		}
		elapsed := time.Since(start)

		perf.StartPhase(telemetry.PhaseEncode)
		prefix := fmt.Sprintf("frame_%04d", frame)
		if err := field.WriteVolume(*outputDir, prefix, dst, params.Dims); err != nil {
			slog.Error("encoding failed", "error", err, "frame", frame)
			os.Exit(1)
		}
		perf.EndDispatch()

		if err := output.WriteDispatch(telemetry.DispatchRecord{
			Frame:       frame,
			Cells:       params.CellCount(),
			DurationMs:  float64(elapsed.Microseconds()) / 1000,
			CellsPerSec: float64(params.CellCount()) / elapsed.Seconds(),
		}); err != nil {
			slog.Error("failed to write perf record", "error", err)
		}

		slog.Info("frame generated", "frame", frame, "duration", elapsed.String())

		params.Start.Z += zStep
		params.Next.Z += zStep
	}

	if *logStats {
		perf.Stats().LogStats()
	}
}
