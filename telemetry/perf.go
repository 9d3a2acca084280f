// Package telemetry tracks dispatch timing and writes structured experiment
// output.
package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one field dispatch.
const (
	PhaseValidate = "validate"
	PhaseDispatch = "dispatch"
	PhaseEncode   = "encode"
)

// PerfSample holds timing data for a single dispatch.
type PerfSample struct {
	DispatchDuration time.Duration
	Phases           map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window of
// dispatches.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	dispatchStart time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for the preview)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of dispatches to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartDispatch begins timing a new dispatch.
func (p *PerfCollector) StartDispatch() {
	p.dispatchStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndDispatch finishes timing the current dispatch and records the sample.
func (p *PerfCollector) EndDispatch() {
	now := time.Now()
	// End final phase
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	sample := PerfSample{
		DispatchDuration: now.Sub(p.dispatchStart),
		Phases:           p.currentPhases,
	}

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for the preview.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Dispatch timing
	AvgDispatchDuration time.Duration
	MinDispatchDuration time.Duration
	MaxDispatchDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total dispatch time
	PhasePct map[string]float64

	// Throughput
	DispatchesPerSecond float64

	// Frame timing (preview)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	// Frame timing is always available (independent of dispatch samples)
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var total time.Duration
	var minDur, maxDur time.Duration
	phaseSum := make(map[string]time.Duration)

	// Iterate over valid samples
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.DispatchDuration

		if i == 0 || s.DispatchDuration < minDur {
			minDur = s.DispatchDuration
		}
		if s.DispatchDuration > maxDur {
			maxDur = s.DispatchDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	// Calculate phase averages and percentages
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	// Calculate throughput
	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgDispatchDuration: avg,
		MinDispatchDuration: minDur,
		MaxDispatchDuration: maxDur,
		PhaseAvg:            phaseAvg,
		PhasePct:            phasePct,
		DispatchesPerSecond: perSec,
		FrameDuration:       p.frameDuration,
		FPS:                 fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_dispatch_us", s.AvgDispatchDuration.Microseconds(),
		"min_dispatch_us", s.MinDispatchDuration.Microseconds(),
		"max_dispatch_us", s.MaxDispatchDuration.Microseconds(),
		"dispatches_per_sec", int(s.DispatchesPerSecond),
	}
	for phase, avg := range s.PhaseAvg {
		attrs = append(attrs, "phase_"+phase+"_us", avg.Microseconds())
	}
	slog.Info("perf", attrs...)
}
