package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step, in tick order.
const (
	PhasePlayer     = "player"
	PhaseTravel     = "travel"
	PhaseFlip       = "flip"
	PhaseEncounters = "encounters"
	PhaseWeather    = "weather"
	PhaseBehavior   = "behavior"
	PhaseFlocking   = "flocking"
	PhaseMovement   = "movement"
	PhaseCleanup    = "cleanup"
	PhaseTelemetry  = "telemetry"
)

// Phases lists every phase in tick order.
var Phases = []string{
	PhasePlayer, PhaseTravel, PhaseFlip, PhaseEncounters, PhaseWeather,
	PhaseBehavior, PhaseFlocking, PhaseMovement, PhaseCleanup, PhaseTelemetry,
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over.
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

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration, len(Phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of tick time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.TickDuration
		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > stats.MaxTickDuration {
			stats.MaxTickDuration = s.TickDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	stats.AvgTickDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	PlayerPct     float64 `csv:"player_pct"`
	TravelPct     float64 `csv:"travel_pct"`
	FlipPct       float64 `csv:"flip_pct"`
	EncountersPct float64 `csv:"encounters_pct"`
	WeatherPct    float64 `csv:"weather_pct"`
	BehaviorPct   float64 `csv:"behavior_pct"`
	FlockingPct   float64 `csv:"flocking_pct"`
	MovementPct   float64 `csv:"movement_pct"`
	CleanupPct    float64 `csv:"cleanup_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		PlayerPct:     s.PhasePct[PhasePlayer],
		TravelPct:     s.PhasePct[PhaseTravel],
		FlipPct:       s.PhasePct[PhaseFlip],
		EncountersPct: s.PhasePct[PhaseEncounters],
		WeatherPct:    s.PhasePct[PhaseWeather],
		BehaviorPct:   s.PhasePct[PhaseBehavior],
		FlockingPct:   s.PhasePct[PhaseFlocking],
		MovementPct:   s.PhasePct[PhaseMovement],
		CleanupPct:    s.PhasePct[PhaseCleanup],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
