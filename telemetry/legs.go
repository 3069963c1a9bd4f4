package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/migration/components"
)

// LegStats summarises one leg of the migration, from one flip to the next.
type LegStats struct {
	Leg         uint32  `csv:"leg"`
	Direction   string  `csv:"direction"`
	StartTotal  float64 `csv:"start_total_distance"`
	EndTotal    float64 `csv:"end_total_distance"`
	Birds       int     `csv:"birds"`
	Fish        int     `csv:"fish"`
	Ships       int     `csv:"ships"`
	Icebergs    int     `csv:"icebergs"`
	AdultWhales int     `csv:"adult_whales"`
	BabyWhales  int     `csv:"baby_whales"`
	RainPeriods int     `csv:"rain_periods"`
	SnowPeriods int     `csv:"snow_periods"`
	MetWhale    bool    `csv:"met_whale"`
}

// Spawns returns the spawn count for a species during the leg.
func (l LegStats) Spawns(sp components.Species) int {
	switch sp {
	case components.SpeciesBird:
		return l.Birds
	case components.SpeciesFish:
		return l.Fish
	case components.SpeciesShip:
		return l.Ships
	case components.SpeciesIceberg:
		return l.Icebergs
	case components.SpeciesAdultWhale:
		return l.AdultWhales
	case components.SpeciesBabyWhale:
		return l.BabyWhales
	}
	return 0
}

// LegTracker accumulates LegStats for the current leg.
type LegTracker struct {
	current LegStats
	legs    []LegStats
}

// NewLegTracker starts tracking the first leg.
func NewLegTracker(direction string) *LegTracker {
	return &LegTracker{current: LegStats{Direction: direction}}
}

// RecordSpawn records a spawn in the current leg.
func (t *LegTracker) RecordSpawn(sp components.Species) {
	switch sp {
	case components.SpeciesBird:
		t.current.Birds++
	case components.SpeciesFish:
		t.current.Fish++
	case components.SpeciesShip:
		t.current.Ships++
	case components.SpeciesIceberg:
		t.current.Icebergs++
	case components.SpeciesAdultWhale:
		t.current.AdultWhales++
	case components.SpeciesBabyWhale:
		t.current.BabyWhales++
	}
}

// RecordRainStart records precipitation starting in the current leg.
func (t *LegTracker) RecordRainStart(snow bool) {
	if snow {
		t.current.SnowPeriods++
	} else {
		t.current.RainPeriods++
	}
}

// RecordMetWhale records an adult whale becoming curious in the current leg.
func (t *LegTracker) RecordMetWhale() {
	t.current.MetWhale = true
}

// EndLeg closes the current leg at totalDistance and starts the next one.
// Returns the finished leg.
func (t *LegTracker) EndLeg(totalDistance float64, nextDirection string) LegStats {
	done := t.current
	done.EndTotal = totalDistance
	t.legs = append(t.legs, done)

	slog.Info("leg_complete",
		"leg", done.Leg,
		"direction", done.Direction,
		"length", done.EndTotal-done.StartTotal,
		"birds", done.Birds,
		"fish", done.Fish,
		"ships", done.Ships,
		"icebergs", done.Icebergs,
		"adult_whales", done.AdultWhales,
		"met_whale", done.MetWhale,
	)

	t.current = LegStats{
		Leg:        done.Leg + 1,
		Direction:  nextDirection,
		StartTotal: totalDistance,
	}
	return done
}

// Current returns the leg in progress.
func (t *LegTracker) Current() LegStats {
	return t.current
}

// Completed returns all finished legs.
func (t *LegTracker) Completed() []LegStats {
	return t.legs
}
