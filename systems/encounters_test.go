package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/migration/components"
)

func TestSpawnRateModelStep(t *testing.T) {
	tests := []struct {
		name  string
		model SpawnRateModel
		now   float64
		want  float64
	}{
		{"within bounds", SpawnRateModel{Intercept: [2]float64{10, 20}}, 0, 15},
		{"slope adds percent of distance", SpawnRateModel{Slope: 10, Intercept: [2]float64{10, 20}}, 100, 25},
		{"clamped to min", SpawnRateModel{Slope: -50, Intercept: [2]float64{10, 20}}, 100, 5},
		{"clamped to max", SpawnRateModel{Slope: 100, Intercept: [2]float64{10, 20}}, 100, 60},
		{"nan", SpawnRateModel{Slope: math.NaN(), Intercept: [2]float64{10, 20}}, 100, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.model.Step(tt.now, 5, 60, FixedRandom{Fraction: 0.5})
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// TestSchedulerStepsWithinBounds drives the scheduler through several legs
// and checks every recomputed step and next spawn distance.
func TestSchedulerStepsWithinBounds(t *testing.T) {
	cfg := testConfig(t)
	bounds := map[components.Species][2]float64{
		components.SpeciesBird:    {cfg.Encounters.Bird.MinStep, cfg.Encounters.Bird.MaxStep},
		components.SpeciesFish:    {cfg.Encounters.Fish.MinStep, cfg.Encounters.Fish.MaxStep},
		components.SpeciesShip:    {cfg.Encounters.Ship.MinStep, cfg.Encounters.Ship.MaxStep},
		components.SpeciesIceberg: {cfg.Encounters.Iceberg.MinStep, cfg.Encounters.Iceberg.MaxStep},
	}

	rng := NewRandom(3)
	s := NewEncounterScheduler(cfg.Encounters, rng)
	clock := NewTravelClock(cfg.Travel.FlipDistance)
	steps := 0

	for i := 0; i < 4*int(cfg.Travel.FlipDistance*64); i++ {
		clock.Advance(1.0 / 64)
		if clock.IsFlipping {
			clock.ResetLeg()
			s.ResetForLeg(clock.Direction(), clock.FlipCount)
		}
		s.Tick(clock.Distance)

		for _, rec := range s.DrainSteps() {
			b := bounds[rec.Species]
			require.GreaterOrEqual(t, rec.Step, b[0], rec.Species.String())
			require.LessOrEqual(t, rec.Step, b[1], rec.Species.String())
			steps++
		}
		for sp := range bounds {
			next, ok := s.Next(sp)
			require.True(t, ok)
			require.Greater(t, next, clock.Distance, sp.String())
		}
	}
	assert.Greater(t, steps, 0)
}

func TestSchedulerPriorityOrder(t *testing.T) {
	cfg := testConfig(t)
	s := NewEncounterScheduler(cfg.Encounters, FixedRandom{Fraction: 0.5})

	due := s.Tick(40)
	assert.Equal(t, []components.Species{
		components.SpeciesBird,
		components.SpeciesFish,
		components.SpeciesShip,
		components.SpeciesIceberg,
		components.SpeciesAdultWhale,
	}, due)

	// The adult whale is a one-shot
	_, ok := s.Next(components.SpeciesAdultWhale)
	assert.False(t, ok)
}

func TestSchedulerNothingDueBeforeInitial(t *testing.T) {
	cfg := testConfig(t)
	s := NewEncounterScheduler(cfg.Encounters, FixedRandom{Fraction: 0.5})
	assert.Empty(t, s.Tick(1))
	assert.Empty(t, s.DrainSteps())
}

func TestSchedulerCutoffSuppressesSpecies(t *testing.T) {
	cfg := testConfig(t)
	s := NewEncounterScheduler(cfg.Encounters, FixedRandom{Fraction: 0.5})

	// Iceberg heading south stops at 100; 95 + 12.5 lands past it
	s.Tick(95)
	next, ok := s.Next(components.SpeciesIceberg)
	require.True(t, ok)
	assert.True(t, math.IsInf(next, 1))

	s.Tick(500)
	for _, sp := range s.Tick(1000) {
		assert.NotEqual(t, components.SpeciesIceberg, sp)
	}
}

func TestSchedulerResetForLeg(t *testing.T) {
	cfg := testConfig(t)
	enc := cfg.Encounters

	tests := []struct {
		name      string
		dir       Direction
		flipCount uint32
		hit       bool
		wantAdult bool
	}{
		{"first leg", South, 0, false, true},
		{"first north leg", North, 1, false, true},
		{"south leg", South, 2, true, false},
		{"later north leg without luck", North, 3, false, false},
		{"later north leg with luck", North, 3, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewEncounterScheduler(enc, FixedRandom{Fraction: 0.5, Hit: tt.hit})
			s.Tick(1000)
			s.ResetForLeg(tt.dir, tt.flipCount)

			assert.Equal(t, tt.dir, s.Direction())
			at, ok := s.Next(components.SpeciesAdultWhale)
			require.Equal(t, tt.wantAdult, ok)
			if ok && tt.flipCount == 0 {
				assert.InDelta(t, enc.AdultWhale.Initial, at, 1e-9)
			} else if ok {
				assert.GreaterOrEqual(t, at, enc.AdultWhale.FlipMin)
				assert.LessOrEqual(t, at, enc.AdultWhale.FlipMax)
			}

			bird, _ := s.Next(components.SpeciesBird)
			assert.InDelta(t, enc.Bird.Initial[tt.dir], bird, 1e-9)
			ice, _ := s.Next(components.SpeciesIceberg)
			assert.InDelta(t, enc.Iceberg.Initial[tt.dir], ice, 1e-9)
		})
	}
}
