package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
	"github.com/pthm-cable/migration/telemetry"
)

func TestMeanSpawns(t *testing.T) {
	legs := []telemetry.LegStats{
		{Birds: 6, Fish: 10},
		{Birds: 10, Fish: 20},
	}
	means := meanSpawns(legs, DefaultTargets())
	assert.InDelta(t, 8.0, means[components.SpeciesBird], 1e-9)
	assert.InDelta(t, 15.0, means[components.SpeciesFish], 1e-9)
	assert.InDelta(t, 0.0, means[components.SpeciesShip], 1e-9)

	assert.Empty(t, meanSpawns(nil, DefaultTargets()))
}

func TestComputeFitness(t *testing.T) {
	fe := &FitnessEvaluator{targets: Targets{
		components.SpeciesBird: 10,
		components.SpeciesShip: 4,
	}}

	tests := []struct {
		name  string
		means map[components.Species]float64
		want  float64
	}{
		{"on target", map[components.Species]float64{components.SpeciesBird: 10, components.SpeciesShip: 4}, 0},
		{"bird off by half", map[components.Species]float64{components.SpeciesBird: 5, components.SpeciesShip: 4}, 0.25},
		{"missing species", map[components.Species]float64{components.SpeciesBird: 10}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, fe.computeFitness(tt.means), 1e-9)
		})
	}
}

func TestApplyToConfigKeepsWidth(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	width := cfg.Encounters.Bird.South.Intercept[1] - cfg.Encounters.Bird.South.Intercept[0]

	values := pv.DefaultVector()
	values[0] = 40
	pv.ApplyToConfig(cfg, values)

	got := cfg.Encounters.Bird.South.Intercept
	assert.InDelta(t, width, got[1]-got[0], 1e-9)
	assert.InDelta(t, 40, (got[0]+got[1])/2, 1e-9)
	assert.InDelta(t, 40, pv.ExtractFromConfig(cfg)[0], 1e-9)
}

func TestApplyToConfigClampsToBounds(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	values := pv.DefaultVector()
	values[2] = -100 // fish_south
	pv.ApplyToConfig(cfg, values)

	lo := cfg.Encounters.Fish.South.Intercept[0]
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.InDelta(t, pv.Specs[2].Min, pv.ExtractFromConfig(cfg)[2], 5.0)
}
