package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStepStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantP10  float64
		wantP50  float64
		wantP90  float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{12}, 12, 12, 12, 12},
		{"ascending", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5.5, 1, 5, 9},
		{"unsorted", []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}, 5.5, 1, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, _, p10, p50, p90 := ComputeStepStats(tt.values)
			assert.InDelta(t, tt.wantMean, mean, 1e-9)
			assert.InDelta(t, tt.wantP10, p10, 1.0)
			assert.InDelta(t, tt.wantP50, p50, 1.0)
			assert.InDelta(t, tt.wantP90, p90, 1.0)
			assert.LessOrEqual(t, p10, p50)
			assert.LessOrEqual(t, p50, p90)
		})
	}
}

func TestComputeStepStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeStepStats(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestComputeStepStatsStdDev(t *testing.T) {
	_, std, _, _, _ := ComputeStepStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	// Sample standard deviation
	assert.InDelta(t, 2.138, std, 0.001)

	_, std, _, _, _ = ComputeStepStats([]float64{7})
	assert.Zero(t, std)
}

func TestTotalSpawns(t *testing.T) {
	s := WindowStats{
		BirdSpawns:       3,
		FishSpawns:       2,
		ShipSpawns:       1,
		IcebergSpawns:    1,
		AdultWhaleSpawns: 1,
		BabyWhaleSpawns:  1,
		SpawnsSkipped:    5,
	}
	assert.Equal(t, 9, s.TotalSpawns())
}
