package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)
	stats := p.Stats()
	assert.Zero(t, stats.AvgTickDuration)
	assert.Zero(t, stats.TicksPerSecond)
	assert.Empty(t, stats.PhaseAvg)
}

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(4)
	for i := 0; i < 6; i++ {
		p.StartTick()
		p.StartPhase(PhaseFlocking)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhaseMovement)
		p.EndTick()
	}

	stats := p.Stats()
	assert.Positive(t, stats.AvgTickDuration)
	assert.LessOrEqual(t, stats.MinTickDuration, stats.AvgTickDuration)
	assert.GreaterOrEqual(t, stats.MaxTickDuration, stats.AvgTickDuration)
	assert.GreaterOrEqual(t, stats.PhaseAvg[PhaseFlocking], time.Millisecond)
	assert.Greater(t, stats.PhasePct[PhaseFlocking], stats.PhasePct[PhaseMovement])
	assert.Positive(t, stats.TicksPerSecond)

	row := stats.ToCSV(99)
	assert.Equal(t, int32(99), row.WindowEnd)
	assert.Equal(t, stats.PhasePct[PhaseFlocking], row.FlockingPct)
}

func TestPerfCollectorInvalidWindow(t *testing.T) {
	p := NewPerfCollector(0)
	p.StartTick()
	p.EndTick()
	assert.Len(t, p.samples, 60)
}
