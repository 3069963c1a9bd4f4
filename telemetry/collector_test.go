package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/migration/components"
)

func TestCollectorWindowTicks(t *testing.T) {
	c := NewCollector(10, 1.0/64)
	assert.False(t, c.ShouldFlush(639))
	assert.True(t, c.ShouldFlush(640))

	c.Flush(640, Snapshot{})
	assert.False(t, c.ShouldFlush(1000))
	assert.True(t, c.ShouldFlush(1280))
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0, 1.0/64)
	assert.True(t, c.ShouldFlush(1))
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.5)

	c.RecordSpawn(components.SpeciesBird)
	c.RecordSpawn(components.SpeciesBird)
	c.RecordSpawn(components.SpeciesShip)
	c.RecordSpawn(components.SpeciesBabyWhale)
	c.RecordSpawnSkipped()
	c.RecordFlip()
	c.RecordRainChange(true, false)
	c.RecordRainChange(true, true)
	c.RecordRainChange(false, false)
	c.RecordCuriosity(true)
	c.RecordCuriosity(false)
	c.RecordArrival()
	c.RecordDespawns(4)
	c.RecordBabyDeparture()
	c.RecordStep(10)
	c.RecordStep(20)

	var live [components.NumSpecies]int
	live[components.SpeciesFish] = 20
	snap := Snapshot{
		Distance:      42,
		TotalDistance: 222,
		FlipCount:     1,
		Direction:     "north",
		Live:          live,
		Waves:         30,
		Raining:       true,
		Raininess:     0.6,
	}

	stats := c.Flush(2, snap)
	assert.Equal(t, int32(0), stats.WindowStartTick)
	assert.Equal(t, int32(2), stats.WindowEndTick)
	assert.InDelta(t, 1.0, stats.SimTimeSec, 1e-9)
	assert.Equal(t, 2, stats.BirdSpawns)
	assert.Equal(t, 1, stats.ShipSpawns)
	assert.Equal(t, 1, stats.BabyWhaleSpawns)
	assert.Equal(t, 1, stats.SpawnsSkipped)
	assert.Equal(t, 1, stats.Flips)
	assert.Equal(t, 1, stats.RainStarts)
	assert.Equal(t, 1, stats.SnowStarts)
	assert.Equal(t, 1, stats.RainStops)
	assert.Equal(t, 1, stats.CuriosityGained)
	assert.Equal(t, 1, stats.CuriosityLost)
	assert.Equal(t, 1, stats.Arrivals)
	assert.Equal(t, 4, stats.Despawns)
	assert.Equal(t, 1, stats.BabyDepartures)
	assert.Equal(t, 2, stats.StepCount)
	assert.InDelta(t, 15.0, stats.StepMean, 1e-9)
	assert.Equal(t, 20, stats.Fish)
	assert.Equal(t, 30, stats.Waves)
	assert.Equal(t, "north", stats.Direction)

	next := c.Flush(4, Snapshot{})
	require.Equal(t, int32(2), next.WindowStartTick)
	assert.Zero(t, next.TotalSpawns())
	assert.Zero(t, next.StepCount)
	assert.Zero(t, next.Flips)
}

func TestLegTracker(t *testing.T) {
	lt := NewLegTracker("south")
	lt.RecordSpawn(components.SpeciesBird)
	lt.RecordSpawn(components.SpeciesAdultWhale)
	lt.RecordRainStart(false)
	lt.RecordMetWhale()

	done := lt.EndLeg(180, "north")
	assert.Equal(t, uint32(0), done.Leg)
	assert.Equal(t, "south", done.Direction)
	assert.Equal(t, 1, done.Spawns(components.SpeciesBird))
	assert.Equal(t, 1, done.Spawns(components.SpeciesAdultWhale))
	assert.Equal(t, 1, done.RainPeriods)
	assert.True(t, done.MetWhale)
	assert.InDelta(t, 180.0, done.EndTotal, 1e-9)

	cur := lt.Current()
	assert.Equal(t, uint32(1), cur.Leg)
	assert.Equal(t, "north", cur.Direction)
	assert.InDelta(t, 180.0, cur.StartTotal, 1e-9)
	assert.False(t, cur.MetWhale)
	assert.Len(t, lt.Completed(), 1)
}
