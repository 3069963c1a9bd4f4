package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTravelClockThreeAdvances(t *testing.T) {
	c := NewTravelClock(120)

	c.Advance(50)
	assert.False(t, c.IsFlipping)
	c.Advance(50)
	assert.False(t, c.IsFlipping)
	c.Advance(50)
	require.True(t, c.IsFlipping)

	c.ResetLeg()
	assert.InDelta(t, 30, c.Distance, 1e-9)
	assert.Equal(t, uint32(1), c.FlipCount)
	assert.InDelta(t, 150, c.TotalDistance, 1e-9)
	assert.Equal(t, North, c.Direction())
}

func TestTravelClockLargeStep(t *testing.T) {
	c := NewTravelClock(120)
	c.Advance(1000)
	require.True(t, c.IsFlipping)

	c.ResetLeg()
	assert.Equal(t, uint32(1), c.FlipCount)
	assert.Less(t, c.Distance, 120.0)
	assert.InDelta(t, 40, c.Distance, 1e-9)
}

// TestTravelClockRandomSteps checks that every flip leaves the distance
// inside the leg and counts exactly once, whatever the step sizes.
func TestTravelClockRandomSteps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewTravelClock(120)

	for i := 0; i < 5000; i++ {
		dt := rng.ExpFloat64() * 20
		before := c.FlipCount
		c.Advance(dt)
		if c.IsFlipping {
			c.ResetLeg()
			assert.Equal(t, before+1, c.FlipCount)
		} else {
			assert.Equal(t, before, c.FlipCount)
		}
		require.Less(t, c.Distance, 120.0)
		require.GreaterOrEqual(t, c.Distance, 0.0)
	}
}

func TestTravelClockIgnoresInvalidSteps(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"zero", 0},
		{"negative", -5},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewTravelClock(120)
			c.Advance(10)
			c.Advance(tt.dt)
			assert.InDelta(t, 10, c.Distance, 1e-9)
			assert.False(t, c.IsFlipping)
		})
	}
}

func TestTravelClockSkipToFlip(t *testing.T) {
	c := NewTravelClock(120)
	c.Advance(20)
	c.SkipToFlip()
	require.True(t, c.IsFlipping)
	assert.InDelta(t, 120, c.TotalDistance, 1e-9)

	c.ResetLeg()
	assert.InDelta(t, 0, c.Distance, 1e-9)
	assert.Equal(t, uint32(1), c.FlipCount)
}

func TestTravelClockFlipMessage(t *testing.T) {
	c := NewTravelClock(120)
	assert.Equal(t, South, c.Direction())
	assert.Equal(t, FlipMessageSouth, c.FlipMessage())

	c.SkipToFlip()
	c.ResetLeg()
	assert.Equal(t, "north", c.Direction().String())
	assert.Equal(t, FlipMessageNorth, c.FlipMessage())
}

func TestTravelClockFutureRange(t *testing.T) {
	c := NewTravelClock(120)
	c.Advance(10)
	got := c.FutureRange(35, 55, FixedRandom{Fraction: 0.5})
	assert.InDelta(t, 55, got, 1e-9)
}
