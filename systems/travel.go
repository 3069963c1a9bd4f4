package systems

import "math"

// Direction is the travel direction of the current leg.
type Direction uint8

const (
	South Direction = iota // Even flip counts
	North                  // Odd flip counts
)

// String returns the direction name.
func (d Direction) String() string {
	if d == North {
		return "north"
	}
	return "south"
}

// Flip messages shown when the direction changes, keyed by the new direction.
const (
	FlipMessageNorth = "The ice is breaking up. Time to swim north to the feeding grounds."
	FlipMessageSouth = "The water is getting cold. Time to swim south to the calving grounds."
)

// TravelClock accumulates travelled distance and detects direction flips.
// Distance is measured in seconds of travel.
type TravelClock struct {
	Distance      float64 // Distance into the current leg
	TotalDistance float64
	FlipCount     uint32
	IsFlipping    bool // True only on the tick a flip distance is crossed

	flipDistance float64
}

// NewTravelClock creates a clock that flips every flipDistance.
func NewTravelClock(flipDistance float64) *TravelClock {
	return &TravelClock{flipDistance: flipDistance}
}

// FlipDistance returns the leg length.
func (c *TravelClock) FlipDistance() float64 {
	return c.flipDistance
}

// Advance adds dt to the travelled distance and sets IsFlipping on the tick
// the leg length is crossed. A single call flips at most once regardless of dt.
func (c *TravelClock) Advance(dt float64) {
	c.IsFlipping = false
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	before := math.Floor(c.Distance / c.flipDistance)
	c.Distance += dt
	c.TotalDistance += dt
	after := math.Floor(c.Distance / c.flipDistance)
	if after > before {
		c.IsFlipping = true
	}
}

// SkipToFlip jumps to the end of the current leg and marks the tick as
// flipping. Used for debug flips.
func (c *TravelClock) SkipToFlip() {
	if c.Distance < c.flipDistance {
		c.TotalDistance += c.flipDistance - c.Distance
		c.Distance = c.flipDistance
	}
	c.IsFlipping = true
}

// ResetLeg starts a new leg, keeping any overshoot past the flip distance.
func (c *TravelClock) ResetLeg() {
	c.Distance = math.Mod(c.Distance, c.flipDistance)
	if c.Distance < 0 {
		c.Distance = 0
	}
	c.FlipCount++
	c.IsFlipping = false
}

// Direction returns the travel direction of the current leg.
func (c *TravelClock) Direction() Direction {
	return Direction(c.FlipCount % 2)
}

// FlipMessage returns the message announcing the current direction.
func (c *TravelClock) FlipMessage() string {
	if c.Direction() == North {
		return FlipMessageNorth
	}
	return FlipMessageSouth
}

// FutureRange returns a distance uniformly between lo and hi ahead of now.
func (c *TravelClock) FutureRange(lo, hi float64, rng Random) float64 {
	return c.Distance + rng.Range(lo, hi)
}
