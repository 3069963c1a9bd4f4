package systems

import (
	"math"

	"github.com/pthm-cable/migration/config"
)

// Raininess is a bounded random walk that starts and stops precipitation
// with hysteresis. Once started, precipitation lasts until the committed end
// distance regardless of the factor.
type Raininess struct {
	Factor  float64 // In [0, 1]
	EndsAt  float64 // Leg distance the current precipitation stops at
	Raining bool
	Snow    bool // Precipitation that started past the snow distance falls as snow

	cfg config.WeatherConfig
}

// NewRaininess creates a dry weather state.
func NewRaininess(cfg config.WeatherConfig) *Raininess {
	return &Raininess{cfg: cfg}
}

// Update walks the factor by a per-second delta drawn from the direction's
// growth range and applies the start and stop rules. Returns true when
// precipitation started or stopped on this tick.
func (r *Raininess) Update(distance, dt float64, dir Direction, rng Random) bool {
	if !(dt > 0) {
		return false
	}
	growth := r.cfg.GrowthSouth
	if dir == North {
		growth = r.cfg.GrowthNorth
	}
	r.Factor = clamp01(r.Factor + rng.Range(growth[0], growth[1])*dt)

	switch {
	case !r.Raining && r.Factor > r.cfg.RainThreshold:
		r.Raining = true
		r.Snow = distance >= r.cfg.SnowDistance
		r.EndsAt = distance + rng.Range(r.cfg.RainDuration[0], r.cfg.RainDuration[1])
		return true
	case r.Raining && distance >= r.EndsAt:
		r.Reset()
		return true
	}
	return false
}

// Reset stops any precipitation and zeroes the factor.
func (r *Raininess) Reset() {
	r.Factor = 0
	r.EndsAt = 0
	r.Raining = false
	r.Snow = false
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
