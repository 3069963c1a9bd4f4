package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/migration/config"
)

// PaletteSize is the number of keyframes in a day/night palette.
const PaletteSize = 8

// HoursPerKeyframe is the spacing of palette keyframes.
const HoursPerKeyframe = 24.0 / PaletteSize

// Palette holds RGB keyframes (0-255) at midnight, 3am, 6am and so on.
// The first and last keyframes should be close for a smooth wrap.
type Palette [PaletteSize]r3.Vec

// SunnyPalette tints clear days.
var SunnyPalette = Palette{
	{X: 189, Y: 189, Z: 199},
	{X: 206, Y: 205, Z: 196},
	{X: 230, Y: 230, Z: 210},
	{X: 247, Y: 247, Z: 219},
	{X: 249, Y: 249, Z: 216},
	{X: 247, Y: 240, Z: 234},
	{X: 219, Y: 210, Z: 215},
	{X: 189, Y: 189, Z: 208},
}

// StormyPalette tints overcast days.
var StormyPalette = Palette{
	{X: 168, Y: 170, Z: 180},
	{X: 180, Y: 182, Z: 184},
	{X: 198, Y: 200, Z: 198},
	{X: 210, Y: 212, Z: 210},
	{X: 212, Y: 214, Z: 210},
	{X: 206, Y: 204, Z: 206},
	{X: 190, Y: 188, Z: 196},
	{X: 168, Y: 170, Z: 186},
}

// DayNight tracks the time of day and the palette it is shown with.
type DayNight struct {
	TimeOfDay float64 // Hours in [0, 24)
	IsSunny   bool

	hoursPerSecond float64
	chanceOfSun    float64
}

// NewDayNight creates a cycle starting at the configured hour on a sunny day.
func NewDayNight(cfg config.WeatherConfig) *DayNight {
	return &DayNight{
		TimeOfDay:      math.Mod(math.Max(cfg.InitialTime, 0), 24),
		IsSunny:        true,
		hoursPerSecond: cfg.HoursPerSecond,
		chanceOfSun:    cfg.ChanceOfSun,
	}
}

// Update advances the clock by dt seconds. The sunny flag is re-rolled only
// when the clock wraps past midnight. Returns true on the wrap tick.
func (d *DayNight) Update(dt float64, rng Random) bool {
	if !(dt > 0) {
		return false
	}
	next := d.TimeOfDay + dt*d.hoursPerSecond
	wrapped := next >= 24
	d.TimeOfDay = math.Mod(next, 24)
	if wrapped {
		d.IsSunny = rng.Chance(d.chanceOfSun)
	}
	return wrapped
}

// Color returns the interpolated tint for the current time of day.
func (d *DayNight) Color() r3.Vec {
	p := &StormyPalette
	if d.IsSunny {
		p = &SunnyPalette
	}
	return p.At(d.TimeOfDay)
}

// At returns the colour at the given hour, interpolating between the two
// bracketing keyframes.
func (p *Palette) At(hour float64) r3.Vec {
	hour = math.Mod(hour, 24)
	if hour < 0 {
		hour += 24
	}
	from := int(hour/HoursPerKeyframe) % PaletteSize
	to := (from + 1) % PaletteSize
	t := math.Mod(hour, HoursPerKeyframe) / HoursPerKeyframe
	return r3.Add(r3.Scale(1-t, p[from]), r3.Scale(t, p[to]))
}
