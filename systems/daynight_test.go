package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertColor(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, want.Z, got.Z, 1e-9)
}

func TestDayNightStartsAtInitialTime(t *testing.T) {
	cfg := testConfig(t)
	d := NewDayNight(cfg.Weather)
	assert.Equal(t, cfg.Weather.InitialTime, d.TimeOfDay)
	assert.True(t, d.IsSunny)
}

func TestDayNightRerollsOnlyAtWrap(t *testing.T) {
	cfg := testConfig(t)
	d := NewDayNight(cfg.Weather)
	stormy := FixedRandom{Hit: false}

	assert.False(t, d.Update(10, stormy))
	assert.InDelta(t, 6+10*cfg.Weather.HoursPerSecond, d.TimeOfDay, 1e-9)
	assert.True(t, d.IsSunny, "weather holds during the day")

	d.TimeOfDay = 23.9
	assert.True(t, d.Update(1, stormy))
	assert.InDelta(t, 23.9+cfg.Weather.HoursPerSecond-24, d.TimeOfDay, 1e-9)
	assert.False(t, d.IsSunny)
	assertColor(t, StormyPalette.At(d.TimeOfDay), d.Color())

	assert.False(t, d.Update(0, FixedRandom{Hit: true}))
	assert.False(t, d.Update(-5, FixedRandom{Hit: true}))
	assert.False(t, d.IsSunny)
}

func TestPaletteAt(t *testing.T) {
	p := SunnyPalette
	mid := func(a, b r3.Vec) r3.Vec { return r3.Scale(0.5, r3.Add(a, b)) }
	tests := []struct {
		name string
		hour float64
		want r3.Vec
	}{
		{"midnight", 0, p[0]},
		{"keyframe", 3, p[1]},
		{"between keyframes", 1.5, mid(p[0], p[1])},
		{"wraps to midnight", 22.5, mid(p[7], p[0])},
		{"full day", 24, p[0]},
		{"negative hour", -3, p[7]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertColor(t, tt.want, p.At(tt.hour))
		})
	}
}
