// Package main tunes encounter spawn rates with CMA-ES so that each leg of
// the migration meets a target number of encounters per species.
package main

import (
	"github.com/pthm-cable/migration/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	rate func(*config.Config) *config.RateConfig
}

// ParamVector holds the set of all optimizable parameters. Each parameter
// is the midpoint of a rate's intercept range; the range width is kept
// from the base config.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "bird_south", Path: "encounters.bird.south.intercept", Min: 5, Max: 60, Default: 25,
				rate: func(c *config.Config) *config.RateConfig { return &c.Encounters.Bird.South }},
			{Name: "bird_north", Path: "encounters.bird.north.intercept", Min: 5, Max: 60, Default: 25,
				rate: func(c *config.Config) *config.RateConfig { return &c.Encounters.Bird.North }},
			{Name: "fish_south", Path: "encounters.fish.south.intercept", Min: 2, Max: 30, Default: 10,
				rate: func(c *config.Config) *config.RateConfig { return &c.Encounters.Fish.South }},
			{Name: "fish_north", Path: "encounters.fish.north.intercept", Min: 2, Max: 30, Default: 10,
				rate: func(c *config.Config) *config.RateConfig { return &c.Encounters.Fish.North }},
			{Name: "ship_south", Path: "encounters.ship.south.intercept", Min: 10, Max: 90, Default: 40,
				rate: func(c *config.Config) *config.RateConfig { return &c.Encounters.Ship.South }},
			{Name: "ship_north", Path: "encounters.ship.north.intercept", Min: 10, Max: 90, Default: 40,
				rate: func(c *config.Config) *config.RateConfig { return &c.Encounters.Ship.North }},
			{Name: "iceberg_south", Path: "encounters.iceberg.south.intercept", Min: 5, Max: 40, Default: 12.5,
				rate: func(c *config.Config) *config.RateConfig { return &c.Encounters.Iceberg.South }},
			{Name: "iceberg_north", Path: "encounters.iceberg.north.intercept", Min: 5, Max: 40, Default: 12.5,
				rate: func(c *config.Config) *config.RateConfig { return &c.Encounters.Iceberg.North }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(spec.Max, max(spec.Min, v[i]))
	}
	return clamped
}

// ApplyToConfig recentres each intercept range on its parameter value,
// keeping the range width and the lower bound above zero.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		r := spec.rate(cfg)
		half := (r.Intercept[1] - r.Intercept[0]) / 2
		lo := max(0, clamped[i]-half)
		r.Intercept = [2]float64{lo, lo + 2*half}
	}
}

// ExtractFromConfig returns the intercept midpoints of cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		r := spec.rate(cfg)
		v[i] = (r.Intercept[0] + r.Intercept[1]) / 2
	}
	return v
}
