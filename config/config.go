// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Travel     TravelConfig     `yaml:"travel"`
	Encounters EncountersConfig `yaml:"encounters"`
	Bird       BirdConfig       `yaml:"bird"`
	Whale      WhaleConfig      `yaml:"whale"`
	Boids      BoidsConfig      `yaml:"boids"`
	Repulsors  RepulsorsConfig  `yaml:"repulsors"`
	Movement   MovementConfig   `yaml:"movement"`
	Weather    WeatherConfig    `yaml:"weather"`
	Waves      WavesConfig      `yaml:"waves"`
	Player     PlayerConfig     `yaml:"player"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation step parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`
	GridCellSize float64 `yaml:"grid_cell_size"`
}

// TravelConfig holds travel clock parameters.
// Distance is measured in seconds of travel.
type TravelConfig struct {
	FlipDistance float64 `yaml:"flip_distance"`
	Speed        float64 `yaml:"speed"` // Pixels per second the player whale swims at
}

// RateConfig is a distance-dependent spawn rate for one travel direction.
type RateConfig struct {
	Slope     float64    `yaml:"slope"`     // Percent of current distance added to each step
	Intercept [2]float64 `yaml:"intercept"` // Uniform range for the base step
	Cutoff    float64    `yaml:"cutoff"`    // No spawns past this leg distance (0 = never)
}

// SpeciesEncounterConfig holds scheduling parameters for one species.
type SpeciesEncounterConfig struct {
	Initial [2]float64 `yaml:"initial"` // First spawn distance, indexed by direction (south, north)
	MinStep float64    `yaml:"min_step"`
	MaxStep float64    `yaml:"max_step"`
	South   RateConfig `yaml:"south"`
	North   RateConfig `yaml:"north"`
}

// AdultWhaleEncounterConfig holds the one-shot adult whale planning parameters.
type AdultWhaleEncounterConfig struct {
	Initial    float64 `yaml:"initial"`     // Planned distance on the first leg
	FlipMin    float64 `yaml:"flip_min"`    // Planned range after flipping north
	FlipMax    float64 `yaml:"flip_max"`
	FlipChance float64 `yaml:"flip_chance"` // Chance of planning on later northward flips
}

// EncountersConfig holds the encounter scheduler parameters.
type EncountersConfig struct {
	Bird       SpeciesEncounterConfig    `yaml:"bird"`
	Fish       SpeciesEncounterConfig    `yaml:"fish"`
	Ship       SpeciesEncounterConfig    `yaml:"ship"`
	Iceberg    SpeciesEncounterConfig    `yaml:"iceberg"`
	AdultWhale AdultWhaleEncounterConfig `yaml:"adult_whale"`
}

// BirdConfig holds bird curiosity parameters.
type BirdConfig struct {
	IncuriousChance    float64 `yaml:"incurious_chance"`
	CuriosityThreshold float64 `yaml:"curiosity_threshold"`
	Jitter             float64 `yaml:"jitter"`
	CuriousMin         float64 `yaml:"curious_min"` // Seconds
	CuriousMax         float64 `yaml:"curious_max"`
	MinScale           float64 `yaml:"min_scale"`
	ShrinkRate         float64 `yaml:"shrink_rate"` // Scale per second while curious
	RegrowRate         float64 `yaml:"regrow_rate"` // Scale per second while losing curiosity
	SpeedFactor        float64 `yaml:"speed_factor"`
	ArriveDistance     float64 `yaml:"arrive_distance"`
}

// WhaleConfig holds adult and baby whale parameters.
type WhaleConfig struct {
	CuriosityDistance float64 `yaml:"curiosity_distance"`
	Jitter            float64 `yaml:"jitter"`
	CrossingSpeed     float64 `yaml:"crossing_speed"` // Fraction of travel speed
	FollowSpeed       float64 `yaml:"follow_speed"`   // Fraction of travel speed
	FollowLead        float64 `yaml:"follow_lead"`
	FollowDistance    float64 `yaml:"follow_distance"`
	MatchFactor       float64 `yaml:"match_factor"`
	BabyLag           float64 `yaml:"baby_lag"`
	DepartureMin      float64 `yaml:"departure_min"`
	DepartureMax      float64 `yaml:"departure_max"`
}

// BoidsConfig holds flocking parameters for fish schools.
type BoidsConfig struct {
	MinSpeed       float64 `yaml:"min_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	Cohesion       float64 `yaml:"cohesion"`
	Separation     float64 `yaml:"separation"`
	Alignment      float64 `yaml:"alignment"`
	FOVDegrees     float64 `yaml:"fov_degrees"`
	ViewRange      float64 `yaml:"view_range"`
	ProtectedRange float64 `yaml:"protected_range"`
	MaxTurnRate    float64 `yaml:"max_turn_rate"` // Radians per second
	Jitter         float64 `yaml:"jitter"`
	GoalWeight     float64 `yaml:"goal_weight"`
	SchoolSize     int     `yaml:"school_size"`
	SchoolSpread   float64 `yaml:"school_spread"`
}

// RepulsorConfig describes one repulsive field.
type RepulsorConfig struct {
	Strength float64 `yaml:"strength"`
	Range    float64 `yaml:"range"`
}

// RepulsorsConfig holds repulsor parameters per creature.
type RepulsorsConfig struct {
	Player     RepulsorConfig `yaml:"player"`
	Ship       RepulsorConfig `yaml:"ship"`
	Iceberg    RepulsorConfig `yaml:"iceberg"`
	AdultWhale RepulsorConfig `yaml:"adult_whale"`
}

// MovementConfig holds shared creature movement parameters.
type MovementConfig struct {
	SpriteMargin  float64 `yaml:"sprite_margin"`  // Distance outside the window creature paths start
	DespawnBuffer float64 `yaml:"despawn_buffer"` // Creatures further outside the window are removed
	ShipSpeed     float64 `yaml:"ship_speed"`     // Fraction of travel speed
	IcebergSpeed  float64 `yaml:"iceberg_speed"`  // Fraction of ship speed
	TurnLerp      float64 `yaml:"turn_lerp"`      // Per-second rotation smoothing
}

// WeatherConfig holds day/night and precipitation parameters.
type WeatherConfig struct {
	HoursPerSecond float64    `yaml:"hours_per_second"`
	InitialTime    float64    `yaml:"initial_time"`
	ChanceOfSun    float64    `yaml:"chance_of_sun"`
	RainThreshold  float64    `yaml:"rain_threshold"`
	RainDuration   [2]float64 `yaml:"rain_duration"`
	GrowthSouth    [2]float64 `yaml:"growth_south"` // Raininess change per second
	GrowthNorth    [2]float64 `yaml:"growth_north"`
	SnowDistance   float64    `yaml:"snow_distance"`
}

// WavesConfig holds ambient wave decoration parameters.
type WavesConfig struct {
	Initial  int        `yaml:"initial"`
	Interval [2]float64 `yaml:"interval"`
	Lifetime float64    `yaml:"lifetime"` // Seconds
}

// PlayerConfig holds player whale parameters.
type PlayerConfig struct {
	ArrivalSpeed  float64 `yaml:"arrival_speed"` // Pixels per second while swimming in
	RestFraction  float64 `yaml:"rest_fraction"` // Resting row as a fraction of window height
	LateralSpeed  float64 `yaml:"lateral_speed"`
	MovementScale float64 `yaml:"movement_scale"` // Rotation per unit of lateral intent
	TurnLerp      float64 `yaml:"turn_lerp"`      // Per-tick rotation smoothing
	ClampBuffer   float64 `yaml:"clamp_buffer"`   // Fraction of the window kept clear at each side
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks kept for perf averages
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	DT32      float32
	ScreenW32 float32
	ScreenH32 float32
	FOVRad    float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Set replaces the global configuration. Used by tools that tune parameters
// between runs.
func Set(cfg *Config) {
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Physics.DT <= 0 || math.IsNaN(c.Physics.DT) {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Travel.FlipDistance <= 0 {
		return fmt.Errorf("travel.flip_distance must be positive, got %v", c.Travel.FlipDistance)
	}
	species := map[string]SpeciesEncounterConfig{
		"bird":    c.Encounters.Bird,
		"fish":    c.Encounters.Fish,
		"ship":    c.Encounters.Ship,
		"iceberg": c.Encounters.Iceberg,
	}
	for name, s := range species {
		if s.MinStep <= 0 || s.MaxStep < s.MinStep {
			return fmt.Errorf("encounters.%s: need 0 < min_step <= max_step, got %v..%v", name, s.MinStep, s.MaxStep)
		}
	}
	if c.Boids.MinSpeed < 0 || c.Boids.MaxSpeed < c.Boids.MinSpeed {
		return fmt.Errorf("boids: need 0 <= min_speed <= max_speed, got %v..%v", c.Boids.MinSpeed, c.Boids.MaxSpeed)
	}
	if c.Bird.MinScale <= 0 || c.Bird.MinScale > 1 {
		return fmt.Errorf("bird.min_scale must be in (0, 1], got %v", c.Bird.MinScale)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.FOVRad = c.Boids.FOVDegrees * math.Pi / 180

	if c.Physics.GridCellSize <= 0 {
		c.Physics.GridCellSize = c.Boids.ViewRange
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 120
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
