package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Travel state at window end
	Distance      float64 `csv:"distance"`
	TotalDistance float64 `csv:"total_distance"`
	FlipCount     uint32  `csv:"flip_count"`
	Direction     string  `csv:"direction"`

	// Live creatures at window end
	Birds       int `csv:"birds"`
	Fish        int `csv:"fish"`
	Ships       int `csv:"ships"`
	Icebergs    int `csv:"icebergs"`
	AdultWhales int `csv:"adult_whales"`
	BabyWhales  int `csv:"baby_whales"`
	Waves       int `csv:"waves"`

	// Spawns during window
	BirdSpawns       int `csv:"bird_spawns"`
	FishSpawns       int `csv:"fish_spawns"`
	ShipSpawns       int `csv:"ship_spawns"`
	IcebergSpawns    int `csv:"iceberg_spawns"`
	AdultWhaleSpawns int `csv:"adult_whale_spawns"`
	BabyWhaleSpawns  int `csv:"baby_whale_spawns"`
	SpawnsSkipped    int `csv:"spawns_skipped"`

	// Events during window
	Flips           int `csv:"flips"`
	RainStarts      int `csv:"rain_starts"`
	SnowStarts      int `csv:"snow_starts"`
	RainStops       int `csv:"rain_stops"`
	CuriosityGained int `csv:"curiosity_gained"`
	CuriosityLost   int `csv:"curiosity_lost"`
	Arrivals        int `csv:"arrivals"`
	Despawns        int `csv:"despawns"`
	BabyDepartures  int `csv:"baby_departures"`

	// Weather at window end
	Raining   bool    `csv:"raining"`
	Raininess float64 `csv:"raininess"`
	TimeOfDay float64 `csv:"time_of_day"`
	Sunny     bool    `csv:"sunny"`

	// Distribution of spawn steps recomputed during the window
	StepCount int     `csv:"step_count"`
	StepMean  float64 `csv:"step_mean"`
	StepStd   float64 `csv:"step_std"`
	StepP10   float64 `csv:"step_p10"`
	StepP50   float64 `csv:"step_p50"`
	StepP90   float64 `csv:"step_p90"`
}

// ComputeStepStats calculates mean, standard deviation and percentiles of
// spawn steps. Returns zeros for an empty slice.
func ComputeStepStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		mean = sorted[0]
	} else {
		mean, std = stat.MeanStdDev(sorted, nil)
	}
	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, std, p10, p50, p90
}

// TotalSpawns returns the number of creatures spawned during the window.
func (s WindowStats) TotalSpawns() int {
	return s.BirdSpawns + s.FishSpawns + s.ShipSpawns + s.IcebergSpawns + s.AdultWhaleSpawns + s.BabyWhaleSpawns
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("distance", s.Distance),
		slog.Int("flip_count", int(s.FlipCount)),
		slog.String("direction", s.Direction),
		slog.Int("birds", s.Birds),
		slog.Int("fish", s.Fish),
		slog.Int("ships", s.Ships),
		slog.Int("icebergs", s.Icebergs),
		slog.Int("adult_whales", s.AdultWhales),
		slog.Int("baby_whales", s.BabyWhales),
		slog.Int("spawns", s.TotalSpawns()),
		slog.Int("despawns", s.Despawns),
		slog.Int("curiosity_gained", s.CuriosityGained),
		slog.Bool("raining", s.Raining),
		slog.Float64("raininess", s.Raininess),
		slog.Float64("time_of_day", s.TimeOfDay),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
