package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
	"github.com/pthm-cable/migration/game"
	"github.com/pthm-cable/migration/telemetry"
)

// Targets is the desired number of spawns per leg for each scheduled species.
type Targets map[components.Species]float64

// DefaultTargets returns the encounter counts a leg should average.
func DefaultTargets() Targets {
	return Targets{
		components.SpeciesBird:    8,
		components.SpeciesFish:    14,
		components.SpeciesShip:    4,
		components.SpeciesIceberg: 6,
	}
}

// FitnessEvaluator runs headless simulations and scores spawn counts
// against the targets.
type FitnessEvaluator struct {
	params     *ParamVector
	legs       uint32
	seeds      []int64
	baseConfig *config.Config
	targets    Targets

	mu        sync.Mutex
	bestLegs  []telemetry.LegStats
	bestScore float64
	lastMeans map[components.Species]float64
}

// NewFitnessEvaluator creates a new evaluator that runs legs legs per seed.
func NewFitnessEvaluator(params *ParamVector, legs int, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		legs:       uint32(max(1, legs)),
		seeds:      seeds,
		baseConfig: baseCfg,
		targets:    targets,
		bestScore:  math.Inf(1),
	}
}

// LastMeans returns the mean spawns per leg from the most recent evaluation.
func (fe *FitnessEvaluator) LastMeans() map[components.Species]float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMeans
}

// BestLegs returns the leg summaries of the best evaluation so far.
func (fe *FitnessEvaluator) BestLegs() []telemetry.LegStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestLegs
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Seeds share the config read-only and run in parallel
	results := make([][]telemetry.LegStats, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var all []telemetry.LegStats
	for _, legs := range results {
		all = append(all, legs...)
	}
	means := meanSpawns(all, fe.targets)
	score := fe.computeFitness(means)

	fe.mu.Lock()
	fe.lastMeans = means
	if score < fe.bestScore {
		fe.bestScore = score
		fe.bestLegs = all
	}
	fe.mu.Unlock()

	return score
}

// runSimulation runs one headless game until it has completed the
// requested number of legs.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []telemetry.LegStats {
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 64,
		Config:         cfg,
	})
	defer g.Unload()

	// Cap at twice the expected run length in case a flip never lands
	maxTicks := int32(2 * float64(fe.legs) * cfg.Travel.FlipDistance / cfg.Physics.DT)
	for g.Clock().FlipCount < fe.legs && g.Tick() < maxTicks {
		g.UpdateHeadless()
	}
	return g.Legs()
}

// copyConfig returns a copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness sums the squared relative error of each species' mean
// spawns per leg against its target.
func (fe *FitnessEvaluator) computeFitness(means map[components.Species]float64) float64 {
	var score float64
	for sp, target := range fe.targets {
		if target <= 0 {
			continue
		}
		rel := (means[sp] - target) / target
		score += rel * rel
	}
	return score
}

// meanSpawns returns the mean spawns per leg for each targeted species.
func meanSpawns(legs []telemetry.LegStats, targets Targets) map[components.Species]float64 {
	means := make(map[components.Species]float64, len(targets))
	if len(legs) == 0 {
		return means
	}
	counts := make([]float64, len(legs))
	for sp := range targets {
		for i, leg := range legs {
			counts[i] = float64(leg.Spawns(sp))
		}
		means[sp] = stat.Mean(counts, nil)
	}
	return means
}
