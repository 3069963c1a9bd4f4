package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	legs := flag.Int("legs", 2, "Legs to simulate per seed")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	birds := flag.Float64("birds", 8, "Target bird spawns per leg")
	fish := flag.Float64("fish", 14, "Target fish school spawns per leg")
	ships := flag.Float64("ships", 4, "Target ship spawns per leg")
	icebergs := flag.Float64("icebergs", 6, "Target iceberg spawns per leg")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Simulation logs below warnings would drown the progress output
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	targets := Targets{
		components.SpeciesBird:    *birds,
		components.SpeciesFish:    *fish,
		components.SpeciesShip:    *ships,
		components.SpeciesIceberg: *icebergs,
	}

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *legs, evalSeeds, baseCfg, targets)

	dim := params.Dim()
	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation; seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	evalLog, err := newEvalLog(filepath.Join(*outputDir, "optimize_log.csv"), params)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer evalLog.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		// Log the clamped values, which are the ones actually applied
		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
		}

		if err := evalLog.Write(evalCount, fitness, clamped); err != nil {
			log.Printf("failed to write log row: %v", err)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		means := evaluator.LastMeans()
		fmt.Printf("Eval %d/%d: fitness=%.4f (best=%.4f) birds=%.1f fish=%.1f ships=%.1f icebergs=%.1f | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, fitness, bestFitness,
			means[components.SpeciesBird], means[components.SpeciesFish],
			means[components.SpeciesShip], means[components.SpeciesIceberg],
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, legs per run: %d\n", *seeds, *legs)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Best params may come from any evaluation, not just the final one
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.3f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	if legs := evaluator.BestLegs(); len(legs) > 0 {
		legsPath := filepath.Join(*outputDir, "best_legs.csv")
		if err := writeLegs(legsPath, legs); err != nil {
			log.Printf("failed to write best legs: %v", err)
		} else {
			fmt.Printf("Leg summaries saved to: %s\n", legsPath)
		}
	}
}

// writeLegs writes the leg summaries of the best run as CSV.
func writeLegs(path string, legs any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(legs, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
