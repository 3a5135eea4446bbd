package main

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	steps       int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, steps int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		steps:       steps,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 60, // one second at dt 1 and 60 FPS
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel, each with its own engine.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runSimulation(x, s)
			if err != nil {
				slog.Error("simulation failed", "seed", s, "error", err)
				results[idx] = seedResult{fitness: 0}
				return
			}
			results[idx] = seedResult{
				fitness: computeFitness(windows),
				quality: computeQuality(windows),
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg, err := fe.configFor(x, seed)
	if err != nil {
		return nil, err
	}

	var windows []telemetry.WindowStats
	r, err := sim.New(cfg, sim.Options{
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for r.Steps() < fe.steps {
		r.Step()
	}
	return windows, nil
}

// configFor creates a deep copy of the base config with x applied.
// Randomization is forced off so the evaluated parameters stay in place.
func (fe *FitnessEvaluator) configFor(x []float64, seed int64) (*config.Config, error) {
	cfg := *fe.baseConfig
	cfg.Species = append([]config.SpeciesEntry(nil), fe.baseConfig.Species...)
	cfg.Simulation.Seed = seed
	cfg.Randomization.Enabled = false
	cfg.Telemetry.StatsWindow = fe.statsWindow

	if err := fe.params.ApplyToConfig(&cfg, x); err != nil {
		return nil, err
	}
	if err := cfg.Recompute(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Fitness weights.
const (
	qualityWarmupWindows = 3 // skip first N windows while the ramp fills the world
	qualityBonus         = 0.2
	neighborScale        = 5.0 // mean neighbors at which grouping scores 1-1/e
)

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(meanPolarization × (1 + 0.2 × quality))
// Alignment dominates; quality rewards flocks that also stay grouped.
func computeFitness(windows []telemetry.WindowStats) float64 {
	valid := settled(windows)
	if len(valid) == 0 {
		return 0
	}
	polarization := make([]float64, len(valid))
	for i, w := range valid {
		polarization[i] = w.Polarization
	}
	return -(stat.Mean(polarization, nil) * (1 + qualityBonus*computeQuality(windows)))
}

// computeQuality scores grouping ∈ [0, 1] from the mean neighbor count.
func computeQuality(windows []telemetry.WindowStats) float64 {
	valid := settled(windows)
	if len(valid) == 0 {
		return 0
	}
	neighbors := make([]float64, len(valid))
	for i, w := range valid {
		neighbors[i] = w.NeighborsMean
	}
	return 1 - math.Exp(-stat.Mean(neighbors, nil)/neighborScale)
}

// settled drops warmup windows and windows without agents.
func settled(windows []telemetry.WindowStats) []telemetry.WindowStats {
	if len(windows) <= qualityWarmupWindows {
		return nil
	}
	var out []telemetry.WindowStats
	for _, w := range windows[qualityWarmupWindows:] {
		if w.Population > 0 {
			out = append(out, w)
		}
	}
	return out
}
