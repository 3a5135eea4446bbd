// Package sim drives a flock engine frame by frame from a loaded config and
// feeds its telemetry. It has no rendering dependencies so headless and
// terminal hosts can share it with the windowed game.
package sim

import (
	"log/slog"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/flock"
	"github.com/pthm-cable/flock/telemetry"
)

// Options configures a Runner.
type Options struct {
	LogStats  bool   // log window stats via slog
	OutputDir string // CSV and config output; empty disables

	// StatsCallback is called on every window flush.
	StatsCallback func(telemetry.WindowStats)

	// Logger receives engine events. Nil uses slog.Default().
	Logger *slog.Logger
}

// Runner owns an engine and the telemetry around it.
type Runner struct {
	cfg    *config.Config
	engine *flock.Engine

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	width, height float32
	timestep      float32
	paused        bool

	geometry  flock.Geometry
	lastStats telemetry.WindowStats
	flushed   int
}

// New builds an engine from cfg, registers the configured species and starts
// the initial spawn ramp.
func New(cfg *config.Config, opts Options) (*Runner, error) {
	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Runner{
		cfg:           cfg,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: outputManager,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		width:         cfg.Derived.ScreenW32,
		height:        cfg.Derived.ScreenH32,
		timestep:      cfg.Derived.DT32,
	}

	r.engine = flock.New(cfg.Simulation.Seed, cfg.Simulation.MaxPopulation,
		flock.WithLogger(logger),
		flock.WithPerf(r.perfCollector),
		flock.WithRandomizer(cfg.Randomization.Enabled, cfg.Derived.RandomCycleSim, cfg.Derived.RandomInterpolSim),
	)
	for _, s := range cfg.Species {
		r.engine.InsertSpeciesConfig(s.ID, s.Config)
	}
	r.engine.StartSpawnRamp(cfg.Derived.InitialSpawn, cfg.Derived.InitialSpawnSim)

	logger.Info("simulation ready",
		"seed", cfg.Simulation.Seed,
		"species", len(cfg.Species),
		"max_population", cfg.Simulation.MaxPopulation,
		"initial_spawn", cfg.Derived.InitialSpawn,
	)
	return r, nil
}

// Step advances one frame unless paused and returns the latest geometry.
func (r *Runner) Step() flock.Geometry {
	if r.paused {
		return r.geometry
	}

	r.perfCollector.StartTick()
	r.geometry = r.engine.Step(r.width, r.height, r.timestep)

	r.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	r.collector.Observe(r.timestep, r.engine.PopulationSize(), r.engine.Stats())
	r.flushTelemetry()
	r.perfCollector.EndTick()

	return r.geometry
}

// flushTelemetry emits a stats window once enough simulated time has passed.
func (r *Runner) flushTelemetry() {
	if !r.collector.ShouldFlush() {
		return
	}

	stats := r.collector.Flush(r.engine)
	perfStats := r.perfCollector.Stats()
	r.lastStats = stats
	r.flushed++

	if r.statsCallback != nil {
		r.statsCallback(stats)
	}

	if r.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := r.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := r.outputManager.WritePerf(perfStats, stats.WindowEndStep); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Engine returns the underlying engine.
func (r *Runner) Engine() *flock.Engine { return r.engine }

// Config returns the config the runner was built from.
func (r *Runner) Config() *config.Config { return r.cfg }

// PerfCollector returns the phase timer fed by Step.
func (r *Runner) PerfCollector() *telemetry.PerfCollector { return r.perfCollector }

// Geometry returns the geometry of the last step.
func (r *Runner) Geometry() flock.Geometry { return r.geometry }

// LastStats returns the most recent stats window and how many have been flushed.
func (r *Runner) LastStats() (telemetry.WindowStats, int) { return r.lastStats, r.flushed }

// Steps returns the number of engine steps taken.
func (r *Runner) Steps() int64 { return r.engine.Stats().Steps }

// Resize changes the world extent passed to the engine.
func (r *Runner) Resize(width, height float32) {
	r.width = width
	r.height = height
}

// Size returns the world extent.
func (r *Runner) Size() (width, height float32) { return r.width, r.height }

// Timestep returns the dt passed to every step.
func (r *Runner) Timestep() float32 { return r.timestep }

// SetTimestep changes dt. Negative values are clamped to zero.
func (r *Runner) SetTimestep(dt float32) { r.timestep = max(dt, 0) }

// TogglePause flips the paused state and returns it.
func (r *Runner) TogglePause() bool {
	r.paused = !r.paused
	return r.paused
}

// Paused reports whether Step is a no-op.
func (r *Runner) Paused() bool { return r.paused }

// Close flushes and closes telemetry output.
func (r *Runner) Close() error {
	return r.outputManager.Close()
}
