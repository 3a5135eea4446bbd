// Package config provides configuration loading and access for the flock host programs.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flock/species"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all host configuration parameters.
type Config struct {
	Screen        ScreenConfig        `yaml:"screen"`
	Simulation    SimulationConfig    `yaml:"simulation"`
	Randomization RandomizationConfig `yaml:"randomization"`
	Species       []SpeciesEntry      `yaml:"species"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds engine construction and stepping parameters.
type SimulationConfig struct {
	Seed                int64   `yaml:"seed"`
	MaxPopulation       int     `yaml:"max_population"`
	Timestep            float64 `yaml:"timestep"`              // dt passed to every Step
	InitialSpawnDivisor int     `yaml:"initial_spawn_divisor"` // initial spawn = max_population / this
	InitialSpawnMin     int     `yaml:"initial_spawn_min"`     // but never fewer than this
	InitialSpawnSeconds float64 `yaml:"initial_spawn_seconds"` // spread the initial spawn over this long
}

// RandomizationConfig holds species parameter randomizer timing.
type RandomizationConfig struct {
	Enabled       bool    `yaml:"enabled"`
	CycleEvery    float64 `yaml:"cycle_every"`   // seconds between new random targets
	Interpolation float64 `yaml:"interpolation"` // seconds to blend towards a target
}

// SpeciesEntry is one species registered at startup.
type SpeciesEntry struct {
	ID             string `yaml:"id"`
	species.Config `yaml:",inline"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // sim-seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32 // Simulation.Timestep as float32
	ScreenW32    float32 // Screen.Width as float32
	ScreenH32    float32 // Screen.Height as float32
	InitialSpawn int     // agents spawned by the initial ramp

	FrameInterval time.Duration // wall-clock time per frame at the target frame rate

	// Wall-clock durations converted to simulated time at the target frame rate.
	SimPerSecond      float32
	InitialSpawnSim   float32
	RandomCycleSim    float32
	RandomInterpolSim float32
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
		// A species list in the user file replaces the default list entirely.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Species))
	for i, s := range c.Species {
		if s.ID == "" {
			return fmt.Errorf("species entry %d: missing id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("species %q declared twice", s.ID)
		}
		seen[s.ID] = true
	}
	if c.Simulation.MaxPopulation < 0 {
		return fmt.Errorf("simulation.max_population must not be negative, got %d", c.Simulation.MaxPopulation)
	}
	return nil
}

// Recompute validates the config and refreshes derived values after fields
// have been edited in place.
func (c *Config) Recompute() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Simulation.Timestep)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	divisor := c.Simulation.InitialSpawnDivisor
	if divisor <= 0 {
		divisor = 1
	}
	c.Derived.InitialSpawn = max(c.Simulation.MaxPopulation/divisor, c.Simulation.InitialSpawnMin)

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameInterval = time.Second / time.Duration(fps)
	c.Derived.SimPerSecond = float32(float64(fps) * c.Simulation.Timestep)
	c.Derived.InitialSpawnSim = float32(c.Simulation.InitialSpawnSeconds) * c.Derived.SimPerSecond
	c.Derived.RandomCycleSim = float32(c.Randomization.CycleEvery) * c.Derived.SimPerSecond
	c.Derived.RandomInterpolSim = float32(c.Randomization.Interpolation) * c.Derived.SimPerSecond
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
