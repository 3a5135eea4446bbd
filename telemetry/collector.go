package telemetry

import "github.com/pthm-cable/flock/flock"

// Collector accumulates engine counters within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	simTime         float64
	windowStartTime float64
	windowStartStep int64

	// Engine counters at window start
	spawnedAtStart int64
	evictedAtStart int64

	neighborSum  int64
	agentSamples int64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Observe records one engine step of length dt with population size n.
func (c *Collector) Observe(dt float32, n int, s flock.Stats) {
	c.simTime += float64(dt)
	c.neighborSum += int64(s.Neighbors)
	c.agentSamples += int64(n)
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStartTime >= c.windowDurationSec
}

// SimTime returns the total simulated time observed.
func (c *Collector) SimTime() float64 {
	return c.simTime
}

// Flush produces a WindowStats from the engine's current state and resets
// counters for the next window.
func (c *Collector) Flush(e *flock.Engine) WindowStats {
	s := e.Stats()
	agents := e.Snapshot()
	counts := e.CountBySpecies()

	mean, std, p10, p50, p90 := ComputeSpeedStats(Speeds(agents))

	var neighborsMean float64
	if c.agentSamples > 0 {
		neighborsMean = float64(c.neighborSum) / float64(c.agentSamples)
	}

	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   s.Steps,
		SimTimeSec:      c.simTime,

		Population:    len(agents),
		MaxPopulation: e.MaxPopulation(),
		SpeciesCount:  len(e.SpeciesIDs()),
		SpeciesMix:    FormatSpeciesMix(counts),

		Spawned: s.Spawned - c.spawnedAtStart,
		Evicted: s.Evicted - c.evictedAtStart,

		SpeedMean:    mean,
		SpeedStd:     std,
		SpeedP10:     p10,
		SpeedP50:     p50,
		SpeedP90:     p90,
		Polarization: Polarization(agents),

		NeighborsMean: neighborsMean,
	}

	// Reset for next window
	c.windowStartTime = c.simTime
	c.windowStartStep = s.Steps
	c.spawnedAtStart = s.Spawned
	c.evictedAtStart = s.Evicted
	c.neighborSum = 0
	c.agentSamples = 0

	return stats
}
