package game

import (
	"fmt"
	"io"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/telemetry"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats logs the step phase breakdown.
func (g *Game) logPerfStats() {
	stats := g.perfStats()
	Logf("=== Perf @ Step %d | FPS: %d ===", g.runner.Steps(), rl.GetFPS())
	Logf("Avg step time: %s (min %s, max %s)",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MinTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond))

	for _, name := range []string{
		telemetry.PhaseRandomize, telemetry.PhaseSpawn, telemetry.PhaseSpatialIndex,
		telemetry.PhaseForces, telemetry.PhaseTelemetry,
	} {
		Logf("  %-18s %10s  %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), stats.PhasePct[name])
	}
	Logf("")
}

// logWorldState logs population and per-species parameters.
func (g *Game) logWorldState() {
	e := g.Engine()
	counts := e.CountBySpecies()

	Logf("=== Step %d ===", g.runner.Steps())
	Logf("Agents: %d / %d, spawned %d, evicted %d",
		e.PopulationSize(), e.MaxPopulation(), e.Stats().Spawned, e.Stats().Evicted)

	for _, id := range e.SpeciesIDs() {
		cfg, _ := e.SpeciesConfig(id)
		_, animating := e.Randomizer().Active(id)
		Logf("  %-12s n=%-5d w=%-3d perc=%.1f sep=%.1f mult=%.2f/%.2f/%.2f speed=%.2f force=%.2f animating=%v",
			id, counts[id], cfg.SpawnWeight, cfg.PerceptionRadius, cfg.SeparationRadius,
			cfg.SeparationMultiplier, cfg.AlignmentMultiplier, cfg.CohesionMultiplier,
			cfg.MaxSpeed, cfg.MaxForce, animating)
	}
	Logf("")
}
