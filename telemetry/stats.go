package telemetry

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flock/flock"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartStep int64   `csv:"-"`
	WindowEndStep   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population    int    `csv:"population"`
	MaxPopulation int    `csv:"max_population"`
	SpeciesCount  int    `csv:"species"`
	SpeciesMix    string `csv:"species_mix"` // id=count pairs, sorted by id

	// Events during window
	Spawned int64 `csv:"spawned"`
	Evicted int64 `csv:"evicted"`

	// Motion (sampled at window end)
	SpeedMean    float64 `csv:"speed_mean"`
	SpeedStd     float64 `csv:"speed_std"`
	SpeedP10     float64 `csv:"speed_p10"`
	SpeedP50     float64 `csv:"speed_p50"`
	SpeedP90     float64 `csv:"speed_p90"`
	Polarization float64 `csv:"polarization"`

	// Mean neighbors per agent over the window
	NeighborsMean float64 `csv:"neighbors_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates population mean, std and percentiles of speeds.
func ComputeSpeedStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Speeds returns the speed of every agent.
func Speeds(agents []flock.AgentState) []float64 {
	out := make([]float64, len(agents))
	for i, a := range agents {
		out[i] = math.Hypot(float64(a.VX), float64(a.VY))
	}
	return out
}

// Polarization is the length of the mean unit heading: 1 when every agent
// flies the same way, near 0 for random headings. Agents at rest are ignored.
func Polarization(agents []flock.AgentState) float64 {
	var sx, sy float64
	n := 0
	for _, a := range agents {
		l := math.Hypot(float64(a.VX), float64(a.VY))
		if l == 0 {
			continue
		}
		sx += float64(a.VX) / l
		sy += float64(a.VY) / l
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Hypot(sx, sy) / float64(n)
}

// FormatSpeciesMix renders per-species counts as "a=1;b=2" in id order.
func FormatSpeciesMix(counts map[string]int) string {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%s=%d", id, counts[id])
	}
	return b.String()
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartStep),
		slog.Int64("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("max_population", s.MaxPopulation),
		slog.Int("species", s.SpeciesCount),
		slog.String("species_mix", s.SpeciesMix),
		slog.Int64("spawned", s.Spawned),
		slog.Int64("evicted", s.Evicted),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("polarization", s.Polarization),
		slog.Float64("neighbors_mean", s.NeighborsMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndStep,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"species_mix", s.SpeciesMix,
		"spawned", s.Spawned,
		"evicted", s.Evicted,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"polarization", s.Polarization,
		"neighbors_mean", s.NeighborsMean,
	)
}
