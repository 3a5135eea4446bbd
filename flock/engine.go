// Package flock is the multi-species flocking engine. An Engine owns the
// species registry, the agent population and the parameter randomizer, and
// advances all of them one frame per Step.
package flock

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/species"
	"github.com/pthm-cable/flock/systems"
)

// Phase names reported to a PhaseTimer during Step.
const (
	PhaseRandomize    = "randomize"
	PhaseSpawn        = "spawn"
	PhaseSpatialIndex = "spatial_index"
	PhaseForces       = "forces"
)

// Geometry is the vertex output of one Step.
type Geometry = systems.Geometry

// PhaseTimer receives a call at the start of every step phase.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Option configures an Engine.
type Option func(*Engine)

// WithPerf reports step phases to t.
func WithPerf(t PhaseTimer) Option {
	return func(e *Engine) { e.perf = t }
}

// WithLogger sets the logger used for engine events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRandomizer sets the randomizer timing. Randomization starts disabled
// unless enabled is true.
func WithRandomizer(enabled bool, cycleEvery, interpolation float32) Option {
	return func(e *Engine) {
		e.randomizer = species.NewRandomizer(enabled, cycleEvery, interpolation)
	}
}

// AgentState is a read-only copy of one agent.
type AgentState struct {
	Species string
	X, Y    float32
	VX, VY  float32
}

// AgentDetail is a copy of one agent's components and its species config.
type AgentDetail struct {
	Species      string
	Position     components.Position
	Velocity     components.Velocity
	Acceleration components.Acceleration
	Config       species.Config `inspect:"skip"`

	// Animating is set while the randomizer blends the species parameters.
	Animating bool
}

// Stats are cumulative engine counters.
type Stats struct {
	Steps     int64
	Spawned   int64
	Evicted   int64
	Neighbors int // neighbors used across all agents in the last step
}

type spawnRequest struct {
	xNorm, yNorm float32
}

// spawnRamp spreads a batch of random spawns over several steps.
type spawnRamp struct {
	remaining int
	rate      float32 // agents per second
}

// Engine is the flocking simulation. It is not safe for concurrent use.
type Engine struct {
	rng        *rand.Rand
	species    *species.Registry
	population *Population
	randomizer *species.Randomizer

	pending []spawnRequest
	ramp    spawnRamp

	logger *slog.Logger
	perf   PhaseTimer

	// Scratch reused across steps.
	snapshot  []systems.Boid
	points    []systems.AgentPoint
	neighbors []int

	steps     int64
	lastNeigh int
}

// New creates an engine with an empty species registry. All randomness is
// drawn from a single source seeded with seed.
func New(seed int64, maxPopulation int, opts ...Option) *Engine {
	e := &Engine{
		rng:        rand.New(rand.NewSource(seed)),
		species:    species.NewRegistry(),
		population: NewPopulation(maxPopulation),
		randomizer: species.NewRandomizer(false, 10, 2),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InsertSpeciesConfig registers id or replaces its config.
func (e *Engine) InsertSpeciesConfig(id string, cfg species.Config) {
	e.species.Insert(id, cfg)
	e.logger.Debug("species inserted", "id", id, "spawn_weight", cfg.SpawnWeight)
}

// RemoveSpeciesConfig unregisters id, cancels its animation and removes its agents.
func (e *Engine) RemoveSpeciesConfig(id string) {
	if !e.species.Remove(id) {
		return
	}
	e.randomizer.Drop(id)
	removed := e.population.RemoveSpecies(id)
	e.logger.Debug("species removed", "id", id, "agents", removed)
}

// SpeciesConfig returns a copy of the config registered for id.
func (e *Engine) SpeciesConfig(id string) (species.Config, bool) {
	return e.species.Get(id)
}

// SpeciesIDs returns the registered species ids in sorted order.
func (e *Engine) SpeciesIDs() []string {
	return e.species.IDs()
}

// AddRandomSpecies registers a species with random parameters and returns its id.
func (e *Engine) AddRandomSpecies() string {
	id := species.RandomID(e.rng)
	for e.species.Has(id) {
		id = species.RandomID(e.rng)
	}
	e.InsertSpeciesConfig(id, species.Random(e.rng))
	return id
}

// ChooseSpecies picks a registered species weighted by spawn weight.
func (e *Engine) ChooseSpecies() (string, bool) {
	return ChooseSpeciesWeighted(e.species, e.rng)
}

// AddAgent spawns an agent of speciesID at (x, y).
func (e *Engine) AddAgent(speciesID string, x, y float32) error {
	if !e.species.Has(speciesID) {
		e.logger.Warn("species not found", "id", speciesID)
		return &SpeciesNotFoundError{ID: speciesID}
	}
	e.population.Add(e.rng, speciesID, x, y)
	return nil
}

// AddAgentAtRandomPosition spawns an agent of speciesID uniformly within a
// width × height viewport centred on the origin.
func (e *Engine) AddAgentAtRandomPosition(speciesID string, width, height float32) error {
	if !e.species.Has(speciesID) {
		e.logger.Warn("species not found", "id", speciesID)
		return &SpeciesNotFoundError{ID: speciesID}
	}
	x := e.rng.Float32()*width - width/2
	y := e.rng.Float32()*height - height/2
	e.population.Add(e.rng, speciesID, x, y)
	return nil
}

// SetMaxPopulation changes the population bound, evicting random agents if needed.
func (e *Engine) SetMaxPopulation(n int) {
	e.population.SetMaxSize(e.rng, n)
}

// MaxPopulation returns the population bound.
func (e *Engine) MaxPopulation() int {
	return e.population.MaxSize()
}

// PopulationSize returns the number of live agents.
func (e *Engine) PopulationSize() int {
	return e.population.Len()
}

// CountBySpecies returns live agents per species.
func (e *Engine) CountBySpecies() map[string]int {
	return e.population.CountBySpecies()
}

// RequestSpawn queues a spawn at normalized viewport coordinates (origin top
// left, y down). It is applied during the next Step.
func (e *Engine) RequestSpawn(xNorm, yNorm float32) {
	e.pending = append(e.pending, spawnRequest{xNorm: xNorm, yNorm: yNorm})
}

// StartSpawnRamp spawns count weighted-random agents spread over seconds of
// simulated time, replacing any ramp in progress.
func (e *Engine) StartSpawnRamp(count int, seconds float32) {
	if count <= 0 {
		e.ramp = spawnRamp{}
		return
	}
	rate := float32(math.Inf(1))
	if seconds > 0 {
		rate = float32(count) / seconds
	}
	e.ramp = spawnRamp{remaining: count, rate: rate}
}

// SpawnRampRemaining returns how many ramp spawns are still pending.
func (e *Engine) SpawnRampRemaining() int {
	return e.ramp.remaining
}

// SetRandomization turns the parameter randomizer on or off.
func (e *Engine) SetRandomization(enabled bool) {
	e.randomizer.Enabled = enabled
}

// Randomizer exposes the randomizer for tuning its timing.
func (e *Engine) Randomizer() *species.Randomizer {
	return e.randomizer
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Steps:     e.steps,
		Spawned:   e.population.Spawned(),
		Evicted:   e.population.Evicted(),
		Neighbors: e.lastNeigh,
	}
}

// AgentNear returns the agent closest to the world point (x, y) within radius.
// The handle stays valid across steps until the agent is removed.
func (e *Engine) AgentNear(x, y, radius float32) (ecs.Entity, bool) {
	return e.population.Nearest(x, y, radius)
}

// Agent returns a copy of the agent's state, or ok false once it has been
// removed.
func (e *Engine) Agent(ent ecs.Entity) (AgentDetail, bool) {
	pos, vel, acc, sp, ok := e.population.Lookup(ent)
	if !ok {
		return AgentDetail{}, false
	}
	cfg, ok := e.species.Get(sp.ID)
	if !ok {
		return AgentDetail{}, false
	}
	_, animating := e.randomizer.Active(sp.ID)
	return AgentDetail{
		Species:      sp.ID,
		Position:     *pos,
		Velocity:     *vel,
		Acceleration: *acc,
		Animating:    animating,
		Config:       cfg,
	}, true
}

// Snapshot copies the state of every agent in update order.
func (e *Engine) Snapshot() []AgentState {
	out := make([]AgentState, e.population.Len())
	for i := range out {
		pos, vel, _, sp := e.population.Get(i)
		out[i] = AgentState{Species: sp.ID, X: pos.X, Y: pos.Y, VX: vel.X, VY: vel.Y}
	}
	return out
}

func (e *Engine) startPhase(name string) {
	if e.perf != nil {
		e.perf.StartPhase(name)
	}
}

// Step advances the simulation by dt inside a width × height viewport and
// returns the triangle geometry of every agent.
func (e *Engine) Step(width, height, dt float32) Geometry {
	e.steps++

	e.startPhase(PhaseRandomize)
	e.randomizer.MaybeStartCycle(e.rng, dt, e.species)
	e.randomizer.Step(dt, e.species)

	e.startPhase(PhaseSpawn)
	e.stepSpawnRamp(width, height, dt)
	e.drainSpawnRequests(width, height)

	// Agents whose species vanished are dropped without error.
	e.population.RemoveWhere(func(id string) bool { return !e.species.Has(id) })

	e.startPhase(PhaseSpatialIndex)
	index := e.buildIndex()

	e.startPhase(PhaseForces)
	return e.updateAgents(index, systems.Bounds{Width: width, Height: height}, dt)
}

func (e *Engine) stepSpawnRamp(width, height, dt float32) {
	if e.ramp.remaining <= 0 {
		return
	}
	want := e.ramp.remaining
	if !math.IsInf(float64(e.ramp.rate), 1) {
		want = int(math.Ceil(float64(e.ramp.rate * dt)))
	}
	want = min(max(want, 1), e.ramp.remaining)

	for i := 0; i < want; i++ {
		id, ok := e.ChooseSpecies()
		if !ok {
			continue
		}
		// Cannot fail: the id came from the registry.
		_ = e.AddAgentAtRandomPosition(id, width, height)
	}
	e.ramp.remaining -= want
}

func (e *Engine) drainSpawnRequests(width, height float32) {
	for _, req := range e.pending {
		id, ok := e.ChooseSpecies()
		if !ok {
			e.logger.Warn("spawn request dropped, no species registered")
			continue
		}
		x, y := systems.NormalizedToWorld(req.xNorm, req.yNorm, width, height)
		_ = e.AddAgent(id, x, y)
	}
	e.pending = e.pending[:0]
}

func (e *Engine) buildIndex() *systems.SpatialIndex {
	n := e.population.Len()
	e.snapshot = e.snapshot[:0]
	e.points = e.points[:0]
	for i := 0; i < n; i++ {
		pos, vel, _, _ := e.population.Get(i)
		e.snapshot = append(e.snapshot, systems.Boid{Pos: *pos, Vel: *vel})
		e.points = append(e.points, systems.AgentPoint{X: pos.X, Y: pos.Y, Index: i})
	}
	return systems.BuildSpatialIndex(e.points)
}

func (e *Engine) updateAgents(index *systems.SpatialIndex, bounds systems.Bounds, dt float32) Geometry {
	n := e.population.Len()
	geom := systems.NewGeometry(n)
	e.lastNeigh = 0

	for i := 0; i < n; i++ {
		pos, vel, acc, sp := e.population.Get(i)
		cfg, _ := e.species.Lookup(sp.ID)

		e.neighbors = index.QueryRadiusInto(e.neighbors[:0], pos.X, pos.Y, cfg.PerceptionRadius)
		e.lastNeigh += systems.UpdateAgent(pos, vel, acc, cfg, e.neighbors, e.snapshot, bounds, dt)
		geom.AppendAgent(*pos, *vel, cfg)
	}
	return geom
}
