package flock

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/species"
)

// Population owns every agent. Agents live in an ECS world; the agents slice
// fixes their update order so runs are reproducible.
type Population struct {
	world *ecs.World

	agentMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Species,
	]
	speciesFilter *ecs.Filter1[components.Species]

	agents  []ecs.Entity
	maxSize int

	spawned int64
	evicted int64
}

// NewPopulation creates an empty population bounded by maxSize.
func NewPopulation(maxSize int) *Population {
	world := ecs.NewWorld()
	if maxSize < 0 {
		maxSize = 0
	}
	return &Population{
		world: world,
		agentMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Acceleration,
			components.Species,
		](world),
		speciesFilter: ecs.NewFilter1[components.Species](world),
		maxSize:       maxSize,
	}
}

// Len returns the number of live agents.
func (p *Population) Len() int {
	return len(p.agents)
}

// MaxSize returns the population bound.
func (p *Population) MaxSize() int {
	return p.maxSize
}

// Add creates an agent of speciesID at (x, y) with a small random velocity and
// acceleration. If the bound is exceeded a uniformly random agent is evicted,
// which may be the one just added.
func (p *Population) Add(rng *rand.Rand, speciesID string, x, y float32) {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: -rng.Float32(), Y: rng.Float32()}
	acc := components.Acceleration{X: -rng.Float32(), Y: rng.Float32()}
	sp := components.Species{ID: speciesID}

	p.agents = append(p.agents, p.agentMapper.NewEntity(&pos, &vel, &acc, &sp))
	p.spawned++

	for len(p.agents) > p.maxSize {
		p.evictRandom(rng)
	}
}

// SetMaxSize changes the bound, evicting random agents until it holds.
func (p *Population) SetMaxSize(rng *rand.Rand, n int) {
	if n < 0 {
		n = 0
	}
	p.maxSize = n
	for len(p.agents) > p.maxSize {
		p.evictRandom(rng)
	}
}

func (p *Population) evictRandom(rng *rand.Rand) {
	i := rng.Intn(len(p.agents))
	p.world.RemoveEntity(p.agents[i])

	last := len(p.agents) - 1
	p.agents[i] = p.agents[last]
	p.agents = p.agents[:last]
	p.evicted++
}

// RemoveWhere removes every agent whose species matches fn, keeping the
// order of the rest. Returns the number removed.
func (p *Population) RemoveWhere(fn func(id string) bool) int {
	kept := p.agents[:0]
	removed := 0
	for _, e := range p.agents {
		_, _, _, sp := p.agentMapper.Get(e)
		if fn(sp.ID) {
			p.world.RemoveEntity(e)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	p.agents = kept
	return removed
}

// RemoveSpecies removes every agent of the given species.
func (p *Population) RemoveSpecies(id string) int {
	return p.RemoveWhere(func(sid string) bool { return sid == id })
}

// Get returns the components of the i-th agent in update order.
func (p *Population) Get(i int) (*components.Position, *components.Velocity, *components.Acceleration, *components.Species) {
	return p.agentMapper.Get(p.agents[i])
}

// Nearest returns the agent closest to (x, y) within radius, ties going to
// the earlier agent in update order.
func (p *Population) Nearest(x, y, radius float32) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := radius * radius
	found := false
	for _, e := range p.agents {
		pos, _, _, _ := p.agentMapper.Get(e)
		dx := pos.X - x
		dy := pos.Y - y
		if d := dx*dx + dy*dy; d <= bestDist && (!found || d < bestDist) {
			best = e
			bestDist = d
			found = true
		}
	}
	return best, found
}

// Lookup returns the components of e, or ok false if it has been removed.
func (p *Population) Lookup(e ecs.Entity) (pos *components.Position, vel *components.Velocity, acc *components.Acceleration, sp *components.Species, ok bool) {
	if !p.world.Alive(e) {
		return nil, nil, nil, nil, false
	}
	pos, vel, acc, sp = p.agentMapper.Get(e)
	return pos, vel, acc, sp, true
}

// CountBySpecies returns the number of live agents per species id.
func (p *Population) CountBySpecies() map[string]int {
	counts := make(map[string]int)
	query := p.speciesFilter.Query()
	for query.Next() {
		sp := query.Get()
		counts[sp.ID]++
	}
	return counts
}

// Spawned returns the total number of agents ever added.
func (p *Population) Spawned() int64 { return p.spawned }

// Evicted returns the total number of agents removed to honor the bound.
func (p *Population) Evicted() int64 { return p.evicted }

// ChooseSpeciesWeighted picks a species id with probability proportional to
// its spawn weight, walking the registry in id order. Negative weights count
// as zero. If every weight is zero the first registered id is returned.
// ok is false only for an empty registry.
func ChooseSpeciesWeighted(reg *species.Registry, rng *rand.Rand) (string, bool) {
	ids := reg.IDs()
	if len(ids) == 0 {
		return "", false
	}

	total := 0
	reg.Each(func(_ string, cfg *species.Config) {
		total += max(cfg.SpawnWeight, 0)
	})
	if total <= 0 {
		return ids[0], true
	}

	r := rng.Intn(total)
	chosen := ids[len(ids)-1]
	cumulative := 0
	for _, id := range ids {
		cfg, _ := reg.Lookup(id)
		cumulative += max(cfg.SpawnWeight, 0)
		if r < cumulative {
			chosen = id
			break
		}
	}
	return chosen, true
}
