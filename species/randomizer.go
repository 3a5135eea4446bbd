package species

import (
	"math/rand"
	"sort"
)

// Randomizer periodically picks a random target config for every species and
// blends the live configs towards it.
//
// Each species is either idle or animating. A cycle starts every CycleEvery
// seconds of accumulated time while Enabled, replacing any in-flight animation.
type Randomizer struct {
	Enabled       bool
	CycleEvery    float32 // seconds between cycles
	Interpolation float32 // seconds each blend takes

	sinceLastCycle float32
	active         map[string]*Animation
}

// NewRandomizer creates a randomizer with the given timing.
func NewRandomizer(enabled bool, cycleEvery, interpolation float32) *Randomizer {
	return &Randomizer{
		Enabled:       enabled,
		CycleEvery:    cycleEvery,
		Interpolation: interpolation,
		active:        make(map[string]*Animation),
	}
}

// MaybeStartCycle accumulates dt and, once a full cycle has elapsed, starts an
// animation for every registered species. Returns true if a cycle started.
func (r *Randomizer) MaybeStartCycle(rng *rand.Rand, dt float32, reg *Registry) bool {
	if !r.Enabled {
		return false
	}

	r.sinceLastCycle += dt
	if r.sinceLastCycle < r.CycleEvery {
		return false
	}
	r.sinceLastCycle = 0

	reg.Each(func(id string, cfg *Config) {
		r.active[id] = NewAnimation(*cfg, Random(rng), r.Interpolation)
	})
	return true
}

// Start begins animating id from one config to another, replacing any
// animation already running for it.
func (r *Randomizer) Start(id string, from, to Config) {
	r.active[id] = NewAnimation(from, to, r.Interpolation)
}

// Step advances every active animation and writes the blended config back into
// the registry. Species that no longer exist are dropped without error.
func (r *Randomizer) Step(dt float32, reg *Registry) {
	for id, anim := range r.active {
		anim.Step(dt)
		if !reg.Set(id, anim.Current()) {
			delete(r.active, id)
			continue
		}
		if anim.Finished() {
			delete(r.active, id)
		}
	}
}

// Active returns the running animation for id, if any.
func (r *Randomizer) Active(id string) (*Animation, bool) {
	a, ok := r.active[id]
	return a, ok
}

// ActiveIDs returns the ids currently animating, sorted.
func (r *Randomizer) ActiveIDs() []string {
	ids := make([]string, 0, len(r.active))
	for id := range r.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Drop cancels the animation for id.
func (r *Randomizer) Drop(id string) {
	delete(r.active, id)
}

// Reset cancels all animations and restarts the cycle timer.
func (r *Randomizer) Reset() {
	r.sinceLastCycle = 0
	clear(r.active)
}
