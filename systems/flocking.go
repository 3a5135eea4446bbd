package systems

import (
	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/species"
)

// MaxNeighbors caps how many neighbors feed one agent's forces.
// This bounds per-agent cost in dense clusters.
const MaxNeighbors = 30

// Boid is the read-only snapshot of an agent that neighbors are computed from.
type Boid struct {
	Pos components.Position
	Vel components.Velocity
}

// Forces holds the three finished steering vectors for one agent.
type Forces struct {
	SepX, SepY float32
	AliX, AliY float32
	CohX, CohY float32

	Neighbors  int // neighbors considered, after the cap
	Separating int // neighbors that contributed to separation
}

// SeparationPush returns the inverse-square push on an agent at (ax, ay) from a
// neighbor at (bx, by): the unit vector away from the neighbor divided by d².
// ok is false when the neighbor is coincident or outside radius.
func SeparationPush(ax, ay, bx, by, radius float32) (x, y float32, ok bool) {
	d := distance(ax, ay, bx, by)
	if d <= 0 || d > radius {
		return 0, 0, false
	}
	dx := (ax - bx) / d
	dy := (ay - by) / d
	d2 := d * d
	return dx / d2, dy / d2, true
}

// ComputeForces accumulates separation, alignment and cohesion for one agent
// in a single pass over its neighbors. neighbors index into flock and are
// truncated to MaxNeighbors.
func ComputeForces(pos components.Position, vel components.Velocity, cfg *species.Config, neighbors []int, flock []Boid) Forces {
	var f Forces
	if len(neighbors) > MaxNeighbors {
		neighbors = neighbors[:MaxNeighbors]
	}
	n := len(neighbors)
	if n == 0 {
		return f
	}

	var sepX, sepY, aliX, aliY, cohX, cohY float32
	sepCount := 0

	for _, idx := range neighbors {
		other := &flock[idx]

		aliX += other.Vel.X
		aliY += other.Vel.Y

		// Cohesion sums negated positions before recentering.
		cohX -= other.Pos.X
		cohY -= other.Pos.Y

		if px, py, ok := SeparationPush(pos.X, pos.Y, other.Pos.X, other.Pos.Y, cfg.SeparationRadius); ok {
			sepX += px
			sepY += py
			sepCount++
		}
	}

	if sepCount > 0 {
		sepX /= float32(sepCount)
		sepY /= float32(sepCount)
	}
	f.SepX, f.SepY = steer(sepX, sepY, vel.X, vel.Y, cfg.MaxSpeed, cfg.MaxForce)

	fn := float32(n)
	f.AliX, f.AliY = steer(aliX/fn, aliY/fn, vel.X, vel.Y, cfg.MaxSpeed, cfg.MaxForce)

	cohX = cohX/fn - pos.X
	cohY = cohY/fn - pos.Y
	f.CohX, f.CohY = steer(cohX, cohY, vel.X, vel.Y, cfg.MaxSpeed, cfg.MaxForce)

	f.Neighbors = n
	f.Separating = sepCount
	return f
}

// Apply adds the weighted forces to acc.
func (f Forces) Apply(acc *components.Acceleration, cfg *species.Config) {
	acc.X += f.SepX*cfg.SeparationMultiplier + f.AliX*cfg.AlignmentMultiplier + f.CohX*cfg.CohesionMultiplier
	acc.Y += f.SepY*cfg.SeparationMultiplier + f.AliY*cfg.AlignmentMultiplier + f.CohY*cfg.CohesionMultiplier
}

// UpdateAgent runs the full per-agent update: reset acceleration, steer
// against neighbors from the snapshot, integrate and wrap at the bounds.
// Returns the number of neighbors used.
func UpdateAgent(pos *components.Position, vel *components.Velocity, acc *components.Acceleration,
	cfg *species.Config, neighbors []int, flock []Boid, bounds Bounds, dt float32) int {
	acc.X, acc.Y = 0, 0

	f := ComputeForces(*pos, *vel, cfg, neighbors, flock)
	if f.Neighbors > 0 {
		f.Apply(acc, cfg)
	}

	Integrate(pos, vel, acc, cfg, dt)
	Wrap(pos, cfg.AgentSize, bounds)
	return f.Neighbors
}
