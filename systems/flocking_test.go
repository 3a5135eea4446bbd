package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/species"
)

func testConfig() *species.Config {
	cfg := species.Default(10, species.Color{R: 1})
	return &cfg
}

func isFinite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func TestSeparationMonotonic(t *testing.T) {
	const radius = 25
	distances := []float32{0.5, 1, 2, 5, 10, 20, 25}

	prev := float32(math.Inf(1))
	for _, d := range distances {
		x, y, ok := SeparationPush(0, 0, d, 0, radius)
		if !ok {
			t.Fatalf("neighbor at %v should contribute", d)
		}
		mag := length(x, y)
		if mag >= prev {
			t.Errorf("push at d=%v is %v, not smaller than %v", d, mag, prev)
		}
		if x >= 0 {
			t.Errorf("push at d=%v should point away from the neighbor, got x=%v", d, x)
		}
		want := 1 / (d * d)
		if math.Abs(float64(mag-want)) > 1e-4*float64(want) {
			t.Errorf("push at d=%v = %v, want %v", d, mag, want)
		}
		prev = mag
	}
}

func TestSeparationSkips(t *testing.T) {
	tests := []struct {
		name string
		bx   float32
	}{
		{"coincident", 0},
		{"outside radius", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := SeparationPush(0, 0, tt.bx, 0, 25); ok {
				t.Error("should not contribute")
			}
		})
	}
}

func TestNeighborCap(t *testing.T) {
	cfg := testConfig()

	// 100 identical neighbors: any 30 of them produce the same forces.
	flock := make([]Boid, 100)
	neighbors := make([]int, 100)
	for i := range flock {
		flock[i] = Boid{
			Pos: components.Position{X: 5, Y: 3},
			Vel: components.Velocity{X: 1, Y: -0.5},
		}
		neighbors[i] = i
	}

	pos := components.Position{}
	vel := components.Velocity{X: 0.2, Y: 0.1}

	f := ComputeForces(pos, vel, cfg, neighbors, flock)
	if f.Neighbors != MaxNeighbors {
		t.Fatalf("neighbors used = %d, want %d", f.Neighbors, MaxNeighbors)
	}
	if f.Separating != MaxNeighbors {
		t.Errorf("separating = %d, want %d", f.Separating, MaxNeighbors)
	}

	reversed := make([]int, len(neighbors))
	for i := range neighbors {
		reversed[i] = neighbors[len(neighbors)-1-i]
	}
	g := ComputeForces(pos, vel, cfg, reversed, flock)
	if f != g {
		t.Errorf("forces depend on which neighbors were kept: %+v vs %+v", f, g)
	}
}

func TestComputeForcesEmpty(t *testing.T) {
	f := ComputeForces(components.Position{X: 1}, components.Velocity{X: 1}, testConfig(), nil, nil)
	if f != (Forces{}) {
		t.Errorf("empty neighborhood should give zero forces, got %+v", f)
	}
}

func TestComputeForcesZeroVectors(t *testing.T) {
	// Only the agent itself, at the origin and at rest: every raw vector is zero.
	flock := []Boid{{}}
	f := ComputeForces(components.Position{}, components.Velocity{}, testConfig(), []int{0}, flock)

	for _, v := range []float32{f.SepX, f.SepY, f.AliX, f.AliY, f.CohX, f.CohY} {
		if v != 0 || !isFinite(v) {
			t.Fatalf("expected all-zero forces, got %+v", f)
		}
	}
	if f.Neighbors != 1 || f.Separating != 0 {
		t.Errorf("neighbors = %d separating = %d, want 1 and 0", f.Neighbors, f.Separating)
	}
}

func TestCohesionSign(t *testing.T) {
	cfg := testConfig()
	cfg.SeparationRadius = 0

	flock := []Boid{
		{Pos: components.Position{X: 10}},
		{Pos: components.Position{X: 20}},
	}
	// Summing negated positions: -(10+20)/2 - 10 = -25, so cohesion points to -x.
	f := ComputeForces(flock[0].Pos, flock[0].Vel, cfg, []int{0, 1}, flock)
	if f.CohX >= 0 {
		t.Errorf("cohesion x = %v, want negative", f.CohX)
	}
	if math.Abs(float64(f.CohX+cfg.MaxForce)) > 1e-5 {
		t.Errorf("cohesion should be clamped to max force, got %v", f.CohX)
	}
}

func TestSteeringClampedToMaxForce(t *testing.T) {
	cfg := testConfig()
	flock := []Boid{
		{Pos: components.Position{X: 0}, Vel: components.Velocity{X: 3}},
		{Pos: components.Position{X: 1}, Vel: components.Velocity{Y: 4}},
	}
	f := ComputeForces(flock[0].Pos, flock[0].Vel, cfg, []int{0, 1}, flock)

	for name, m := range map[string]float32{
		"separation": length(f.SepX, f.SepY),
		"alignment":  length(f.AliX, f.AliY),
		"cohesion":   length(f.CohX, f.CohY),
	} {
		if m > cfg.MaxForce+1e-5 {
			t.Errorf("%s magnitude %v exceeds max force %v", name, m, cfg.MaxForce)
		}
	}
}

func TestUpdateAgentResetsAcceleration(t *testing.T) {
	cfg := testConfig()
	pos := components.Position{}
	vel := components.Velocity{X: 1}
	acc := components.Acceleration{X: 100, Y: 100}

	UpdateAgent(&pos, &vel, &acc, cfg, nil, nil, Bounds{Width: 800, Height: 600}, 1)

	if acc.X != 0 || acc.Y != 0 {
		t.Errorf("acceleration = %+v, want zero with no neighbors", acc)
	}
	if pos.X != 1 || pos.Y != 0 {
		t.Errorf("position = %+v, want (1, 0)", pos)
	}
}
