package species

import (
	"math/rand"
	"testing"
)

func TestRandomRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		c := Random(rng)
		checks := []struct {
			name     string
			v        float32
			min, max float32
		}{
			{"spawn_weight", float32(c.SpawnWeight), 25, 75},
			{"perception", c.PerceptionRadius, 0, 50},
			{"separation", c.SeparationRadius, 50, 250},
			{"separation_mult", c.SeparationMultiplier, 0.001, 1.2},
			{"alignment_mult", c.AlignmentMultiplier, 0.001, 1.2},
			{"cohesion_mult", c.CohesionMultiplier, 0.001, 1.2},
			{"max_force", c.MaxForce, 0.001, 0.5},
			{"max_speed", c.MaxSpeed, 0.001, 10},
			{"agent_size", c.AgentSize, 3, 15},
		}
		for _, ch := range checks {
			if ch.v < ch.min || ch.v >= ch.max {
				t.Fatalf("draw %d: %s = %v, want [%v, %v)", i, ch.name, ch.v, ch.min, ch.max)
			}
		}

		r, g, b := c.Color.Bytes()
		if r == 255 || g == 255 || b == 255 {
			t.Fatalf("draw %d: color channel 255 out of range", i)
		}
	}
}

func TestRandomID(t *testing.T) {
	a := RandomID(rand.New(rand.NewSource(1)))
	b := RandomID(rand.New(rand.NewSource(1)))
	if a != b {
		t.Errorf("same seed gave %q and %q", a, b)
	}
	if len(a) != 8 {
		t.Errorf("len(%q) = %d, want 8", a, len(a))
	}
	if IsBuiltin(a) {
		t.Errorf("%q collides with a built-in id", a)
	}
}

func TestColorBytes(t *testing.T) {
	tests := []struct {
		name    string
		c       Color
		r, g, b uint8
	}{
		{"roundtrip", ColorFromBytes(12, 128, 254), 12, 128, 254},
		{"clamped", Color{R: -0.5, G: 1.5, B: 0.5}, 0, 255, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := tt.c.Bytes()
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("Bytes() = %d,%d,%d want %d,%d,%d", r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}
