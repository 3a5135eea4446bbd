package species

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestAnimationConvergence(t *testing.T) {
	from := Default(40, ColorFromBytes(0, 100, 200))
	to := Config{
		SpawnWeight:          60,
		PerceptionRadius:     10,
		SeparationRadius:     120,
		SeparationMultiplier: 1.1,
		AlignmentMultiplier:  0.1,
		CohesionMultiplier:   0.9,
		MaxSpeed:             9,
		MaxForce:             0.05,
		AgentSize:            12,
		Color:                ColorFromBytes(200, 0, 100),
	}

	anim := NewAnimation(from, to, 2.0)
	wantT := []float32{0.25, 0.5, 0.75, 1.0}

	for i, wt := range wantT {
		anim.Step(0.5)
		if anim.Progress() != wt {
			t.Fatalf("step %d: t = %v, want %v", i, anim.Progress(), wt)
		}

		cur := anim.Current()
		if !approx(cur.PerceptionRadius, from.PerceptionRadius+(to.PerceptionRadius-from.PerceptionRadius)*wt) {
			t.Errorf("step %d: perception = %v", i, cur.PerceptionRadius)
		}
		if !approx(cur.MaxSpeed, from.MaxSpeed+(to.MaxSpeed-from.MaxSpeed)*wt) {
			t.Errorf("step %d: max speed = %v", i, cur.MaxSpeed)
		}
		if !approx(cur.SeparationMultiplier, from.SeparationMultiplier+(to.SeparationMultiplier-from.SeparationMultiplier)*wt) {
			t.Errorf("step %d: separation multiplier = %v", i, cur.SeparationMultiplier)
		}

		if i < len(wantT)-1 && anim.Finished() {
			t.Fatalf("step %d: finished early", i)
		}
	}

	if !anim.Finished() {
		t.Fatal("animation should be finished after four steps")
	}

	final := anim.Current()
	if final.SpawnWeight != to.SpawnWeight {
		t.Errorf("spawn weight = %d, want %d", final.SpawnWeight, to.SpawnWeight)
	}
	checks := []struct {
		name      string
		got, want float32
	}{
		{"perception", final.PerceptionRadius, to.PerceptionRadius},
		{"separation", final.SeparationRadius, to.SeparationRadius},
		{"sep mult", final.SeparationMultiplier, to.SeparationMultiplier},
		{"align mult", final.AlignmentMultiplier, to.AlignmentMultiplier},
		{"coh mult", final.CohesionMultiplier, to.CohesionMultiplier},
		{"max speed", final.MaxSpeed, to.MaxSpeed},
		{"max force", final.MaxForce, to.MaxForce},
		{"size", final.AgentSize, to.AgentSize},
		{"r", final.Color.R, to.Color.R},
		{"g", final.Color.G, to.Color.G},
		{"b", final.Color.B, to.Color.B},
	}
	for _, c := range checks {
		if !approx(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestAnimationColorMidpoint(t *testing.T) {
	anim := NewAnimation(
		Config{Color: ColorFromBytes(0, 255, 10)},
		Config{Color: ColorFromBytes(255, 0, 11)},
		1,
	)
	anim.Step(0.5)

	r, g, b := anim.Current().Color.Bytes()
	// 127.5 rounds away from zero.
	if r != 128 || g != 128 || b != 11 {
		t.Errorf("midpoint color = (%d,%d,%d), want (128,128,11)", r, g, b)
	}
}

func TestAnimationZeroDuration(t *testing.T) {
	anim := NewAnimation(Config{MaxSpeed: 1}, Config{MaxSpeed: 3}, 0)
	anim.Step(0.016)
	if !anim.Finished() {
		t.Fatal("zero-duration animation should finish on the first step")
	}
	if got := anim.Current().MaxSpeed; !approx(got, 3) {
		t.Errorf("max speed = %v, want 3", got)
	}
}
