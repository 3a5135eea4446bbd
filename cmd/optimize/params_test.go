package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/species"
)

func TestNormalizeDenormalize(t *testing.T) {
	pv := NewParamVector(species.Primary)
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}

	norm := pv.Normalize(def)
	for i, v := range norm {
		if v < 0 || v > 1 {
			t.Errorf("%s default normalizes to %v, outside [0,1]", pv.Specs[i].Name, v)
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector(species.Primary)
	v := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		if i%2 == 0 {
			v[i] = spec.Min - 10
		} else {
			v[i] = spec.Max + 10
		}
	}
	clamped := pv.Clamp(v)
	for i, spec := range pv.Specs {
		want := spec.Min
		if i%2 == 1 {
			want = spec.Max
		}
		if clamped[i] != want {
			t.Errorf("%s = %v, want %v", spec.Name, clamped[i], want)
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector(species.Primary)
	got, err := pv.ExtractFromConfig(cfg)
	if err != nil {
		t.Fatalf("ExtractFromConfig: %v", err)
	}
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-spec.Default) > 1e-6 {
			t.Errorf("%s: config %v, spec default %v", spec.Name, got[i], spec.Default)
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector(species.Secondary)
	values := []float64{100, 10, 1, 2, 0.5, 8, 5}

	if err := pv.ApplyToConfig(cfg, values); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}
	got, _ := pv.ExtractFromConfig(cfg)
	want := []float64{100, 10, 1, 2, 0.5, 8, 2} // max_force clamped
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}

	// Other species are untouched.
	for _, s := range cfg.Species {
		if s.ID != species.Secondary && s.PerceptionRadius != 40 {
			t.Errorf("%s perception changed to %v", s.ID, s.PerceptionRadius)
		}
	}

	if err := NewParamVector("ghost").ApplyToConfig(cfg, values); err == nil {
		t.Error("expected an error for an unknown species")
	}
}
