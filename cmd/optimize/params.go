// Package main provides CMA-ES optimization for flock species parameters.
package main

import (
	"fmt"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/species"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the optimizable parameters of one species.
type ParamVector struct {
	Species string
	Specs   []ParamSpec
}

// NewParamVector creates the standard set of parameters for speciesID.
func NewParamVector(speciesID string) *ParamVector {
	path := func(field string) string {
		return fmt.Sprintf("species[%s].%s", speciesID, field)
	}
	return &ParamVector{
		Species: speciesID,
		Specs: []ParamSpec{
			// Neighborhood
			{Name: "perception_radius", Path: path("perception_radius"), Min: 10, Max: 150, Default: 40},
			{Name: "separation_radius", Path: path("separation_radius"), Min: 5, Max: 100, Default: 25},
			// Gains
			{Name: "separation_multiplier", Path: path("separation_multiplier"), Min: 0, Max: 3, Default: 0.5},
			{Name: "alignment_multiplier", Path: path("alignment_multiplier"), Min: 0, Max: 3, Default: 0.5},
			{Name: "cohesion_multiplier", Path: path("cohesion_multiplier"), Min: 0, Max: 3, Default: 0.3},
			// Limits
			{Name: "max_speed", Path: path("max_speed"), Min: 1, Max: 10, Default: 5},
			{Name: "max_force", Path: path("max_force"), Min: 0.05, Max: 2, Default: 0.33},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// entry returns the config entry of the optimized species.
func (pv *ParamVector) entry(cfg *config.Config) (*species.Config, error) {
	for i := range cfg.Species {
		if cfg.Species[i].ID == pv.Species {
			return &cfg.Species[i].Config, nil
		}
	}
	return nil, fmt.Errorf("species %q not in config", pv.Species)
}

// ApplyToConfig writes clamped parameter values into the species entry.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	sc, err := pv.entry(cfg)
	if err != nil {
		return err
	}
	clamped := pv.Clamp(values)

	sc.PerceptionRadius = float32(clamped[0])
	sc.SeparationRadius = float32(clamped[1])
	sc.SeparationMultiplier = float32(clamped[2])
	sc.AlignmentMultiplier = float32(clamped[3])
	sc.CohesionMultiplier = float32(clamped[4])
	sc.MaxSpeed = float32(clamped[5])
	sc.MaxForce = float32(clamped[6])
	return nil
}

// ExtractFromConfig reads the current parameter values of the species entry.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) ([]float64, error) {
	sc, err := pv.entry(cfg)
	if err != nil {
		return nil, err
	}
	return []float64{
		float64(sc.PerceptionRadius),
		float64(sc.SeparationRadius),
		float64(sc.SeparationMultiplier),
		float64(sc.AlignmentMultiplier),
		float64(sc.CohesionMultiplier),
		float64(sc.MaxSpeed),
		float64(sc.MaxForce),
	}, nil
}
