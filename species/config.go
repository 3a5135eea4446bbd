// Package species defines the parameter sets that tune flock agents and the
// randomizer that animates those parameters over time.
package species

import "math"

// Built-in species ids. Hosts register these at startup; the engine itself
// accepts any id that resolves to a registered Config.
const (
	Primary   = "primary"
	Secondary = "secondary"
	Tertiary  = "tertiary"
	Highlight = "highlight"
)

// IsBuiltin reports whether id names one of the built-in species.
func IsBuiltin(id string) bool {
	switch id {
	case Primary, Secondary, Tertiary, Highlight:
		return true
	}
	return false
}

// Color is an RGB color with channels in [0, 1].
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
}

// ColorFromBytes builds a Color from 8-bit channels.
func ColorFromBytes(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

// Bytes returns the color as 8-bit channels, rounded and clamped.
func (c Color) Bytes() (r, g, b uint8) {
	return channelByte(c.R), channelByte(c.G), channelByte(c.B)
}

func channelByte(v float32) uint8 {
	v = float32(math.Round(float64(v * 255)))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Config holds the tunable parameters shared by every agent of one species.
// A Config is treated as immutable for the duration of a simulation step.
type Config struct {
	SpawnWeight          int     `yaml:"spawn_weight" inspect:"label"`                     // relative probability mass for spawning
	PerceptionRadius     float32 `yaml:"perception_radius" inspect:"bar,max:250,fmt:%.0f"` // neighbor query radius
	SeparationRadius     float32 `yaml:"separation_radius" inspect:"bar,max:250,fmt:%.0f"` // neighbors closer than this push away
	SeparationMultiplier float32 `yaml:"separation_multiplier" inspect:"bar,max:10"`
	AlignmentMultiplier  float32 `yaml:"alignment_multiplier" inspect:"bar,max:10"`
	CohesionMultiplier   float32 `yaml:"cohesion_multiplier" inspect:"bar,max:10"`
	MaxSpeed             float32 `yaml:"max_speed" inspect:"bar,max:10"`
	MaxForce             float32 `yaml:"max_force" inspect:"bar,max:10"`
	AgentSize            float32 `yaml:"agent_size" inspect:"label,fmt:%.1f"` // triangle size in world units
	Color                Color   `yaml:"color" inspect:"skip"`
}

// Default returns the starting parameters used for the built-in species,
// with the given spawn weight and color.
func Default(spawnWeight int, color Color) Config {
	return Config{
		SpawnWeight:          spawnWeight,
		PerceptionRadius:     40,
		SeparationRadius:     25,
		SeparationMultiplier: 0.5,
		AlignmentMultiplier:  0.5,
		CohesionMultiplier:   0.3,
		MaxSpeed:             5,
		MaxForce:             0.33,
		AgentSize:            6,
		Color:                color,
	}
}
