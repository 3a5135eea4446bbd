// Package ui provides the heads-up display and the species settings panel.
// Slider rows are described by data so the panel layout follows the
// species parameters rather than hard-coding each field.
package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/species"
)

// SliderDescriptor defines one editable species parameter.
type SliderDescriptor struct {
	Label  string
	Min    float32
	Max    float32
	Format string // Printf format for the value readout
	Get    func(*species.Config) float32
	Set    func(*species.Config, float32)
}

// SpeciesSliders returns the slider rows shown for every species.
func SpeciesSliders() []SliderDescriptor {
	return []SliderDescriptor{
		{
			Label: "spawn weight", Min: 0, Max: 100, Format: "%.0f",
			Get: func(c *species.Config) float32 { return float32(c.SpawnWeight) },
			Set: func(c *species.Config, v float32) { c.SpawnWeight = int(math.Round(float64(v))) },
		},
		{
			Label: "perception", Min: 0, Max: 250, Format: "%.0f",
			Get: func(c *species.Config) float32 { return c.PerceptionRadius },
			Set: func(c *species.Config, v float32) { c.PerceptionRadius = v },
		},
		{
			Label: "separation dist", Min: 0, Max: 250, Format: "%.0f",
			Get: func(c *species.Config) float32 { return c.SeparationRadius },
			Set: func(c *species.Config, v float32) { c.SeparationRadius = v },
		},
		{
			Label: "separation", Min: 0, Max: 10, Format: "%.2f",
			Get: func(c *species.Config) float32 { return c.SeparationMultiplier },
			Set: func(c *species.Config, v float32) { c.SeparationMultiplier = v },
		},
		{
			Label: "alignment", Min: 0, Max: 10, Format: "%.2f",
			Get: func(c *species.Config) float32 { return c.AlignmentMultiplier },
			Set: func(c *species.Config, v float32) { c.AlignmentMultiplier = v },
		},
		{
			Label: "cohesion", Min: 0, Max: 10, Format: "%.2f",
			Get: func(c *species.Config) float32 { return c.CohesionMultiplier },
			Set: func(c *species.Config, v float32) { c.CohesionMultiplier = v },
		},
		{
			Label: "max speed", Min: 0, Max: 10, Format: "%.2f",
			Get: func(c *species.Config) float32 { return c.MaxSpeed },
			Set: func(c *species.Config, v float32) { c.MaxSpeed = v },
		},
		{
			Label: "max force", Min: 0, Max: 10, Format: "%.2f",
			Get: func(c *species.Config) float32 { return c.MaxForce },
			Set: func(c *species.Config, v float32) { c.MaxForce = v },
		},
		{
			Label: "size", Min: 0.1, Max: 15, Format: "%.1f",
			Get: func(c *species.Config) float32 { return c.AgentSize },
			Set: func(c *species.Config, v float32) { c.AgentSize = v },
		},
		{
			Label: "red", Min: 0, Max: 1, Format: "%.2f",
			Get: func(c *species.Config) float32 { return c.Color.R },
			Set: func(c *species.Config, v float32) { c.Color.R = v },
		},
		{
			Label: "green", Min: 0, Max: 1, Format: "%.2f",
			Get: func(c *species.Config) float32 { return c.Color.G },
			Set: func(c *species.Config, v float32) { c.Color.G = v },
		},
		{
			Label: "blue", Min: 0, Max: 1, Format: "%.2f",
			Get: func(c *species.Config) float32 { return c.Color.B },
			Set: func(c *species.Config, v float32) { c.Color.B = v },
		},
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// SpeciesColor converts a species color to an opaque raylib color.
func SpeciesColor(c species.Color) rl.Color {
	r, g, b := c.Bytes()
	return rl.Color{R: r, G: g, B: b, A: 255}
}
