// Package renderer draws flock geometry with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/flock"
	"github.com/pthm-cable/flock/systems"
)

// FlockRenderer draws every agent as an outlined triangle.
type FlockRenderer struct {
	// Filled draws solid triangles instead of outlines.
	Filled bool
	// Alpha applied to every agent color.
	Alpha uint8
}

// NewFlockRenderer creates a renderer drawing opaque outlines.
func NewFlockRenderer() *FlockRenderer {
	return &FlockRenderer{Alpha: 255}
}

// Draw renders geometry through the camera. Returns the number of agents drawn.
func (r *FlockRenderer) Draw(g flock.Geometry, cam *camera.Camera) int {
	const stride = systems.VerticesPerAgent * systems.FloatsPerVertex

	drawn := 0
	for i := 0; i+stride <= len(g.Positions); i += stride {
		p := g.Positions[i : i+stride]

		// Cull on the centroid with a generous radius.
		cx := (p[0] + p[3] + p[6]) / 3
		cy := (p[1] + p[4] + p[7]) / 3
		radius := maxAbs(p[0]-cx, p[1]-cy) * 2
		if !cam.IsVisible(cx, cy, radius) {
			continue
		}

		var v [3]rl.Vector2
		for k := 0; k < 3; k++ {
			sx, sy := cam.WorldToScreen(p[k*3], p[k*3+1])
			v[k] = rl.Vector2{X: sx, Y: sy}
		}

		c := g.Colors[i : i+3]
		color := rl.Color{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: r.Alpha}

		if r.Filled {
			// raylib culls triangles that are not counter-clockwise on screen.
			cross := (v[1].X-v[0].X)*(v[2].Y-v[0].Y) - (v[1].Y-v[0].Y)*(v[2].X-v[0].X)
			if cross > 0 {
				v[1], v[2] = v[2], v[1]
			}
			rl.DrawTriangle(v[0], v[1], v[2], color)
		} else {
			rl.DrawLineV(v[0], v[1], color)
			rl.DrawLineV(v[1], v[2], color)
			rl.DrawLineV(v[2], v[0], color)
		}
		drawn++
	}
	return drawn
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func maxAbs(a, b float32) float32 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}
