package systems

import (
	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/species"
)

// Bounds represents the viewport the flock lives in, centred on the origin.
type Bounds struct {
	Width, Height float32
}

// boundsScale inflates the viewport so agents leave the screen before wrapping.
const boundsScale = 1.1

// Integrate clamps acceleration to the species force limit, applies a
// half-step velocity update, clamps speed and advances position.
func Integrate(pos *components.Position, vel *components.Velocity, acc *components.Acceleration, cfg *species.Config, dt float32) {
	acc.X, acc.Y = clampMagnitude(acc.X, acc.Y, cfg.MaxForce)

	half := 0.5 * dt * dt
	vel.X += acc.X * half
	vel.Y += acc.Y * half
	vel.X, vel.Y = clampMagnitude(vel.X, vel.Y, cfg.MaxSpeed)

	pos.X += dt * vel.X
	pos.Y += dt * vel.Y
}

// Wrap teleports an agent that has left the inflated bounds to the opposite
// edge. The agent is treated as a circle of radius 1.5 × its size.
func Wrap(pos *components.Position, agentSize float32, b Bounds) {
	hw := b.Width * boundsScale / 2
	hh := b.Height * boundsScale / 2
	r := agentSize * 1.5

	if pos.X+r < -hw {
		pos.X = hw - r
	}
	if pos.Y+r < -hh {
		pos.Y = hh - r
	}
	if pos.X+r > hw+r {
		pos.X = -hw + r
	}
	if pos.Y+r > hh+r {
		pos.Y = -hh + r
	}
}
