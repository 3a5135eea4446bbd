package components

// Position represents an agent's world position. The origin is the viewport
// centre with y pointing up.
type Position struct {
	X, Y float32 `inspect:"label,fmt:%.1f"`
}

// Velocity represents an agent's velocity in world units per step.
type Velocity struct {
	X, Y float32 `inspect:"label,fmt:%.2f"`
}

// Acceleration accumulates steering force for the current step.
// It is reset at the start of every update.
type Acceleration struct {
	X, Y float32 `inspect:"label,fmt:%.3f"`
}
