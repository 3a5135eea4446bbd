package components

// Species links an agent to the species config that tunes it.
// The ID is resolved against the engine's species registry every step.
type Species struct {
	ID string
}
