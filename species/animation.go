package species

import "math"

// minDuration keeps a zero-length animation from dividing by zero.
const minDuration = 0.001

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerpByte(a, b uint8, t float32) uint8 {
	v := math.Round(float64(Lerp(float32(a), float32(b), t)))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Animation blends one species from a snapshot config to a target config.
type Animation struct {
	from, to Config
	t        float32 // progress in [0, 1]
	duration float32 // seconds
}

// NewAnimation starts an animation at t=0.
func NewAnimation(from, to Config, duration float32) *Animation {
	if duration < minDuration {
		duration = minDuration
	}
	return &Animation{from: from, to: to, duration: duration}
}

// Step advances progress by dt seconds, saturating at 1.
func (a *Animation) Step(dt float32) {
	a.t = min(a.t+dt/a.duration, 1)
}

// Finished reports whether the animation reached its target.
func (a *Animation) Finished() bool {
	return a.t >= 1
}

// Progress returns t in [0, 1].
func (a *Animation) Progress() float32 {
	return a.t
}

// Target returns the config the animation is heading to.
func (a *Animation) Target() Config {
	return a.to
}

// Current returns the blended config at the current progress.
// Color channels are blended independently in 8-bit space.
func (a *Animation) Current() Config {
	t := a.t
	fr, fg, fb := a.from.Color.Bytes()
	tr, tg, tb := a.to.Color.Bytes()
	return Config{
		SpawnWeight:          int(math.Round(float64(Lerp(float32(a.from.SpawnWeight), float32(a.to.SpawnWeight), t)))),
		PerceptionRadius:     Lerp(a.from.PerceptionRadius, a.to.PerceptionRadius, t),
		SeparationRadius:     Lerp(a.from.SeparationRadius, a.to.SeparationRadius, t),
		SeparationMultiplier: Lerp(a.from.SeparationMultiplier, a.to.SeparationMultiplier, t),
		AlignmentMultiplier:  Lerp(a.from.AlignmentMultiplier, a.to.AlignmentMultiplier, t),
		CohesionMultiplier:   Lerp(a.from.CohesionMultiplier, a.to.CohesionMultiplier, t),
		MaxSpeed:             Lerp(a.from.MaxSpeed, a.to.MaxSpeed, t),
		MaxForce:             Lerp(a.from.MaxForce, a.to.MaxForce, t),
		AgentSize:            Lerp(a.from.AgentSize, a.to.AgentSize, t),
		Color: ColorFromBytes(
			lerpByte(fr, tr, t),
			lerpByte(fg, tg, t),
			lerpByte(fb, tb, t),
		),
	}
}
