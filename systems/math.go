package systems

import "math"

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// length returns the magnitude of a 2-D vector.
func length(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	return length(x1-x2, y1-y2)
}

// clampMagnitude scales (x, y) down to maxLen if it is longer.
func clampMagnitude(x, y, maxLen float32) (float32, float32) {
	l := length(x, y)
	if l > maxLen && l > 0 {
		s := maxLen / l
		return x * s, y * s
	}
	return x, y
}

// steer turns a desired direction into a force-limited correction of the
// current velocity. A zero direction yields zero steering.
func steer(dx, dy, vx, vy, maxSpeed, maxForce float32) (float32, float32) {
	l := length(dx, dy)
	if l == 0 {
		return 0, 0
	}
	sx := dx/l*maxSpeed - vx
	sy := dy/l*maxSpeed - vy
	return clampMagnitude(sx, sy, maxForce)
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// NormalizedToWorld maps normalized viewport coordinates in [0, 1] (origin top
// left, y down) to world coordinates (origin centre, y up).
func NormalizedToWorld(xNorm, yNorm, width, height float32) (float32, float32) {
	hw := width / 2
	hh := height / 2
	x := Lerp(-hw, hw, clamp01(xNorm))
	y := -Lerp(-hh, hh, clamp01(yNorm))
	return x, y
}
