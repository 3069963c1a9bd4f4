package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// unitOrZero returns v scaled to length 1, or the zero vector when v has no length.
func unitOrZero(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// headingVec returns the unit vector for a heading angle.
func headingVec(heading float64) r2.Vec {
	return r2.Vec{X: math.Cos(heading), Y: math.Sin(heading)}
}

// headingOf returns the angle of v, or fallback when v has no length.
func headingOf(v r2.Vec, fallback float64) float64 {
	if v.X == 0 && v.Y == 0 {
		return fallback
	}
	return math.Atan2(v.Y, v.X)
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// turnTowards rotates from towards to by at most maxDelta radians.
// maxDelta <= 0 means unlimited.
func turnTowards(from, to, maxDelta float64) float64 {
	diff := normalizeAngle(to - from)
	if maxDelta > 0 {
		diff = math.Max(-maxDelta, math.Min(maxDelta, diff))
	}
	return normalizeAngle(from + diff)
}

// moveTowards moves from towards to by at most step, never overshooting.
func moveTowards(from, to r2.Vec, step float64) r2.Vec {
	delta := r2.Sub(to, from)
	dist := r2.Norm(delta)
	if dist <= step || dist == 0 {
		return to
	}
	return r2.Add(from, r2.Scale(step/dist, delta))
}

// lerp linearly interpolates between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// finite reports whether both components of v are finite.
func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
