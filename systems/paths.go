package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Window is the visible area in pixels with the origin at the top-left corner.
type Window struct {
	W, H float64
}

// Valid reports whether the window has a usable area. A minimised window
// reports a zero or NaN size.
func (w Window) Valid() bool {
	return w.W >= 1 && w.H >= 1 && !math.IsInf(w.W, 0) && !math.IsInf(w.H, 0)
}

// Center returns the middle of the window.
func (w Window) Center() r2.Vec {
	return r2.Vec{X: w.W / 2, Y: w.H / 2}
}

// Outside reports whether p is more than buffer outside the window.
func (w Window) Outside(p r2.Vec, buffer float64) bool {
	return p.X < -buffer || p.X > w.W+buffer || p.Y < -buffer || p.Y > w.H+buffer
}

// ClampWithBuffer keeps p inside the window shrunk by frac of its size on
// each side. Returns false for an invalid window.
func (w Window) ClampWithBuffer(p r2.Vec, frac float64) (r2.Vec, bool) {
	if !w.Valid() {
		return p, false
	}
	bx, by := w.W*frac, w.H*frac
	return r2.Vec{
		X: math.Max(bx, math.Min(w.W-bx, p.X)),
		Y: math.Max(by, math.Min(w.H-by, p.Y)),
	}, true
}

// CreaturePath returns the ends of an off-screen to off-screen path, either
// left-right or top-bottom, in a random direction. margin keeps the ends just
// outside the window. Returns false for an invalid window.
func CreaturePath(w Window, margin float64, rng Random) (start, end r2.Vec, ok bool) {
	if !w.Valid() {
		return r2.Vec{}, r2.Vec{}, false
	}
	var a, b r2.Vec
	if rng.Chance(0.5) {
		a = r2.Vec{X: -margin, Y: spanRange(w.H, margin, rng)}
		b = r2.Vec{X: w.W + margin, Y: spanRange(w.H, margin, rng)}
	} else {
		a = r2.Vec{X: spanRange(w.W, margin, rng), Y: -margin}
		b = r2.Vec{X: spanRange(w.W, margin, rng), Y: w.H + margin}
	}
	if rng.Chance(0.5) {
		return a, b, true
	}
	return b, a, true
}

// ExtendPath returns end moved a further d along the direction from start.
func ExtendPath(start, end r2.Vec, d float64) r2.Vec {
	return r2.Add(end, r2.Scale(d, unitOrZero(r2.Sub(end, start))))
}

// PointOutside returns a random point margin outside one of the window edges.
func PointOutside(w Window, margin float64, rng Random) (r2.Vec, bool) {
	if !w.Valid() {
		return r2.Vec{}, false
	}
	switch side := int(rng.Range(0, 4)); side {
	case 0:
		return r2.Vec{X: -margin, Y: rng.Range(0, w.H)}, true
	case 1:
		return r2.Vec{X: w.W + margin, Y: rng.Range(0, w.H)}, true
	case 2:
		return r2.Vec{X: rng.Range(0, w.W), Y: -margin}, true
	default:
		return r2.Vec{X: rng.Range(0, w.W), Y: w.H + margin}, true
	}
}

// spanRange picks a coordinate along an edge of the given length, keeping
// margin clear at both ends when the edge is long enough.
func spanRange(length, margin float64, rng Random) float64 {
	if length <= 2*margin {
		return length / 2
	}
	return rng.Range(margin, length-margin)
}
