package gesture

import "github.com/chewxy/math32"

// Point is a normalized image coordinate; (0,0) is top-left and (1,1) bottom-right.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Center is the focus used when no hand is visible.
var Center = Point{X: 0.5, Y: 0.5}

// Signal is the per-frame summary the detector hands to the scene. It lives for one tick.
type Signal struct {
	Present   bool
	Expansion float32 // two-hand spread in [0,1]
	Pinch     float32 // thumb/index closeness in [0,1], 1 = pinched
	Focus     Point
}

// Idle is the signal for "no hands": absent, zero expansion and pinch, centered focus.
func Idle() Signal {
	return Signal{Focus: Center}
}

// Sanitize replaces NaN or out-of-range expansion and pinch with 0 and clamps the focus into
// the unit square (NaN focus components fall back to the center).
func (s Signal) Sanitize() Signal {
	s.Expansion = unitOrZero(s.Expansion)
	s.Pinch = unitOrZero(s.Pinch)
	s.Focus.X = clampUnit(s.Focus.X, Center.X)
	s.Focus.Y = clampUnit(s.Focus.Y, Center.Y)
	return s
}

func unitOrZero(v float32) float32 {
	if math32.IsNaN(v) || v < 0 || v > 1 {
		return 0
	}
	return v
}

func clampUnit(v, fallback float32) float32 {
	if math32.IsNaN(v) {
		return fallback
	}
	return math32.Min(math32.Max(v, 0), 1)
}
