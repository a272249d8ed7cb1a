package gesture

import "github.com/chewxy/math32"

// WheelStep is how much one wheel notch changes the emulated expansion.
const WheelStep = 0.1

// Pointer emulates a hand with a mouse: holding the primary button is presence, the wheel
// accumulates expansion, the cursor is the focus and the secondary button closes the pinch.
// The zero value is ready to use.
type Pointer struct {
	expansion float32
}

// PointerState is one frame of raw mouse input in window pixels.
type PointerState struct {
	X, Y          float32
	Width, Height float32
	Primary       bool
	Secondary     bool
	Wheel         float32
}

// Update folds one frame of input into a Signal. The wheel is accumulated even while the button
// is up so the user can preset the spread before "raising a hand".
func (p *Pointer) Update(s PointerState) Signal {
	if !math32.IsNaN(s.Wheel) && !math32.IsInf(s.Wheel, 0) {
		p.expansion = clampUnit(p.expansion+s.Wheel*WheelStep, 0)
	}
	if !s.Primary || s.Width <= 0 || s.Height <= 0 {
		return Idle()
	}
	sig := Signal{
		Present:   true,
		Expansion: p.expansion,
		Focus:     Point{X: s.X / s.Width, Y: s.Y / s.Height},
	}
	if s.Secondary {
		sig.Pinch = 1
	}
	return sig.Sanitize()
}

// Expansion returns the accumulated wheel expansion.
func (p *Pointer) Expansion() float32 { return p.expansion }
