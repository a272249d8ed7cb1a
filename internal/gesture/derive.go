package gesture

import "github.com/chewxy/math32"

// Hand landmark indices used by the derivation (MediaPipe hand model layout).
const (
	Wrist            = 0
	ThumbTip         = 4
	IndexTip         = 8
	LandmarksPerHand = 21
)

// Calibration of raw distances, in normalized image units.
const (
	PinchClosed     = 0.02
	PinchOpen       = 0.2
	SpreadNear      = 0.1
	SpreadFar       = 0.8
	SingleExpansion = 0.5
)

// Landmark is one tracked keypoint. Z is carried but unused by the derivation.
type Landmark struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z,omitempty"`
}

// Hand is the landmark list for one detected hand.
type Hand []Landmark

// Derive reduces the detector's hands to a Signal. Hands with fewer than LandmarksPerHand
// points are ignored. Pinch averages over every hand; expansion and focus use the first two.
func Derive(hands []Hand) Signal {
	valid := hands[:0:0]
	for _, h := range hands {
		if len(h) >= LandmarksPerHand {
			valid = append(valid, h)
		}
	}
	if len(valid) == 0 {
		return Idle()
	}

	var total float32
	for _, h := range valid {
		total += PinchFromDistance(distance(h[ThumbTip], h[IndexTip]))
	}
	sig := Signal{Present: true, Pinch: total / float32(len(valid))}

	if len(valid) >= 2 {
		a, b := valid[0][Wrist], valid[1][Wrist]
		sig.Expansion = ExpansionFromDistance(distance(a, b))
		sig.Focus = Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	} else {
		w := valid[0][Wrist]
		sig.Expansion = SingleExpansion
		sig.Focus = Point{X: w.X, Y: w.Y}
	}
	return sig.Sanitize()
}

// PinchFromDistance maps a thumb-index distance to [0,1]: PinchClosed → 1, PinchOpen → 0.
func PinchFromDistance(d float32) float32 {
	if math32.IsNaN(d) {
		return 0
	}
	d = math32.Min(math32.Max(d, PinchClosed), PinchOpen)
	return 1 - (d-PinchClosed)/(PinchOpen-PinchClosed)
}

// ExpansionFromDistance maps a wrist-to-wrist distance to [0,1]: SpreadNear → 0, SpreadFar → 1.
func ExpansionFromDistance(d float32) float32 {
	if math32.IsNaN(d) {
		return 0
	}
	d = math32.Min(math32.Max(d, SpreadNear), SpreadFar)
	return (d - SpreadNear) / (SpreadFar - SpreadNear)
}

func distance(a, b Landmark) float32 {
	return math32.Hypot(a.X-b.X, a.Y-b.Y)
}
