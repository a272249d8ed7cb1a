package dust

import (
	"math/rand"

	"particle-morph/internal/cloud"
	"particle-morph/internal/shapes"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// ErrInvalidCount is returned by New when count <= 0.
var ErrInvalidCount = errors.New("dust: point count must be positive")

// Options controls the background heave.
type Options struct {
	Speed     float32
	Amplitude float32
}

// DefaultOptions returns a very slow, wide drift.
func DefaultOptions() Options {
	return Options{Speed: 0.1, Amplitude: 2}
}

// Field is a small decorative cloud framing the main one. Its anchors never change and it does
// not react to gestures; each point heaves around its anchor on its own phase.
type Field struct {
	opts    Options
	anchors *cloud.Cloud
	live    *cloud.Cloud
	time    float32
}

// New scatters count points with rng.
func New(rng *rand.Rand, count int, opts Options) (*Field, error) {
	if count <= 0 {
		return nil, errors.Wrapf(ErrInvalidCount, "got %d", count)
	}
	anchors := shapes.DustPoints(rng, count)
	return &Field{opts: opts, anchors: anchors, live: anchors.Clone()}, nil
}

// Advance moves the field dt seconds forward. Positions are set directly from the anchors,
// there is no smoothing.
func (f *Field) Advance(dt float32) {
	if math32.IsNaN(dt) || math32.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}
	f.time += dt
	s, amp := f.opts.Speed, f.opts.Amplitude
	for i := 0; i < f.live.Len(); i++ {
		ax, ay, az := f.anchors.Position(i)
		phase := float32(i)
		f.live.SetPosition(i,
			ax+math32.Sin(f.time*s+phase)*amp,
			ay+math32.Cos(f.time*s*0.9+phase)*amp,
			az+math32.Sin(f.time*s*0.8+phase)*amp,
		)
	}
}

// Live returns the buffer to draw.
func (f *Field) Live() *cloud.Cloud { return f.live }

// Anchors returns the rest positions.
func (f *Field) Anchors() *cloud.Cloud { return f.anchors }
