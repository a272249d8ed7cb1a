package dust

import (
	"testing"

	"particle-morph/internal/shapes"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsEmpty(t *testing.T) {
	_, err := New(shapes.NewRand(1), 0, DefaultOptions())
	assert.True(t, errors.Is(err, ErrInvalidCount))
}

func TestField_HeavesAroundAnchors(t *testing.T) {
	f, err := New(shapes.NewRand(1), 600, DefaultOptions())
	require.NoError(t, err)
	anchors := f.Anchors().Clone()

	for tick := 0; tick < 500; tick++ {
		f.Advance(0.016)
		for i := 0; i < f.Live().Len(); i += 37 {
			lx, ly, lz := f.Live().Position(i)
			ax, ay, az := anchors.Position(i)
			assert.LessOrEqual(t, math32.Abs(lx-ax), float32(2)+1e-4)
			assert.LessOrEqual(t, math32.Abs(ly-ay), float32(2)+1e-4)
			assert.LessOrEqual(t, math32.Abs(lz-az), float32(2)+1e-4)
		}
	}
	assert.Equal(t, anchors.Positions, f.Anchors().Positions, "anchors never change")
	assert.Equal(t, anchors.Colors, f.Live().Colors)
}

func TestField_Advance(t *testing.T) {
	f, err := New(shapes.NewRand(2), 3, Options{Speed: 1, Amplitude: 1})
	require.NoError(t, err)

	f.Advance(0)
	ax, ay, az := f.Anchors().Position(0)
	lx, ly, lz := f.Live().Position(0)
	// phase 0 at t=0: sin=0, cos=1
	assert.InDelta(t, ax, lx, 1e-6)
	assert.InDelta(t, ay+1, ly, 1e-6)
	assert.InDelta(t, az, lz, 1e-6)

	before := f.Live().Clone()
	f.Advance(math32.NaN())
	assert.Equal(t, before.Positions, f.Live().Positions)
}
