package cloud

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "empty", n: 0, want: 0},
		{name: "negative treated as empty", n: -4, want: 0},
		{name: "sized", n: 7, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.n)
			assert.Equal(t, tt.want, c.Len())
			assert.Len(t, c.Positions, tt.want*Stride)
			assert.Len(t, c.Colors, tt.want*Stride)
		})
	}
}

func TestCloud_PositionAndColor(t *testing.T) {
	c := New(3)
	c.SetPosition(1, 1, 2, 3)
	c.SetColor(2, 0.1, 1.2, 0.3)

	x, y, z := c.Position(1)
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{x, y, z})
	r, g, b := c.Color(2)
	assert.Equal(t, [3]float32{0.1, 1.2, 0.3}, [3]float32{r, g, b})
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3, 0, 0, 0}, c.Positions)
}

func TestCloud_CopyFrom(t *testing.T) {
	dst := New(2)
	src := New(2)
	src.SetPosition(0, 4, 5, 6)
	src.SetColor(1, 1, 1, 1)
	positions := dst.Positions

	require.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, src.Positions, dst.Positions)
	assert.Equal(t, src.Colors, dst.Colors)
	assert.Same(t, &positions[0], &dst.Positions[0], "buffer must be reused")

	err := dst.CopyFrom(New(3))
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestCloud_Clone(t *testing.T) {
	c := New(1)
	c.SetPosition(0, 1, 1, 1)
	cp := c.Clone()
	cp.SetPosition(0, 2, 2, 2)

	x, _, _ := c.Position(0)
	assert.Equal(t, float32(1), x)
}

func TestDistanceAndBounds(t *testing.T) {
	a := New(2)
	b := New(2)
	a.SetPosition(1, 3, 4, 0)
	assert.InDelta(t, 5.0, Distance(a, b, 1), 1e-6)

	a.SetPosition(0, -1, 2, -3)
	min, max := a.Bounds()
	assert.Equal(t, [3]float32{-1, 2, -3}, min)
	assert.Equal(t, [3]float32{3, 4, 0}, max)

	min, max = New(0).Bounds()
	assert.Equal(t, [3]float32{}, min)
	assert.Equal(t, [3]float32{}, max)
}
