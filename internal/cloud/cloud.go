package cloud

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Stride is the number of floats per point in both buffers (x,y,z or r,g,b).
const Stride = 3

// ErrLengthMismatch is returned when two clouds that must be parallel differ in size.
var ErrLengthMismatch = errors.New("cloud: point count mismatch")

// Cloud is an ordered set of points stored as two flat, parallel buffers. Index i in Positions
// (i*3..i*3+2) and index i in Colors describe the same point. Sinks can upload both slices as-is.
type Cloud struct {
	Positions []float32
	Colors    []float32
}

// New returns a cloud of n points at the origin with black color. n < 0 is treated as 0.
func New(n int) *Cloud {
	if n < 0 {
		n = 0
	}
	return &Cloud{
		Positions: make([]float32, n*Stride),
		Colors:    make([]float32, n*Stride),
	}
}

// Len returns the number of points.
func (c *Cloud) Len() int {
	return len(c.Positions) / Stride
}

// Position returns the position of point i.
func (c *Cloud) Position(i int) (x, y, z float32) {
	j := i * Stride
	return c.Positions[j], c.Positions[j+1], c.Positions[j+2]
}

// SetPosition sets the position of point i.
func (c *Cloud) SetPosition(i int, x, y, z float32) {
	j := i * Stride
	c.Positions[j], c.Positions[j+1], c.Positions[j+2] = x, y, z
}

// Color returns the color of point i. Channels are not clamped and may exceed 1.
func (c *Cloud) Color(i int) (r, g, b float32) {
	j := i * Stride
	return c.Colors[j], c.Colors[j+1], c.Colors[j+2]
}

// SetColor sets the color of point i.
func (c *Cloud) SetColor(i int, r, g, b float32) {
	j := i * Stride
	c.Colors[j], c.Colors[j+1], c.Colors[j+2] = r, g, b
}

// CopyFrom overwrites c with src in place. Both clouds must hold the same number of points;
// buffers are never reallocated so slices handed to a sink stay valid.
func (c *Cloud) CopyFrom(src *Cloud) error {
	if src.Len() != c.Len() || len(src.Colors) != len(c.Colors) {
		return errors.Wrapf(ErrLengthMismatch, "have %d points, got %d", c.Len(), src.Len())
	}
	copy(c.Positions, src.Positions)
	copy(c.Colors, src.Colors)
	return nil
}

// Clone returns a deep copy of c.
func (c *Cloud) Clone() *Cloud {
	out := &Cloud{
		Positions: make([]float32, len(c.Positions)),
		Colors:    make([]float32, len(c.Colors)),
	}
	copy(out.Positions, c.Positions)
	copy(out.Colors, c.Colors)
	return out
}

// Distance returns the Euclidean distance between point i of a and point i of b.
func Distance(a, b *Cloud, i int) float32 {
	ax, ay, az := a.Position(i)
	bx, by, bz := b.Position(i)
	dx, dy, dz := ax-bx, ay-by, az-bz
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Bounds returns the axis-aligned bounding box of all positions. An empty cloud returns zeros.
func (c *Cloud) Bounds() (min, max [3]float32) {
	n := c.Len()
	if n == 0 {
		return min, max
	}
	x, y, z := c.Position(0)
	min = [3]float32{x, y, z}
	max = min
	for i := 1; i < n; i++ {
		x, y, z = c.Position(i)
		min[0], max[0] = math32.Min(min[0], x), math32.Max(max[0], x)
		min[1], max[1] = math32.Min(min[1], y), math32.Max(max[1], y)
		min[2], max[2] = math32.Min(min[2], z), math32.Max(max[2], z)
	}
	return min, max
}
