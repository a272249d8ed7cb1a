package raster

import (
	"particle-morph/internal/cloud"
	"particle-morph/internal/scene"

	"github.com/chewxy/math32"
)

const nearPlane = 0.1

// View is a pinhole camera looking from Position at Target with world up +Y.
type View struct {
	right, up, forward [3]float32
	eye                [3]float32
	focal              float32
	width, height      float32
}

// NewView builds the projection of cam onto a w by h target.
func NewView(cam scene.Camera, w, h int) View {
	fwd := normalize(sub(cam.Target, cam.Position))
	right := normalize(cross(fwd, [3]float32{0, 1, 0}))
	if right == ([3]float32{}) {
		// looking straight up or down
		right = [3]float32{1, 0, 0}
	}
	return View{
		right:   right,
		up:      cross(right, fwd),
		forward: fwd,
		eye:     cam.Position,
		focal:   1 / math32.Tan(cam.Fovy*math32.Pi/360),
		width:   float32(w),
		height:  float32(h),
	}
}

// Project maps a world point to pixel coordinates. ok is false behind the near plane.
func (v View) Project(p [3]float32) (x, y, depth float32, ok bool) {
	d := sub(p, v.eye)
	depth = dot(d, v.forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	aspect := v.width / v.height
	nx := dot(d, v.right) * v.focal / (depth * aspect)
	ny := dot(d, v.up) * v.focal / depth
	return (nx + 1) / 2 * v.width, (1 - ny) / 2 * v.height, depth, true
}

// Splat projects every point of c, rotated by rotation about Y and scaled by scale, and adds
// its color times gain to fb.
func Splat(fb *FrameBuffer, v View, c *cloud.Cloud, rotation, scale, gain float32) {
	sin, cos := math32.Sincos(rotation)
	for i := 0; i < c.Len(); i++ {
		x, y, z := c.Position(i)
		p := [3]float32{
			(x*cos + z*sin) * scale,
			y * scale,
			(-x*sin + z*cos) * scale,
		}
		px, py, _, ok := v.Project(p)
		if !ok {
			continue
		}
		r, g, b := c.Color(i)
		fb.Add(int(math32.Floor(px)), int(math32.Floor(py)), r*gain, g*gain, b*gain)
	}
}

func sub(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func dot(a, b [3]float32) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func normalize(a [3]float32) [3]float32 {
	l := math32.Sqrt(dot(a, a))
	if l < 1e-6 {
		return [3]float32{}
	}
	return [3]float32{a[0] / l, a[1] / l, a[2] / l}
}
