package render

import (
	"particle-morph/internal/cloud"
	"particle-morph/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	guideExtent = 60
	guideAlpha  = 120
	dustAlpha   = 90
	cloudAlpha  = 220
)

// Renderer draws a scene.Frame in 3-D: the dust field and the main cloud as additive points,
// the cloud rotated about Y and scaled by the frame's response values.
type Renderer struct {
	camera rl.Camera3D
	// GuideVisible draws the three axis lines through the origin.
	GuideVisible bool
}

// New returns a renderer with a perspective camera looking at the origin.
func New() *Renderer {
	r := &Renderer{}
	r.camera.Up = rl.NewVector3(0, 1, 0)
	r.camera.Projection = rl.CameraPerspective
	return r
}

// SetGuideVisible sets whether the axis guide is drawn.
func (r *Renderer) SetGuideVisible(visible bool) {
	r.GuideVisible = visible
}

// Draw renders f. Call after ClearBackground and before 2D overlays.
func (r *Renderer) Draw(f scene.Frame) {
	r.camera.Position = rl.NewVector3(f.Camera.Position[0], f.Camera.Position[1], f.Camera.Position[2])
	r.camera.Target = rl.NewVector3(f.Camera.Target[0], f.Camera.Target[1], f.Camera.Target[2])
	r.camera.Fovy = f.Camera.Fovy

	rl.BeginMode3D(r.camera)
	if r.GuideVisible {
		drawGuide()
	}
	rl.BeginBlendMode(rl.BlendAdditive)
	if f.Dust != nil {
		drawPoints(f.Dust, dustAlpha)
	}
	if f.Cloud != nil {
		rl.PushMatrix()
		rl.Rotatef(f.Rotation*rl.Rad2deg, 0, 1, 0)
		rl.Scalef(f.Scale, f.Scale, f.Scale)
		drawPoints(f.Cloud, cloudAlpha)
		rl.PopMatrix()
	}
	rl.EndBlendMode()
	rl.EndMode3D()
}

// drawPoints reuses one vector and color for the whole buffer.
func drawPoints(c *cloud.Cloud, alpha uint8) {
	var p rl.Vector3
	col := rl.Color{A: alpha}
	for i := 0; i < c.Len(); i++ {
		p.X, p.Y, p.Z = c.Position(i)
		r, g, b := c.Color(i)
		col.R, col.G, col.B = channel(r), channel(g), channel(b)
		rl.DrawPoint3D(p, col)
	}
}

// channel maps a linear color value to 0..255. Galaxy tints may exceed 1 and saturate.
func channel(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func drawGuide() {
	axisX := rl.NewColor(220, 80, 80, guideAlpha)
	axisY := rl.NewColor(80, 220, 80, guideAlpha)
	axisZ := rl.NewColor(80, 80, 220, guideAlpha)
	rl.DrawLine3D(rl.NewVector3(-guideExtent, 0, 0), rl.NewVector3(guideExtent, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -guideExtent, 0), rl.NewVector3(0, guideExtent, 0), axisY)
	rl.DrawLine3D(rl.NewVector3(0, 0, -guideExtent), rl.NewVector3(0, 0, guideExtent), axisZ)
}
