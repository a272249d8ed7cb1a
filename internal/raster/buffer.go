package raster

import (
	"image"
	"image/color"
)

// FrameBuffer accumulates additive light as flat RGB floats for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Accum  []float32 // RGB interleaved, len = W*H*3
}

// NewFrameBuffer allocates a black buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{Width: w, Height: h, Accum: make([]float32, w*h*3)}
}

// Add splats light onto pixel (x,y). Out-of-bounds pixels are ignored.
func (fb *FrameBuffer) Add(x, y int, r, g, b float32) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 3
	fb.Accum[i] += r
	fb.Accum[i+1] += g
	fb.Accum[i+2] += b
}

// At returns the accumulated light at (x,y).
func (fb *FrameBuffer) At(x, y int) (r, g, b float32) {
	i := (y*fb.Width + x) * 3
	return fb.Accum[i], fb.Accum[i+1], fb.Accum[i+2]
}

// Clear resets the buffer to black.
func (fb *FrameBuffer) Clear() {
	clear(fb.Accum)
}

// Image converts the buffer to an opaque image, scaling by exposure and saturating at white.
func (fb *FrameBuffer) Image(exposure float32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for p := 0; p < fb.Width*fb.Height; p++ {
		i := p * 3
		img.Pix[p*4] = toByte(fb.Accum[i] * exposure)
		img.Pix[p*4+1] = toByte(fb.Accum[i+1] * exposure)
		img.Pix[p*4+2] = toByte(fb.Accum[i+2] * exposure)
		img.Pix[p*4+3] = 0xff
	}
	return img
}

func toByte(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}

// Luma is a quick brightness probe used by tests and the trace command.
func Luma(c color.Color) float32 {
	r, g, b, _ := c.RGBA()
	return (0.2126*float32(r) + 0.7152*float32(g) + 0.0722*float32(b)) / 0xffff
}
