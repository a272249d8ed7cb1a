package raster

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"particle-morph/internal/scene"

	"github.com/HugoSmits86/nativewebp"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Options controls the software render of a frame.
type Options struct {
	// Size is the edge of the square output in pixels.
	Size int
	// Supersample renders at Size*Supersample and scales down.
	Supersample int
	// CloudGain and DustGain weight each point's color before accumulation.
	CloudGain float32
	DustGain  float32
	// GlowRadius is the Gaussian radius of the bloom pass in output pixels; 0 disables it.
	GlowRadius float64
}

// DefaultOptions returns a 512px render with 2x supersampling and a soft glow.
func DefaultOptions() Options {
	return Options{Size: 512, Supersample: 2, CloudGain: 0.35, DustGain: 0.2, GlowRadius: 3}
}

// Render draws f headlessly: additive point splats, a downscale and an optional glow.
func Render(f scene.Frame, opts Options) (image.Image, error) {
	if opts.Size <= 0 {
		return nil, errors.Errorf("raster: size %d", opts.Size)
	}
	ss := max(opts.Supersample, 1)
	edge := opts.Size * ss

	fb := NewFrameBuffer(edge, edge)
	v := NewView(f.Camera, edge, edge)
	if f.Dust != nil {
		Splat(fb, v, f.Dust, 0, 1, opts.DustGain)
	}
	if f.Cloud != nil {
		Splat(fb, v, f.Cloud, f.Rotation, f.Scale, opts.CloudGain)
	}

	var img image.Image = fb.Image(1)
	if ss > 1 {
		img = Downscale(img, opts.Size)
	}
	if opts.GlowRadius > 0 {
		img = Glow(img, opts.GlowRadius)
	}
	return img, nil
}

// Downscale resamples img to a size by size square with CatmullRom.
func Downscale(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Glow adds a blurred copy of img on top of itself.
func Glow(img image.Image, radius float64) *image.RGBA {
	return blend.Add(img, blur.Gaussian(img, radius))
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	return errors.Wrap(nativewebp.Encode(w, img, nil), "raster: encode webp")
}

// WriteWebP encodes img into path, creating the directory if needed.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "raster: create dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "raster: create output")
	}
	if err := EncodeWebP(f, img); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "raster: close output")
}
