package scene

import (
	"particle-morph/internal/cloud"
	"particle-morph/internal/gesture"
	"particle-morph/internal/logger"
	"particle-morph/internal/shapes"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Morpher is the point cloud the controller drives. *morph.Engine implements it.
type Morpher interface {
	MorphTo(kind shapes.Kind) error
	Advance(dt, expansion float32)
	Live() *cloud.Cloud
	Shape() shapes.Kind
	Scale() float32
	Rotation() float32
}

// Background is an optional decorative field advanced alongside the main cloud.
type Background interface {
	Advance(dt float32)
	Live() *cloud.Cloud
}

// Options holds the gesture-to-camera mapping.
type Options struct {
	// IdlePosition is where the camera rests when no hand is present.
	IdlePosition [3]float32
	// FarZ is the camera distance at zero expansion; each unit of expansion pulls it ZoomRange closer.
	FarZ      float32
	ZoomRange float32
	// PanX and PanY map focus offsets from the center to camera x/y.
	PanX float32
	PanY float32
	// Smoothing is the per-tick exponential factor of the default tracker.
	Smoothing float32
	Fovy      float32
	// PresentShape and AbsentShape are selected on presence edges.
	PresentShape shapes.Kind
	AbsentShape  shapes.Kind
}

// DefaultOptions returns the tuned mapping.
func DefaultOptions() Options {
	return Options{
		IdlePosition: [3]float32{0, 0, 100},
		FarZ:         120,
		ZoomRange:    100,
		PanX:         -60,
		PanY:         -40,
		Smoothing:    0.05,
		Fovy:         75,
		PresentShape: shapes.Galaxy,
		AbsentShape:  shapes.Sphere,
	}
}

// Camera is the projection state handed to the sink. Target is always the origin.
type Camera struct {
	Position [3]float32
	Target   [3]float32
	Fovy     float32
}

// Frame is everything a sink needs to draw one tick.
type Frame struct {
	Camera    Camera
	Cloud     *cloud.Cloud
	Dust      *cloud.Cloud
	Scale     float32
	Rotation  float32
	Shape     shapes.Kind
	Expansion float32
	Signal    gesture.Signal
	Tick      uint64
}

// Controller turns gesture signals into camera motion and shape changes and steps the cloud.
// Data flows one way: the controller reads the smoothed camera and pushes the derived expansion
// into the Morpher; the Morpher never reads gesture state.
type Controller struct {
	opts       Options
	morph      Morpher
	dust       Background
	tracker    Tracker
	log        *logger.Logger
	camera     Camera
	target     [3]float32
	wasPresent bool
	expansion  float32
	signal     gesture.Signal
	tick       uint64
}

// New returns a controller with the camera at rest. dust may be nil.
func New(m Morpher, dust Background, opts Options, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Controller{
		opts:    opts,
		morph:   m,
		dust:    dust,
		tracker: Exponential{Factor: opts.Smoothing},
		log:     log,
		signal:  gesture.Idle(),
	}
	c.camera = Camera{Position: opts.IdlePosition, Fovy: opts.Fovy}
	c.target = opts.IdlePosition
	return c
}

// SetTracker replaces the camera tracker. nil restores the exponential default.
func (c *Controller) SetTracker(t Tracker) {
	if t == nil {
		t = Exponential{Factor: c.opts.Smoothing}
	}
	c.tracker = t
}

// Consume runs one tick with the newest signal in slot (Idle if none was published yet).
func (c *Controller) Consume(slot *gesture.Slot, dt float32) error {
	sig, _ := slot.Latest()
	return c.Update(sig, dt)
}

// Update runs one tick: presence edges select the shape, the camera eases toward the gesture
// target, and the cloud advances with the expansion read back from the smoothed camera.
func (c *Controller) Update(sig gesture.Signal, dt float32) error {
	sig = sig.Sanitize()
	c.signal = sig
	c.tick++

	var err error
	if sig.Present != c.wasPresent {
		kind := c.opts.AbsentShape
		if sig.Present {
			kind = c.opts.PresentShape
		}
		// a failed edge stays pending and is retried next tick
		if err = c.morphTo(kind, "presence"); err == nil {
			c.wasPresent = sig.Present
		}
	}

	c.target = c.targetFor(sig)
	d := c.tracker.Update(c.camera.Position, c.target)
	c.camera.Position[0] += d[0]
	c.camera.Position[1] += d[1]
	c.camera.Position[2] += d[2]

	c.expansion = math32.Max(0, (c.opts.FarZ-c.camera.Position[2])/c.opts.ZoomRange)
	c.morph.Advance(dt, c.expansion)
	if c.dust != nil {
		c.dust.Advance(dt)
	}
	return err
}

func (c *Controller) targetFor(sig gesture.Signal) [3]float32 {
	if !sig.Present {
		return c.opts.IdlePosition
	}
	return [3]float32{
		(sig.Focus.X - 0.5) * c.opts.PanX,
		(sig.Focus.Y - 0.5) * c.opts.PanY,
		c.opts.FarZ - sig.Expansion*c.opts.ZoomRange,
	}
}

// ForceShape retargets the cloud regardless of presence. The presence memory is kept, so the
// next real edge still switches shape.
func (c *Controller) ForceShape(kind shapes.Kind) error {
	return c.morphTo(kind, "manual")
}

// Toggle flips between the present and absent shapes.
func (c *Controller) Toggle() error {
	kind := c.opts.PresentShape
	if c.morph.Shape() == kind {
		kind = c.opts.AbsentShape
	}
	return c.ForceShape(kind)
}

func (c *Controller) morphTo(kind shapes.Kind, reason string) error {
	if err := c.morph.MorphTo(kind); err != nil {
		c.log.Error("shape change failed", err, "shape", kind.String(), "reason", reason)
		return errors.Wrapf(err, "scene: morph to %s", kind)
	}
	c.log.Info("shape selected", "shape", kind.String(), "reason", reason, "tick", c.tick)
	return nil
}

// Reset snaps the camera to its idle position.
func (c *Controller) Reset() {
	c.camera.Position = c.opts.IdlePosition
	c.target = c.opts.IdlePosition
	c.expansion = 0
}

// Camera returns the smoothed camera.
func (c *Controller) Camera() Camera { return c.camera }

// Target returns the camera target position of the last tick.
func (c *Controller) Target() [3]float32 { return c.target }

// Expansion returns the expansion derived from the smoothed camera on the last tick.
func (c *Controller) Expansion() float32 { return c.expansion }

// Frame assembles the drawable state of the last tick.
func (c *Controller) Frame() Frame {
	f := Frame{
		Camera:    c.camera,
		Cloud:     c.morph.Live(),
		Scale:     c.morph.Scale(),
		Rotation:  c.morph.Rotation(),
		Shape:     c.morph.Shape(),
		Expansion: c.expansion,
		Signal:    c.signal,
		Tick:      c.tick,
	}
	if c.dust != nil {
		f.Dust = c.dust.Live()
	}
	return f
}
