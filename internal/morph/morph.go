package morph

import (
	"particle-morph/internal/cloud"
	"particle-morph/internal/logger"
	"particle-morph/internal/shapes"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidCount is returned by New when count <= 0.
	ErrInvalidCount = errors.New("morph: point count must be positive")
	// ErrInvalidBlend is returned by New when the blend factor is outside (0,1).
	ErrInvalidBlend = errors.New("morph: blend factor must be in (0,1)")
)

// phaseStep spreads per-point drift phases so neighbours never move in lockstep.
const phaseStep = 123.456

// Options tunes an Engine. Zero fields are not defaulted; start from DefaultOptions.
type Options struct {
	// Blend is the per-tick exponential smoothing factor k in (0,1).
	Blend float32
	// DriftSpeed and DriftAmplitude shape the perpetual sinusoidal offset. Amplitude 0 disables it.
	DriftSpeed     float32
	DriftAmplitude float32
	// SphereRadius and GalaxyScale are the scale arguments passed to the generator per kind.
	SphereRadius float32
	GalaxyScale  float32
	// BaseSpin is added to the rotation every tick; SpinGain scales the expansion contribution.
	BaseSpin float32
	SpinGain float32
	// ScaleGain maps expansion to cloud scale: 1 + expansion*ScaleGain.
	ScaleGain float32
	// ReferenceStep enables frame-rate-independent blending when > 0: k is rescaled to
	// 1-(1-k)^(dt/ReferenceStep). Zero keeps a fixed k per tick regardless of dt.
	ReferenceStep float32
}

// DefaultOptions returns the tuned values for the 30k point main cloud.
func DefaultOptions() Options {
	return Options{
		Blend:          0.03,
		DriftSpeed:     0.3,
		DriftAmplitude: 1.2,
		SphereRadius:   20,
		GalaxyScale:    2.5,
		BaseSpin:       0.002,
		SpinGain:       0.01,
		ScaleGain:      2,
	}
}

// Engine owns the live cloud handed to the sink and the goal cloud it converges to. Every
// Advance pulls live toward goal plus a drift offset, so the cloud never settles.
// Engine is not safe for concurrent use; it is driven from the frame loop.
type Engine struct {
	opts  Options
	gen   shapes.Generator
	log   *logger.Logger
	live  *cloud.Cloud
	goal  *cloud.Cloud
	shape shapes.Kind

	flowTime    float32
	scale       float32
	rotation    float32
	generations int
}

// New builds an engine of count points showing a sphere. live starts equal to goal.
func New(count int, gen shapes.Generator, opts Options, log *logger.Logger) (*Engine, error) {
	if count <= 0 {
		return nil, errors.Wrapf(ErrInvalidCount, "got %d", count)
	}
	if !(opts.Blend > 0 && opts.Blend < 1) {
		return nil, errors.Wrapf(ErrInvalidBlend, "got %v", opts.Blend)
	}
	if log == nil {
		log = logger.NewNop()
	}
	e := &Engine{opts: opts, gen: gen, log: log, shape: shapes.Sphere, scale: 1}
	goal, err := e.generate(shapes.Sphere, count)
	if err != nil {
		return nil, err
	}
	e.goal = goal
	e.live = goal.Clone()
	return e, nil
}

// MorphTo retargets the engine. Calling it with the current shape does nothing. The live
// buffer is not touched; the visible transition happens over the following Advance calls.
func (e *Engine) MorphTo(kind shapes.Kind) error {
	if kind == e.shape {
		return nil
	}
	goal, err := e.generate(kind, e.live.Len())
	if err != nil {
		return err
	}
	if err := e.goal.CopyFrom(goal); err != nil {
		return errors.Wrap(err, "morph: replace goal")
	}
	e.log.Info("morph target changed", "from", e.shape.String(), "to", kind.String())
	e.shape = kind
	return nil
}

func (e *Engine) generate(kind shapes.Kind, count int) (*cloud.Cloud, error) {
	scale := e.opts.SphereRadius
	if kind == shapes.Galaxy {
		scale = e.opts.GalaxyScale
	}
	c, err := e.gen.Generate(kind, count, scale)
	if err != nil {
		return nil, errors.Wrapf(err, "morph: generate %s", kind)
	}
	if c.Len() != count {
		return nil, errors.Wrapf(cloud.ErrLengthMismatch, "morph: generator returned %d points, want %d", c.Len(), count)
	}
	e.generations++
	return c, nil
}

// Advance steps the simulation by one frame. dt advances the drift clock; expansion drives the
// scale and spin response and is treated as 0 when NaN, infinite or negative.
func (e *Engine) Advance(dt, expansion float32) {
	if !finite(dt) || dt < 0 {
		dt = 0
	}
	expansion = Sanitize(expansion)
	e.flowTime += dt
	k := e.blendFactor(dt)

	live, goal := e.live, e.goal
	for i := 0; i < live.Len(); i++ {
		dx, dy, dz := e.Offset(i, e.flowTime)
		j := i * cloud.Stride

		tx := goal.Positions[j] + dx
		ty := goal.Positions[j+1] + dy
		tz := goal.Positions[j+2] + dz
		live.Positions[j] += (tx - live.Positions[j]) * k
		live.Positions[j+1] += (ty - live.Positions[j+1]) * k
		live.Positions[j+2] += (tz - live.Positions[j+2]) * k

		live.Colors[j] += (goal.Colors[j] - live.Colors[j]) * k
		live.Colors[j+1] += (goal.Colors[j+1] - live.Colors[j+1]) * k
		live.Colors[j+2] += (goal.Colors[j+2] - live.Colors[j+2]) * k
	}

	e.scale = 1 + expansion*e.opts.ScaleGain
	e.rotation += e.opts.BaseSpin + expansion*e.opts.SpinGain
}

// Offset returns the drift added to goal point i at flow time t.
func (e *Engine) Offset(i int, t float32) (dx, dy, dz float32) {
	amp := e.opts.DriftAmplitude
	if amp == 0 {
		return 0, 0, 0
	}
	s := e.opts.DriftSpeed
	phase := float32(i) * phaseStep
	dx = math32.Sin(t*s+phase) * amp
	dy = math32.Sin(t*s*1.1+phase*1.3) * amp
	dz = math32.Sin(t*s*0.9+phase*1.7) * amp
	return dx, dy, dz
}

func (e *Engine) blendFactor(dt float32) float32 {
	k := e.opts.Blend
	if e.opts.ReferenceStep <= 0 || dt == 0 {
		return k
	}
	return 1 - math32.Pow(1-k, dt/e.opts.ReferenceStep)
}

// Sanitize maps NaN, infinities and negative values to 0.
func Sanitize(v float32) float32 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// Live returns the buffer the sink draws. It is updated in place by Advance.
func (e *Engine) Live() *cloud.Cloud { return e.live }

// Goal returns the current morph target.
func (e *Engine) Goal() *cloud.Cloud { return e.goal }

// Shape returns the kind the engine is converging to.
func (e *Engine) Shape() shapes.Kind { return e.shape }

// Scale returns the whole-cloud scale computed by the last Advance.
func (e *Engine) Scale() float32 { return e.scale }

// Rotation returns the accumulated rotation around Y, in radians.
func (e *Engine) Rotation() float32 { return e.rotation }

// FlowTime returns the drift clock.
func (e *Engine) FlowTime() float32 { return e.flowTime }

// Generations returns how many goal clouds have been generated, including the initial one.
func (e *Engine) Generations() int { return e.generations }
