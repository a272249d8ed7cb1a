package scene

// Tracker decides how far the camera moves toward its target on one tick. Update returns the
// change to apply to current, per axis.
type Tracker interface {
	Update(current, target [3]float32) [3]float32
}

// A few stateless trackers.
var (
	// Frozen never moves the camera.
	Frozen Tracker = frozenTracker{}
	// Instant snaps to the target.
	Instant Tracker = instantTracker{}
)

type frozenTracker struct{}

func (frozenTracker) Update(current, target [3]float32) [3]float32 {
	return [3]float32{}
}

type instantTracker struct{}

func (instantTracker) Update(current, target [3]float32) [3]float32 {
	return [3]float32{target[0] - current[0], target[1] - current[1], target[2] - current[2]}
}

// Exponential closes a fixed fraction of the remaining gap every tick, independently per axis.
// It never overshoots for Factor in (0,1].
type Exponential struct {
	Factor float32
}

// Update implements Tracker.
func (e Exponential) Update(current, target [3]float32) [3]float32 {
	return [3]float32{
		(target[0] - current[0]) * e.Factor,
		(target[1] - current[1]) * e.Factor,
		(target[2] - current[2]) * e.Factor,
	}
}
