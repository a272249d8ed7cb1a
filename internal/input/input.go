package input

import (
	"particle-morph/internal/gesture"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mouse reads the raylib mouse once per frame and publishes the emulated gesture. It must be
// polled from the render thread; raylib input is not safe to read elsewhere.
type Mouse struct {
	pointer gesture.Pointer
	publish func(gesture.Signal)
}

// NewMouse returns a Mouse delivering into publish (usually a Slot's Publish).
func NewMouse(publish func(gesture.Signal)) *Mouse {
	return &Mouse{publish: publish}
}

// Poll samples the mouse. When captured is true (the console owns input) an idle signal is
// published instead, so typing never reads as a hand.
func (m *Mouse) Poll(captured bool) {
	if captured {
		m.publish(gesture.Idle())
		return
	}
	pos := rl.GetMousePosition()
	m.publish(m.pointer.Update(gesture.PointerState{
		X:         pos.X,
		Y:         pos.Y,
		Width:     float32(rl.GetScreenWidth()),
		Height:    float32(rl.GetScreenHeight()),
		Primary:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Secondary: rl.IsMouseButtonDown(rl.MouseButtonRight),
		Wheel:     rl.GetMouseWheelMove(),
	}))
}
