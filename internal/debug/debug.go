package debug

import (
	"fmt"
	"runtime"

	"particle-morph/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Text is rebuilt every updateInterval frames to limit allocations.
	updateInterval = 30
)

// Debug draws the top-right overlays. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// ShowScene adds point count, shape, expansion and gesture presence.
	ShowScene  bool
	font       rl.Font
	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
	d.lines = nil
}

// SetShowMemAlloc sets whether the heap allocation line is drawn.
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
	d.lines = nil
}

// SetShowScene sets whether the scene stats are drawn.
func (d *Debug) SetShowScene(show bool) {
	d.ShowScene = show
	d.lines = nil
}

// SetFont sets the overlay font. Zero texture ID = raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders the enabled overlays for f. Call after the scene and the console.
func (d *Debug) Draw(f scene.Frame) {
	d.frameCount++
	if d.frameCount%updateInterval == 0 || d.lines == nil {
		d.lines = d.collect(f)
	}
	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}

func (d *Debug) collect(f scene.Frame) []string {
	lines := []string{}
	if d.ShowFPS {
		lines = append(lines, fmt.Sprintf("FPS: %d", rl.GetFPS()))
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.memStats)
		lines = append(lines, fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024)))
	}
	if d.ShowScene {
		n := 0
		if f.Cloud != nil {
			n = f.Cloud.Len()
		}
		hand := "no hand"
		if f.Signal.Present {
			hand = fmt.Sprintf("hand %.2f,%.2f pinch %.2f", f.Signal.Focus.X, f.Signal.Focus.Y, f.Signal.Pinch)
		}
		lines = append(lines,
			fmt.Sprintf("%d pts  %s", n, f.Shape),
			fmt.Sprintf("expansion %.2f  z %.1f", f.Expansion, f.Camera.Position[2]),
			hand,
		)
	}
	return lines
}
