package graphics

import (
	"particle-morph/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Run opens the window described by w and drives the main loop. Each frame it calls update with
// the frame time in seconds, then clears to black and calls draw. ESC is left to the console;
// the window closes through its close button.
func Run(w config.Window, update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(w.TargetFPS)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
