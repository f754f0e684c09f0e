package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window opened by Run.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
}

// Run opens the window and runs the main loop. Each frame it calls update (input, simulation),
// then clears the screen and calls draw. ESC toggles the terminal, so the window closes only
// via its close button.
func Run(win Window, update, draw func()) {
	w, h := win.Width, win.Height
	if win.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
	} else {
		rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	}
	rl.InitWindow(w, h, win.Title)
	defer rl.CloseWindow()
	if win.Fullscreen {
		rl.SetWindowSize(rl.GetMonitorWidth(0), rl.GetMonitorHeight(0))
	}

	rl.SetExitKey(rl.KeyNull)
	fps := win.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
