package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window draws onto the current raylib frame. It must only be used between
// BeginDrawing and EndDrawing.
type Window struct{}

func (Window) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (Window) Circle(x, y, r float64, c color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rl.NewColor(c.R, c.G, c.B, c.A))
}
