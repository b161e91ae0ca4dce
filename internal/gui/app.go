// Package gui shows a running simulation in a raylib window.
package gui

import (
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/solarsim/internal/render"
	"github.com/san-kum/solarsim/internal/sim"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
)

const (
	starCount = 300
	fontSize  = 16
)

type Options struct {
	Title      string
	Width      int
	Height     int
	FPS        int
	Fullscreen bool
}

type App struct {
	Sim     *sim.Simulation
	Name    string
	Stars   *render.Starfield
	Running bool

	surface Window
	logger  *log.Logger
}

func initWindow(o Options) {
	w, h := o.Width, o.Height
	if w <= 0 || h <= 0 {
		w, h = int(render.DefaultWidth), int(render.DefaultHeight)
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), o.Title)
	if o.Fullscreen {
		rl.ToggleFullscreen()
	}
	fps := o.FPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(rl.KeyEscape)
}

func NewApp(s *sim.Simulation, name string, logger *log.Logger) *App {
	return &App{
		Sim:     s,
		Name:    name,
		Stars:   render.NewStarfield(starCount, int64(rl.GetRandomValue(0, 1<<30))),
		Running: true,
		logger:  logger,
	}
}

// Run opens a window and advances s by one update per frame until the
// window is closed or q is pressed.
func Run(s *sim.Simulation, name string, o Options, logger *log.Logger) {
	if o.Title == "" {
		o.Title = "Solar System"
	}
	initWindow(o)
	defer rl.CloseWindow()

	app := NewApp(s, name, logger)
	logger.Info("window open", "preset", name, "bodies", len(s.Bodies()))
	app.RunLoop()
	logger.Info("window closed", "steps", s.Steps(), "days", s.Elapsed()/sim.Day)
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			a.Running = !a.Running
			a.logger.Debug("toggled", "running", a.Running, "step", a.Sim.Steps())
		}
		a.Draw()
	}
}

// Draw renders one frame. While running, the simulation advances once
// before the bodies are drawn.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.Stars.Draw(a.surface)
	if a.Running {
		a.Sim.Update()
		a.Sim.Draw(a.surface)
	} else {
		a.Sim.Show(a.surface)
	}
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()

	rl.DrawText(a.Name, 20, 20, fontSize+4, ColText)
	rl.DrawText(fmt.Sprintf("%.1f days", a.Sim.Elapsed()/sim.Day), 20, 46, fontSize, ColTextDim)

	fps := fmt.Sprintf("FPS: %d", rl.GetFPS())
	rl.DrawText(fps, int32(w)-rl.MeasureText(fps, fontSize)-10, 10, fontSize, ColText)

	if !a.Running {
		rl.DrawText("PAUSED", 20, 70, fontSize, ColText)
	}
	rl.DrawText("[SPACE] PAUSE  [Q] QUIT", 20, int32(h)-30, 14, ColTextDim)
}
