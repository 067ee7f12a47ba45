package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bubblepop/internal/control"
	"github.com/san-kum/bubblepop/internal/field"
	"github.com/san-kum/bubblepop/internal/game"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColDanger  = rl.NewColor(120, 30, 30, 255)
)

// hudHeight is the strip below the play surface used for the score line.
const hudHeight = 48

type App struct {
	Game   *game.Game
	Ctrl   *control.Manual
	Rules  game.Rules
	Paused bool

	status string
}

func initWindow(rules game.Rules, fps int) {
	rl.InitWindow(int32(rules.Width), int32(rules.Height)+hudHeight, "bubblepop")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(rules game.Rules, seed int64) (*App, error) {
	g, err := game.New(rules, seed)
	if err != nil {
		return nil, err
	}
	return &App{
		Game:  g,
		Ctrl:  control.NewManual(),
		Rules: g.Rules(),
	}, nil
}

// Run opens a window and blocks until it is closed.
func Run(rules game.Rules, seed int64, fps int) error {
	app, err := NewApp(rules, seed)
	if err != nil {
		return err
	}
	if fps <= 0 {
		fps = 60
	}
	initWindow(app.Rules, fps)
	defer rl.CloseWindow()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	st := a.Game.Peek()

	if rl.IsKeyPressed(rl.KeyR) {
		a.Game.Reset()
		a.status = fmt.Sprintf("new game, seed %d", a.Game.Seed())
		return
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Paused = !a.Paused
	}
	if a.Paused || st.Over() {
		return
	}

	mouse := rl.GetMousePosition()
	if mouse.Y < float32(a.Rules.Height) {
		from := a.Rules.ShooterPos(st.ShooterX)
		a.Ctrl.AimAt(game.ClampAim(game.AngleTo(from, field.V(float64(mouse.X), float64(mouse.Y)))))
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		a.Ctrl.Move(-1)
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		a.Ctrl.Move(1)
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) || rl.IsKeyPressed(rl.KeySpace) {
		a.Ctrl.Fire()
	}

	res := a.Game.Step(a.Ctrl.Compute(st))
	switch {
	case res.Popped > 0 && res.Dropped > 0:
		a.status = fmt.Sprintf("popped %d, dropped %d", res.Popped, res.Dropped)
	case res.Popped > 0:
		a.status = fmt.Sprintf("popped %d", res.Popped)
	case res.Missed:
		a.status = "missed"
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawBoard()
	a.drawHUD()

	rl.EndDrawing()
}
