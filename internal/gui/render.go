package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/bubblepop/internal/field"
	"github.com/san-kum/bubblepop/internal/game"
)

func colorOf(c field.Color) rl.Color {
	r, g, b := c.RGB()
	return rl.NewColor(r, g, b, 255)
}

func (a *App) drawBoard() {
	st := a.Game.Peek()
	radius := float32(a.Rules.Radius)

	if a.Rules.Mode == game.ModeGrid {
		a.drawGridLines()
	} else {
		// losing line
		y := int32(a.Rules.Height - 2*a.Rules.Radius)
		rl.DrawLine(0, y, int32(a.Rules.Width), y, ColDanger)
	}

	for _, b := range st.Bubbles() {
		drawBubble(b, radius)
	}

	if st.Over() {
		return
	}

	if st.Phase == game.Aiming {
		from := st.Shot.Pos
		to := from.Add(field.FromAngle(st.Angle, a.Rules.Height/4))
		rl.DrawLine(int32(from.X), int32(from.Y), int32(to.X), int32(to.Y), ColTextDim)
	}
	if !st.Shot.Color.Empty() {
		drawBubble(st.Shot, radius)
	}
}

func drawBubble(b field.Bubble, radius float32) {
	x, y := int32(b.Pos.X), int32(b.Pos.Y)
	rl.DrawCircle(x, y, radius-1, colorOf(b.Color))
	if b.Color.IsWildcard() {
		rl.DrawCircleLines(x, y, radius-4, ColGrid)
	}
}

func (a *App) drawGridLines() {
	cell := a.Rules.CellSize()
	w, h := int32(a.Rules.Width), int32(a.Rules.Height)
	for c := 1; c < a.Rules.Cols; c++ {
		x := int32(float64(c) * cell)
		rl.DrawLine(x, 0, x, h, ColGrid)
	}
	last := int32(float64(a.Rules.Rows-1) * cell)
	rl.DrawLine(0, last, w, last, ColDanger)
}

func (a *App) drawHUD() {
	st := a.Game.Peek()
	top := int32(a.Rules.Height)
	rl.DrawRectangle(0, top, int32(a.Rules.Width), hudHeight, ColBg)
	rl.DrawLine(0, top, int32(a.Rules.Width), top, ColAccent)

	line := fmt.Sprintf("SCORE %d", st.Score)
	if a.Rules.Mode == game.ModeFree {
		line += fmt.Sprintf("  TRIES %d", st.Tries)
	}
	rl.DrawText(line, 10, top+8, 16, ColSelect)

	if !st.Next.Empty() {
		rl.DrawText("NEXT", int32(a.Rules.Width)-70, top+8, 14, ColText)
		rl.DrawCircle(int32(a.Rules.Width)-20, top+15, 8, colorOf(st.Next))
	}

	status := a.status
	switch {
	case st.Cleared:
		status = "BOARD CLEARED  [R] NEW GAME"
	case st.Over():
		status = "GAME OVER  [R] NEW GAME"
	case a.Paused:
		status = "PAUSED"
	}
	rl.DrawText(status, 10, top+28, 12, ColText)
}
