package tui

import (
	"math"
	"strings"

	"github.com/san-kum/bubblepop/internal/field"
	"github.com/san-kum/bubblepop/internal/game"
)

const (
	glyphBubble = '●'
	glyphShot   = '◉'
	glyphAim    = '·'
	glyphEmpty  = ' '
)

type cell struct {
	r     rune
	color field.Color
}

// Board maps the play surface onto a cols x rows character canvas.
type Board struct {
	cols, rows int
	cells      [][]cell
}

func NewBoard(cols, rows int) *Board {
	b := &Board{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for i := range b.cells {
		b.cells[i] = make([]cell, cols)
	}
	b.clear()
	return b
}

func (b *Board) clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = cell{r: glyphEmpty}
		}
	}
}

func (b *Board) set(x, y int, c cell) {
	if x >= 0 && x < b.cols && y >= 0 && y < b.rows {
		b.cells[y][x] = c
	}
}

func (b *Board) project(p field.Vec, rules game.Rules) (int, int) {
	x := int(p.X / rules.Width * float64(b.cols))
	y := int(p.Y / rules.Height * float64(b.rows))
	return x, y
}

// Draw paints the field, the aim guide and the projectile.
func (b *Board) Draw(s *game.State, rules game.Rules) {
	b.clear()

	if s.Phase == game.Aiming {
		from := s.Shot.Pos
		to := from.Add(field.FromAngle(s.Angle, rules.Height/3))
		x0, y0 := b.project(from, rules)
		x1, y1 := b.project(to, rules)
		b.line(x0, y0, x1, y1, cell{r: glyphAim})
	}

	for _, bb := range s.Bubbles() {
		x, y := b.project(bb.Pos, rules)
		b.set(x, y, cell{r: glyphBubble, color: bb.Color})
	}

	if !s.Over() && !s.Shot.Color.Empty() {
		x, y := b.project(s.Shot.Pos, rules)
		b.set(x, y, cell{r: glyphShot, color: s.Shot.Color})
	}
}

func (b *Board) line(x1, y1, x2, y2 int, c cell) {
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		b.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Plain is the canvas without styling, one line per row.
func (b *Board) Plain() string {
	var sb strings.Builder
	for _, row := range b.cells {
		for _, c := range row {
			sb.WriteRune(c.r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) Render() string {
	var sb strings.Builder
	for i, row := range b.cells {
		for _, c := range row {
			switch {
			case c.r == glyphAim:
				sb.WriteString(Guide.Render(string(c.r)))
			case c.color.Empty():
				sb.WriteRune(c.r)
			default:
				sb.WriteString(bubbleStyle(c.color).Render(string(c.r)))
			}
		}
		if i < len(b.cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// boardSize fits the surface's aspect ratio into the terminal, counting a
// character cell as twice as tall as it is wide.
func boardSize(rules game.Rules, termW, termH int) (int, int) {
	maxCols := termW - 4
	maxRows := termH - 8
	if maxCols < 16 {
		maxCols = 16
	}
	if maxRows < 8 {
		maxRows = 8
	}

	aspect := rules.Width / rules.Height
	rows := maxRows
	cols := int(math.Round(float64(rows) * aspect * 2))
	if cols > maxCols {
		cols = maxCols
		rows = int(math.Round(float64(cols) / aspect / 2))
	}
	return cols, rows
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
