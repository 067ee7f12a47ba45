package field

// Grid is a fixed matrix of cells. Cell (row, col) has index row*cols+col.
type Grid struct {
	rows, cols int
	cellSize   float64
	cells      []Color
}

func NewGrid(rows, cols int, cellSize float64) *Grid {
	return &Grid{
		rows:     rows,
		cols:     cols,
		cellSize: cellSize,
		cells:    make([]Color, rows*cols),
	}
}

func (g *Grid) Rows() int           { return g.rows }
func (g *Grid) Cols() int           { return g.cols }
func (g *Grid) CellSize() float64   { return g.cellSize }
func (g *Grid) Radius() float64     { return g.cellSize / 2 }
func (g *Grid) Len() int            { return len(g.cells) }
func (g *Grid) ColorAt(i int) Color { return g.cells[i] }

func (g *Grid) In(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) Index(row, col int) int { return row*g.cols + col }

func (g *Grid) RowCol(i int) (int, int) { return i / g.cols, i % g.cols }

func (g *Grid) At(row, col int) Color {
	if !g.In(row, col) {
		return None
	}
	return g.cells[g.Index(row, col)]
}

// Set stores c in a cell. Out-of-range coordinates are ignored and reported
// with false.
func (g *Grid) Set(row, col int, c Color) bool {
	if !g.In(row, col) {
		return false
	}
	g.cells[g.Index(row, col)] = c
	return true
}

func (g *Grid) Clear(row, col int) { g.Set(row, col, None) }

// ClearIndices empties the given cells and returns how many held a bubble.
func (g *Grid) ClearIndices(indices []int) int {
	n := 0
	for _, i := range indices {
		if i < 0 || i >= len(g.cells) || g.cells[i].Empty() {
			continue
		}
		g.cells[i] = None
		n++
	}
	return n
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if !c.Empty() {
			n++
		}
	}
	return n
}

var gridDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors calls fn for each occupied orthogonal neighbour of cell i.
// Empty cells have no neighbours.
func (g *Grid) Neighbors(i int, fn func(j int)) {
	if g.cells[i].Empty() {
		return
	}
	row, col := g.RowCol(i)
	for _, d := range gridDirs {
		r, c := row+d[0], col+d[1]
		if g.In(r, c) && !g.At(r, c).Empty() {
			fn(g.Index(r, c))
		}
	}
}

// Center returns the pixel center of a cell.
func (g *Grid) Center(row, col int) Vec {
	return Vec{
		X: float64(col)*g.cellSize + g.cellSize/2,
		Y: float64(row)*g.cellSize + g.cellSize/2,
	}
}

// CellAt returns the cell containing pixel p. The result may be out of range.
func (g *Grid) CellAt(p Vec) (int, int) {
	return floorDiv(p.Y, g.cellSize), floorDiv(p.X, g.cellSize)
}

func floorDiv(v, size float64) int {
	q := int(v / size)
	if v < 0 && float64(q)*size != v {
		q--
	}
	return q
}

// Touching reports whether a bubble centered at p is within one cell size of
// any occupied cell center.
func (g *Grid) Touching(p Vec) bool {
	for i, c := range g.cells {
		if c.Empty() {
			continue
		}
		row, col := g.RowCol(i)
		if g.Center(row, col).Dist(p) < g.cellSize {
			return true
		}
	}
	return false
}

// RowOccupied reports whether any cell of row holds a bubble.
func (g *Grid) RowOccupied(row int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	for col := 0; col < g.cols; col++ {
		if !g.At(row, col).Empty() {
			return true
		}
	}
	return false
}

// Fill sets the first n rows using pick for each cell and clears the rest.
func (g *Grid) Fill(n int, pick func() Color) {
	for i := range g.cells {
		row, _ := g.RowCol(i)
		if row < n {
			g.cells[i] = pick()
		} else {
			g.cells[i] = None
		}
	}
}

// Bubbles returns the occupied cells as resting bubbles at their centers.
func (g *Grid) Bubbles() []Bubble {
	out := make([]Bubble, 0, len(g.cells))
	for i, c := range g.cells {
		if c.Empty() {
			continue
		}
		row, col := g.RowCol(i)
		out = append(out, Bubble{Pos: g.Center(row, col), Color: c})
	}
	return out
}

func (g *Grid) Clone() *Grid {
	cells := make([]Color, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cellSize: g.cellSize, cells: cells}
}
