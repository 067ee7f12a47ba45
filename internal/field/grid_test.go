package field

import "testing"

func TestGridSetOutOfRange(t *testing.T) {
	g := NewGrid(3, 4, 40)

	tests := []struct {
		name     string
		row, col int
		ok       bool
	}{
		{"inside", 1, 2, true},
		{"negative row", -1, 0, false},
		{"negative col", 0, -1, false},
		{"row past end", 3, 0, false},
		{"col past end", 0, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Set(tt.row, tt.col, Red); got != tt.ok {
				t.Errorf("Set(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.ok)
			}
		})
	}

	if g.Count() != 1 {
		t.Errorf("expected 1 occupied cell, got %d", g.Count())
	}
}

func TestGridNeighbors(t *testing.T) {
	g := NewGrid(3, 3, 40)
	g.Fill(3, func() Color { return Blue })
	g.Clear(0, 1)

	var got []int
	g.Neighbors(g.Index(1, 1), func(j int) { got = append(got, j) })
	if len(got) != 3 {
		t.Fatalf("expected 3 occupied neighbours of the center, got %v", got)
	}
	for _, j := range got {
		if j == g.Index(0, 1) {
			t.Error("empty cell reported as neighbour")
		}
	}

	got = got[:0]
	g.Neighbors(g.Index(0, 1), func(j int) { got = append(got, j) })
	if len(got) != 0 {
		t.Errorf("empty cell should have no neighbours, got %v", got)
	}

	got = got[:0]
	g.Neighbors(g.Index(2, 2), func(j int) { got = append(got, j) })
	if len(got) != 2 {
		t.Errorf("corner should have 2 neighbours, got %v", got)
	}
}

func TestGridCellAt(t *testing.T) {
	g := NewGrid(12, 8, 40)

	tests := []struct {
		p        Vec
		row, col int
	}{
		{V(20, 20), 0, 0},
		{V(39.9, 79.9), 1, 0},
		{V(319, 10), 0, 7},
		{V(-5, 10), 0, -1},
		{V(10, -0.5), -1, 0},
	}

	for _, tt := range tests {
		row, col := g.CellAt(tt.p)
		if row != tt.row || col != tt.col {
			t.Errorf("CellAt(%v) = (%d, %d), want (%d, %d)", tt.p, row, col, tt.row, tt.col)
		}
	}
}

func TestGridRowOccupied(t *testing.T) {
	g := NewGrid(4, 4, 40)
	if g.RowOccupied(3) {
		t.Error("fresh grid should be empty")
	}
	g.Set(3, 2, Green)
	if !g.RowOccupied(3) {
		t.Error("expected last row to be occupied")
	}
	if g.RowOccupied(9) {
		t.Error("out-of-range row must report false")
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 2, 40)
	g.Set(0, 0, Red)
	c := g.Clone()
	c.Set(0, 0, Blue)
	if g.At(0, 0) != Red {
		t.Error("clone shares cells with the original")
	}
}
