package cluster

import (
	"github.com/san-kum/bubblepop/internal/field"
)

// Unanchored returns the occupied slots of g, in ascending order, that have
// no path of occupied neighbours (any colour) to a slot for which anchored
// returns true.
func Unanchored(g Graph, anchored func(i int) bool) []int {
	n := g.Len()
	reached := make([]bool, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !g.ColorAt(i).Empty() && anchored(i) {
			reached[i] = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		g.Neighbors(cur, func(j int) {
			if reached[j] || g.ColorAt(j).Empty() {
				return
			}
			reached[j] = true
			queue = append(queue, j)
		})
	}

	var out []int
	for i := 0; i < n; i++ {
		if !reached[i] && !g.ColorAt(i).Empty() {
			out = append(out, i)
		}
	}
	return out
}

// Floating returns the grid cells no longer hanging from the top row.
func Floating(g *field.Grid) []int {
	return Unanchored(g, func(i int) bool {
		row, _ := g.RowCol(i)
		return row == 0
	})
}
