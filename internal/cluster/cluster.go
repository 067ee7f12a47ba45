// Package cluster finds connected groups of matching bubbles.
package cluster

import (
	"github.com/san-kum/bubblepop/internal/field"
)

// Graph is an index-based view of a field. Indices are stable for the
// duration of a search. Empty slots report field.None and have no neighbours.
type Graph interface {
	Len() int
	ColorAt(i int) field.Color
	Neighbors(i int, fn func(j int))
}

const DefaultMinSize = 3

// Rule decides which bubbles join a cluster and when a cluster pops.
type Rule struct {
	MinSize int
	// Wildcard enables field.Wildcard: it matches every colour, and a cluster
	// containing one pops only at exactly WildcardSize members.
	Wildcard     bool
	WildcardSize int
}

func DefaultRule() Rule {
	return Rule{MinSize: DefaultMinSize, WildcardSize: DefaultMinSize}
}

// Find returns the cluster grown from seed under the default rule.
func Find(g Graph, seed int) []int {
	return DefaultRule().Find(g, seed)
}

// Find returns the connected set of bubbles reachable from seed through
// matching neighbours, seed first. An out-of-range or empty seed yields nil.
func (r Rule) Find(g Graph, seed int) []int {
	if seed < 0 || seed >= g.Len() || g.ColorAt(seed).Empty() {
		return nil
	}
	visited := make([]bool, g.Len())
	return r.flood(g, seed, visited)
}

// flood is a breadth-first walk with an explicit queue. visited is shared
// so callers can sweep a whole field without revisiting.
func (r Rule) flood(g Graph, seed int, visited []bool) []int {
	key := g.ColorAt(seed)
	visited[seed] = true
	queue := []int{seed}
	members := make([]int, 0, 8)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		members = append(members, cur)

		g.Neighbors(cur, func(j int) {
			if visited[j] {
				return
			}
			if !r.match(&key, g.ColorAt(j)) {
				return
			}
			visited[j] = true
			queue = append(queue, j)
		})
	}
	return members
}

// match reports whether c can join a cluster of colour *key. A wildcard key
// is pinned to the first concrete colour it meets.
func (r Rule) match(key *field.Color, c field.Color) bool {
	if c.Empty() {
		return false
	}
	if c == *key {
		return true
	}
	if !r.Wildcard {
		return false
	}
	if c.IsWildcard() {
		return true
	}
	if key.IsWildcard() {
		*key = c
		return true
	}
	return false
}

// Pops reports whether a cluster found with this rule should be removed.
func (r Rule) Pops(g Graph, members []int) bool {
	n := len(members)
	if r.Wildcard && hasWildcard(g, members) {
		return n == r.WildcardSize
	}
	return n >= r.minSize()
}

func (r Rule) minSize() int {
	if r.MinSize <= 0 {
		return DefaultMinSize
	}
	return r.MinSize
}

func hasWildcard(g Graph, members []int) bool {
	for _, i := range members {
		if g.ColorAt(i).IsWildcard() {
			return true
		}
	}
	return false
}

// Components partitions every occupied slot of g into clusters. Each bubble
// is reported once, in the first cluster that reaches it.
func (r Rule) Components(g Graph) [][]int {
	visited := make([]bool, g.Len())
	var out [][]int
	for i := 0; i < g.Len(); i++ {
		if visited[i] || g.ColorAt(i).Empty() {
			continue
		}
		out = append(out, r.flood(g, i, visited))
	}
	return out
}

// Components partitions g under the default rule.
func Components(g Graph) [][]int {
	return DefaultRule().Components(g)
}
