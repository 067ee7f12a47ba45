package cluster

import (
	"math/rand"
	"testing"

	"github.com/san-kum/bubblepop/internal/field"
)

func gridOf(rows ...string) *field.Grid {
	colors := map[byte]field.Color{
		'r': field.Red, 'g': field.Green, 'b': field.Blue,
		'y': field.Yellow, '*': field.Wildcard,
	}
	g := field.NewGrid(len(rows), len(rows[0]), 40)
	for r, line := range rows {
		for c := 0; c < len(line); c++ {
			g.Set(r, c, colors[line[c]])
		}
	}
	return g
}

func TestFindRowPlusAdjacent(t *testing.T) {
	g := gridOf(
		"rrr.",
		"....",
	)
	g.Set(0, 3, field.Red)
	seed := g.Index(0, 3)

	members := Find(g, seed)
	if len(members) != 4 {
		t.Fatalf("expected cluster of 4, got %d", len(members))
	}
	if members[0] != seed {
		t.Errorf("seed should come first, got %v", members)
	}
	if !DefaultRule().Pops(g, members) {
		t.Fatal("cluster of 4 should pop")
	}
	before := g.Count()
	if n := g.ClearIndices(members); n != 4 || g.Count() != before-4 {
		t.Errorf("expected 4 removed, got %d (count %d -> %d)", n, before, g.Count())
	}
}

func TestFindIsolatedSingletons(t *testing.T) {
	g := gridOf(
		"r.r",
		"...",
	)
	for _, seed := range []int{g.Index(0, 0), g.Index(0, 2)} {
		members := Find(g, seed)
		if len(members) != 1 || members[0] != seed {
			t.Errorf("seed %d: expected singleton, got %v", seed, members)
		}
		if DefaultRule().Pops(g, members) {
			t.Errorf("seed %d: singleton must not pop", seed)
		}
	}
}

func TestFindFreeField(t *testing.T) {
	f := field.NewFree(20)
	f.Add(field.NewBubble(100, 100, field.Red))
	f.Add(field.NewBubble(135, 100, field.Red))
	f.Add(field.NewBubble(170, 100, field.Red))
	f.Add(field.NewBubble(205, 100, field.Blue))
	f.Add(field.NewBubble(400, 400, field.Red))

	members := Find(f, 2)
	if len(members) != 3 {
		t.Fatalf("expected the three touching reds, got %v", members)
	}
	for _, i := range members {
		if i == 4 {
			t.Error("distant red bubble joined the cluster")
		}
	}
}

func TestFindEmptyAndOutOfRangeSeed(t *testing.T) {
	g := gridOf("r.")
	if got := Find(g, g.Index(0, 1)); got != nil {
		t.Errorf("empty seed should give nil, got %v", got)
	}
	if got := Find(g, 99); got != nil {
		t.Errorf("out-of-range seed should give nil, got %v", got)
	}
}

func TestFindWildcardDisabled(t *testing.T) {
	g := gridOf("rr*r")
	members := Find(g, 0)
	if len(members) != 2 {
		t.Errorf("wildcard must not match when disabled, got %v", members)
	}
}

func TestFindWildcard(t *testing.T) {
	rule := Rule{MinSize: 3, Wildcard: true, WildcardSize: 3}

	tests := []struct {
		name string
		row  string
		seed int
		size int
		pops bool
	}{
		{"bridges same colour", "r*r.", 0, 3, true},
		{"exactly three with wildcard pops", "rr*b", 0, 3, true},
		{"four with wildcard does not pop", "rr*r", 0, 4, false},
		{"does not bridge colours", "r*b.", 0, 2, false},
		{"wildcard seed adopts first colour", "*bbr", 0, 3, true},
		{"plain cluster of four pops", "rrrr", 0, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridOf(tt.row)
			members := rule.Find(g, tt.seed)
			if len(members) != tt.size {
				t.Fatalf("expected size %d, got %v", tt.size, members)
			}
			if got := rule.Pops(g, members); got != tt.pops {
				t.Errorf("Pops = %v, want %v", got, tt.pops)
			}
		})
	}
}

func randomGrid(rng *rand.Rand, rows, cols int, palette ...field.Color) *field.Grid {
	if len(palette) == 0 {
		palette = []field.Color{field.None, field.Red, field.Green, field.Blue}
	}
	g := field.NewGrid(rows, cols, 40)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Set(r, c, palette[rng.Intn(len(palette))])
		}
	}
	return g
}

// randomFree scatters n bubbles over a square small enough that many touch.
func randomFree(rng *rand.Rand, n int) *field.Free {
	f := field.NewFree(20)
	palette := []field.Color{field.Red, field.Green, field.Blue}
	for i := 0; i < n; i++ {
		f.Add(field.NewBubble(rng.Float64()*200, rng.Float64()*200, palette[rng.Intn(len(palette))]))
	}
	return f
}

// checkCluster verifies that members is exactly the matching component
// around seed: no duplicates, one concrete colour, every member linked and
// no matching neighbour left outside.
func checkCluster(t *testing.T, g Graph, r Rule, seed int, members []int) {
	t.Helper()
	if g.ColorAt(seed).Empty() {
		if members != nil {
			t.Fatalf("empty seed produced %v", members)
		}
		return
	}
	if len(members) == 0 || members[0] != seed {
		t.Fatalf("seed %d should come first, got %v", seed, members)
	}

	var pinned field.Color
	in := make(map[int]bool, len(members))
	for _, i := range members {
		if in[i] {
			t.Fatalf("index %d reported twice", i)
		}
		in[i] = true
		c := g.ColorAt(i)
		if r.Wildcard && c.IsWildcard() {
			continue
		}
		if pinned == "" {
			pinned = c
		} else if c != pinned {
			t.Fatalf("member %d has colour %s, cluster is %s", i, c, pinned)
		}
	}

	for _, i := range members {
		linked := i == seed
		g.Neighbors(i, func(j int) {
			if in[j] {
				linked = true
				return
			}
			c := g.ColorAt(j)
			switch {
			case c.Empty():
			case r.Wildcard && c.IsWildcard():
				t.Fatalf("wildcard neighbour %d of %d left out", j, i)
			case pinned == "" && r.Wildcard:
				t.Fatalf("neighbour %d of all-wildcard cluster left out", j)
			case c == pinned:
				t.Fatalf("matching neighbour %d of %d left out", j, i)
			}
		})
		if !linked {
			t.Fatalf("member %d has no neighbour in the cluster", i)
		}
	}
}

func TestFindProperties(t *testing.T) {
	t.Run("grid", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for iter := 0; iter < 200; iter++ {
			g := randomGrid(rng, 6, 6)
			seed := rng.Intn(g.Len())
			checkCluster(t, g, DefaultRule(), seed, Find(g, seed))
		}
	})

	t.Run("free", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		for iter := 0; iter < 200; iter++ {
			f := randomFree(rng, 3+rng.Intn(30))
			seed := rng.Intn(f.Len())
			checkCluster(t, f, DefaultRule(), seed, Find(f, seed))
		}
	})

	t.Run("wildcard", func(t *testing.T) {
		rule := Rule{MinSize: 3, Wildcard: true, WildcardSize: 3}
		rng := rand.New(rand.NewSource(13))
		for iter := 0; iter < 300; iter++ {
			g := randomGrid(rng, 6, 6, field.None, field.Red, field.Green, field.Blue, field.Wildcard)
			seed := rng.Intn(g.Len())
			members := rule.Find(g, seed)
			checkCluster(t, g, rule, seed, members)

			if hasWildcard(g, members) && rule.Pops(g, members) != (len(members) == 3) {
				t.Fatalf("wildcard cluster of %d popped wrongly", len(members))
			}
		}
	})
}

func TestComponentsPartition(t *testing.T) {
	g := gridOf(
		"rrb",
		"gbb",
		"g.y",
	)
	comps := Components(g)
	if len(comps) != 4 {
		t.Fatalf("expected 4 clusters, got %d: %v", len(comps), comps)
	}
	total := 0
	for _, c := range comps {
		total += len(c)
	}
	if total != g.Count() {
		t.Errorf("clusters cover %d bubbles, field has %d", total, g.Count())
	}
}
