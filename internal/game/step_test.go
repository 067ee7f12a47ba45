package game_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bubblepop/internal/field"
	"github.com/san-kum/bubblepop/internal/game"
)

// fireUntilSettled launches the loaded shot at angle and steps until it is
// placed, skipped or missed.
func fireUntilSettled(g *game.Game, angle float64) game.StepResult {
	res := g.Step(game.AimInput(angle, true))
	Expect(res.Launched).To(BeTrue())
	for i := 0; i < 2000; i++ {
		res = g.Step(game.Input{})
		if res.Attached || res.Skipped || res.Missed || res.Over {
			return res
		}
	}
	Fail("shot never settled")
	return res
}

func loaded(rules game.Rules, x float64, c field.Color) field.Bubble {
	return field.Bubble{Pos: rules.ShooterPos(x), Color: c}
}

var _ = Describe("free-floating board", func() {
	var (
		rules game.Rules
		board *field.Free
	)

	BeforeEach(func() {
		rules = game.FreeRules()
		board = field.NewFree(rules.Radius)
		board.Add(field.NewBubble(400, 100, field.Red))
		board.Add(field.NewBubble(100, 100, field.Blue))
	})

	newGame := func() *game.Game {
		g, err := game.NewFromState(rules, game.State{
			Free:     board,
			ShooterX: 400,
			Shot:     loaded(rules, 400, field.Red),
			Next:     field.Green,
		}, 1)
		Expect(err).NotTo(HaveOccurred())
		return g
	}

	It("keeps a cluster smaller than three and grows the field by one", func() {
		g := newGame()
		before := g.State().Count()

		res := fireUntilSettled(g, game.Up)

		Expect(res.Attached).To(BeTrue())
		Expect(res.Cluster).To(Equal(2))
		Expect(res.Popped).To(BeZero())
		Expect(g.State().Count()).To(Equal(before + 1))
		Expect(g.State().Score).To(BeZero())
	})

	It("pops a cluster of three and scores per bubble", func() {
		board.Add(field.NewBubble(435, 100, field.Red))
		g := newGame()
		before := g.State().Count()

		res := fireUntilSettled(g, game.Up)

		Expect(res.Cluster).To(Equal(3))
		Expect(res.Popped).To(Equal(3))
		Expect(g.State().Count()).To(Equal(before + 1 - 3))
		Expect(g.State().Score).To(Equal(300))
		Expect(g.State().Phase).To(Equal(game.Aiming))
		Expect(g.State().Shot.Color).To(Equal(field.Green))
	})

	It("awards an extra try when the score passes the threshold", func() {
		rules.ExtraTryEvery = 300
		board.Add(field.NewBubble(435, 100, field.Red))
		g := newGame()

		res := fireUntilSettled(g, game.Up)

		Expect(res.ExtraTries).To(Equal(1))
		Expect(g.State().Tries).To(Equal(rules.Tries + 1))
		Expect(g.State().NextTryAt).To(Equal(600))
	})

	It("ends the game once the last try is missed", func() {
		rules.Tries = 1
		board = field.NewFree(rules.Radius)
		board.Add(field.NewBubble(50, 50, field.Blue))
		g := newGame()

		res := fireUntilSettled(g, game.Up)

		Expect(res.Missed).To(BeTrue())
		Expect(res.Over).To(BeTrue())
		Expect(g.State().Phase).To(Equal(game.Over))
		Expect(g.Step(game.AimInput(game.Up, true)).Launched).To(BeFalse())
	})

	It("declares the board cleared when the last bubbles pop", func() {
		board = field.NewFree(rules.Radius)
		board.Add(field.NewBubble(400, 100, field.Red))
		board.Add(field.NewBubble(435, 100, field.Red))
		g := newGame()

		res := fireUntilSettled(g, game.Up)

		Expect(res.Over).To(BeTrue())
		Expect(res.Cleared).To(BeTrue())
		Expect(g.State().Cleared).To(BeTrue())
	})
})

var _ = Describe("grid board", func() {
	var (
		rules game.Rules
		grid  *field.Grid
	)

	BeforeEach(func() {
		rules = game.GridRules()
		grid = field.NewGrid(rules.Rows, rules.Cols, rules.CellSize())
		grid.Set(0, 7, field.Blue)
	})

	newGame := func(x float64, c field.Color) *game.Game {
		g, err := game.NewFromState(rules, game.State{
			Grid:     grid,
			ShooterX: x,
			Shot:     loaded(rules, x, c),
			Next:     field.Yellow,
		}, 1)
		Expect(err).NotTo(HaveOccurred())
		return g
	}

	It("removes a row of three plus the new neighbour", func() {
		for col := 1; col <= 3; col++ {
			grid.Set(0, col, field.Red)
		}
		g := newGame(180, field.Red)
		before := g.State().Count()

		res := fireUntilSettled(g, game.Up)

		Expect(res.Attached).To(BeTrue())
		Expect(res.Cluster).To(Equal(4))
		Expect(res.Popped).To(Equal(4))
		Expect(g.State().Count()).To(Equal(before + 1 - 4))
		Expect(g.State().Score).To(Equal(4*10 + 1*5))
	})

	It("drops bubbles left hanging by a pop", func() {
		for col := 0; col <= 2; col++ {
			grid.Set(0, col, field.Red)
		}
		grid.Set(1, 1, field.Green)
		g := newGame(140, field.Red)

		res := fireUntilSettled(g, game.Up)

		Expect(res.Popped).To(Equal(4))
		Expect(res.Dropped).To(Equal(1))
		Expect(g.State().Grid.At(1, 1)).To(Equal(field.None))
		Expect(g.State().Score).To(Equal(45 + 5))
	})

	It("keeps two isolated bubbles of the same colour", func() {
		grid.Set(0, 0, field.Red)
		g := newGame(180, field.Red)

		res := fireUntilSettled(g, game.Up)

		Expect(res.Cluster).To(Equal(1))
		Expect(g.State().Grid.At(0, 0)).To(Equal(field.Red))
		Expect(g.State().Grid.At(0, 4)).To(Equal(field.Red))
	})

	It("ends the game when a bubble lands in the last row", func() {
		colors := []field.Color{field.Red, field.Green}
		for row := 0; row < rules.Rows-1; row++ {
			grid.Set(row, 4, colors[row%2])
		}
		g := newGame(180, field.Blue)

		res := fireUntilSettled(g, game.Up)

		Expect(res.Attached).To(BeTrue())
		Expect(res.Over).To(BeTrue())
		Expect(g.State().Grid.RowOccupied(rules.Rows - 1)).To(BeTrue())
	})
})

var _ = Describe("determinism", func() {
	It("deals the same board for the same seed", func() {
		for _, rules := range []game.Rules{game.FreeRules(), game.GridRules()} {
			a, err := game.New(rules, 42)
			Expect(err).NotTo(HaveOccurred())
			b, err := game.New(rules, 42)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.State().Bubbles()).To(Equal(b.State().Bubbles()))
			Expect(a.State().Shot).To(Equal(b.State().Shot))
			Expect(a.State().Next).To(Equal(b.State().Next))
		}
	})

	It("never overlaps the initial free bubbles", func() {
		g, err := game.New(game.FreeRules(), 3)
		Expect(err).NotTo(HaveOccurred())
		bubbles := g.State().Bubbles()
		Expect(bubbles).To(HaveLen(game.FreeRules().InitialBubbles))
		for i := range bubbles {
			for j := i + 1; j < len(bubbles); j++ {
				Expect(bubbles[i].Touches(bubbles[j], game.FreeRules().Radius)).To(BeFalse())
			}
		}
	})
})
