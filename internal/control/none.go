package control

import "github.com/san-kum/bubblepop/internal/game"

type None struct{}

func NewNone() *None { return &None{} }

func (n *None) Compute(s *game.State) game.Input {
	return game.Input{}
}
