package control

import (
	"math"
	"math/rand"

	"github.com/san-kum/bubblepop/internal/game"
)

// Random fires as soon as a shot is loaded, at a uniformly random angle
// between Spread radians left and right of straight up.
type Random struct {
	Spread float64
	rng    *rand.Rand
}

func NewRandom(spread float64, seed int64) *Random {
	if spread <= 0 || spread > math.Pi/2 {
		spread = math.Pi / 2
	}
	return &Random{Spread: spread, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Compute(s *game.State) game.Input {
	if s.Phase != game.Aiming {
		return game.Input{}
	}
	angle := game.Up + (r.rng.Float64()*2-1)*r.Spread
	return game.AimInput(angle, true)
}
