package game

import (
	"github.com/san-kum/bubblepop/internal/field"
)

type Phase int

const (
	Aiming Phase = iota
	InFlight
	Over
)

func (p Phase) String() string {
	switch p {
	case Aiming:
		return "aiming"
	case InFlight:
		return "in_flight"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// State is everything a frame step reads and writes. Exactly one of Free and
// Grid is set, matching the rules' mode.
type State struct {
	Phase Phase
	Free  *field.Free
	Grid  *field.Grid

	Shot     field.Bubble
	Next     field.Color
	ShooterX float64
	Angle    float64

	Score     int
	Tries     int
	NextTryAt int
	Cleared   bool

	Frame   int
	Shots   int
	Popped  int
	Dropped int
}

// Clone returns a deep copy; the board is not shared with s.
func (s State) Clone() State {
	c := s
	if s.Free != nil {
		c.Free = s.Free.Clone()
	}
	if s.Grid != nil {
		c.Grid = s.Grid.Clone()
	}
	return c
}

// Count is the number of bubbles resting on the board.
func (s State) Count() int {
	switch {
	case s.Free != nil:
		return s.Free.Count()
	case s.Grid != nil:
		return s.Grid.Count()
	}
	return 0
}

// Bubbles lists the resting bubbles with their pixel positions.
func (s State) Bubbles() []field.Bubble {
	switch {
	case s.Free != nil:
		return s.Free.Bubbles()
	case s.Grid != nil:
		return s.Grid.Bubbles()
	}
	return nil
}

func (s State) Over() bool { return s.Phase == Over }

// Input is what a player or an autoplay policy does during one frame.
type Input struct {
	// Aim replaces the aim angle with Angle while the shooter is loaded.
	Aim   bool
	Angle float64
	Fire  bool
	// Move shifts the shooter sideways by Move*Rules.MoveStep pixels.
	Move float64
}

func AimInput(angle float64, fire bool) Input {
	return Input{Aim: true, Angle: angle, Fire: fire}
}

// StepResult reports what happened during one frame.
type StepResult struct {
	Launched bool
	Attached bool
	// Skipped is set when the projectile stopped outside the grid and was
	// discarded without being placed.
	Skipped bool
	Missed  bool

	// Cluster is the size of the cluster grown from the attached bubble.
	Cluster    int
	Popped     int
	Dropped    int
	Points     int
	ExtraTries int

	Over    bool
	Cleared bool
}
