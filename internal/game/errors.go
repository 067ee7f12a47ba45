package game

import "errors"

var (
	// ErrInvalidRules indicates a rule set that cannot drive a game.
	ErrInvalidRules = errors.New("game: invalid rules")

	// ErrUnknownMode indicates a board layout other than free or grid.
	ErrUnknownMode = errors.New("game: unknown mode")
)

// RuleError names the offending rule field.
type RuleError struct {
	Field  string
	Reason string
}

func (e *RuleError) Error() string {
	return "game: invalid rules: " + e.Field + " " + e.Reason
}

func (e *RuleError) Unwrap() error {
	return ErrInvalidRules
}
