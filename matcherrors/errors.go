package matcherrors

import "errors"

// Setup sentinel errors. Shared by config and game so callers can use
// errors.Is without importing either package's internals.
var (
	ErrInvalidPlayerCount = errors.New("player count must be between 1 and 4")
	ErrInvalidGridSize    = errors.New("grid size must be at least 2 with an even number of cards")
	ErrNotEnoughSymbols   = errors.New("not enough card symbols for this grid size")
	ErrInvalidPlayerKind  = errors.New("player kind must be human or computer")
	ErrInvalidDifficulty  = errors.New("difficulty must be easy, medium or hard")
	ErrMissingPolicy      = errors.New("computer player has no policy")
	ErrHumanInSimulation  = errors.New("simulations need computer players only")
	ErrGameStalled        = errors.New("game did not finish")
)
