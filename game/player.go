package game

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"memory-match/config"
	"memory-match/matcherrors"
)

// Kind tells whether a seat is driven by input events or by a ComputerPolicy.
type Kind int

const (
	Human Kind = iota
	Computer
)

// String returns the config spelling of a Kind.
func (k Kind) String() string {
	switch k {
	case Human:
		return config.KindHuman
	case Computer:
		return config.KindComputer
	default:
		return "unknown"
	}
}

// Difficulty is a computer player's tier. It sets both the observation
// recall rate and the selection strategy.
type Difficulty string

const (
	Easy   Difficulty = config.DifficultyEasy
	Medium Difficulty = config.DifficultyMedium
	Hard   Difficulty = config.DifficultyHard
)

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", matcherrors.ErrInvalidDifficulty, s)
	}
}

// RecallChance is the probability that a computer of this tier remembers a card it sees flipped.
func (d Difficulty) RecallChance() float64 {
	switch d {
	case Hard:
		return 1
	case Medium:
		return 0.5
	default:
		return 0.4
	}
}

// Label returns the display form of a difficulty, e.g. "Hard".
// Casers are stateful, so one is built per call.
func (d Difficulty) Label() string {
	return cases.Title(language.English).String(string(d))
}

// Move is a computer's plan for a turn. Second is -1 when the second card
// is chosen only after the first one has been seen.
type Move struct {
	First  int
	Second int
	Reason string
}

// ComputerPolicy decides a computer player's flips. Implemented by package ai,
// kept as an interface so the engine never imports it.
// Each policy owns a private memory; the engine only feeds it observations.
type ComputerPolicy interface {
	// Observe is called for every flip, by any player.
	Observe(index int, symbol string)
	// Plan picks the first card, or a complete known pair, at the start of a turn.
	Plan(cards []CardView) Move
	// SecondPick picks the second card once the first (cards[first]) is face up.
	SecondPick(cards []CardView, first int) int
}

// Player represents a seat in a game.
type Player struct {
	Index      int
	Kind       Kind
	Difficulty Difficulty
	Score      int
	Policy     ComputerPolicy
}

// NewHuman creates a human seat.
func NewHuman(index int) *Player {
	return &Player{Index: index, Kind: Human}
}

// NewComputer creates a computer seat driven by policy.
func NewComputer(index int, difficulty Difficulty, policy ComputerPolicy) *Player {
	return &Player{Index: index, Kind: Computer, Difficulty: difficulty, Policy: policy}
}

// IsComputer reports whether the seat is computer-controlled.
func (p *Player) IsComputer() bool {
	return p.Kind == Computer
}

// Label returns "Player N", or "Player N (CPU-Difficulty)" for computers.
func (p *Player) Label() string {
	label := fmt.Sprintf("Player %d", p.Index+1)
	if p.IsComputer() {
		label += " (CPU-" + p.Difficulty.Label() + ")"
	}
	return label
}

// PolicyFactory builds a fresh policy for the computer in the given seat.
type PolicyFactory func(seat int, difficulty Difficulty) ComputerPolicy

// NewPlayers builds the seats described by specs, in turn order.
func NewPlayers(specs []config.PlayerSpec, newPolicy PolicyFactory) ([]*Player, error) {
	if n := len(specs); n < config.MinPlayers || n > config.MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", matcherrors.ErrInvalidPlayerCount, n)
	}
	players := make([]*Player, len(specs))
	for i, spec := range specs {
		switch spec.Kind {
		case config.KindHuman:
			players[i] = NewHuman(i)
		case config.KindComputer:
			d, err := ParseDifficulty(spec.Difficulty)
			if err != nil {
				return nil, fmt.Errorf("player %d: %w", i+1, err)
			}
			players[i] = NewComputer(i, d, newPolicy(i, d))
		default:
			return nil, fmt.Errorf("%w: player %d has %q", matcherrors.ErrInvalidPlayerKind, i+1, spec.Kind)
		}
	}
	return players, nil
}
