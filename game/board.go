package game

import (
	"fmt"
	"math/rand"

	"memory-match/matcherrors"
)

// HazardSymbol is the face value shared by the two hazard cards.
const HazardSymbol = "💩"

// Symbols is the pool of face values a board draws its pairs from.
var Symbols = []string{
	"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼",
	"🐨", "🐯", "🦁", "🐮", "🐷", "🐸", "🐵", "🐔",
	"🐧", "🐦", "🐤", "🦆", "🦅", "🦉", "🦇", "🐺",
	"🐗", "🐴", "🦄", "🐝", "🐛", "🦋", "🐌", "🐞",
	"🐜", "🕷", "🦂", "🦀", "🐍", "🦎", "🦖", "🦕",
}

// Visual is the face a renderer should draw for a card.
type Visual string

const (
	VisualBack    Visual = "back"
	VisualFront   Visual = "front"
	VisualMatched Visual = "matched"
	VisualHazard  Visual = "hazard"
)

// Card represents a single card on the board.
type Card struct {
	Index   int
	Symbol  string
	Flipped bool
	Matched bool
	Hazard  bool
}

// Visual returns how the card currently looks.
func (c Card) Visual() Visual {
	switch {
	case c.Matched && c.Hazard:
		return VisualHazard
	case c.Matched:
		return VisualMatched
	case c.Flipped:
		return VisualFront
	default:
		return VisualBack
	}
}

// Board represents the game board: Size×Size cards in row-major order.
type Board struct {
	Size  int
	Cards []Card
}

// NewBoard creates a size×size board with randomly chosen, shuffled pairs.
// With hazard enabled one pair slot is taken by two hazard cards.
func NewBoard(size int, hazard bool, rng *rand.Rand) (*Board, error) {
	if size < 2 || (size*size)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", matcherrors.ErrInvalidGridSize, size)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	totalPairs := size * size / 2
	realPairs := totalPairs
	if hazard {
		realPairs--
	}
	if realPairs < 1 || realPairs > len(Symbols) {
		return nil, fmt.Errorf("%w: %d pairs needed, %d available", matcherrors.ErrNotEnoughSymbols, realPairs, len(Symbols))
	}

	// Pick this game's symbols
	pool := make([]string, len(Symbols))
	copy(pool, Symbols)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	symbols := make([]string, 0, 2*totalPairs)
	for _, s := range pool[:realPairs] {
		symbols = append(symbols, s, s)
	}
	if hazard {
		symbols = append(symbols, HazardSymbol, HazardSymbol)
	}

	// Shuffle card positions
	rng.Shuffle(len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})

	return BoardFromSymbols(size, symbols), nil
}

// BoardFromSymbols lays out the given face values in order. Cards showing
// HazardSymbol become hazard cards. Useful for replays and fixed test layouts.
func BoardFromSymbols(size int, symbols []string) *Board {
	cards := make([]Card, len(symbols))
	for i, s := range symbols {
		cards[i] = Card{Index: i, Symbol: s, Hazard: s == HazardSymbol}
	}
	return &Board{Size: size, Cards: cards}
}

// PairCounts returns the number of real (scoring) pairs and hazard pair slots on the board.
func (b *Board) PairCounts() (realPairs, hazardPairs int) {
	hazardCards := 0
	for _, c := range b.Cards {
		if c.Hazard {
			hazardCards++
		}
	}
	realPairs = (len(b.Cards) - hazardCards) / 2
	hazardPairs = (hazardCards + 1) / 2
	return realPairs, hazardPairs
}

// Hidden returns the indices of cards that are neither flipped nor matched.
func (b *Board) Hidden() []int {
	var out []int
	for _, c := range b.Cards {
		if !c.Flipped && !c.Matched {
			out = append(out, c.Index)
		}
	}
	return out
}
