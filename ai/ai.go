package ai

import (
	"log/slog"

	"memory-match/game"
)

// Source is the random source a Brain draws from. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// flipReason describes why the AI chose to flip a given card (for logging).
const (
	flipReasonKnownPair  = "known_pair"
	flipReasonUnpaired   = "unpaired_known"
	flipReasonUnknown    = "unknown"
	flipReasonRandom     = "random"
	flipReasonRecalled   = "recalled_partner"
	flipReasonNoneHidden = "none_hidden"
)

// Memory holds what a computer player remembers: the symbol at each card
// index, or "" when it never saw or forgot the card.
type Memory struct {
	symbols []string
}

// Remember records the symbol shown at index.
func (m *Memory) Remember(index int, symbol string) {
	if index < 0 {
		return
	}
	for len(m.symbols) <= index {
		m.symbols = append(m.symbols, "")
	}
	m.symbols[index] = symbol
}

// Recall returns the remembered symbol at index.
func (m *Memory) Recall(index int) (string, bool) {
	if index < 0 || index >= len(m.symbols) || m.symbols[index] == "" {
		return "", false
	}
	return m.symbols[index], true
}

// Known returns the remembered indices in ascending order.
func (m *Memory) Known() []int {
	var out []int
	for i, s := range m.symbols {
		if s != "" {
			out = append(out, i)
		}
	}
	return out
}

// Brain is the ComputerPolicy for one computer seat.
type Brain struct {
	Seat       int
	Difficulty game.Difficulty
	Memory     Memory

	rng Source
	log *slog.Logger
}

// NewBrain creates a policy with an empty memory.
func NewBrain(seat int, difficulty game.Difficulty, rng Source) *Brain {
	return &Brain{
		Seat:       seat,
		Difficulty: difficulty,
		rng:        rng,
		log:        slog.Default().With("tag", "ai", "seat", seat, "difficulty", string(difficulty)),
	}
}

// Factory returns a game.PolicyFactory building Brains that share rng.
func Factory(rng Source) game.PolicyFactory {
	return func(seat int, difficulty game.Difficulty) game.ComputerPolicy {
		return NewBrain(seat, difficulty, rng)
	}
}

// Observe remembers a flipped card with the tier's recall chance.
// Hard always remembers and draws nothing from the source.
// The seat's own flips take the same chance, so easy and medium can forget a
// card they just turned.
func (b *Brain) Observe(index int, symbol string) {
	if b.Difficulty == game.Hard || b.rng.Float64() < b.Difficulty.RecallChance() {
		b.Memory.Remember(index, symbol)
	}
}

// Plan picks a known pair when the tier allows it, otherwise the first card.
func (b *Brain) Plan(cards []game.CardView) game.Move {
	hidden := hiddenIndices(cards)
	if len(hidden) == 0 {
		return game.Move{First: -1, Second: -1, Reason: flipReasonNoneHidden}
	}

	if b.Difficulty != game.Easy {
		if first, second, ok := b.knownPair(hidden); ok {
			b.log.Debug("planned pair", "first", first, "second", second, "reason", flipReasonKnownPair)
			return game.Move{First: first, Second: second, Reason: flipReasonKnownPair}
		}
	}

	first, reason := b.firstPick(hidden)
	b.log.Debug("planned first card", "card", first, "reason", reason, "remembered", b.Memory.Known())
	return game.Move{First: first, Second: -1, Reason: reason}
}

// SecondPick chooses a partner for cards[first], which is face up.
func (b *Brain) SecondPick(cards []game.CardView, first int) int {
	var remaining []int
	for _, idx := range hiddenIndices(cards) {
		if idx != first {
			remaining = append(remaining, idx)
		}
	}
	if len(remaining) == 0 {
		return -1
	}

	if b.Difficulty != game.Easy && first >= 0 && first < len(cards) {
		if partner := b.rememberedPartner(remaining, first, cards[first].Symbol); partner >= 0 {
			if b.Difficulty == game.Hard || b.rng.Float64() < 0.5 {
				b.log.Debug("second card", "card", partner, "reason", flipReasonRecalled)
				return partner
			}
		}
	}

	pick := remaining[b.rng.Intn(len(remaining))]
	b.log.Debug("second card", "card", pick, "reason", flipReasonRandom)
	return pick
}

// knownPair finds two hidden cards remembered with the same symbol. The pair
// whose lower index is smallest wins, played lower index first.
func (b *Brain) knownPair(hidden []int) (int, int, bool) {
	firstSeen := make(map[string]int)
	bestFirst, bestSecond := -1, -1
	for _, idx := range hidden {
		symbol, ok := b.Memory.Recall(idx)
		if !ok {
			continue
		}
		lo, seen := firstSeen[symbol]
		if !seen {
			firstSeen[symbol] = idx
			continue
		}
		if bestFirst < 0 || lo < bestFirst {
			bestFirst, bestSecond = lo, idx
		}
	}
	return bestFirst, bestSecond, bestFirst >= 0
}

func (b *Brain) firstPick(hidden []int) (int, string) {
	switch b.Difficulty {
	case game.Easy:
		return b.pick(hidden), flipReasonRandom
	case game.Hard:
		if unpaired := b.unpairedKnown(hidden); len(unpaired) > 0 {
			return b.pick(unpaired), flipReasonUnpaired
		}
	}

	var unknown []int
	for _, idx := range hidden {
		if _, ok := b.Memory.Recall(idx); !ok {
			unknown = append(unknown, idx)
		}
	}
	if len(unknown) > 0 {
		return b.pick(unknown), flipReasonUnknown
	}
	return b.pick(hidden), flipReasonRandom
}

// unpairedKnown returns the hidden cards whose remembered symbol is
// remembered exactly once among the hidden cards, in ascending order.
func (b *Brain) unpairedKnown(hidden []int) []int {
	counts := make(map[string]int)
	for _, idx := range hidden {
		if symbol, ok := b.Memory.Recall(idx); ok {
			counts[symbol]++
		}
	}
	var out []int
	for _, idx := range hidden {
		if symbol, ok := b.Memory.Recall(idx); ok && counts[symbol] == 1 {
			out = append(out, idx)
		}
	}
	return out
}

// rememberedPartner returns the lowest hidden card remembered with symbol, or -1.
func (b *Brain) rememberedPartner(remaining []int, first int, symbol string) int {
	if symbol == "" {
		symbol, _ = b.Memory.Recall(first)
	}
	if symbol == "" {
		return -1
	}
	for _, idx := range remaining {
		if s, ok := b.Memory.Recall(idx); ok && s == symbol {
			return idx
		}
	}
	return -1
}

func (b *Brain) pick(candidates []int) int {
	return candidates[b.rng.Intn(len(candidates))]
}

func hiddenIndices(cards []game.CardView) []int {
	var hidden []int
	for _, c := range cards {
		if c.Hidden() {
			hidden = append(hidden, c.Index)
		}
	}
	return hidden
}
