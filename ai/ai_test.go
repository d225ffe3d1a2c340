package ai

import (
	"math/rand"
	"testing"

	"memory-match/clock"
	"memory-match/config"
	"memory-match/game"
)

// scriptedSource returns queued values, then zeros.
type scriptedSource struct {
	ints   []int
	floats []float64
	intns  []int // n passed to each Intn call
	draws  int
}

func (s *scriptedSource) Intn(n int) int {
	s.intns = append(s.intns, n)
	s.draws++
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	s.draws++
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func hiddenCards(n int) []game.CardView {
	cards := make([]game.CardView, n)
	for i := range cards {
		cards[i] = game.CardView{Index: i, State: game.StateHidden}
	}
	return cards
}

func TestMemory(t *testing.T) {
	var m Memory
	m.Remember(5, "A")
	m.Remember(2, "B")
	m.Remember(-1, "C")

	if s, ok := m.Recall(5); !ok || s != "A" {
		t.Errorf("expected A at 5, got %q %v", s, ok)
	}
	if _, ok := m.Recall(3); ok {
		t.Error("expected nothing at 3")
	}
	if _, ok := m.Recall(40); ok {
		t.Error("expected nothing past the end")
	}
	known := m.Known()
	if len(known) != 2 || known[0] != 2 || known[1] != 5 {
		t.Errorf("expected known [2 5], got %v", known)
	}
}

func TestObserveRecallChance(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.49, 0.5, 0.39, 0.4}}

	medium := NewBrain(0, game.Medium, src)
	medium.Observe(0, "A")
	medium.Observe(1, "B")
	if _, ok := medium.Memory.Recall(0); !ok {
		t.Error("medium should remember on a draw below 0.5")
	}
	if _, ok := medium.Memory.Recall(1); ok {
		t.Error("medium should forget on a draw of 0.5")
	}

	easy := NewBrain(1, game.Easy, src)
	easy.Observe(0, "A")
	easy.Observe(1, "B")
	if _, ok := easy.Memory.Recall(0); !ok {
		t.Error("easy should remember on a draw below 0.4")
	}
	if _, ok := easy.Memory.Recall(1); ok {
		t.Error("easy should forget on a draw of 0.4")
	}
}

func TestObserveOwnFlipCanBeForgotten(t *testing.T) {
	// The first draw forgets the seat's own first card
	src := &scriptedSource{floats: []float64{0.9}}
	var brain *Brain
	factory := func(seat int, d game.Difficulty) game.ComputerPolicy {
		brain = NewBrain(seat, d, src)
		return brain
	}
	players, err := game.NewPlayers([]config.PlayerSpec{{Kind: config.KindComputer, Difficulty: config.DifficultyMedium}}, factory)
	if err != nil {
		t.Fatalf("NewPlayers: %v", err)
	}
	cfg := config.Defaults()
	cfg.GridSize = 2
	clk := clock.NewVirtual()
	g, err := game.NewGame("own-flip", cfg, players, game.Options{
		Board:     game.BoardFromSymbols(2, []string{"A", "B", "A", "B"}),
		Scheduler: clk,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	g.Start()
	for len(g.Selection) == 0 && clk.Step() {
	}
	if len(g.Selection) != 1 || g.Selection[0] != 0 {
		t.Fatalf("expected the computer to hold card 0, got %v", g.Selection)
	}
	if _, ok := brain.Memory.Recall(0); ok {
		t.Error("medium should forget its own flip on a draw above the recall chance")
	}
}

func TestObserveHardSkipsSource(t *testing.T) {
	src := &scriptedSource{}
	hard := NewBrain(0, game.Hard, src)
	for i := 0; i < 8; i++ {
		hard.Observe(i, "X")
	}
	if src.draws != 0 {
		t.Errorf("hard should not draw when observing, drew %d", src.draws)
	}
	if len(hard.Memory.Known()) != 8 {
		t.Errorf("hard should remember everything, got %v", hard.Memory.Known())
	}
}

func TestPlanHardKnownPair(t *testing.T) {
	src := &scriptedSource{}
	b := NewBrain(0, game.Hard, src)
	// B's pair completes first in a scan, but A's lower index is smaller
	b.Observe(0, "A")
	b.Observe(1, "B")
	b.Observe(2, "B")
	b.Observe(5, "A")

	move := b.Plan(hiddenCards(8))
	if move.First != 0 || move.Second != 5 {
		t.Errorf("expected known pair (0, 5), got (%d, %d)", move.First, move.Second)
	}
	if move.Reason != flipReasonKnownPair {
		t.Errorf("expected reason %q, got %q", flipReasonKnownPair, move.Reason)
	}
	if src.draws != 0 {
		t.Errorf("a known pair should not draw, drew %d", src.draws)
	}
}

func TestPlanIgnoresPairsNoLongerHidden(t *testing.T) {
	b := NewBrain(0, game.Medium, &scriptedSource{})
	b.Memory.Remember(0, "A")
	b.Memory.Remember(3, "A")
	cards := hiddenCards(4)
	cards[3].State = game.StateMatched

	move := b.Plan(cards)
	if move.Second != -1 {
		t.Errorf("expected no known pair, got %+v", move)
	}
	// Medium prefers unknown cards: 1 and 2
	if move.First != 1 || move.Reason != flipReasonUnknown {
		t.Errorf("expected first unknown card 1, got %+v", move)
	}
}

func TestPlanEasyIgnoresMemory(t *testing.T) {
	src := &scriptedSource{ints: []int{2}}
	b := NewBrain(0, game.Easy, src)
	b.Memory.Remember(0, "A")
	b.Memory.Remember(1, "A")

	move := b.Plan(hiddenCards(4))
	if move.First != 2 || move.Second != -1 {
		t.Errorf("expected random first pick 2, got %+v", move)
	}
	if len(src.intns) != 1 || src.intns[0] != 4 {
		t.Errorf("expected a draw over all 4 hidden cards, got %v", src.intns)
	}
}

func TestPlanHardUnpairedKnown(t *testing.T) {
	src := &scriptedSource{ints: []int{1}}
	b := NewBrain(0, game.Hard, src)
	b.Memory.Remember(1, "A")
	b.Memory.Remember(4, "B")

	move := b.Plan(hiddenCards(6))
	if move.First != 4 || move.Reason != flipReasonUnpaired {
		t.Errorf("expected unpaired known card 4, got %+v", move)
	}
	if len(src.intns) != 1 || src.intns[0] != 2 {
		t.Errorf("expected a draw over 2 candidates, got %v", src.intns)
	}
}

func TestPlanMediumAllKnownFallsBackToHidden(t *testing.T) {
	src := &scriptedSource{ints: []int{1}}
	b := NewBrain(0, game.Medium, src)
	b.Memory.Remember(0, "A")
	b.Memory.Remember(1, "B")

	move := b.Plan(hiddenCards(2))
	if move.First != 1 || move.Reason != flipReasonRandom {
		t.Errorf("expected random hidden pick 1, got %+v", move)
	}
}

func TestPlanNoHidden(t *testing.T) {
	b := NewBrain(0, game.Hard, &scriptedSource{})
	cards := hiddenCards(2)
	cards[0].State = game.StateMatched
	cards[1].State = game.StateMatched

	if move := b.Plan(cards); move.First != -1 {
		t.Errorf("expected no move, got %+v", move)
	}
}

func TestSecondPick(t *testing.T) {
	cards := hiddenCards(6)
	cards[0] = game.CardView{Index: 0, State: game.StateFlipped, Symbol: "A"}

	t.Run("hard recalls", func(t *testing.T) {
		src := &scriptedSource{}
		b := NewBrain(0, game.Hard, src)
		b.Memory.Remember(4, "A")
		if got := b.SecondPick(cards, 0); got != 4 {
			t.Errorf("expected partner 4, got %d", got)
		}
		if src.draws != 0 {
			t.Errorf("hard recall should not draw, drew %d", src.draws)
		}
	})

	t.Run("medium recalls half the time", func(t *testing.T) {
		src := &scriptedSource{floats: []float64{0.3, 0.7}, ints: []int{0}}
		b := NewBrain(0, game.Medium, src)
		b.Memory.Remember(4, "A")
		if got := b.SecondPick(cards, 0); got != 4 {
			t.Errorf("expected partner 4 on a low draw, got %d", got)
		}
		if got := b.SecondPick(cards, 0); got != 1 {
			t.Errorf("expected random card 1 on a high draw, got %d", got)
		}
	})

	t.Run("easy is uniform", func(t *testing.T) {
		src := &scriptedSource{ints: []int{3}}
		b := NewBrain(0, game.Easy, src)
		b.Memory.Remember(4, "A")
		if got := b.SecondPick(cards, 0); got != 4 {
			t.Errorf("expected the 4th remaining card (4), got %d", got)
		}
		if src.intns[0] != 5 {
			t.Errorf("expected a draw over 5 remaining cards, got %v", src.intns)
		}
	})

	t.Run("nothing left", func(t *testing.T) {
		b := NewBrain(0, game.Hard, &scriptedSource{})
		only := []game.CardView{{Index: 0, State: game.StateFlipped, Symbol: "A"}}
		if got := b.SecondPick(only, 0); got != -1 {
			t.Errorf("expected -1, got %d", got)
		}
	})
}

func TestBrainDeterministic(t *testing.T) {
	play := func() []int {
		b := NewBrain(0, game.Medium, rand.New(rand.NewSource(11)))
		var picks []int
		cards := hiddenCards(16)
		for i := 0; i < 16; i++ {
			b.Observe(i, game.Symbols[i/2])
			move := b.Plan(cards)
			picks = append(picks, move.First, move.Second)
		}
		return picks
	}
	a, c := play(), play()
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("runs diverge at %d: %v vs %v", i, a, c)
		}
	}
}

func TestFactory(t *testing.T) {
	policy := Factory(rand.New(rand.NewSource(1)))(2, game.Hard)
	b, ok := policy.(*Brain)
	if !ok {
		t.Fatalf("expected *Brain, got %T", policy)
	}
	if b.Seat != 2 || b.Difficulty != game.Hard {
		t.Errorf("unexpected brain %+v", b)
	}
}
