package tournament

import (
	"testing"
)

func TestEloDelta_WinLoss(t *testing.T) {
	// Same rating: the winner gains what the loser drops
	if d := eloDelta(1000, 1000, outcome(3, 1)); d != 16 {
		t.Errorf("expected +16 for the winner, got %d", d)
	}
	if d := eloDelta(1000, 1000, outcome(1, 3)); d != -16 {
		t.Errorf("expected -16 for the loser, got %d", d)
	}
}

func TestEloDelta_Draw(t *testing.T) {
	if d := eloDelta(1000, 1000, outcome(2, 2)); d != 0 {
		t.Errorf("draw at same rating should not move ratings, got %d", d)
	}
}

func TestEloDelta_WeakerPlayerDrawsWithStronger(t *testing.T) {
	if d := eloDelta(800, 1200, 0.5); d <= 0 {
		t.Errorf("weaker player should gain on draw, got %d", d)
	}
	if d := eloDelta(1200, 800, 0.5); d >= 0 {
		t.Errorf("stronger player should lose on draw, got %d", d)
	}
}

func TestExpectedScoreIsSymmetric(t *testing.T) {
	if sum := expectedScore(900, 1300) + expectedScore(1300, 900); sum < 0.999 || sum > 1.001 {
		t.Errorf("expectancies should sum to 1, got %f", sum)
	}
}

func TestUpdateRatingsMultiSeat(t *testing.T) {
	ratings := []int{1000, 1000, 1000}
	next := updateRatings(ratings, []int{3, 1, 1})

	// Seat 0 beats both others; seats 1 and 2 draw with each other
	if next[0] != 1032 || next[1] != 984 || next[2] != 984 {
		t.Errorf("expected [1032 984 984], got %v", next)
	}
	if ratings[0] != 1000 {
		t.Error("input ratings were modified")
	}
}

func TestUpdateRatingsFloorsAtZero(t *testing.T) {
	next := updateRatings([]int{10, 10}, []int{0, 4})
	if next[0] != 0 {
		t.Errorf("expected rating floored at 0, got %d", next[0])
	}
}
