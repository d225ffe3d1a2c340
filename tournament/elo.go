package tournament

import "math"

const (
	// EloK is the rating adjustment factor.
	EloK = 32
	// InitialElo is the rating every seat starts a tournament with.
	InitialElo = 1000
)

// expectedScore is the Elo win expectancy of a seat rated r against opp.
func expectedScore(r, opp int) float64 {
	return 1 / (1 + math.Pow(10, float64(opp-r)/400))
}

// outcome scores a head-to-head between two game scores: 1 for the higher,
// 0 for the lower, 0.5 when equal.
func outcome(score, oppScore int) float64 {
	switch {
	case score > oppScore:
		return 1
	case score < oppScore:
		return 0
	default:
		return 0.5
	}
}

// eloDelta is the rating change of a seat rated r that scored result against opp.
func eloDelta(r, opp int, result float64) int {
	return int(math.Round(EloK * (result - expectedScore(r, opp))))
}

// updateRatings applies one game's result to every pair of seats. All pairs
// are rated against the ratings from before the game, and no rating drops
// below zero.
func updateRatings(ratings []int, scores []int) []int {
	next := make([]int, len(ratings))
	for i, r := range ratings {
		next[i] = r
		for j, opp := range ratings {
			if j != i {
				next[i] += eloDelta(r, opp, outcome(scores[i], scores[j]))
			}
		}
		if next[i] < 0 {
			next[i] = 0
		}
	}
	return next
}
