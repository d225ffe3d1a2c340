package game

import (
	"sort"
)

// Card view states as seen by renderers and policies.
const (
	StateHidden  = "hidden"
	StateFlipped = "flipped"
	StateMatched = "matched"
	StateHazard  = "hazard"
)

// CardView is the outward representation of a card.
// Symbol is only included while the card is face up or removed.
type CardView struct {
	Index  int    `json:"index"`
	State  string `json:"state"`
	Symbol string `json:"symbol,omitempty"`
}

// Hidden reports whether the card can still be picked.
func (cv CardView) Hidden() bool {
	return cv.State == StateHidden
}

// PlayerView is the outward representation of a player.
type PlayerView struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Snapshot is the full game state view broadcast to observers.
type Snapshot struct {
	GameID         string       `json:"gameId"`
	Cards          []CardView   `json:"cards"`
	Players        []PlayerView `json:"players"`
	Current        int          `json:"current"`
	Phase          string       `json:"phase"`
	Selection      []int        `json:"selection"`
	RemainingPairs int          `json:"remainingPairs"`
	Locked         bool         `json:"locked"`
}

// BuildCardViews constructs the outward card list.
// Face-down cards do not expose their symbol.
func BuildCardViews(board *Board) []CardView {
	views := make([]CardView, len(board.Cards))
	for i, card := range board.Cards {
		views[i] = buildCardView(card)
	}
	return views
}

func buildCardView(card Card) CardView {
	cv := CardView{Index: card.Index}
	switch card.Visual() {
	case VisualHazard:
		cv.State = StateHazard
	case VisualMatched:
		cv.State = StateMatched
	case VisualFront:
		cv.State = StateFlipped
	default:
		cv.State = StateHidden
	}
	if cv.State != StateHidden {
		cv.Symbol = card.Symbol
	}
	return cv
}

// BuildPlayerView creates a PlayerView from a Player.
func BuildPlayerView(p *Player) PlayerView {
	return PlayerView{Index: p.Index, Label: p.Label(), Score: p.Score}
}

// BuildPlayerViews creates views for every seat, in seat order.
func BuildPlayerViews(players []*Player) []PlayerView {
	views := make([]PlayerView, len(players))
	for i, p := range players {
		views[i] = BuildPlayerView(p)
	}
	return views
}

// Standing is one row of the final ranking.
type Standing struct {
	Rank   int    `json:"rank"`
	Player int    `json:"player"`
	Label  string `json:"label"`
	Score  int    `json:"score"`
}

// Standings is the final report of a game.
type Standings struct {
	Ranked []Standing `json:"ranked"`
	// Winners are the seat indices tied at the top score.
	Winners     []int `json:"winners"`
	Tie         bool  `json:"tie"`
	TotalPairs  int   `json:"totalPairs"`
	HazardPairs int   `json:"hazardPairs"`
}

// ComputeStandings ranks players by score, highest first. Equal scores share
// a rank and keep seat order.
func ComputeStandings(players []*Player, totalPairs, hazardPairs int) Standings {
	ranked := make([]Standing, len(players))
	for i, p := range players {
		ranked[i] = Standing{Player: p.Index, Label: p.Label(), Score: p.Score}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		if i > 0 && ranked[i].Score == ranked[i-1].Score {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
	}

	var winners []int
	for _, s := range ranked {
		if s.Rank == 1 {
			winners = append(winners, s.Player)
		}
	}
	return Standings{
		Ranked:      ranked,
		Winners:     winners,
		Tie:         len(winners) > 1,
		TotalPairs:  totalPairs,
		HazardPairs: hazardPairs,
	}
}

// Summary returns "<label> wins!" or "It's a tie!".
func (s Standings) Summary() string {
	if s.Tie || len(s.Ranked) == 0 {
		return "It's a tie!"
	}
	return s.Ranked[0].Label + " wins!"
}

// ScoreSum returns the total of all players' scores.
func (s Standings) ScoreSum() int {
	sum := 0
	for _, r := range s.Ranked {
		sum += r.Score
	}
	return sum
}
