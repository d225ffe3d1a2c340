package tournament

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"memory-match/ai"
	"memory-match/clock"
	"memory-match/config"
	"memory-match/game"
	"memory-match/matcherrors"
)

// maxSteps bounds the timer callbacks a single simulated game may run.
const maxSteps = 1_000_000

// SeatStats aggregates one seat's results over a tournament.
type SeatStats struct {
	Seat       int     `json:"seat"`
	Label      string  `json:"label"`
	Wins       int     `json:"wins"`
	Ties       int     `json:"ties"`
	Losses     int     `json:"losses"`
	TotalScore int     `json:"totalScore"`
	AvgScore   float64 `json:"avgScore"`
	Elo        int     `json:"elo"`
}

// Report is the outcome of a tournament.
type Report struct {
	Games   int           `json:"games"`
	Seats   []SeatStats   `json:"seats"`
	AvgTime time.Duration `json:"avgTime"`
}

// Runner plays headless all-computer games back to back on virtual clocks.
type Runner struct {
	cfg *config.Config
	log *slog.Logger

	// Renderer, if set, receives every game's effects.
	Renderer game.Renderer
	// OnGameEnd, if set, is called after each finished game.
	OnGameEnd func(gameID string, s game.Standings)
}

// NewRunner creates a Runner for cfg.Simulation.Games games of cfg's seats.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg: cfg,
		log: slog.Default().With("tag", "tournament"),
	}
}

// Run plays the tournament. Game i is seeded with Simulation.Seed+i, so a
// tournament is reproducible from its config.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	for i, p := range r.cfg.Players {
		if p.Kind != config.KindComputer {
			return nil, fmt.Errorf("%w: player %d is %s", matcherrors.ErrHumanInSimulation, i+1, p.Kind)
		}
	}

	report := &Report{}
	ratings := make([]int, len(r.cfg.Players))
	for i := range ratings {
		ratings[i] = InitialElo
	}
	var elapsed time.Duration

	for i := 0; i < r.cfg.Simulation.Games; i++ {
		if err := ctx.Err(); err != nil {
			r.log.Warn("tournament interrupted", "played", report.Games)
			break
		}

		g, took, err := r.playOne(r.cfg.Simulation.Seed + int64(i))
		if err != nil {
			return nil, err
		}
		if report.Seats == nil {
			report.Seats = make([]SeatStats, len(g.Players))
			for s, p := range g.Players {
				report.Seats[s] = SeatStats{Seat: s, Label: p.Label()}
			}
		}

		standings := *g.Result
		report.Games++
		elapsed += took
		scores := make([]int, len(g.Players))
		for s, p := range g.Players {
			scores[s] = p.Score
			report.Seats[s].TotalScore += p.Score
		}
		winners := make(map[int]bool)
		for _, w := range standings.Winners {
			winners[w] = true
		}
		for s := range report.Seats {
			switch {
			case winners[s] && standings.Tie:
				report.Seats[s].Ties++
			case winners[s]:
				report.Seats[s].Wins++
			default:
				report.Seats[s].Losses++
			}
		}
		ratings = updateRatings(ratings, scores)

		r.log.Debug("game finished", "game", g.ID, "result", standings.Summary())
		if r.OnGameEnd != nil {
			r.OnGameEnd(g.ID, standings)
		}
	}

	for s := range report.Seats {
		report.Seats[s].Elo = ratings[s]
		if report.Games > 0 {
			report.Seats[s].AvgScore = float64(report.Seats[s].TotalScore) / float64(report.Games)
		}
	}
	if report.Games > 0 {
		report.AvgTime = elapsed / time.Duration(report.Games)
	}
	r.log.Info("tournament finished", "games", report.Games)
	return report, nil
}

// playOne plays a single game to completion and returns it with its virtual duration.
func (r *Runner) playOne(seed int64) (*game.Game, time.Duration, error) {
	rng := rand.New(rand.NewSource(seed))
	players, err := game.NewPlayers(r.cfg.Players, ai.Factory(rng))
	if err != nil {
		return nil, 0, err
	}

	clk := clock.NewVirtual()
	g, err := game.NewGame(uuid.NewString(), r.cfg, players, game.Options{
		Rand:      rng,
		Scheduler: clk,
		Renderer:  r.Renderer,
	})
	if err != nil {
		return nil, 0, err
	}

	g.Start()
	clk.RunUntilIdle(maxSteps)
	if !g.Finished {
		return nil, 0, fmt.Errorf("%w: game %s (seed %d) stopped in phase %s", matcherrors.ErrGameStalled, g.ID, seed, g.Phase)
	}
	return g, clk.Now(), nil
}

// Write prints the report as a table.
func (rep *Report) Write(w io.Writer) error {
	fmt.Fprintf(w, "%d games, average length %s\n", rep.Games, rep.AvgTime.Round(time.Second))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Seat\tWins\tTies\tLosses\tAvg pairs\tElo")
	for _, s := range rep.Seats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\t%d\n", s.Label, s.Wins, s.Ties, s.Losses, s.AvgScore, s.Elo)
	}
	return tw.Flush()
}
