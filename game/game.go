package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"memory-match/config"
	"memory-match/matcherrors"
)

// Phase is the Turn Engine's state.
type Phase int

const (
	Idle Phase = iota
	OneSelected
	Resolving
	HazardResolving
	InterTurnDelay
	GameOver
)

// String returns the display string for a Phase.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case OneSelected:
		return "one_selected"
	case Resolving:
		return "resolving"
	case HazardResolving:
		return "hazard_resolving"
	case InterTurnDelay:
		return "inter_turn_delay"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Origin tags who issued a flip request.
type Origin int

const (
	OriginHuman Origin = iota
	OriginComputer
)

// String returns "human" or "computer".
func (o Origin) String() string {
	if o == OriginComputer {
		return "computer"
	}
	return "human"
}

// ActionType enumerates the kinds of actions the game loop can process.
type ActionType int

const (
	ActionFlipCard ActionType = iota
	ActionQuit                // stop the loop without finishing the game
	actionDeferred            // internal: a scheduled transition is due
)

// Action is an input sent into the game's action channel.
type Action struct {
	Type   ActionType
	Index  int    // card index (for FlipCard)
	Origin Origin // who clicked (for FlipCard)
	run    func()
}

// Scheduler defers engine transitions. Callbacks must be delivered on the
// engine's goroutine, one at a time.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Timing holds the latency of each delayed transition.
type Timing struct {
	StartDelay     time.Duration
	ComputerThink  time.Duration
	SecondPick     time.Duration
	Resolve        time.Duration
	InterTurn      time.Duration
	HazardReveal   time.Duration
	HazardMessage  time.Duration
	HazardNextTurn time.Duration
}

// TimingFromConfig converts millisecond settings to durations.
func TimingFromConfig(t config.TimingConfig) Timing {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return Timing{
		StartDelay:     ms(t.StartDelayMS),
		ComputerThink:  ms(t.ComputerThinkMS),
		SecondPick:     ms(t.SecondPickMS),
		Resolve:        ms(t.ResolveMS),
		InterTurn:      ms(t.InterTurnMS),
		HazardReveal:   ms(t.HazardRevealMS),
		HazardMessage:  ms(t.HazardMessageMS),
		HazardNextTurn: ms(t.HazardNextTurnMS),
	}
}

// Options carries the collaborators of a Game. Every field is optional.
type Options struct {
	// Board replaces the shuffled board built from the config.
	Board *Board
	// Rand shuffles the board.
	Rand *rand.Rand
	// Scheduler runs delayed transitions. Nil means real timers delivered
	// through Run's action loop.
	Scheduler Scheduler
	Renderer  Renderer
	Logger    *slog.Logger
}

// Game owns the state of one memory-match game and mediates every transition.
// Its methods are not safe for concurrent use: drive it from Run's loop or
// from the goroutine advancing a virtual clock.
type Game struct {
	ID      string
	Board   *Board
	Players []*Player
	Current int
	Phase   Phase
	// Selection holds the face-up, unresolved cards (at most two).
	Selection []int
	// Locked blocks flips while a resolution or an inter-turn delay is in progress.
	Locked         bool
	RemainingPairs int
	TotalPairs     int
	HazardPairs    int
	Timing         Timing
	Finished       bool
	Result         *Standings

	// OnGameEnd is called once with the final standings.
	OnGameEnd func(Standings)

	Actions chan Action
	Done    chan struct{}

	sched    Scheduler
	renderer Renderer
	log      *slog.Logger
	started  bool
	pending  int
}

// NewGame creates a game for the given seats, in turn order.
func NewGame(id string, cfg *config.Config, players []*Player, opts Options) (*Game, error) {
	if n := len(players); n < config.MinPlayers || n > config.MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", matcherrors.ErrInvalidPlayerCount, n)
	}
	for _, p := range players {
		if p.IsComputer() && p.Policy == nil {
			return nil, fmt.Errorf("%w: %s", matcherrors.ErrMissingPolicy, p.Label())
		}
	}

	board := opts.Board
	if board == nil {
		var err error
		board, err = NewBoard(cfg.GridSize, cfg.HazardCards, opts.Rand)
		if err != nil {
			return nil, err
		}
	}
	realPairs, hazardPairs := board.PairCounts()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		ID:             id,
		Board:          board,
		Players:        players,
		Current:        0,
		Phase:          Idle,
		Selection:      make([]int, 0, 2),
		RemainingPairs: realPairs,
		TotalPairs:     realPairs + hazardPairs,
		HazardPairs:    hazardPairs,
		Timing:         TimingFromConfig(cfg.Timing),
		Actions:        make(chan Action, 16),
		Done:           make(chan struct{}),
		renderer:       opts.Renderer,
		log:            logger.With("tag", "engine", "game", id),
	}
	if g.renderer == nil {
		g.renderer = discardRenderer{}
	}
	g.sched = opts.Scheduler
	if g.sched == nil {
		g.sched = loopScheduler{g: g}
	}
	return g, nil
}

// Start shows the board and, after the start delay, hands the first turn to
// a computer player if the first seat is one. Calling Start twice is a no-op.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.emit(Effect{Type: EffectBoard, GameID: g.ID, Size: g.Board.Size, Cards: BuildCardViews(g.Board)})
	g.emit(Effect{Type: EffectScores, Scores: BuildPlayerViews(g.Players)})
	g.emitTurn()
	g.log.Info("game started", "players", len(g.Players), "pairs", g.TotalPairs, "hazard_pairs", g.HazardPairs)
	if g.CurrentPlayer().IsComputer() {
		g.after(g.Timing.StartDelay, g.beginTurn)
	}
}

// Run is the real-time game loop. It starts the game and processes actions
// sequentially until the game ends, ActionQuit arrives or ctx is cancelled.
// It should be run as a goroutine.
func (g *Game) Run(ctx context.Context) {
	defer close(g.Done)

	g.Start()
	for !g.Finished {
		select {
		case <-ctx.Done():
			return
		case action, ok := <-g.Actions:
			if !ok {
				return
			}
			switch action.Type {
			case ActionFlipCard:
				g.RequestFlip(action.Index, action.Origin)
			case ActionQuit:
				g.log.Info("game abandoned")
				return
			case actionDeferred:
				action.run()
			}
		}
	}
}

// CurrentPlayer returns the seat whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.Current]
}

// PendingTransitions returns how many delayed transitions are scheduled and not yet run.
func (g *Game) PendingTransitions() int {
	return g.pending
}

// Snapshot returns the full outward view of the game.
func (g *Game) Snapshot() Snapshot {
	selection := make([]int, len(g.Selection))
	copy(selection, g.Selection)
	return Snapshot{
		GameID:         g.ID,
		Cards:          BuildCardViews(g.Board),
		Players:        BuildPlayerViews(g.Players),
		Current:        g.Current,
		Phase:          g.Phase.String(),
		Selection:      selection,
		RemainingPairs: g.RemainingPairs,
		Locked:         g.Locked,
	}
}

// after schedules fn through the game's scheduler and tracks it as pending.
func (g *Game) after(d time.Duration, fn func()) {
	g.pending++
	g.sched.AfterFunc(d, func() {
		g.pending--
		fn()
	})
}

func (g *Game) emit(e Effect) {
	g.renderer.Render(e)
}

func (g *Game) emitTurn() {
	current := BuildPlayerView(g.CurrentPlayer())
	g.emit(Effect{Type: EffectTurn, Current: &current})
}

// loopScheduler delivers timers through the Actions channel so they are
// processed serially by Run.
type loopScheduler struct {
	g *Game
}

func (s loopScheduler) AfterFunc(d time.Duration, fn func()) {
	g := s.g
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-g.Done:
			return
		}
		select {
		case g.Actions <- Action{Type: actionDeferred, run: fn}:
		case <-g.Done:
		}
	}()
}
