package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"memory-match/game"
)

// Session connects a line-oriented input to one game: it pumps input lines
// into the game's action channel while the game renders to its own output.
// It serves pipes and JSON output; terminals get the TUI.
type Session struct {
	Game *game.Game
	In   io.Reader
	Out  io.Writer

	log *slog.Logger
}

// NewSession creates a Session for g.
func NewSession(g *game.Game, in io.Reader, out io.Writer) *Session {
	return &Session{
		Game: g,
		In:   in,
		Out:  out,
		log:  slog.Default().With("tag", "console", "game", g.ID),
	}
}

// Run plays the game until it ends, the player quits, input closes or ctx
// is cancelled. It returns the final standings, or nil if the game was not finished.
func (s *Session) Run(ctx context.Context) *game.Standings {
	g := s.Game
	go g.Run(ctx)

	lines := make(chan string)
	go s.readPump(lines)

	human := hasHuman(g)
	if human {
		fmt.Fprintln(s.Out, helpText)
	}

	for {
		select {
		case <-g.Done:
			return result(g)
		case <-ctx.Done():
			<-g.Done
			return result(g)
		case line, ok := <-lines:
			if !ok {
				lines = nil
				if human {
					s.log.Info("input closed")
					sendAction(g, game.Action{Type: game.ActionQuit})
				}
				continue
			}
			s.handleLine(line)
		}
	}
}

// readPump reads input lines until EOF, then closes lines.
func (s *Session) readPump(lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(s.In)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-s.Game.Done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Warn("read error", "error", err)
	}
}

func (s *Session) handleLine(line string) {
	cmd := parseCommand(line)
	switch cmd.kind {
	case cmdHelp:
		fmt.Fprintln(s.Out, helpText)
	case cmdInvalid:
		fmt.Fprintln(s.Out, cmd.notice)
	default:
		if a, ok := cmd.action(); ok {
			sendAction(s.Game, a)
		}
	}
}
