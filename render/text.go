package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"memory-match/game"
)

// Text draws the board and game events as plain text lines, for pipes and
// other non-terminal outputs.
type Text struct {
	mu   sync.Mutex
	w    io.Writer
	grid Grid
}

// NewText returns a Text renderer writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Render implements game.Renderer.
func (t *Text) Render(e game.Effect) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e.Type {
	case game.EffectBoard:
		t.grid.Apply(e)
		fmt.Fprintf(t.w, "New game %s: %d×%d board\n", e.GameID, e.Size, e.Size)
		io.WriteString(t.w, t.grid.String())
	case game.EffectCard:
		if t.grid.Apply(e) {
			io.WriteString(t.w, t.grid.String())
		}
	case game.EffectMessage:
		fmt.Fprintf(t.w, "» %s\n", e.Message)
	case game.EffectTurn:
		if e.Current != nil {
			fmt.Fprintf(t.w, "%s's turn\n", e.Current.Label)
		}
	case game.EffectScores:
		fmt.Fprintf(t.w, "Scores: %s\n", ScoreLine(e.Scores))
	case game.EffectGameOver:
		fmt.Fprintf(t.w, "Game over! %s\n", e.Message)
		for _, line := range StandingLines(e.Standings) {
			fmt.Fprintln(t.w, line)
		}
	}
}

// ScoreLine joins the seats' scores as "Player 1: 2 | Player 2: 1".
func ScoreLine(scores []game.PlayerView) string {
	parts := make([]string, len(scores))
	for i, p := range scores {
		parts[i] = fmt.Sprintf("%s: %d", p.Label, p.Score)
	}
	return strings.Join(parts, " | ")
}

// StandingLines formats the ranked seats, one indented line each.
func StandingLines(s *game.Standings) []string {
	if s == nil {
		return nil
	}
	lines := make([]string, len(s.Ranked))
	for i, st := range s.Ranked {
		lines[i] = fmt.Sprintf("  %d. %s: %d pairs", st.Rank, st.Label, st.Score)
	}
	return lines
}
