package render

import (
	"strconv"
	"strings"

	"memory-match/game"
)

// Grid tracks the board as seen through effects. Face-down cards show their
// index so a human can pick them.
type Grid struct {
	Size    int
	visuals []game.Visual
	symbols []string
}

// Apply folds a board or card effect into the grid and reports whether the
// grid changed. Other effects and out-of-range cards are ignored.
func (g *Grid) Apply(e game.Effect) bool {
	switch e.Type {
	case game.EffectBoard:
		g.Size = e.Size
		g.visuals = make([]game.Visual, len(e.Cards))
		g.symbols = make([]string, len(e.Cards))
		for i, c := range e.Cards {
			g.visuals[i] = visualForState(c.State)
			g.symbols[i] = c.Symbol
		}
		return true
	case game.EffectCard:
		if e.Card == nil || e.Card.Index < 0 || e.Card.Index >= len(g.visuals) {
			return false
		}
		g.visuals[e.Card.Index] = e.Card.Visual
		g.symbols[e.Card.Index] = e.Card.Symbol
		return true
	}
	return false
}

// String draws the grid one row per line, or "" before the board is known.
func (g *Grid) String() string {
	if g.Size == 0 {
		return ""
	}
	width := len(strconv.Itoa(len(g.visuals)-1)) + 1
	var b strings.Builder
	for i := range g.visuals {
		b.WriteString(padLeft(g.cell(i), width))
		if (i+1)%g.Size == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (g *Grid) cell(i int) string {
	switch g.visuals[i] {
	case game.VisualFront, game.VisualHazard:
		return g.symbols[i]
	case game.VisualMatched:
		return "·"
	default:
		return strconv.Itoa(i)
	}
}

// padLeft pads s to width columns. Emoji count as two columns.
func padLeft(s string, width int) string {
	n := 0
	for _, r := range s {
		if r > 0x2000 {
			n += 2
		} else {
			n++
		}
	}
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

func visualForState(state string) game.Visual {
	switch state {
	case game.StateFlipped:
		return game.VisualFront
	case game.StateMatched:
		return game.VisualMatched
	case game.StateHazard:
		return game.VisualHazard
	default:
		return game.VisualBack
	}
}
