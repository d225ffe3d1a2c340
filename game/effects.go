package game

// EffectType enumerates the visual effects the engine emits.
type EffectType string

const (
	EffectBoard    EffectType = "board"     // full layout, emitted once at start
	EffectCard     EffectType = "card"      // one card changed its visual state
	EffectMessage  EffectType = "message"   // transient message
	EffectTurn     EffectType = "turn"      // current player changed or turn restarted
	EffectScores   EffectType = "scores"    // score snapshot after a match
	EffectGameOver EffectType = "game_over" // final standings
)

// CardEffect sets one card's visual state.
type CardEffect struct {
	Index  int    `json:"index"`
	Visual Visual `json:"visual"`
	Symbol string `json:"symbol,omitempty"`
}

// Effect is a one-way update from the engine to a renderer.
// Only the fields relevant to Type are set.
type Effect struct {
	Type      EffectType   `json:"type"`
	GameID    string       `json:"gameId,omitempty"`
	Size      int          `json:"size,omitempty"`
	Cards     []CardView   `json:"cards,omitempty"`
	Card      *CardEffect  `json:"card,omitempty"`
	Message   string       `json:"message,omitempty"`
	Current   *PlayerView  `json:"current,omitempty"`
	Scores    []PlayerView `json:"scores,omitempty"`
	Standings *Standings   `json:"standings,omitempty"`
}

// Renderer consumes visual effects. Render is called on the engine goroutine.
type Renderer interface {
	Render(e Effect)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(e Effect)

// Render calls f(e).
func (f RendererFunc) Render(e Effect) { f(e) }

type discardRenderer struct{}

func (discardRenderer) Render(Effect) {}

func cardEffect(card Card) Effect {
	ce := &CardEffect{Index: card.Index, Visual: card.Visual()}
	if ce.Visual != VisualBack {
		ce.Symbol = card.Symbol
	}
	return Effect{Type: EffectCard, Card: ce}
}
