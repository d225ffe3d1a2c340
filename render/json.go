package render

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"memory-match/game"
)

// JSON writes each effect as one JSON object per line.
type JSON struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSON returns a JSON renderer writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(w)}
}

// Render implements game.Renderer.
func (j *JSON) Render(e game.Effect) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.enc.Encode(e); err != nil {
		slog.Warn("failed to write effect", "tag", "render", "type", string(e.Type), "error", err)
	}
}

// Multi fans every effect out to each renderer in order.
func Multi(renderers ...game.Renderer) game.Renderer {
	return game.RendererFunc(func(e game.Effect) {
		for _, r := range renderers {
			r.Render(e)
		}
	})
}

// New returns the renderer named by format ("text" or "json"), defaulting to text.
func New(format string, w io.Writer) game.Renderer {
	if format == "json" {
		return NewJSON(w)
	}
	return NewText(w)
}
