package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"memory-match/matcherrors"
)

// Player count bounds accepted at game start.
const (
	MinPlayers = 1
	MaxPlayers = 4
)

// Player kinds and difficulty tiers as written in config files and env vars.
const (
	KindHuman    = "human"
	KindComputer = "computer"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// PlayerSpec describes one seat. Its text form is "human" or "computer:<difficulty>"
// (difficulty defaults to medium), so PLAYERS=human,computer:hard works from the env.
type PlayerSpec struct {
	Kind       string
	Difficulty string
}

// MarshalText implements encoding.TextMarshaler.
func (p PlayerSpec) MarshalText() ([]byte, error) {
	if p.Kind == KindComputer {
		return []byte(p.Kind + ":" + p.Difficulty), nil
	}
	return []byte(p.Kind), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PlayerSpec) UnmarshalText(text []byte) error {
	kind, difficulty, _ := strings.Cut(strings.ToLower(strings.TrimSpace(string(text))), ":")
	p.Kind = kind
	p.Difficulty = ""
	if kind == KindComputer {
		p.Difficulty = difficulty
		if p.Difficulty == "" {
			p.Difficulty = DifficultyMedium
		}
	}
	return nil
}

// TimingConfig holds the fixed latency of every delayed transition, in milliseconds.
type TimingConfig struct {
	StartDelayMS     int `json:"start_delay_ms" env:"START_DELAY_MS"`
	ComputerThinkMS  int `json:"computer_think_ms" env:"COMPUTER_THINK_MS"`
	SecondPickMS     int `json:"second_pick_ms" env:"SECOND_PICK_MS"`
	ResolveMS        int `json:"resolve_ms" env:"RESOLVE_MS"`
	InterTurnMS      int `json:"inter_turn_ms" env:"INTER_TURN_MS"`
	HazardRevealMS   int `json:"hazard_reveal_ms" env:"HAZARD_REVEAL_MS"`
	HazardMessageMS  int `json:"hazard_message_ms" env:"HAZARD_MESSAGE_MS"`
	HazardNextTurnMS int `json:"hazard_next_turn_ms" env:"HAZARD_NEXT_TURN_MS"`
}

// SimulationConfig controls headless tournament runs.
type SimulationConfig struct {
	Games int   `json:"games" env:"SIM_GAMES"`
	Seed  int64 `json:"seed" env:"SIM_SEED"`
}

// Config holds all configurable game parameters.
type Config struct {
	// GridSize is n for an n×n board; n*n must be even.
	GridSize int `json:"grid_size" env:"GRID_SIZE"`
	// HazardCards replaces one pair with two hazard cards.
	HazardCards bool `json:"hazard_cards" env:"HAZARD_CARDS"`
	// Players lists the seats in turn order.
	Players []PlayerSpec `json:"players" env:"PLAYERS" envSeparator:","`

	Timing     TimingConfig     `json:"timing"`
	Simulation SimulationConfig `json:"simulation"`

	// Render selects the console output format: "text" or "json". Text on
	// a terminal runs the interactive TUI.
	Render string `json:"render" env:"RENDER"`
	// EffectLog, if set, names a file that receives every effect of a played
	// game as JSON lines, alongside the console output.
	EffectLog string `json:"effect_log" env:"EFFECT_LOG"`
	LogLevel  string `json:"log_level" env:"LOG_LEVEL"`
}

// Defaults returns the standard settings: a 4×4 board, one human and one medium computer.
func Defaults() *Config {
	return &Config{
		GridSize:    4,
		HazardCards: false,
		Players: []PlayerSpec{
			{Kind: KindHuman},
			{Kind: KindComputer, Difficulty: DifficultyMedium},
		},
		Timing: TimingConfig{
			StartDelayMS:     500,
			ComputerThinkMS:  1000,
			SecondPickMS:     1000,
			ResolveMS:        2000,
			InterTurnMS:      1000,
			HazardRevealMS:   1000,
			HazardMessageMS:  2000,
			HazardNextTurnMS: 500,
		},
		Simulation: SimulationConfig{Games: 100, Seed: 1},
		Render:     "text",
		LogLevel:   "info",
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	return LoadFile("config.json")
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) *Config {
	cfg := Defaults()

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			slog.Warn("failed to parse config file", "tag", "config", "path", path, "err", err)
		}
	}

	// Parse into a copy so one bad variable leaves the file/default values intact.
	overridden := *cfg
	if err := env.Parse(&overridden); err != nil {
		slog.Warn("ignoring environment overrides", "tag", "config", "err", err)
	} else {
		*cfg = overridden
	}

	return cfg
}

// Validate checks the start-of-game inputs: player count, grid size, kinds and difficulties.
func (c *Config) Validate() error {
	if n := len(c.Players); n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%w: got %d", matcherrors.ErrInvalidPlayerCount, n)
	}
	if c.GridSize < 2 || (c.GridSize*c.GridSize)%2 != 0 {
		return fmt.Errorf("%w: got %d", matcherrors.ErrInvalidGridSize, c.GridSize)
	}
	for i, p := range c.Players {
		switch p.Kind {
		case KindHuman:
		case KindComputer:
			switch p.Difficulty {
			case DifficultyEasy, DifficultyMedium, DifficultyHard:
			default:
				return fmt.Errorf("%w: player %d has %q", matcherrors.ErrInvalidDifficulty, i+1, p.Difficulty)
			}
		default:
			return fmt.Errorf("%w: player %d has %q", matcherrors.ErrInvalidPlayerKind, i+1, p.Kind)
		}
	}
	return nil
}
