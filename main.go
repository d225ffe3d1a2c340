package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"memory-match/ai"
	"memory-match/config"
	"memory-match/console"
	"memory-match/game"
	"memory-match/loghandler"
	"memory-match/render"
	"memory-match/tournament"
)

// Run modes.
const (
	modePlay     = "play"
	modeSimulate = "simulate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found; using environment variables.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		slog.Error("exiting", "tag", "main", "err", err)
		os.Exit(1)
	}
}

// run parses flags, loads configuration and runs the selected mode.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("memory-match", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", modePlay, "play (interactive console) or simulate (headless tournament)")
	configPath := fs.String("config", "config.json", "path to an optional JSON config file")
	games := fs.Int("games", 0, "number of simulated games (overrides config)")
	seed := fs.Int64("seed", 0, "seed of the first simulated game (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.LoadFile(*configPath)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Simulation.Games = *games
		case "seed":
			cfg.Simulation.Seed = *seed
		}
	})

	slog.SetDefault(slog.New(loghandler.NewCompactHandler(stderr, loghandler.ParseLevel(cfg.LogLevel))))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	slog.Info("configuration loaded", "tag", "main", "mode", *mode, "grid", cfg.GridSize, "players", len(cfg.Players), "hazard", cfg.HazardCards)

	switch *mode {
	case modePlay:
		return play(ctx, cfg, stdin, stdout, stderr)
	case modeSimulate:
		return simulate(ctx, cfg, stdout)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

func play(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	players, err := game.NewPlayers(cfg.Players, ai.Factory(rng))
	if err != nil {
		return err
	}

	var tui *console.TUI
	var out game.Renderer
	if cfg.Render != "json" && isTerminal(stdin) && isTerminal(stdout) {
		tui = console.NewTUI(stdin, stdout)
		out = tui
		// The TUI owns the terminal; only warnings reach stderr
		slog.SetDefault(slog.New(loghandler.NewCompactHandler(stderr, max(loghandler.ParseLevel(cfg.LogLevel), slog.LevelWarn))))
	} else {
		out = render.New(cfg.Render, stdout)
	}

	if cfg.EffectLog != "" {
		f, err := os.Create(cfg.EffectLog)
		if err != nil {
			return fmt.Errorf("open effect log: %w", err)
		}
		defer f.Close()
		out = render.Multi(out, render.NewJSON(f))
	}

	g, err := game.NewGame(uuid.NewString(), cfg, players, game.Options{
		Rand:     rng,
		Renderer: out,
	})
	if err != nil {
		return err
	}

	var standings *game.Standings
	if tui != nil {
		if standings, err = tui.Run(ctx, g); err != nil {
			return err
		}
	} else {
		standings = console.NewSession(g, stdin, stdout).Run(ctx)
	}
	if standings == nil {
		slog.Info("game ended early", "tag", "main", "game", g.ID)
	}
	return nil
}

// isTerminal reports whether v is a terminal device.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func simulate(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	report, err := tournament.NewRunner(cfg).Run(ctx)
	if err != nil {
		return err
	}
	if cfg.Render == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return report.Write(stdout)
}
