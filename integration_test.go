package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"memory-match/game"
	"memory-match/matcherrors"
	"memory-match/tournament"
)

// syncBuffer is written by both the game loop and the console session.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// isolate points config loading at a missing file and sets fast timings.
func isolate(t *testing.T) []string {
	t.Helper()
	for _, name := range []string{
		"START_DELAY_MS", "COMPUTER_THINK_MS", "SECOND_PICK_MS", "RESOLVE_MS",
		"INTER_TURN_MS", "HAZARD_REVEAL_MS", "HAZARD_MESSAGE_MS", "HAZARD_NEXT_TURN_MS",
	} {
		t.Setenv(name, "1")
	}
	t.Setenv("LOG_LEVEL", "error")
	return []string{"-config", filepath.Join(t.TempDir(), "missing.json")}
}

func TestRunSimulate(t *testing.T) {
	args := isolate(t)
	t.Setenv("PLAYERS", "computer:hard,computer:easy")
	t.Setenv("HAZARD_CARDS", "true")

	var out, errOut bytes.Buffer
	args = append(args, "-mode", "simulate", "-games", "5", "-seed", "3")
	if err := run(context.Background(), args, strings.NewReader(""), &out, &errOut); err != nil {
		t.Fatalf("run: %v\n%s", err, errOut.String())
	}
	for _, want := range []string{"5 games", "Player 1 (CPU-Hard)", "Player 2 (CPU-Easy)", "Elo"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestRunSimulateJSON(t *testing.T) {
	args := isolate(t)
	t.Setenv("PLAYERS", "computer:medium,computer:medium,computer:hard")
	t.Setenv("RENDER", "json")

	var out, errOut bytes.Buffer
	args = append(args, "-mode", "simulate", "-games", "3")
	if err := run(context.Background(), args, strings.NewReader(""), &out, &errOut); err != nil {
		t.Fatalf("run: %v\n%s", err, errOut.String())
	}
	var rep tournament.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("report is not JSON: %v\n%s", err, out.String())
	}
	if rep.Games != 3 || len(rep.Seats) != 3 {
		t.Errorf("unexpected report %+v", rep)
	}
}

func TestRunPlayComputers(t *testing.T) {
	args := isolate(t)
	t.Setenv("PLAYERS", "computer:hard,computer:medium")
	t.Setenv("GRID_SIZE", "2")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	in, w := io.Pipe()
	defer w.Close()

	var out, errOut syncBuffer
	if err := run(ctx, append(args, "-mode", "play"), in, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Game over!") {
		t.Errorf("expected a finished game, got:\n%s", out.String())
	}
}

func TestRunPlayEffectLog(t *testing.T) {
	args := isolate(t)
	t.Setenv("PLAYERS", "computer:hard")
	t.Setenv("GRID_SIZE", "2")
	logPath := filepath.Join(t.TempDir(), "effects.jsonl")
	t.Setenv("EFFECT_LOG", logPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	in, w := io.Pipe()
	defer w.Close()

	var out, errOut syncBuffer
	if err := run(ctx, append(args, "-mode", "play"), in, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Game over!") {
		t.Errorf("expected text output alongside the log, got:\n%s", out.String())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read effect log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var first, last game.Effect
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not an effect: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("last line is not an effect: %v", err)
	}
	if first.Type != game.EffectBoard || last.Type != game.EffectGameOver {
		t.Errorf("expected board ... game_over, got %s ... %s", first.Type, last.Type)
	}
}

func TestRunPlayHumanQuits(t *testing.T) {
	args := isolate(t)
	t.Setenv("PLAYERS", "human")

	var out, errOut syncBuffer
	if err := run(context.Background(), append(args, "-mode", "play"), strings.NewReader("0\nquit\n"), &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out.String(), "Game over!") {
		t.Errorf("game should not finish after quitting:\n%s", out.String())
	}
}

func TestRunInvalidConfig(t *testing.T) {
	args := isolate(t)
	t.Setenv("GRID_SIZE", "3")

	var out, errOut bytes.Buffer
	err := run(context.Background(), append(args, "-mode", "simulate"), strings.NewReader(""), &out, &errOut)
	if !errors.Is(err, matcherrors.ErrInvalidGridSize) {
		t.Errorf("expected ErrInvalidGridSize, got %v", err)
	}
}

func TestRunUnknownMode(t *testing.T) {
	args := isolate(t)
	var out, errOut bytes.Buffer
	if err := run(context.Background(), append(args, "-mode", "serve"), strings.NewReader(""), &out, &errOut); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}
