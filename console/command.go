package console

import (
	"strconv"
	"strings"

	"memory-match/game"
)

const helpText = "Commands: <n> or flip <n> to turn card n, quit to leave."

type commandKind int

const (
	cmdNone commandKind = iota
	cmdFlip
	cmdQuit
	cmdHelp
	cmdInvalid
)

// command is one parsed line of player input.
type command struct {
	kind  commandKind
	index int
	// notice is shown to the player for cmdInvalid.
	notice string
}

// parseCommand reads "<n>", "flip <n>", "quit" or "help" in any case.
func parseCommand(line string) command {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{kind: cmdNone}
	}
	switch fields[0] {
	case "quit", "q", "exit":
		return command{kind: cmdQuit}
	case "help", "h", "?":
		return command{kind: cmdHelp}
	case "flip", "f":
		if len(fields) < 2 {
			return command{kind: cmdInvalid, notice: "Which card? Try: flip 3"}
		}
		return parseIndex(fields[1])
	default:
		return parseIndex(fields[0])
	}
}

func parseIndex(arg string) command {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return command{kind: cmdInvalid, notice: "Unknown command " + strconv.Quote(arg) + ". " + helpText}
	}
	return command{kind: cmdFlip, index: idx}
}

// action converts a flip or quit command into the engine action it requests.
func (c command) action() (game.Action, bool) {
	switch c.kind {
	case cmdFlip:
		return game.Action{Type: game.ActionFlipCard, Index: c.index, Origin: game.OriginHuman}, true
	case cmdQuit:
		return game.Action{Type: game.ActionQuit}, true
	}
	return game.Action{}, false
}

// sendAction delivers a to g unless the game has already stopped.
func sendAction(g *game.Game, a game.Action) {
	select {
	case g.Actions <- a:
	case <-g.Done:
	}
}

func hasHuman(g *game.Game) bool {
	for _, p := range g.Players {
		if !p.IsComputer() {
			return true
		}
	}
	return false
}

func result(g *game.Game) *game.Standings {
	if !g.Finished {
		return nil
	}
	return g.Result
}
