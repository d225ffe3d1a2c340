package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"memory-match/game"
	"memory-match/render"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// effectMsg carries one engine effect into the program.
type effectMsg game.Effect

// gameDoneMsg reports that the engine loop has stopped.
type gameDoneMsg struct{}

// Model is the bubbletea model for one game. Engine effects arrive as
// messages; typed commands leave as engine actions.
type Model struct {
	game  *game.Game
	human bool
	input textinput.Model
	grid  render.Grid

	gameID  string
	turn    string
	scores  string
	message string
	notice  string
	over    string
	ranked  []string
	done    bool
}

// NewModel creates the model for g with the command prompt focused.
func NewModel(g *game.Game) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "card number, help or quit"
	in.CharLimit = 16
	in.Width = 28
	in.Focus()
	return Model{game: g, human: hasHuman(g), input: in, gameID: g.ID}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitDone(m.game))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case effectMsg:
		m.apply(game.Effect(msg))
		return m, nil
	case gameDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.send(game.Action{Type: game.ActionQuit})
		case tea.KeyEnter:
			return m.submit()
		}
	}
	if !m.human {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Memory Match") + " " + dimStyle.Render(m.gameID) + "\n\n")
	b.WriteString(m.grid.String())
	b.WriteString("\n")
	if m.scores != "" {
		b.WriteString("Scores: " + m.scores + "\n")
	}
	if m.over != "" {
		b.WriteString(titleStyle.Render("Game over! "+m.over) + "\n")
		for _, line := range m.ranked {
			b.WriteString(line + "\n")
		}
		return b.String()
	}
	if m.turn != "" {
		b.WriteString(m.turn + "\n")
	}
	if m.message != "" {
		b.WriteString(messageStyle.Render("» "+m.message) + "\n")
	}
	if m.human && !m.done {
		b.WriteString("\n" + m.input.View() + "\n")
		if m.notice != "" {
			b.WriteString(dimStyle.Render(m.notice) + "\n")
		}
	}
	return b.String()
}

func (m *Model) apply(e game.Effect) {
	if m.grid.Apply(e) {
		if e.Type == game.EffectBoard && e.GameID != "" {
			m.gameID = e.GameID
		}
		return
	}
	switch e.Type {
	case game.EffectMessage:
		m.message = e.Message
	case game.EffectTurn:
		// Messages last until the next turn starts
		m.message = ""
		if e.Current != nil {
			m.turn = e.Current.Label + "'s turn"
		}
	case game.EffectScores:
		m.scores = render.ScoreLine(e.Scores)
	case game.EffectGameOver:
		m.over = e.Message
		m.ranked = render.StandingLines(e.Standings)
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	cmd := parseCommand(m.input.Value())
	m.input.Reset()
	m.notice = ""
	switch cmd.kind {
	case cmdHelp:
		m.notice = helpText
	case cmdInvalid:
		m.notice = cmd.notice
	}
	if a, ok := cmd.action(); ok {
		return m, m.send(a)
	}
	return m, nil
}

// send returns a command that delivers a outside the update loop.
func (m Model) send(a game.Action) tea.Cmd {
	g := m.game
	return func() tea.Msg {
		sendAction(g, a)
		return nil
	}
}

func waitDone(g *game.Game) tea.Cmd {
	return func() tea.Msg {
		<-g.Done
		return gameDoneMsg{}
	}
}

// TUI runs one game as a bubbletea program on a terminal. It is also a
// game.Renderer that forwards every effect to the program.
type TUI struct {
	In  io.Reader
	Out io.Writer

	program *tea.Program
	log     *slog.Logger
}

// NewTUI creates a TUI reading keys from in and drawing to out.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{In: in, Out: out, log: slog.Default().With("tag", "tui")}
}

// Render implements game.Renderer. It blocks until the program takes the
// effect, or returns immediately after the program has stopped.
func (t *TUI) Render(e game.Effect) {
	if t.program != nil {
		t.program.Send(effectMsg(e))
	}
}

// Run plays g until it ends, the player quits or ctx is cancelled. g must
// render through t. It returns the final standings, or nil if the game was
// not finished.
func (t *TUI) Run(ctx context.Context, g *game.Game) (*game.Standings, error) {
	t.program = tea.NewProgram(NewModel(g),
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	)
	go g.Run(ctx)

	_, err := t.program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		t.log.Warn("terminal UI failed", "game", g.ID, "error", err)
		sendAction(g, game.Action{Type: game.ActionQuit})
		<-g.Done
		return nil, err
	}
	<-g.Done
	return result(g), nil
}
