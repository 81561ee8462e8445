package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/sound"
	"github.com/decker502/fireworks/pkg/systems"
)

// overlayRows is the number of terminal rows below the sky.
const overlayRows = 3

const frameInterval = time.Second / 60

// frameMsg drives one animation tick. id identifies the tick chain so a
// chain left over from before a pause is dropped.
type frameMsg struct{ id int }

// scoreMsg is delivered after the board received one or more updates.
type scoreMsg struct{}

func tick(id int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{id: id} })
}

// waitForScore blocks on the board's wake channel so a paused model resumes
// when a new score arrives.
func waitForScore(board *game.ScoreBoard) tea.Cmd {
	return func() tea.Msg {
		<-board.Wake()
		return scoreMsg{}
	}
}

var helpStyle = lipgloss.NewStyle().Faint(true)

type model struct {
	board  *game.ScoreBoard
	system *systems.FireworkSystem
	canvas *render.CellCanvas
	player *sound.SpeakerPlayer // nil without an audio device

	width, height int
	paused        bool
	muted         bool
	frameID       int
}

func newModel(board *game.ScoreBoard, opts systems.Options, rng particle.Rand) *model {
	return &model{
		board:  board,
		system: systems.NewFireworkSystem(opts, rng),
		canvas: render.NewCellCanvas(0, 0),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(tick(m.frameID), waitForScore(m.board))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		if m.paused || msg.id != m.frameID {
			return m, nil
		}
		state := m.board.Snapshot()
		m.canvas.Background(state.Celebrating)
		m.system.Tick(state, m.canvas)
		return m, tick(m.frameID)

	case scoreMsg:
		cmds := []tea.Cmd{waitForScore(m.board)}
		if m.paused {
			cmds = append(cmds, m.resume())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := m.board.Snapshot()
	maxScore := state.MaxScore
	if maxScore <= 0 {
		maxScore = 10
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "f":
		m.board.Apply(game.ScoreEvent{Score: maxScore, MaxScore: maxScore})
	case "h":
		m.board.Apply(game.ScoreEvent{Score: maxScore / 2, MaxScore: maxScore})
	case "0":
		m.board.Apply(game.ScoreEvent{})
	case "m":
		m.muted = !m.muted
		if m.player != nil {
			m.player.SetEnabled(!m.muted)
		}
	case "p":
		if m.paused {
			return m.resume()
		}
		m.paused = true
	}
	return nil
}

// resume restarts the tick chain under a new id.
func (m *model) resume() tea.Cmd {
	m.paused = false
	m.frameID++
	return tick(m.frameID)
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	rows := height - overlayRows
	if rows < 0 {
		rows = 0
	}
	m.canvas.Resize(width, rows)
	w, h := m.canvas.LogicalSize()
	m.system.Resize(entities.Bounds{Width: w, Height: h})
}

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	state := m.board.Snapshot()
	o := game.LayoutOverlay(state, float64(m.width), float64(m.height))

	headline := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(render.HexColor(o.HeadlineColor))).
		Render(shapeGlyph(o.Shape) + o.Headline)
	score := o.ScoreText
	help := "f full · h half · 0 reset · p pause · m mute · q quit"
	if m.muted {
		help = "muted · " + help
	}
	if m.paused {
		help = "paused · " + help
	}

	var b strings.Builder
	b.WriteString(m.canvas.String())
	b.WriteByte('\n')
	b.WriteString(m.centerLine(headline))
	b.WriteByte('\n')
	b.WriteString(m.centerLine(score))
	b.WriteByte('\n')
	b.WriteString(m.centerLine(helpStyle.Render(help)))
	return b.String()
}

// centerLine centres s on one row, cutting it at the terminal width.
func (m *model) centerLine(s string) string {
	placed := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(placed)
}

func shapeGlyph(s game.Shape) string {
	switch s {
	case game.ShapeCircle:
		return "● "
	case game.ShapeSquare:
		return "■ "
	default:
		return ""
	}
}
