package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/bubblepop/internal/control"
	"github.com/san-kum/bubblepop/internal/game"
	"github.com/san-kum/bubblepop/internal/sim"
)

// AimStep is how far one left/right key press turns the shooter, in radians.
const AimStep = 0.05

// copyText is swapped out in tests.
var copyText = clipboard.WriteAll

type tickMsg time.Time

// trail keeps the score after every settled shot for the sparkline.
type trail struct {
	scores []float64
}

func (t *trail) OnStep(s *game.State, in game.Input, res game.StepResult) {
	if res.Attached || res.Missed || res.Skipped || res.Over {
		t.scores = append(t.scores, float64(s.Score))
	}
}

func (t *trail) reset() { t.scores = t.scores[:0] }

type model struct {
	game   *game.Game
	ctrl   *control.Manual
	pilot  sim.Aimer
	rules  game.Rules
	fps    int
	paused bool
	status string

	history   *trail
	observers []sim.Observer
	board     *Board

	width  int
	height int
}

func NewApp(rules game.Rules, seed int64, fps int) (*model, error) {
	g, err := game.New(rules, seed)
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		fps = 60
	}
	history := &trail{scores: make([]float64, 0, 64)}
	m := &model{
		game:      g,
		ctrl:      control.NewManual(),
		rules:     g.Rules(),
		fps:       fps,
		history:   history,
		observers: []sim.Observer{history},
		width:     80,
		height:    32,
	}
	m.resize()
	return m, nil
}

// NewWatch is NewApp with the shooter driven by aimer instead of the keys.
func NewWatch(rules game.Rules, seed int64, fps int, aimer sim.Aimer) (*model, error) {
	if aimer == nil {
		return nil, fmt.Errorf("watch needs an aimer")
	}
	m, err := NewApp(rules, seed, fps)
	if err != nil {
		return nil, err
	}
	m.pilot = aimer
	return m, nil
}

func (m *model) resize() {
	cols, rows := boardSize(m.rules, m.width, m.height)
	m.board = NewBoard(cols, rows)
}

func (m model) Init() tea.Cmd { return m.tick() }

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tickMsg:
		if !m.paused {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	if m.pilot != nil {
		switch key {
		case "left", "h", "right", "l", "a", "d", " ", "enter":
			return m, nil
		}
	}
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.ctrl.Turn(-AimStep)
	case "right", "l":
		m.ctrl.Turn(AimStep)
	case "a":
		m.ctrl.Move(-1)
	case "d":
		m.ctrl.Move(1)
	case " ", "enter":
		m.ctrl.Fire()
	case "p":
		m.paused = !m.paused
	case "r":
		m.game.Reset()
		m.ctrl.Reset()
		m.history.reset()
		m.status = fmt.Sprintf("new game, seed %d", m.game.Seed())
	case "y":
		if err := copyText(Summary(m.game)); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = "result copied"
		}
	}
	return m, nil
}

func (m *model) step() {
	st := m.game.Peek()
	// keys pressed after the game ended are dropped, not carried into the next one
	in := m.ctrl.Compute(st)
	if st.Over() {
		return
	}
	if m.pilot != nil {
		in = m.pilot.Compute(st)
	}
	res := m.game.Step(in)
	for _, o := range m.observers {
		o.OnStep(st, in, res)
	}
	switch {
	case res.Popped > 0:
		m.status = fmt.Sprintf("popped %d", res.Popped)
		if res.Dropped > 0 {
			m.status += fmt.Sprintf(", dropped %d", res.Dropped)
		}
	case res.Missed:
		m.status = "missed"
	}
	if res.ExtraTries > 0 {
		m.status += fmt.Sprintf("  +%d try", res.ExtraTries)
	}
}

// Summary is a one-line report of the current game.
func Summary(g *game.Game) string {
	st := g.Peek()
	rules := g.Rules()
	out := fmt.Sprintf("bubblepop %s seed=%d score=%d shots=%d popped=%d dropped=%d",
		rules.Mode, g.Seed(), st.Score, st.Shots, st.Popped, st.Dropped)
	switch {
	case st.Cleared:
		out += " cleared"
	case st.Over():
		out += " over"
	}
	return out
}

func (m model) View() string {
	st := m.game.Peek()
	m.board.Draw(st, m.rules)

	var b strings.Builder

	status := StatusRunning.Render("● playing")
	switch {
	case st.Cleared:
		status = StatusRunning.Render("★ board cleared")
	case st.Over():
		status = StatusOver.Render("✖ game over")
	case m.paused:
		status = StatusPaused.Render("○ paused")
	}
	fmt.Fprintf(&b, "\n  %s  %s  %s\n", Title.Render("bubblepop"), Subtle.Render(string(m.rules.Mode)), status)

	stats := []string{
		MetricLabel.Render("score ") + MetricValue.Render(fmt.Sprintf("%d", st.Score)),
		MetricLabel.Render("shots ") + MetricValue.Render(fmt.Sprintf("%d", st.Shots)),
		MetricLabel.Render("bubbles ") + MetricValue.Render(fmt.Sprintf("%d", st.Count())),
	}
	if m.rules.Mode == game.ModeFree {
		stats = append(stats, MetricLabel.Render("tries ")+MetricValue.Render(fmt.Sprintf("%d", st.Tries)))
	}
	if !st.Next.Empty() {
		stats = append(stats, MetricLabel.Render("next ")+bubbleStyle(st.Next).Render(string(glyphBubble)))
	}
	b.WriteString("  " + strings.Join(stats, "   ") + "\n")

	b.WriteString(Panel.Render(m.board.Render()) + "\n")

	if len(m.history.scores) > 1 {
		b.WriteString("  " + MetricLabel.Render("score ") + SparklineChart(m.history.scores, 32) + "\n")
	}
	if m.status != "" {
		b.WriteString("  " + Subtle.Render(m.status) + "\n")
	}

	hint := "←→ aim  a/d move  space fire  p pause  r restart  y copy  q quit"
	if m.pilot != nil {
		hint = "watching  p pause  r restart  y copy  q quit"
	}
	if st.Over() {
		hint = "r new game  y copy result  q quit"
	}
	b.WriteString("\n" + KeyHint.Render("  "+hint) + "\n")

	return b.String()
}

func RunInteractive(rules game.Rules, seed int64, fps int) error {
	m, err := NewApp(rules, seed, fps)
	if err != nil {
		return err
	}
	return run(m)
}

// RunWatch shows aimer playing the game in the terminal.
func RunWatch(rules game.Rules, seed int64, fps int, aimer sim.Aimer) error {
	m, err := NewWatch(rules, seed, fps, aimer)
	if err != nil {
		return err
	}
	return run(m)
}

func run(m *model) error {
	p := tea.NewProgram(*m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
