// Package viz renders a live top-down view of the ensemble in the
// terminal using braille-cell trails.
package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitlab/internal/body"
	"github.com/san-kum/orbitlab/internal/sim"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps a simulator in real time and draws XY-plane orbit trails.
type Model struct {
	simulator     *sim.Simulator
	dt            float64
	stepsPerFrame int
	fps           int

	canvas        *Canvas
	scale         float64
	running       bool
	initialEnergy float64
}

// NewModel wraps a simulator for live viewing. stepsPerFrame controls
// how much simulated time passes per rendered frame.
func NewModel(s *sim.Simulator, dt float64, stepsPerFrame, fps int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if fps < 1 {
		fps = 30
	}
	return Model{
		simulator:     s,
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		fps:           fps,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		scale:         viewScale(s.Bodies()),
		running:       true,
		initialEnergy: body.TotalEnergy(s.Bodies()),
	}
}

// viewScale fits the ensemble's largest planar coordinate into the view
// with a little margin.
func viewScale(bodies []*body.Body) float64 {
	max := 0.0
	for _, b := range bodies {
		max = math.Max(max, math.Abs(b.Pos.X()))
		max = math.Max(max, math.Abs(b.Pos.Y()))
	}
	if max == 0 {
		return 1
	}
	return max * 1.2
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "c":
			m.canvas.Clear()
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.simulator.Step(m.dt)
			}
			m.plot()
		}
		return m, m.tick()
	}
	return m, nil
}

// plot marks each body's current XY position on the trail canvas.
func (m *Model) plot() {
	subW := float64(canvasWidth * 2)
	subH := float64(canvasHeight * 4)

	for _, b := range m.simulator.Bodies() {
		nx := b.Pos.X() / m.scale
		ny := b.Pos.Y() / m.scale
		px := int((nx + 1) / 2 * (subW - 1))
		py := int((1 - ny) / 2 * (subH - 1))
		m.canvas.Set(px, py)
	}
}

func (m Model) View() string {
	stats := m.renderStats()
	canvas := canvasStyle.Render(m.canvas.String())

	view := lipgloss.JoinHorizontal(lipgloss.Top, canvas, stats)
	help := helpStyle.Render("space pause  c clear trails  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, view, help)
}

func (m Model) renderStats() string {
	bodies := m.simulator.Bodies()

	drift := 0.0
	if m.initialEnergy != 0 {
		drift = math.Abs(body.TotalEnergy(bodies)-m.initialEnergy) / math.Abs(m.initialEnergy)
	}

	days := m.simulator.Time() / 86400

	rows := headerStyle.Render("orbitlab live") + "\n"
	rows += labelStyle.Render("bodies") + valueStyle.Render(fmt.Sprintf("%d", len(bodies))) + "\n"
	rows += labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d", m.simulator.StepCount())) + "\n"
	rows += labelStyle.Render("sim time") + valueStyle.Render(fmt.Sprintf("%.1f d", days)) + "\n"
	rows += labelStyle.Render("dt") + valueStyle.Render(fmt.Sprintf("%.0f s", m.dt)) + "\n"
	rows += labelStyle.Render("energy drift") + valueStyle.Render(fmt.Sprintf("%.2e", drift)) + "\n"

	state := "running"
	if !m.running {
		state = "paused"
	}
	rows += labelStyle.Render("state") + valueStyle.Render(state)

	return statsStyle.Render(rows)
}
