package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/vibsim/internal/dynamo"
	"github.com/san-kum/vibsim/internal/physics"
)

const (
	chainRows       = 20
	historyCapacity = 240
	substepsPerTick = 4
)

type TickMsg time.Time

// Model animates the hanging chain in the terminal and lets the user
// nudge masses and stiffnesses while it swings.
type Model struct {
	dyn        *physics.TwoMassSpring
	integrator dynamo.Integrator

	state        dynamo.State
	initialState dynamo.State
	t, dt        float64
	running      bool

	paramKeys []string
	selected  int

	history1 []float64
	history2 []float64

	showHelp bool
}

func NewModel(dyn *physics.TwoMassSpring, integ dynamo.Integrator, initState dynamo.State, dt float64) Model {
	return Model{
		dyn:          dyn,
		integrator:   integ,
		state:        initState.Clone(),
		initialState: initState.Clone(),
		dt:           dt,
		running:      true,
		paramKeys:    []string{"m1", "m2", "k1", "k2"},
		history1:     make([]float64, 0, historyCapacity),
		history2:     make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initialState.Clone()
			m.t = 0
			m.history1 = m.history1[:0]
			m.history2 = m.history2[:0]
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < substepsPerTick; i++ {
				m.state = m.integrator.Step(m.dyn, m.state, m.t, m.dt)
				m.t += m.dt
			}
			m.record()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	m.dyn.SetParam(key, m.dyn.GetParams()[key]*factor)
}

func (m *Model) record() {
	eq := physics.Equilibrium(m.dyn.P)
	m.history1 = append(m.history1, m.state[physics.IdxX1]-eq.X1)
	m.history2 = append(m.history2, m.state[physics.IdxX2]-eq.X2)
	if len(m.history1) > historyCapacity {
		m.history1 = m.history1[len(m.history1)-historyCapacity:]
		m.history2 = m.history2[len(m.history2)-historyCapacity:]
	}
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("two-mass spring chain"))
	sb.WriteString("\n\n")

	chain := m.renderChain()
	stats := m.renderStats()

	chainLines := strings.Split(chain, "\n")
	statsLines := strings.Split(stats, "\n")
	for i := 0; i < len(chainLines) || i < len(statsLines); i++ {
		if i < len(chainLines) {
			sb.WriteString(fmt.Sprintf("%-24s", chainLines[i]))
		} else {
			sb.WriteString(strings.Repeat(" ", 24))
		}
		if i < len(statsLines) {
			sb.WriteString(statsLines[i])
		}
		sb.WriteString("\n")
	}

	if len(m.history1) > 2 {
		graph := asciigraph.PlotMany(
			[][]float64{m.history1, m.history2},
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("displacement from equilibrium (mass 1, mass 2)"),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteString("\n")
	}

	if m.showHelp {
		sb.WriteString(helpStyle.Render("space pause · r reset · tab select param · up/down adjust · q quit"))
	} else {
		sb.WriteString(helpStyle.Render("? help · q quit"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// renderChain maps both mass positions onto a fixed vertical span twice
// the rest depth of the chain, ceiling at the top row.
func (m Model) renderChain() string {
	eq := physics.Equilibrium(m.dyn.P)
	span := 2 * eq.X2
	if span <= 0 {
		span = 1
	}

	row := func(x float64) int {
		r := int(x / span * float64(chainRows-1))
		if r < 1 {
			r = 1
		}
		if r > chainRows-1 {
			r = chainRows - 1
		}
		return r
	}

	r1 := row(m.state[physics.IdxX1])
	r2 := row(m.state[physics.IdxX2])
	if r2 <= r1 {
		r2 = r1 + 1
		if r2 > chainRows-1 {
			r2 = chainRows - 1
			r1 = r2 - 1
		}
	}

	var sb strings.Builder
	sb.WriteString("▀▀▀▀▀▀▀\n")
	for r := 1; r < chainRows; r++ {
		switch {
		case r == r1:
			sb.WriteString("  ◉ m1\n")
		case r == r2:
			sb.WriteString("  ● m2\n")
		case r < r2:
			sb.WriteString("  ┊\n")
		default:
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m Model) renderStats() string {
	eq := physics.Equilibrium(m.dyn.P)

	var sb strings.Builder
	sb.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%8.2f s", m.t)) + "\n")
	sb.WriteString(labelStyle.Render("x1 / x2") +
		valueStyle.Render(fmt.Sprintf("%8.4f / %8.4f m", m.state[physics.IdxX1], m.state[physics.IdxX2])) + "\n")
	sb.WriteString(labelStyle.Render("v1 / v2") +
		valueStyle.Render(fmt.Sprintf("%8.4f / %8.4f m/s", m.state[physics.IdxV1], m.state[physics.IdxV2])) + "\n")
	sb.WriteString(labelStyle.Render("equilibrium") +
		valueStyle.Render(fmt.Sprintf("%8.4f / %8.4f m", eq.X1, eq.X2)) + "\n")
	sb.WriteString(labelStyle.Render("energy") +
		valueStyle.Render(fmt.Sprintf("%8.5f J", m.dyn.Energy(m.state))) + "\n")
	sb.WriteString("\n")

	params := m.dyn.GetParams()
	for i, key := range m.paramKeys {
		line := fmt.Sprintf("%-4s %8.4f", key, params[key])
		if i == m.selected {
			sb.WriteString(activeParamStyle.Render("> " + line))
		} else {
			sb.WriteString(valueStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	return statsStyle.Render(sb.String())
}
