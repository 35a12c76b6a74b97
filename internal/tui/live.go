// Package tui provides a live terminal view that steps through the
// time evolution of the computed distribution and spectrum.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/astrosim/pulsarsed/internal/pipeline"
	"github.com/astrosim/pulsarsed/internal/render"
)

const (
	plotWidth  = 72
	plotHeight = 12
	frameDelay = 800 * time.Millisecond
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	plotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

// Model steps through the time grid of a finished run.
type Model struct {
	res     *pipeline.Result
	dist    *render.LogLogPlot
	spec    *render.LogLogPlot
	step    int
	playing bool
}

func NewModel(res *pipeline.Result) (Model, error) {
	spec, _, err := render.SpectrumPlot(res)
	if err != nil {
		return Model{}, err
	}
	return Model{
		res:     res,
		dist:    render.DistributionPlot(res),
		spec:    spec,
		playing: true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameDelay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "[":
			m.step = (m.step + len(m.res.Dist.Times) - 1) % len(m.res.Dist.Times)
		case "]":
			m.step = (m.step + 1) % len(m.res.Dist.Times)
		case "r":
			m.step = 0
		}
	case tickMsg:
		if m.playing {
			m.step = (m.step + 1) % len(m.res.Dist.Times)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	d := m.res.Derived
	t := m.res.Dist.Times[m.step]

	// Single-step copies of the two panels.
	distStep := *m.dist
	distStep.Curves = m.dist.Curves[m.step : m.step+1]
	specStep := *m.spec
	specStep.Curves = m.spec.Curves[m.step : m.step+1]

	plots := plotStyle.Render(
		distStep.Render(plotWidth, plotHeight) + "\n" + specStep.Render(plotWidth, plotHeight))

	stats := statsStyle.Render(strings.Join([]string{
		row("step", fmt.Sprintf("%d / %d", m.step+1, len(m.res.Dist.Times))),
		row("time", fmt.Sprintf("%.3e s", t)),
		row("t / t_p", fmt.Sprintf("%.2g", t/d.PericenterTime)),
		row("B field", fmt.Sprintf("%.3g G", d.MagField)),
		row("gamma_max", fmt.Sprintf("%.3g", d.GammaMax)),
		row("gc1(t)", fmt.Sprintf("%.3g", d.GammaCool1(t))),
		row("particles", fmt.Sprintf("%.3g", m.res.Dist.TotalParticles(m.step))),
	}, "\n"))

	help := helpStyle.Render("space pause · [ / ] scrub · r restart · q quit")

	return headerStyle.Render("pulsar-disk flare evolution") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, plots, stats) + "\n" + help
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// Run starts the live view for a finished pipeline result.
func Run(res *pipeline.Result) error {
	m, err := NewModel(res)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
