package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"sirlab/internal/epi"
	"sirlab/internal/metrics"
)

type TickMsg time.Time

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).MarginTop(1)

// LiveModel replays a solved trajectory point by point, drawing the
// epidemic curves as they unfold.
type LiveModel struct {
	model   string
	tr      *epi.Trajectory
	rec     *metrics.Record
	params  epi.Params
	cursor  int
	running bool
	fps     int
	done    bool
}

func NewLiveModel(model string, tr *epi.Trajectory, rec *metrics.Record, p epi.Params, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	return LiveModel{
		model:   model,
		tr:      tr,
		rec:     rec,
		params:  p,
		cursor:  1,
		running: true,
		fps:     fps,
	}
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.cursor = 1
			m.done = false
			m.running = true
		}
	case TickMsg:
		if m.running && !m.done {
			m.cursor++
			if m.cursor >= m.tr.Len() {
				m.cursor = m.tr.Len()
				m.done = true
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m LiveModel) View() string {
	var s strings.Builder
	s.WriteString(Title(fmt.Sprintf("%s  day %.1f / %.0f", m.model, m.tr.Times[m.cursor-1], m.params.Days)))
	s.WriteString("\n\n")

	chart := asciigraph.PlotMany(
		[][]float64{m.tr.Susceptible[:m.cursor], m.tr.Infected[:m.cursor], m.tr.Removed[:m.cursor]},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green),
	)
	s.WriteString(chart)
	s.WriteString("\n\n")
	s.WriteString(Legend())
	s.WriteString("\n")

	if m.done {
		s.WriteString("\n")
		s.WriteString(StatCards(m.rec, m.params))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("space pause    r restart    q quit"))
	s.WriteString("\n")
	return s.String()
}
