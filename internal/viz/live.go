package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/render"
	"github.com/san-kum/solarsim/internal/sim"
)

const (
	width           = 80
	height          = 30
	statsWidth      = 52
	historyCapacity = 400
	starCount       = 60
)

type TickMsg time.Time

// CanvasSize is the drawing surface of a fresh Model in sub-pixels, before
// any resize.
func CanvasSize() (float64, float64) {
	return width * 2, height * 4
}

// Model drives one update and one draw pass of the simulation per tick.
type Model struct {
	sim       *sim.Simulation
	name      string
	fps       int
	canvas    *Canvas
	stars     *render.Starfield
	running   bool
	selected  int
	distances []float64
	showHelp  bool
	err       error
}

func NewModel(s *sim.Simulation, name string, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	m := Model{
		sim:       s,
		name:      name,
		fps:       fps,
		canvas:    NewCanvas(width, height),
		stars:     render.NewStarfield(starCount, 1),
		running:   true,
		distances: make([]float64, 0, historyCapacity),
	}
	// default to the first body that actually moves
	for i, b := range s.Bodies() {
		if !b.IsStar() {
			m.selected = i
			break
		}
	}
	// single sub-pixel stars; a unit disc is a cross on a Braille grid
	m.stars.Radius = 0
	m.stars.Draw(m.canvas)
	return m
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
			if m.err == nil {
				m.running = !m.running
			}
		case "tab":
			if n := len(m.sim.Bodies()); n > 0 {
				m.selected = (m.selected + 1) % n
				m.distances = m.distances[:0]
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := msg.Width - statsWidth - 2
		h := msg.Height - 1
		if w > 10 && h > 5 && (w != m.canvas.Width || h != m.canvas.Height) {
			m.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step runs one frame: update, then draw.
func (m *Model) step() {
	if err := m.sim.Step(); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.redraw()

	bodies := m.sim.Bodies()
	if m.selected < len(bodies) {
		m.distances = append(m.distances, bodies[m.selected].Distance()/render.AU)
		if len(m.distances) > historyCapacity {
			m.distances = m.distances[1:]
		}
	}
}

func (m *Model) redraw() {
	m.canvas.Clear()
	m.stars.Draw(m.canvas)
	m.sim.Draw(m.canvas)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("DIVERGED") + "\n")
		s.WriteString(valueStyle.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	elapsed := m.sim.Elapsed()
	s.WriteString(row("elapsed", fmt.Sprintf("%.1f days", elapsed/sim.Day)))
	s.WriteString(row("steps", fmt.Sprintf("%d", m.sim.Steps())))
	s.WriteString(row("timestep", fmt.Sprintf("%.0f s", m.sim.Timestep())))
	s.WriteString("\n")

	for i, b := range m.sim.Bodies() {
		s.WriteString(m.bodyLine(i, b) + "\n")
	}

	if len(m.distances) > 1 {
		bodies := m.sim.Bodies()
		chart := asciigraph.Plot(m.distances,
			asciigraph.Height(6),
			asciigraph.Width(36),
			asciigraph.Caption(bodies[m.selected].Name()+" distance (AU)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("space pause/resume\ntab   select body\n?     toggle help\nq     quit"))
	} else {
		s.WriteString(helpStyle.Render("? help  q quit"))
	}

	canvasView := canvasStyle.Render(m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func (m Model) bodyLine(i int, b *physics.Body) string {
	name := b.Name()
	if i == m.selected {
		name = selectedStyle.Render(name)
	}

	var detail string
	switch {
	case b.IsStar():
		detail = "fixed"
	case b.Trail().Completed():
		detail = fmt.Sprintf("%.2f AU  orbit done (%d pts)", b.Distance()/render.AU, b.Trail().Len())
	default:
		detail = fmt.Sprintf("%.2f AU  %.1f km/s", b.Distance()/render.AU, b.Speed()/1000)
	}
	return swatch(b.Color()) + " " + labelStyle.Render(name) + valueStyle.Render(detail)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// RunLive opens the live view in the alternate screen and blocks until the
// user quits.
func RunLive(s *sim.Simulation, name string, fps int) error {
	p := tea.NewProgram(NewModel(s, name, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
