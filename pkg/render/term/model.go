package term

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/geom"
	"github.com/matzehuels/searchviz/pkg/render"
	"github.com/matzehuels/searchviz/pkg/search"
)

const (
	defaultCols = 72
	defaultRows = 22

	// rows used by title, counter and help
	chromeRows = 6
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
)

// Controller is the part of animate.Controller the model drives.
type Controller interface {
	Start() error
	Restart() error
	Reconfigure(fn func(*animate.Config)) error
}

type startedMsg struct{ err error }

// =============================================================================
// Model - terminal animation
// =============================================================================

// Model is the bubbletea model for a live traversal.
type Model struct {
	Input     string // shown in the title next to the algorithm
	Algorithm search.Algorithm
	Palette   render.Palette
	Cols    int
	Rows    int

	ctrl  Controller
	trace *render.Trace
	runs  int
	err   error
}

// NewModel returns a model that starts ctrl when the program starts.
func NewModel(ctrl Controller, alg search.Algorithm, input string) Model {
	return Model{
		Input:     input,
		Algorithm: alg,
		Palette:   render.DefaultPalette(),
		Cols:      defaultCols,
		Rows:      defaultRows,
		ctrl:      ctrl,
	}
}

// nextAlgorithm cycles bfs, dfs, bidirectional.
func nextAlgorithm(a search.Algorithm) search.Algorithm {
	switch a {
	case search.BFS:
		return search.DFS
	case search.DFS:
		return search.Bidirectional
	}
	return search.BFS
}

func (m Model) Init() tea.Cmd {
	return m.launch(m.ctrl.Start)
}

func (m Model) launch(fn func() error) tea.Cmd {
	return func() tea.Msg { return startedMsg{err: fn()} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.launch(m.ctrl.Restart)
		case "a":
			alg := nextAlgorithm(m.Algorithm)
			m.Algorithm = alg
			return m, m.launch(func() error {
				return m.ctrl.Reconfigure(func(cfg *animate.Config) { cfg.Algorithm = alg })
			})
		}
	case tea.WindowSizeMsg:
		m.Cols = max(msg.Width-2, 10)
		m.Rows = max(msg.Height-chromeRows, 5)
	case startedMsg:
		m.err = msg.err
	case StaticMsg:
		m.trace = render.NewTrace(msg.Graph, msg.Source, msg.Dest)
		m.runs++
	case EventMsg:
		if m.trace != nil {
			m.trace.Apply(animate.Event(msg))
		}
	case FrontierMsg:
		if m.trace != nil {
			m.trace.SetFrontier(msg.Waiting, msg.Next)
		}
	}
	return m, nil
}

// Done reports whether the current run delivered Done.
func (m Model) Done() bool { return m.trace != nil && m.trace.Done }

// Runs reports how many runs have drawn a graph.
func (m Model) Runs() int { return m.runs }

func (m Model) View() string {
	var b strings.Builder

	title := m.Algorithm.String()
	if m.Input != "" {
		title += " · " + m.Input
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	if m.trace == nil {
		b.WriteString(helpStyle.Render("loading…"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.grid())

	counter := m.trace.Counter
	status := counter.Text()
	if m.trace.Done {
		status += " · done"
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(counter.Color().Hex())).Render(status))
	b.WriteString("\n")
	if q := m.queueLine(); q != "" {
		b.WriteString(q)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("r restart  a algorithm  q quit"))
	return b.String()
}

// queueLine lists the waiting nodes, the next one to expand in its own
// colour. It is empty when nothing is queued.
func (m Model) queueLine() string {
	q := m.trace.Queue()
	if len(q) == 0 {
		return ""
	}
	waiting := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Palette.Waiting.Hex()))
	next := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Palette.Next.Hex())).Bold(true)
	parts := make([]string, len(q))
	for i, id := range q {
		name := fmt.Sprintf("#%d", id)
		if n, ok := m.trace.Graph.Node(id); ok && n.Label != "" {
			name = n.Label
		}
		if id == m.trace.Next() {
			parts[i] = next.Render(name)
		} else {
			parts[i] = waiting.Render(name)
		}
	}
	return helpStyle.Render("queue ") + strings.Join(parts, " ")
}

type cell struct {
	r     rune
	color string
	z     int
}

// grid rasterizes the trace onto Cols x Rows cells. Nodes overwrite edges
// and endpoints overwrite other nodes.
func (m Model) grid() string {
	cells := make([][]cell, m.Rows)
	for i := range cells {
		cells[i] = make([]cell, m.Cols)
	}
	g := m.trace.Graph
	b := geom.Bounds(g.Points())
	w, h := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]

	toCell := func(p geom.Point) (int, int) {
		c, r := 0, 0
		if w > 0 {
			c = int(math.Round((p.X - b.Min[0]) / w * float64(m.Cols-1)))
		}
		if h > 0 {
			r = int(math.Round((p.Y - b.Min[1]) / h * float64(m.Rows-1)))
		}
		return c, r
	}
	put := func(c, r int, ch rune, color string, z int) {
		if r < 0 || r >= m.Rows || c < 0 || c >= m.Cols || cells[r][c].z > z {
			return
		}
		cells[r][c] = cell{r: ch, color: color, z: z}
	}

	edge := m.Palette.Edge.Hex()
	for _, e := range g.Edges() {
		na, _ := g.Node(e.A)
		nb, _ := g.Node(e.B)
		c0, r0 := toCell(na.Pos)
		c1, r1 := toCell(nb.Pos)
		steps := max(abs(c1-c0), abs(r1-r0))
		for i := 1; i < steps; i++ {
			t := float64(i) / float64(steps)
			c := int(math.Round(float64(c0) + t*float64(c1-c0)))
			r := int(math.Round(float64(r0) + t*float64(r1-r0)))
			put(c, r, '·', edge, 1)
		}
	}
	for _, n := range g.Nodes() {
		st := m.trace.State(n.ID)
		z, ch := 2, '●'
		switch st {
		case render.StateSource, render.StateDest:
			z, ch = 3, '◉'
		case render.StateWaiting:
			ch = '○'
		case render.StateNext:
			ch = '◎'
		}
		c, r := toCell(n.Pos)
		put(c, r, ch, m.Palette.Fill(st).Hex(), z)
	}

	var sb strings.Builder
	for _, row := range cells {
		line := strings.Builder{}
		for _, c := range row {
			if c.r == 0 {
				line.WriteByte(' ')
				continue
			}
			line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Render(string(c.r)))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Summary formats a one-line result for printing after the program exits.
func Summary(res animate.Result) string {
	if res.Found {
		return fmt.Sprintf("%s visited %d nodes, path of %d", res.Algorithm, res.Visited, len(res.Path))
	}
	return fmt.Sprintf("%s visited %d nodes, no path", res.Algorithm, res.Visited)
}
