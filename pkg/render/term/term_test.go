package term

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/render"
	"github.com/matzehuels/searchviz/pkg/search"
)

type fakeController struct {
	starts, restarts int
	cfg              animate.Config
	err              error
}

func (f *fakeController) Start() error   { f.starts++; return f.err }
func (f *fakeController) Restart() error { f.restarts++; return f.err }

func (f *fakeController) Reconfigure(fn func(*animate.Config)) error {
	fn(&f.cfg)
	f.restarts++
	return f.err
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestModelLifecycle(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, search.BFS, "A → C")

	if msg := m.Init()(); msg != (startedMsg{}) {
		t.Fatalf("Init cmd returned %#v", msg)
	}
	if ctrl.starts != 1 {
		t.Fatalf("starts = %d, want 1", ctrl.starts)
	}
	if !strings.Contains(m.View(), "loading") {
		t.Errorf("View() before StaticMsg = %q", m.View())
	}

	m, _ = update(t, m, StaticMsg{Graph: graph.Triangle(), Source: 0, Dest: 2})
	for _, id := range []graph.NodeID{0, 1, 2} {
		m, _ = update(t, m, EventMsg{Kind: animate.VisitedSource, Node: id})
	}
	if m.Done() {
		t.Error("Done() before Done event")
	}
	m, _ = update(t, m, EventMsg{Kind: animate.Done, Node: graph.None})

	view := m.View()
	for _, want := range []string{"bfs · A → C", "1 nodes · done", "r restart", "◉", "●"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if !m.Done() || m.Runs() != 1 {
		t.Errorf("Done() = %v, Runs() = %d", m.Done(), m.Runs())
	}
}

func TestModelKeys(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, search.BFS, "")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("r returned no command")
	}
	if ctrl.restarts != 0 {
		t.Error("Restart called from Update")
	}
	cmd()
	if ctrl.restarts != 1 {
		t.Errorf("restarts = %d, want 1", ctrl.restarts)
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModelSwitchAlgorithm(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, search.BFS, "demo")

	var cmd tea.Cmd
	for _, want := range []search.Algorithm{search.DFS, search.Bidirectional, search.BFS} {
		m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
		if m.Algorithm != want {
			t.Errorf("Algorithm = %v, want %v", m.Algorithm, want)
		}
		cmd()
		if ctrl.cfg.Algorithm != want {
			t.Errorf("reconfigured to %v, want %v", ctrl.cfg.Algorithm, want)
		}
	}
	if ctrl.restarts != 3 {
		t.Errorf("restarts = %d, want 3", ctrl.restarts)
	}
	m, _ = update(t, m, StaticMsg{Graph: graph.Triangle(), Source: 0, Dest: 2})
	if !strings.Contains(m.View(), "bfs · demo") {
		t.Errorf("View() title wrong:\n%s", m.View())
	}
}

func TestModelError(t *testing.T) {
	ctrl := &fakeController{err: errors.New("boom")}
	m := NewModel(ctrl, search.BFS, "")
	m, _ = update(t, m, m.Init()())
	if !strings.Contains(m.View(), "error: boom") {
		t.Errorf("View() = %q, want error", m.View())
	}
}

func TestModelWindowSize(t *testing.T) {
	m := NewModel(&fakeController{}, search.BFS, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 15})
	if m.Cols != 38 || m.Rows != 9 {
		t.Errorf("Cols, Rows = %d, %d, want 38, 9", m.Cols, m.Rows)
	}
	m, _ = update(t, m, StaticMsg{Graph: graph.Demo(), Source: 0, Dest: 8})
	lines := strings.Split(strings.TrimRight(m.grid(), "\n"), "\n")
	if len(lines) != 9 {
		t.Errorf("grid rows = %d, want 9", len(lines))
	}
}

func TestSinkForwards(t *testing.T) {
	var got []tea.Msg
	s := NewSink()
	s.OnEvent(animate.Event{Kind: animate.VisitedSource, Node: 1})
	s.Attach(func(msg tea.Msg) { got = append(got, msg) })

	rec, err := animate.Complete(animate.Config{
		Graph:     graph.Triangle(),
		Algorithm: search.BFS,
		Source:    0,
		Dest:      2,
		Sink:      s,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Found {
		t.Error("Found = false")
	}
	// static, initial queue, then a visit and a queue per step, then done
	if len(got) != 9 {
		t.Fatalf("messages = %d, want 9", len(got))
	}
	if _, ok := got[0].(StaticMsg); !ok {
		t.Errorf("first message = %T, want StaticMsg", got[0])
	}
	if f, ok := got[1].(FrontierMsg); !ok || f.Next != 0 {
		t.Errorf("second message = %#v, want FrontierMsg with next 0", got[1])
	}
	if e, ok := got[8].(EventMsg); !ok || e.Kind != animate.Done {
		t.Errorf("last message = %#v, want Done", got[8])
	}
}

func TestModelQueue(t *testing.T) {
	g := graph.Demo()
	m := NewModel(&fakeController{}, search.DFS, "demo")
	m, _ = update(t, m, StaticMsg{Graph: g, Source: 0, Dest: 8})
	m, _ = update(t, m, EventMsg{Kind: animate.VisitedSource, Node: 0})
	m, _ = update(t, m, FrontierMsg{Waiting: []graph.NodeID{1, 2}, Next: 2})

	if st := m.trace.State(2); st != render.StateNext {
		t.Errorf("C state = %v, want next", st)
	}
	if st := m.trace.State(1); st != render.StateWaiting {
		t.Errorf("B state = %v, want waiting", st)
	}
	view := m.View()
	if !strings.Contains(view, "queue") || !strings.Contains(view, "B") || !strings.Contains(view, "C") {
		t.Errorf("view lacks queue line:\n%s", view)
	}

	m, _ = update(t, m, FrontierMsg{Next: graph.None})
	if strings.Contains(m.View(), "queue") {
		t.Error("queue line shown for empty frontier")
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		res  animate.Result
		want string
	}{
		{animate.Result{Algorithm: search.BFS, Visited: 9, Found: true, Path: []graph.NodeID{0, 1, 3, 6, 8}}, "bfs visited 9 nodes, path of 5"},
		{animate.Result{Algorithm: search.DFS, Visited: 1}, "dfs visited 1 nodes, no path"},
	}
	for _, tt := range tests {
		if got := Summary(tt.res); got != tt.want {
			t.Errorf("Summary(%+v) = %q, want %q", tt.res, got, tt.want)
		}
	}
}
