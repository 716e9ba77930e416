package term

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/graph"
)

// StaticMsg carries the static graph from DrawStaticGraph.
type StaticMsg struct {
	Graph  *graph.Graph
	Source graph.NodeID
	Dest   graph.NodeID
}

// EventMsg carries one driver event.
type EventMsg animate.Event

// FrontierMsg carries the queued nodes and the next node to expand.
type FrontierMsg struct {
	Waiting []graph.NodeID
	Next    graph.NodeID
}

// Sink forwards driver callbacks to a tea.Program.
type Sink struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

var _ animate.FrontierSink = (*Sink)(nil)

// NewSink returns a sink that drops messages until Attach is called.
func NewSink() *Sink { return &Sink{} }

// Attach sets the function messages are sent with, typically Program.Send.
func (s *Sink) Attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *Sink) DrawStaticGraph(g *graph.Graph, source, dest graph.NodeID) {
	s.dispatch(StaticMsg{Graph: g, Source: source, Dest: dest})
}

func (s *Sink) OnEvent(e animate.Event) {
	s.dispatch(EventMsg(e))
}

func (s *Sink) OnFrontier(waiting []graph.NodeID, next graph.NodeID) {
	s.dispatch(FrontierMsg{Waiting: waiting, Next: next})
}

func (s *Sink) dispatch(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}
