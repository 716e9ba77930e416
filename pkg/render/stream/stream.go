// Package stream publishes driver events as Server-Sent Events.
//
// A [Sink] buffers every event of one run, so the driver never blocks on a
// slow client, and [Sink.ServeHTTP] replays them to a single subscriber:
//
//	event: graph
//	data: {"nodes":[...],"edges":[...],"source":0,"dest":8}
//
//	event: step
//	data: {"visitedSource":0}
//
//	event: done
//	data: {"done":true}
package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/graph"
)

// KeepAlive is the interval of comment lines sent while idle.
var KeepAlive = 30 * time.Second

// GraphFrame is the payload of the initial "graph" event.
type GraphFrame struct {
	graph.Document
	Source graph.NodeID `json:"source"`
	Dest   graph.NodeID `json:"dest"`
}

// Sink is an animate.Sink that queues events for one SSE subscriber.
type Sink struct {
	mu     sync.Mutex
	frame  *GraphFrame
	events chan animate.Event
	ready  chan struct{}
	closed bool
}

var _ animate.Sink = (*Sink)(nil)

// NewSink returns an empty sink. ServeHTTP waits for DrawStaticGraph.
func NewSink() *Sink {
	return &Sink{ready: make(chan struct{})}
}

func (s *Sink) DrawStaticGraph(g *graph.Graph, source, dest graph.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame != nil || s.closed {
		return
	}
	s.frame = &GraphFrame{Document: graph.ToDocument(g), Source: source, Dest: dest}
	// Each side visits a node at most once, plus one Done.
	s.events = make(chan animate.Event, 2*g.Len()+1)
	close(s.ready)
}

func (s *Sink) OnEvent(e animate.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.events == nil {
		return
	}
	select {
	case s.events <- e:
	default:
	}
	if e.Kind == animate.Done {
		s.closeLocked()
	}
}

// Close ends the stream. Subscribers see the connection end without a done
// event. It is safe to call more than once.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Sink) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	if s.events != nil {
		close(s.events)
	} else {
		close(s.ready)
	}
}

// ServeHTTP streams the graph and then every event until Done, Close or
// client disconnect.
func (s *Sink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	select {
	case <-s.ready:
	case <-r.Context().Done():
		return
	}

	s.mu.Lock()
	frame, events := s.frame, s.events
	s.mu.Unlock()
	if frame == nil {
		return
	}

	if err := WriteEvent(w, "graph", frame); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(KeepAlive)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			name := "step"
			if e.Kind == animate.Done {
				name = "done"
			}
			if err := WriteEvent(w, name, e); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

// WriteEvent writes one SSE event with a JSON data line.
func WriteEvent(w io.Writer, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
