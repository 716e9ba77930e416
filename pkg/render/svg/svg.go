package svg

import (
	"bytes"
	"fmt"
	"html"
	"sync"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/geom"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/render"
)

const margin = 10.0

// SVGOption configures a Sink.
type SVGOption func(*Sink)

// WithPalette sets the colours. Default is render.DefaultPalette.
func WithPalette(p render.Palette) SVGOption { return func(s *Sink) { s.palette = p } }

// WithViewport fixes the drawing area. By default it is the bounding box of
// the graph.
func WithViewport(vp geom.Viewport) SVGOption { return func(s *Sink) { s.viewport = vp } }

// WithFrames captures a frame every n events. The frame after Done is always
// captured.
func WithFrames(every int) SVGOption { return func(s *Sink) { s.every = every } }

// WithoutCounter hides the step counter.
func WithoutCounter() SVGOption { return func(s *Sink) { s.noCounter = true } }

// Sink is an animate.Sink producing SVG. It is safe for concurrent use.
type Sink struct {
	mu        sync.Mutex
	palette   render.Palette
	viewport  geom.Viewport
	every     int
	noCounter bool

	trace    *render.Trace
	frames   [][]byte
	captured bool // last delivery ended in a captured frame
}

var _ animate.FrontierSink = (*Sink)(nil)

// NewSink returns a sink with opts applied.
func NewSink(opts ...SVGOption) *Sink {
	s := &Sink{palette: render.DefaultPalette()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) DrawStaticGraph(g *graph.Graph, source, dest graph.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = render.NewTrace(g, source, dest)
	s.frames = nil
	s.capture(s.every > 0)
}

func (s *Sink) OnEvent(e animate.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trace == nil {
		return
	}
	s.trace.Apply(e)
	s.capture(s.every > 0 && (e.Kind == animate.Done || s.trace.Events%s.every == 0))
}

// OnFrontier colours the queued nodes. The frontier follows the visit that
// produced it, so a frame captured for that visit is redrawn.
func (s *Sink) OnFrontier(waiting []graph.NodeID, next graph.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trace == nil {
		return
	}
	s.trace.SetFrontier(waiting, next)
	if s.captured {
		s.frames[len(s.frames)-1] = s.render(s.trace)
	}
}

func (s *Sink) capture(ok bool) {
	s.captured = ok
	if ok {
		s.frames = append(s.frames, s.render(s.trace))
	}
}

// SVG renders the current frame. It returns nil before DrawStaticGraph.
func (s *Sink) SVG() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trace == nil {
		return nil
	}
	return s.render(s.trace)
}

// Frames returns the captured frames.
func (s *Sink) Frames() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.frames...)
}

// Trace returns a snapshot of the traversal state.
func (s *Sink) Trace() *render.Trace {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trace == nil {
		return nil
	}
	return s.trace.Clone()
}

// Render draws t with the given options, independent of any sink.
func Render(t *render.Trace, opts ...SVGOption) []byte {
	return NewSink(opts...).render(t)
}

func (s *Sink) render(t *render.Trace) []byte {
	minX, minY, w, h := s.frame(t.Graph)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)

	renderEdges(&buf, t.Graph, s.palette)
	renderNodes(&buf, t, s.palette)
	if !s.noCounter {
		renderCounter(&buf, t.Counter, minX, minY)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (s *Sink) frame(g *graph.Graph) (minX, minY, w, h float64) {
	if s.viewport.Width > 0 && s.viewport.Height > 0 {
		return -margin, -margin, s.viewport.Width + 2*margin, s.viewport.Height + 2*margin
	}
	b := geom.Bounds(g.Points())
	return b.Min[0] - margin, b.Min[1] - margin, b.Max[0] - b.Min[0] + 2*margin, b.Max[1] - b.Min[1] + 2*margin
}

func renderEdges(buf *bytes.Buffer, g *graph.Graph, p render.Palette) {
	fmt.Fprintf(buf, `  <g stroke="%s" stroke-width="1">`+"\n", p.Edge.Hex())
	for _, e := range g.Edges() {
		a, _ := g.Node(e.A)
		b, _ := g.Node(e.B)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y)
	}
	buf.WriteString("  </g>\n")
}

// renderNodes draws endpoints last so they stay on top.
func renderNodes(buf *bytes.Buffer, t *render.Trace, p render.Palette) {
	buf.WriteString("  <g>\n")
	for _, n := range t.Graph.Nodes() {
		if n.ID == t.Source || n.ID == t.Dest {
			continue
		}
		renderNode(buf, n, t.State(n.ID), p)
	}
	for _, id := range []graph.NodeID{t.Source, t.Dest} {
		if n, ok := t.Graph.Node(id); ok {
			renderNode(buf, n, t.State(id), p)
		}
	}
	buf.WriteString("  </g>\n")
}

func renderNode(buf *bytes.Buffer, n graph.Node, st render.NodeState, p render.Palette) {
	fmt.Fprintf(buf, `    <circle id="node-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"><title>%s</title></circle>`+"\n",
		n.ID, n.Pos.X, n.Pos.Y, p.Radius(st), p.Fill(st).Hex(), html.EscapeString(n.Label))
}

func renderCounter(buf *bytes.Buffer, c render.Counter, x, y float64) {
	fmt.Fprintf(buf, `  <text id="counter" x="%.1f" y="%.1f" font-family="sans-serif" font-size="12" fill="%s">%s</text>`+"\n",
		x+4, y+14, c.Color().Hex(), c.Text())
}
