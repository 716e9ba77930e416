package svg

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/geom"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/render"
	"github.com/matzehuels/searchviz/pkg/search"
)

func complete(t *testing.T, sink *Sink, alg search.Algorithm) animate.Result {
	t.Helper()
	g := graph.Demo()
	src, _ := g.Lookup("A")
	dst, _ := g.Lookup("I")
	res, err := animate.Complete(animate.Config{
		Graph:     g,
		Viewport:  geom.Viewport{Width: 600, Height: 350},
		Algorithm: alg,
		Source:    src,
		Dest:      dst,
		Sink:      sink,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	return res
}

func TestSinkBeforeDraw(t *testing.T) {
	s := NewSink()
	s.OnEvent(animate.Event{Kind: animate.VisitedSource, Node: 0})
	if got := s.SVG(); got != nil {
		t.Errorf("SVG() before DrawStaticGraph = %q, want nil", got)
	}
}

func TestSinkFinalFrame(t *testing.T) {
	s := NewSink(WithViewport(geom.Viewport{Width: 600, Height: 350}))
	complete(t, s, search.BFS)

	out := string(s.SVG())
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-10.0 -10.0 620.0 370.0"`) {
		t.Errorf("unexpected header: %.120s", out)
	}
	if got := strings.Count(out, "<circle"); got != 9 {
		t.Errorf("circles = %d, want 9", got)
	}
	if got := strings.Count(out, "<line"); got != 12 {
		t.Errorf("lines = %d, want 12", got)
	}
	// BFS colours all seven inner nodes before reaching I.
	if !strings.Contains(out, ">7 nodes</text>") {
		t.Errorf("counter text missing, got %s", out)
	}
	if got := strings.Count(out, `fill="#646400"`); got != 7 {
		t.Errorf("source-visited fills = %d, want 7", got)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
}

func TestSinkBidirectionalColours(t *testing.T) {
	s := NewSink()
	complete(t, s, search.Bidirectional)
	out := string(s.SVG())
	if !strings.Contains(out, `fill="#640000"`) {
		t.Error("no dest-visited colour in bidirectional frame")
	}
	if !strings.Contains(out, `fill="#0000ff"`) || !strings.Contains(out, `fill="#00ff00"`) {
		t.Error("endpoint colours missing")
	}
}

func TestSinkFrames(t *testing.T) {
	s := NewSink(WithFrames(1))
	complete(t, s, search.DFS)

	// DFS A→I visits A C F H I: one static frame, five visits, one Done.
	frames := s.Frames()
	if len(frames) != 7 {
		t.Fatalf("frames = %d, want 7", len(frames))
	}
	if !bytes.Contains(frames[0], []byte(">0 nodes<")) {
		t.Error("first frame should show 0 nodes")
	}
	if !bytes.Equal(frames[len(frames)-1], s.SVG()) {
		t.Error("last frame differs from final SVG")
	}
}

// fillOf returns the fill of node id in an SVG frame.
func fillOf(t *testing.T, frame []byte, id graph.NodeID) string {
	t.Helper()
	for _, line := range strings.Split(string(frame), "\n") {
		if !strings.Contains(line, fmt.Sprintf(`id="node-%d"`, id)) {
			continue
		}
		_, rest, _ := strings.Cut(line, `fill="`)
		fill, _, _ := strings.Cut(rest, `"`)
		return fill
	}
	t.Fatalf("node %d not drawn", id)
	return ""
}

func TestSinkDrawsFrontier(t *testing.T) {
	p := render.DefaultPalette()
	waiting, next := p.Waiting.Hex(), p.Next.Hex()

	s := NewSink(WithFrames(1))
	complete(t, s, search.DFS)
	frames := s.Frames()

	// After A: B waits, C is expanded next.
	if got := fillOf(t, frames[1], 1); got != waiting {
		t.Errorf("B after first visit = %s, want waiting %s", got, waiting)
	}
	if got := fillOf(t, frames[1], 2); got != next {
		t.Errorf("C after first visit = %s, want next %s", got, next)
	}
	if got := fillOf(t, frames[1], 0); got != p.Source.Hex() {
		t.Errorf("source = %s, want %s", got, p.Source.Hex())
	}

	// The search stops at I with B and E still queued.
	final := s.SVG()
	for _, id := range []graph.NodeID{1, 4} {
		if got := fillOf(t, final, id); got != waiting {
			t.Errorf("node %d at end = %s, want waiting %s", id, got, waiting)
		}
	}
	if bytes.Contains(final, []byte(`fill="`+next+`"`)) {
		t.Error("final frame still marks a next node")
	}
}

func TestSinkNoCounter(t *testing.T) {
	s := NewSink(WithoutCounter())
	complete(t, s, search.BFS)
	if bytes.Contains(s.SVG(), []byte(`id="counter"`)) {
		t.Error("counter rendered with WithoutCounter")
	}
}

func TestRenderEscapesLabels(t *testing.T) {
	b := graph.NewBuilder()
	a := b.AddNode(`<a&b>`, geom.Point{X: 0, Y: 0})
	c := b.AddNode("c", geom.Point{X: 1, Y: 1})
	b.Connect(a, c)
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	s := NewSink()
	s.DrawStaticGraph(g, a, c)
	if !bytes.Contains(s.SVG(), []byte("&lt;a&amp;b&gt;")) {
		t.Error("label not escaped")
	}
}
