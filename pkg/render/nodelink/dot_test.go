package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/render"
)

func triangleTrace() *render.Trace {
	tr := render.NewTrace(graph.Triangle(), 0, 2)
	tr.Apply(animate.Event{Kind: animate.VisitedSource, Node: 0})
	tr.Apply(animate.Event{Kind: animate.VisitedSource, Node: 1})
	return tr
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(triangleTrace(), Options{})

	for _, want := range []string{
		"graph G {\n",
		"layout=neato;",
		`n0 [pos="0.00,10.00!", fillcolor="#0000ff"`,
		`n1 [pos="10.00,10.00!", fillcolor="#646400"`,
		`n2 [pos="10.00,0.00!", fillcolor="#00ff00"`,
		"n0 -- n1;",
		"n1 -- n2;",
		`label="1 nodes";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() produced directed edges")
	}
}

func TestToDOTLabels(t *testing.T) {
	dot := ToDOT(triangleTrace(), Options{Labels: true})
	if !strings.Contains(dot, `label="B"`) {
		t.Errorf("ToDOT(Labels) missing node label\n%s", dot)
	}

	p := render.DefaultPalette()
	p.Edge = p.Source
	dot = ToDOT(triangleTrace(), Options{Palette: &p})
	if !strings.Contains(dot, `edge [color="#0000ff"]`) {
		t.Errorf("ToDOT(Palette) ignored edge colour\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox(no viewBox) = %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(triangleTrace(), Options{Labels: true}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() output lacks normalized svg tag: %.200s", svg)
	}
	if !strings.Contains(string(svg), ">B</text>") {
		t.Errorf("RenderSVG() output lacks node label B")
	}
}
