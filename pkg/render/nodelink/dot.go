package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/searchviz/pkg/geom"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels draws node labels inside the nodes. When false, nodes are
	// plain dots like the animation.
	Labels bool
	// Palette colours the nodes. Nil means render.DefaultPalette.
	Palette *render.Palette
}

// ToDOT converts a traversal to Graphviz DOT. Node positions are pinned
// (pos="x,y!" in points) so neato reproduces the animation layout, and nodes
// are filled with their visit colour.
//
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(t *render.Trace, opts Options) string {
	p := render.DefaultPalette()
	if opts.Palette != nil {
		p = *opts.Palette
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fontsize=8, fixedsize=true, width=0.3];\n")
	} else {
		buf.WriteString("  node [shape=circle, style=filled, label=\"\", fixedsize=true];\n")
	}
	fmt.Fprintf(&buf, "  edge [color=%q];\n", p.Edge.Hex())
	buf.WriteString("\n")

	// Graphviz y grows upwards.
	top := geom.Bounds(t.Graph.Points()).Max[1]
	for _, n := range t.Graph.Nodes() {
		st := t.State(n.ID)
		attrs := fmt.Sprintf("pos=\"%.2f,%.2f!\", fillcolor=%q, color=%q",
			n.Pos.X, top-n.Pos.Y, p.Fill(st).Hex(), p.Fill(st).Hex())
		if opts.Labels {
			attrs += fmt.Sprintf(", label=%q", n.Label)
		} else {
			// Graphviz widths are inches.
			attrs += fmt.Sprintf(", width=%.3f", 2*p.Radius(st)/72)
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", NodeName(n.ID), attrs)
	}

	buf.WriteString("\n")
	for _, e := range t.Graph.Edges() {
		fmt.Fprintf(&buf, "  %s -- %s;\n", NodeName(e.A), NodeName(e.B))
	}

	fmt.Fprintf(&buf, "  label=%q;\n", t.Counter.Text())
	fmt.Fprintf(&buf, "  fontcolor=%q;\n", t.Counter.Color().Hex())
	buf.WriteString("}\n")
	return buf.String()
}

// NodeName returns the DOT identifier used for node id.
func NodeName(id graph.NodeID) string { return "n" + strconv.Itoa(int(id)) }

// RenderSVG renders a DOT graph to SVG with the neato layout engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
