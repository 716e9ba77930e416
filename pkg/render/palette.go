package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colours and sizes used to draw a traversal.
type Palette struct {
	Initial       colorful.Color // unvisited nodes
	Edge          colorful.Color
	SourceVisited colorful.Color // visited from the source side
	DestVisited   colorful.Color // visited from the destination side
	Source        colorful.Color
	Dest          colorful.Color
	Waiting       colorful.Color // queued, not yet visited
	Next          colorful.Color // expanded by the next tick

	NodeRadius    float64
	EndpointScale float64 // endpoints are drawn at NodeRadius*EndpointScale
}

// DefaultPalette returns the colours of the demo page.
func DefaultPalette() Palette {
	return Palette{
		Initial:       colorful.Hsl(0, 0.02, 0.76),
		Edge:          colorful.Hsl(0, 0.02, 0.80),
		SourceVisited: rgb(100, 100, 0),
		DestVisited:   rgb(100, 0, 0),
		Source:        rgb(0, 0, 255),
		Dest:          rgb(0, 255, 0),
		Waiting:       colorful.Hsl(0, 0.5, 0.75),
		Next:          colorful.Hsl(126, 1, 0.69),
		NodeRadius:    3.5,
		EndpointScale: 1.2,
	}
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Overrides replaces palette colours with hex strings ("#rrggbb"). Empty
// strings keep the current colour.
type Overrides struct {
	Initial       string `toml:"initial"`
	Edge          string `toml:"edge"`
	SourceVisited string `toml:"source_visited"`
	DestVisited   string `toml:"dest_visited"`
	Source        string `toml:"source"`
	Dest          string `toml:"dest"`
	Waiting       string `toml:"waiting"`
	Next          string `toml:"next"`
}

// With returns p with o applied.
func (p Palette) With(o Overrides) (Palette, error) {
	for _, f := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"initial", o.Initial, &p.Initial},
		{"edge", o.Edge, &p.Edge},
		{"source_visited", o.SourceVisited, &p.SourceVisited},
		{"dest_visited", o.DestVisited, &p.DestVisited},
		{"source", o.Source, &p.Source},
		{"dest", o.Dest, &p.Dest},
		{"waiting", o.Waiting, &p.Waiting},
		{"next", o.Next, &p.Next},
	} {
		if f.hex == "" {
			continue
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return p, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// Fill returns the colour of a node in state s. Endpoints keep their own
// colour regardless of visits.
func (p Palette) Fill(s NodeState) colorful.Color {
	switch s {
	case StateSource:
		return p.Source
	case StateDest:
		return p.Dest
	case StateSourceVisited:
		return p.SourceVisited
	case StateDestVisited:
		return p.DestVisited
	case StateWaiting:
		return p.Waiting
	case StateNext:
		return p.Next
	}
	return p.Initial
}

// Radius returns the drawn radius of a node in state s.
func (p Palette) Radius(s NodeState) float64 {
	if s == StateSource || s == StateDest {
		return p.NodeRadius * p.EndpointScale
	}
	return p.NodeRadius
}
