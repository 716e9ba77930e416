package graph

import "github.com/matzehuels/searchviz/pkg/geom"

// Demo returns the small lettered graph used by the search demos. Positions
// are laid out for a 600x350 canvas and need no normalization.
func Demo() *Graph {
	b := NewBuilder()
	pos := map[string]geom.Point{
		"A": {X: 50, Y: 175},
		"B": {X: 170, Y: 70},
		"C": {X: 170, Y: 280},
		"D": {X: 300, Y: 40},
		"E": {X: 300, Y: 160},
		"F": {X: 300, Y: 300},
		"G": {X: 430, Y: 90},
		"H": {X: 430, Y: 240},
		"I": {X: 550, Y: 175},
	}
	ids := make(map[string]NodeID, len(pos))
	for _, l := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"} {
		ids[l] = b.AddNode(l, pos[l])
	}
	for _, e := range [][2]string{
		{"A", "B"}, {"A", "C"},
		{"B", "D"}, {"B", "E"},
		{"C", "E"}, {"C", "F"},
		{"D", "G"}, {"E", "G"}, {"E", "H"}, {"F", "H"},
		{"G", "I"}, {"H", "I"},
	} {
		b.Connect(ids[e[0]], ids[e[1]])
	}
	g, _ := b.Build()
	return g
}

// Triangle returns the three-node path A(0,0) - B(10,0) - C(10,10).
func Triangle() *Graph {
	g, _ := New([]Node{
		{Label: "A", Pos: geom.Point{X: 0, Y: 0}},
		{Label: "B", Pos: geom.Point{X: 10, Y: 0}},
		{Label: "C", Pos: geom.Point{X: 10, Y: 10}},
	}, []Edge{{0, 1}, {1, 2}})
	return g
}
