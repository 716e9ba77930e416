package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/searchviz/pkg/geom"
	"github.com/matzehuels/searchviz/pkg/graph"
)

func ExampleBuilder() {
	b := graph.NewBuilder()
	a := b.AddNode("A", geom.Point{X: 0, Y: 0})
	bb := b.AddNode("B", geom.Point{X: 10, Y: 0})
	c := b.AddNode("C", geom.Point{X: 10, Y: 10})
	b.Connect(a, bb)
	b.Connect(c, bb)

	g, err := b.Build()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(g.Neighbors(bb))
	fmt.Println(g.Edges())
	// Output:
	// [0 2]
	// [{0 1} {1 2}]
}

func ExampleBuilder_malformed() {
	b := graph.NewBuilder()
	b.AddNode("A", geom.Point{})
	b.Connect(0, 4)

	_, err := b.Build()
	fmt.Println(err)
	// Output:
	// MALFORMED_GRAPH: edge 0-4 references a node outside [0, 1): edge endpoint out of range
}

func ExampleWrite() {
	if err := graph.Write(graph.Triangle(), os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": 0,
	//       "label": "A",
	//       "x": 0,
	//       "y": 0
	//     },
	//     {
	//       "id": 1,
	//       "label": "B",
	//       "x": 10,
	//       "y": 0
	//     },
	//     {
	//       "id": 2,
	//       "label": "C",
	//       "x": 10,
	//       "y": 10
	//     }
	//   ],
	//   "edges": [
	//     [
	//       0,
	//       1
	//     ],
	//     [
	//       1,
	//       2
	//     ]
	//   ]
	// }
}
