package graph_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/blockgrid/pkg/builder"
	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

func ExampleWriteLayout() {
	d, _ := builder.Build([]stmt.Stmt{
		stmt.Edge{IDs: []string{"A", "B"}},
	})

	var buf bytes.Buffer
	if err := graph.WriteLayout(graph.FromDiagram(d), &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "orientation": "TB",
	//   "columns": 2,
	//   "rows": 1,
	//   "nodes": [
	//     {
	//       "id": "A",
	//       "column": 0,
	//       "row": 0,
	//       "width": 1,
	//       "height": 1,
	//       "label": "A",
	//       "color": "white"
	//     },
	//     {
	//       "id": "B",
	//       "column": 1,
	//       "row": 0,
	//       "width": 1,
	//       "height": 1,
	//       "label": "B",
	//       "color": "white"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "A",
	//       "to": "B",
	//       "dir": "forward"
	//     }
	//   ]
	// }
}

func ExampleToDiagram() {
	data := []byte(`{
		"nodes": [
			{"id": "group:g", "kind": "group", "width": 1, "height": 2, "members": ["A", "B"]},
			{"id": "A", "group": "group:g", "width": 1, "height": 1},
			{"id": "B", "group": "group:g", "row": 1, "width": 1, "height": 1}
		]
	}`)

	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	d, _ := graph.ToDiagram(l)

	for _, g := range d.Groups() {
		fmt.Println(g.ID, g.Members.Nodes)
	}
	fmt.Println("Orientation:", d.Orientation)
	// Output:
	// group:g [A B]
	// Orientation: TB
}
