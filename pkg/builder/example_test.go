package builder_test

import (
	"fmt"

	"github.com/matzehuels/blockgrid/pkg/builder"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

func ExampleBuild() {
	// web -> api -> db, with api and db grouped as a backend
	stmts := []stmt.Stmt{
		stmt.Edge{IDs: []string{"web", "api", "db"}},
		stmt.SubGraph{ID: "backend", Stmts: []stmt.Stmt{
			stmt.Node{ID: "api"},
			stmt.Node{ID: "db"},
		}},
	}

	d, err := builder.Build(stmts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, n := range d.Nodes() {
		fmt.Printf("%s (%d,%d) %dx%d\n", n.ID, n.Column, n.Row, n.Width, n.Height)
	}
	// Output:
	// web (0,0) 1x1
	// api (1,0) 1x1
	// db (2,0) 1x1
	// group:backend (1,0) 2x1
}

func ExampleBuild_cycle() {
	d, _ := builder.Build([]stmt.Stmt{
		stmt.Edge{IDs: []string{"A", "B", "C", "A"}},
	})

	for _, e := range d.Edges() {
		fmt.Printf("%s->%s circular=%v\n", e.From, e.To, e.Circular)
	}
	// Output:
	// A->B circular=false
	// B->C circular=false
	// C->A circular=true
}

func ExampleBuild_leftToRight() {
	d, _ := builder.Build([]stmt.Stmt{
		stmt.DefAttrs{Attrs: []stmt.Attr{{Name: "rankdir", Value: "LR"}}},
		stmt.Edge{IDs: []string{"A", "B"}},
	})

	for _, n := range d.Nodes() {
		fmt.Printf("%s (%d,%d)\n", n.ID, n.Column, n.Row)
	}
	// Output:
	// A (0,0)
	// B (0,1)
}
