package layout

import (
	"slices"

	"github.com/matzehuels/blockgrid/pkg/diagram"
)

// Layout positions every node of d. Coordinates of units are reset before
// layering; member coordinates are taken as relative to their group.
func Layout(d *diagram.Diagram) error {
	if err := AssignColumns(d); err != nil {
		return err
	}
	AssignRows(d)
	TranslateGroups(d)
	if d.Orientation == diagram.LeftToRight {
		d.Transpose()
	}
	return nil
}

// graph is a unit-level view of a diagram. Owners do not change during
// layout, so the unit of every node is resolved once.
type graph struct {
	d      *diagram.Diagram
	unitOf map[string]string
	units  []*diagram.Node
}

func newGraph(d *diagram.Diagram) *graph {
	g := &graph{d: d, unitOf: make(map[string]string, d.NodeCount())}
	for _, n := range d.Nodes() {
		g.unitOf[n.ID] = d.Unit(n.ID)
		if n.Group == "" {
			g.units = append(g.units, n)
		}
	}
	return g
}

// children returns the effective children of unit u: the units of targets of
// every layered edge whose source belongs to u, in order-index order.
func (g *graph) children(u string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range g.d.Edges() {
		if e.NoWeight || e.Circular || g.unitOf[e.From] != u {
			continue
		}
		c, ok := g.unitOf[e.To]
		if !ok {
			// endpoint was dropped from the registry
			continue
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b string) int {
		return g.d.Order(a) - g.d.Order(b)
	})
	return out
}

// reaches reports whether target is reachable from start through effective
// children.
func (g *graph) reaches(start, target string) bool {
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == target {
			return true
		}
		for _, c := range g.children(curr) {
			if !visited[c] {
				visited[c] = true
				queue = append(queue, c)
			}
		}
	}
	return false
}

// edgesBetween returns the edges whose source belongs to unit from and whose
// target belongs to unit to.
func (g *graph) edgesBetween(from, to string) []*diagram.Edge {
	var out []*diagram.Edge
	for _, e := range g.d.Edges() {
		if g.unitOf[e.From] == from && g.unitOf[e.To] == to {
			out = append(out, e)
		}
	}
	return out
}

func (g *graph) node(id string) *diagram.Node {
	n, _ := g.d.Node(id)
	return n
}
