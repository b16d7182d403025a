package layout

import "github.com/matzehuels/blockgrid/pkg/diagram"

// AssignRows packs the units of d into rows. Units at column 0 start subtrees
// in order-index order; each subtree occupies rows from an accumulating base.
// Units that no column-0 subtree reached, typically ones whose only incoming
// edges were flagged circular after they had been pushed, are stacked below.
//
// A unit already placed in this pass is never moved again, so a shared
// descendant keeps the row of its first parent.
func AssignRows(d *diagram.Diagram) {
	g := newGraph(d)
	visited := make(map[string]bool, len(g.units))

	base := 0
	for _, u := range g.units {
		if u.Column == 0 && !visited[u.ID] {
			base += g.assignRow(u, base, visited)
		}
	}
	for _, u := range g.units {
		if !visited[u.ID] {
			base += g.assignRow(u, base, visited)
		}
	}
}

type rowFrame struct {
	node     *diagram.Node
	base     int
	children []string
	next     int
	height   int // rows used by finished children
}

// assignRow places root at row base, then its unvisited children depth-first
// below each other. It returns the number of rows the subtree occupies.
func (g *graph) assignRow(root *diagram.Node, base int, visited map[string]bool) int {
	push := func(stack []*rowFrame, n *diagram.Node, base int) []*rowFrame {
		n.Row = base
		visited[n.ID] = true
		return append(stack, &rowFrame{node: n, base: base, children: g.children(n.ID)})
	}

	stack := push(nil, root, base)
	for {
		top := stack[len(stack)-1]

		if top.next < len(top.children) {
			id := top.children[top.next]
			top.next++
			if visited[id] {
				continue
			}
			stack = push(stack, g.node(id), top.base+top.height)
			continue
		}

		used := max(top.height, top.node.Height)
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return used
		}
		stack[len(stack)-1].height += used
	}
}
