package layout

import (
	"github.com/matzehuels/blockgrid/pkg/diagram"
	"github.com/matzehuels/blockgrid/pkg/errors"
)

// AssignColumns layers the units of d into columns and flags the edges that
// close cycles as circular.
//
// Columns are processed in increasing order. For every unit at the current
// column, in order-index order, each effective child is handled as follows:
//   - the unit itself is skipped, as is any child that still has an owner
//   - a child with a smaller order-index that reaches the unit back gets every
//     edge from the unit flagged circular
//   - any other child is pushed to max(child.Column, unit.Column+unit.Width)
//
// Pushes only ever increase a column, and a flagged edge never contributes
// again, so the frontier stops once the graph is acyclic. Exceeding the sum
// of unit widths means the invariant broke and is reported as INTERNAL_ERROR.
func AssignColumns(d *diagram.Diagram) error {
	g := newGraph(d)

	bound := 0
	for _, u := range g.units {
		u.Column, u.Row = 0, 0
		bound += max(u.Width, 1)
	}

	for depth := 0; ; depth++ {
		if depth > bound {
			return errors.New(errors.ErrCodeInternal, "column layering did not converge after %d columns", bound)
		}

		for _, u := range g.units {
			if u.Column != depth {
				continue
			}
			g.pushChildren(u)
		}

		if !g.beyond(depth) {
			return nil
		}
	}
}

func (g *graph) pushChildren(u *diagram.Node) {
	order := g.d.Order(u.ID)
	for _, id := range g.children(u.ID) {
		if id == u.ID {
			continue
		}
		child := g.node(id)
		if child.Group != "" {
			// members move with their group
			continue
		}
		if order > g.d.Order(id) && g.reaches(id, u.ID) {
			for _, e := range g.edgesBetween(u.ID, id) {
				if !e.NoWeight {
					e.Circular = true
				}
			}
			continue
		}
		child.Column = max(child.Column, u.Column+u.Width)
	}
}

// beyond reports whether any unit sits past column depth.
func (g *graph) beyond(depth int) bool {
	for _, u := range g.units {
		if u.Column > depth {
			return true
		}
	}
	return false
}
