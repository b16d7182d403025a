package builder

import (
	"github.com/matzehuels/blockgrid/pkg/diagram"
	"github.com/matzehuels/blockgrid/pkg/errors"
	"github.com/matzehuels/blockgrid/pkg/layout"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

// compose runs the nested pass for g and folds the result into p.
func (p *pass) compose(g *pendingGroup) error {
	nested, err := p.state.run(p.inject(g), true)
	if err != nil {
		return err
	}

	grp := g.node
	if nested.NodeCount() == 0 {
		p.d.RemoveNode(grp.ID)
		return nil
	}

	if nested.Color != "" {
		grp.Color = nested.Color
	}
	grp.Width, grp.Height = layout.GroupSize(nested.Nodes())

	for _, src := range nested.Nodes() {
		if err := p.foldNode(grp, src); err != nil {
			return err
		}
	}
	for _, src := range nested.Edges() {
		e, _ := p.d.AddEdge(src.From, src.To)
		e.MergeFrom(src)
		if src.Circular {
			e.Circular = true
		}
		grp.Members.Edges = append(grp.Members.Edges, e.Key())
	}
	return nil
}

// inject returns the group's statements followed by a synthetic edge for
// every registered edge between two of its directly declared nodes.
func (p *pass) inject(g *pendingGroup) []stmt.Stmt {
	declared := make(map[string]bool, len(g.ids))
	for _, id := range g.ids {
		declared[id] = true
	}

	out := make([]stmt.Stmt, len(g.stmts), len(g.stmts)+p.d.EdgeCount())
	copy(out, g.stmts)
	for _, e := range p.d.Edges() {
		if declared[e.From] && declared[e.To] {
			out = append(out, stmt.Edge{IDs: []string{e.From, e.To}})
		}
	}
	return out
}

// foldNode copies one node of a nested diagram into the enclosing registry
// as a member of grp. Members of nested groups keep their inner owner.
func (p *pass) foldNode(grp *diagram.Node, src *diagram.Node) error {
	n, created := p.d.AddNode(src.ID)
	if n == grp {
		return errors.New(errors.ErrCodeGroupConflict, "%s cannot contain itself", grp.ID)
	}

	owner := src.Group
	if owner == "" {
		owner = grp.ID
	}
	if n.Group != "" && n.Group != owner {
		return errors.New(errors.ErrCodeGroupConflict, "%s cannot belong to both %s and %s", n.ID, n.Group, owner)
	}
	if !created && (src.IsGroup() || n.IsGroup()) {
		return errors.New(errors.ErrCodeGroupConflict, "%s is declared in more than one scope", n.ID)
	}

	n.MergeFrom(src)
	n.Group = owner
	if src.IsGroup() {
		n.Members = &diagram.Members{
			Nodes: append([]string(nil), src.Members.Nodes...),
			Edges: append([]diagram.EdgeKey(nil), src.Members.Edges...),
		}
	}
	grp.Members.Nodes = append(grp.Members.Nodes, n.ID)
	return nil
}
