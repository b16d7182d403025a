package builder

import (
	"strconv"

	"github.com/matzehuels/blockgrid/pkg/diagram"
	"github.com/matzehuels/blockgrid/pkg/errors"
)

// groupPrefix keeps group identifiers apart from node identifiers.
const groupPrefix = "group:"

// GroupID returns the registry identifier of a named subgraph.
func GroupID(name string) string { return groupPrefix + name }

// getOrCreateNode returns the node registered under id, creating it on first
// reference.
func (p *pass) getOrCreateNode(id string) (*diagram.Node, error) {
	if err := errors.ValidateIdentifier(id); err != nil {
		return nil, err
	}
	n, _ := p.d.AddNode(id)
	return n, nil
}

// getOrCreateGroup returns the group for a subgraph name. An empty name
// allocates the next anonymous identifier.
func (p *pass) getOrCreateGroup(name string) (*diagram.Node, error) {
	var id string
	if name == "" {
		p.state.anon++
		id = groupPrefix + "#" + strconv.Itoa(p.state.anon)
	} else {
		if err := errors.ValidateIdentifier(name); err != nil {
			return nil, err
		}
		id = GroupID(name)
	}

	g, _ := p.d.AddGroup(id)
	if !g.IsGroup() {
		return nil, errors.New(errors.ErrCodeGroupConflict, "%s is declared as both a node and a group", id)
	}
	return g, nil
}

// getOrCreateEdge returns the edge from id1 to id2, registering both
// endpoints on first reference.
func (p *pass) getOrCreateEdge(id1, id2 string) (*diagram.Edge, error) {
	if _, err := p.getOrCreateNode(id1); err != nil {
		return nil, err
	}
	if _, err := p.getOrCreateNode(id2); err != nil {
		return nil, err
	}
	e, _ := p.d.AddEdge(id1, id2)
	return e, nil
}
