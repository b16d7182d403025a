// Package stmt defines the statement list consumed by the diagram builder.
//
// A statement list is what a block diagram source file looks like after
// parsing: node declarations, edge chains, nested subgraphs and diagram-level
// attribute blocks, in declaration order. Declaration order matters, since the
// builder derives every layout tie-break from it.
//
// # Wire Format
//
// Statement lists are exchanged as JSON or TOML documents sharing one shape.
// Every entry of "statements" holds exactly one of "node", "edge",
// "subgraph" or "diagram":
//
//	{
//	  "statements": [
//	    {"node": {"id": "A", "attrs": [{"name": "label", "value": "web"}]}},
//	    {"edge": {"ids": ["A", "B", "C"]}},
//	    {"subgraph": {"id": "backend", "statements": [{"node": {"id": "B"}}]}},
//	    {"diagram": {"attrs": [{"name": "rankdir", "value": "LR"}]}}
//	  ]
//	}
//
// Attribute values arrive unquoted. Only the shape is checked here; attribute
// names and values are validated by the builder.
package stmt

// Attr is a single name/value pair attached to a statement.
type Attr struct {
	Name  string
	Value string
}

// Stmt is one statement of a diagram. The set of implementations is closed:
// [Node], [Edge], [SubGraph] and [DefAttrs].
type Stmt interface {
	stmt()
}

// Node declares (or re-declares) a node and overlays attributes on it.
type Node struct {
	ID    string
	Attrs []Attr
}

// Edge declares a chain of edges. IDs are consumed pairwise:
// IDs[0]→IDs[1], IDs[1]→IDs[2], and so on. Attrs apply to every edge of the chain.
type Edge struct {
	IDs   []string
	Attrs []Attr
}

// SubGraph declares a group. An empty ID declares an anonymous group.
type SubGraph struct {
	ID    string
	Stmts []Stmt
}

// DefAttrs sets diagram-level attributes.
type DefAttrs struct {
	Attrs []Attr
}

func (Node) stmt()     {}
func (Edge) stmt()     {}
func (SubGraph) stmt() {}
func (DefAttrs) stmt() {}

// Pairs returns the ordered endpoint pairs of an edge chain.
func (e Edge) Pairs() [][2]string {
	if len(e.IDs) < 2 {
		return nil
	}
	pairs := make([][2]string, 0, len(e.IDs)-1)
	for i := 0; i+1 < len(e.IDs); i++ {
		pairs = append(pairs, [2]string{e.IDs[i], e.IDs[i+1]})
	}
	return pairs
}

// NodeIDs returns the identifiers of the node statements directly inside
// the subgraph, in declaration order. Nested subgraphs are not descended.
func (s SubGraph) NodeIDs() []string {
	var ids []string
	for _, st := range s.Stmts {
		if n, ok := st.(Node); ok {
			ids = append(ids, n.ID)
		}
	}
	return ids
}
