package diagram

import (
	"slices"
)

// Style is the line style of a node outline or an edge.
type Style string

const (
	StyleUnset  Style = ""
	StyleSolid  Style = "solid"
	StyleDotted Style = "dotted"
	StyleDashed Style = "dashed"
)

// Direction controls which ends of an edge carry arrowheads.
type Direction string

const (
	DirUnset   Direction = ""
	DirForward Direction = "forward"
	DirBack    Direction = "back"
	DirBoth    Direction = "both"
	DirNone    Direction = "none"
)

// Orientation is the primary layering axis of a diagram.
type Orientation string

const (
	TopToBottom Orientation = "TB"
	LeftToRight Orientation = "LR"
)

// Default colors applied by [Diagram.ApplyDefaults].
const (
	DefaultNodeColor  = "white"
	DefaultGroupColor = "#F39800"
)

// Node is a block on the grid. Groups are nodes with a non-nil Members payload.
//
// Column, Row, Width and Height are grid cells, never pixels.
type Node struct {
	ID     string
	Column int
	Row    int
	Width  int
	Height int

	// Group is the identifier of the owning group, or "" when the node is not
	// a group member. It is a lookup key into the same Diagram.
	Group string

	Label      string
	Color      string
	Style      Style
	Numbered   string
	Background string

	// Members is set for groups only.
	Members *Members
}

// Members is the payload that turns a Node into a group.
type Members struct {
	Nodes []string  // member node identifiers, in fold order
	Edges []EdgeKey // member edges, in fold order
}

// IsGroup reports whether the node is a group container.
func (n *Node) IsGroup() bool { return n.Members != nil }

// Drawable reports whether a renderer should draw the node as a block.
// Groups are drawn as backgrounds, never as blocks.
func (n *Node) Drawable() bool { return n.Members == nil }

// DisplayLabel returns the label if set, otherwise the ID for plain nodes
// and "" for groups.
func (n *Node) DisplayLabel() string {
	if n.Label != "" || n.IsGroup() {
		return n.Label
	}
	return n.ID
}

// EdgeKey identifies an edge by its ordered endpoint pair.
type EdgeKey struct {
	From string
	To   string
}

// Edge is a directed connection between two nodes of the same Diagram.
type Edge struct {
	From string
	To   string

	// Circular is set by the layout engine when the edge closes a cycle.
	Circular bool
	// NoWeight excludes the edge from layering.
	NoWeight bool

	Dir   Direction
	Color string
	Style Style
}

// Key returns the registry key of the edge.
func (e *Edge) Key() EdgeKey { return EdgeKey{From: e.From, To: e.To} }

// Diagram is an ordered registry of nodes and edges plus diagram-level
// attributes. Node order is insertion order and is the tie-break authority
// for layout.
//
// The zero value is not usable - use New.
// Diagram is not safe for concurrent use.
type Diagram struct {
	Orientation Orientation
	Color       string
	Warnings    []Warning

	nodes     []*Node
	nodeIndex map[string]int
	edges     []*Edge
	edgeIndex map[EdgeKey]int
}

// New creates an empty top-to-bottom diagram.
func New() *Diagram {
	return &Diagram{
		Orientation: TopToBottom,
		nodeIndex:   make(map[string]int),
		edgeIndex:   make(map[EdgeKey]int),
	}
}

// Node returns the node with the given ID.
func (d *Diagram) Node(id string) (*Node, bool) {
	i, ok := d.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return d.nodes[i], true
}

// Order returns the order-index of a node, or -1 when it is absent.
func (d *Diagram) Order(id string) int {
	if i, ok := d.nodeIndex[id]; ok {
		return i
	}
	return -1
}

// AddNode appends a node with default 1x1 size. It returns the existing node
// when the ID is already registered.
func (d *Diagram) AddNode(id string) (*Node, bool) {
	if n, ok := d.Node(id); ok {
		return n, false
	}
	n := &Node{ID: id, Width: 1, Height: 1}
	d.nodeIndex[id] = len(d.nodes)
	d.nodes = append(d.nodes, n)
	return n, true
}

// AddGroup appends an empty group. It returns the existing node when the ID
// is already registered.
func (d *Diagram) AddGroup(id string) (*Node, bool) {
	n, created := d.AddNode(id)
	if created {
		n.Members = &Members{}
	}
	return n, created
}

// RemoveNode deletes a node together with every edge that starts or ends
// at it, and re-indexes the nodes after it.
func (d *Diagram) RemoveNode(id string) {
	i, ok := d.nodeIndex[id]
	if !ok {
		return
	}
	d.nodes = slices.Delete(d.nodes, i, i+1)
	delete(d.nodeIndex, id)
	for j := i; j < len(d.nodes); j++ {
		d.nodeIndex[d.nodes[j].ID] = j
	}

	for _, e := range slices.Clone(d.edges) {
		if e.From == id || e.To == id {
			d.RemoveEdge(e.From, e.To)
		}
	}
}

// RemoveEdge deletes the edge keyed by the endpoint pair, if registered.
func (d *Diagram) RemoveEdge(from, to string) {
	key := EdgeKey{From: from, To: to}
	i, ok := d.edgeIndex[key]
	if !ok {
		return
	}
	d.edges = slices.Delete(d.edges, i, i+1)
	delete(d.edgeIndex, key)
	for j := i; j < len(d.edges); j++ {
		d.edgeIndex[d.edges[j].Key()] = j
	}
}

// Edge returns the edge keyed by the ordered endpoint pair.
func (d *Diagram) Edge(from, to string) (*Edge, bool) {
	i, ok := d.edgeIndex[EdgeKey{From: from, To: to}]
	if !ok {
		return nil, false
	}
	return d.edges[i], true
}

// AddEdge appends an edge between two registered nodes. It returns the
// existing edge when the pair is already registered.
func (d *Diagram) AddEdge(from, to string) (*Edge, bool) {
	if e, ok := d.Edge(from, to); ok {
		return e, false
	}
	e := &Edge{From: from, To: to}
	d.edgeIndex[e.Key()] = len(d.edges)
	d.edges = append(d.edges, e)
	return e, true
}

// Nodes returns all nodes in order-index order. The slice is a copy; the
// nodes are not.
func (d *Diagram) Nodes() []*Node { return slices.Clone(d.nodes) }

// Edges returns all edges in insertion order. The slice is a copy; the
// edges are not.
func (d *Diagram) Edges() []*Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes, groups included.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Groups returns the group nodes in order-index order.
func (d *Diagram) Groups() []*Node {
	var groups []*Node
	for _, n := range d.nodes {
		if n.IsGroup() {
			groups = append(groups, n)
		}
	}
	return groups
}

// Unit returns the outermost node containing id: id itself when it has no
// owner, otherwise the top of its owner chain.
func (d *Diagram) Unit(id string) string {
	seen := 0
	for {
		n, ok := d.Node(id)
		if !ok || n.Group == "" {
			return id
		}
		id = n.Group
		// owner chains are acyclic by construction; bail out on corruption
		if seen++; seen > len(d.nodes) {
			return id
		}
	}
}

// Extent returns the number of grid columns and rows covered by the
// diagram's drawable content.
func (d *Diagram) Extent() (cols, rows int) {
	for _, n := range d.nodes {
		cols = max(cols, n.Column+n.Width)
		rows = max(rows, n.Row+n.Height)
	}
	return cols, rows
}

// ApplyDefaults fills unset presentation attributes: node labels, colors and
// edge directions. It is applied once to a finished top-level diagram.
func (d *Diagram) ApplyDefaults() {
	for _, n := range d.nodes {
		if n.IsGroup() {
			if n.Color == "" {
				n.Color = DefaultGroupColor
			}
			continue
		}
		if n.Label == "" {
			n.Label = n.ID
		}
		if n.Color == "" {
			n.Color = DefaultNodeColor
		}
	}
	for _, e := range d.edges {
		if e.Dir == DirUnset {
			e.Dir = DirForward
		}
	}
}

// Transpose swaps columns with rows and widths with heights for every node.
func (d *Diagram) Transpose() {
	for _, n := range d.nodes {
		n.Column, n.Row = n.Row, n.Column
		n.Width, n.Height = n.Height, n.Width
	}
}
