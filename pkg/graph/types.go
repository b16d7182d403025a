package graph

import "github.com/matzehuels/blockgrid/pkg/diagram"

// Node kinds.
const (
	KindNode  = ""
	KindGroup = "group"
)

// =============================================================================
// Layout - Positioned Diagram
// =============================================================================

// Layout is the serialization format for a positioned diagram.
type Layout struct {
	Orientation string `json:"orientation" bson:"orientation"`
	Color       string `json:"color,omitempty" bson:"color,omitempty"`

	// Grid extent in cells, after orientation is applied.
	Columns int `json:"columns" bson:"columns"`
	Rows    int `json:"rows" bson:"rows"`

	Nodes    []Node    `json:"nodes" bson:"nodes"`
	Edges    []Edge    `json:"edges,omitempty" bson:"edges,omitempty"`
	Warnings []Warning `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// =============================================================================
// Node - Grid Block
// =============================================================================

// Node is a positioned block or group.
type Node struct {
	ID     string `json:"id" bson:"id"`
	Kind   string `json:"kind,omitempty" bson:"kind,omitempty"` // "group" or empty
	Column int    `json:"column" bson:"column"`
	Row    int    `json:"row" bson:"row"`
	Width  int    `json:"width" bson:"width"`
	Height int    `json:"height" bson:"height"`
	Group  string `json:"group,omitempty" bson:"group,omitempty"` // Owning group ID

	Label      string `json:"label,omitempty" bson:"label,omitempty"`
	Color      string `json:"color,omitempty" bson:"color,omitempty"`
	Style      string `json:"style,omitempty" bson:"style,omitempty"`
	Numbered   string `json:"numbered,omitempty" bson:"numbered,omitempty"`
	Background string `json:"background,omitempty" bson:"background,omitempty"`

	// Group payload
	Members     []string `json:"members,omitempty" bson:"members,omitempty"`
	MemberEdges []Edge   `json:"member_edges,omitempty" bson:"member_edges,omitempty"`
}

// IsGroup returns true if this node is a group container.
func (n *Node) IsGroup() bool { return n.Kind == KindGroup }

// =============================================================================
// Edge - Directed Connection
// =============================================================================

// Edge is a directed connection between two nodes.
type Edge struct {
	From     string `json:"from" bson:"from"`
	To       string `json:"to" bson:"to"`
	Circular bool   `json:"circular,omitempty" bson:"circular,omitempty"`
	NoWeight bool   `json:"noweight,omitempty" bson:"noweight,omitempty"`
	Dir      string `json:"dir,omitempty" bson:"dir,omitempty"`
	Color    string `json:"color,omitempty" bson:"color,omitempty"`
	Style    string `json:"style,omitempty" bson:"style,omitempty"`
}

// =============================================================================
// Warning - Build Diagnostics
// =============================================================================

// Warning is a non-fatal problem reported while building the diagram.
type Warning struct {
	Code    string `json:"code" bson:"code"`
	Scope   string `json:"scope,omitempty" bson:"scope,omitempty"`
	Message string `json:"message" bson:"message"`
}

// =============================================================================
// Diagram ↔ Layout Conversion
// =============================================================================

// FromDiagram converts a positioned diagram to its serialization format.
// Node and edge order follow the diagram's registry order.
func FromDiagram(d *diagram.Diagram) Layout {
	cols, rows := d.Extent()
	l := Layout{
		Orientation: string(d.Orientation),
		Color:       d.Color,
		Columns:     cols,
		Rows:        rows,
		Nodes:       make([]Node, 0, d.NodeCount()),
	}

	for _, n := range d.Nodes() {
		l.Nodes = append(l.Nodes, nodeFromDiagram(n))
	}
	for _, e := range d.Edges() {
		l.Edges = append(l.Edges, edgeFromDiagram(e))
	}
	for _, w := range d.Warnings {
		l.Warnings = append(l.Warnings, Warning{Code: string(w.Code), Scope: w.Scope, Message: w.Message})
	}
	return l
}

// ToDiagram rebuilds a diagram from its serialization format. The layout is
// validated first; coordinates are taken as-is and not recomputed.
func ToDiagram(l Layout) (*diagram.Diagram, error) {
	if err := ValidateLayout(l); err != nil {
		return nil, err
	}

	d := diagram.New()
	d.Orientation = diagram.Orientation(l.Orientation)
	if d.Orientation == "" {
		d.Orientation = diagram.TopToBottom
	}
	d.Color = l.Color

	for _, nj := range l.Nodes {
		var n *diagram.Node
		if nj.IsGroup() {
			n, _ = d.AddGroup(nj.ID)
			n.Members.Nodes = append([]string(nil), nj.Members...)
			for _, e := range nj.MemberEdges {
				n.Members.Edges = append(n.Members.Edges, diagram.EdgeKey{From: e.From, To: e.To})
			}
		} else {
			n, _ = d.AddNode(nj.ID)
		}
		n.Column, n.Row = nj.Column, nj.Row
		n.Width, n.Height = nj.Width, nj.Height
		n.Group = nj.Group
		n.Label = nj.Label
		n.Color = nj.Color
		n.Style = diagram.Style(nj.Style)
		n.Numbered = nj.Numbered
		n.Background = nj.Background
	}

	for _, ej := range l.Edges {
		e, _ := d.AddEdge(ej.From, ej.To)
		e.Circular = ej.Circular
		e.NoWeight = ej.NoWeight
		e.Dir = diagram.Direction(ej.Dir)
		e.Color = ej.Color
		e.Style = diagram.Style(ej.Style)
	}

	for _, w := range l.Warnings {
		d.Warnings = append(d.Warnings, diagram.Warning{
			Code:    diagram.WarningCode(w.Code),
			Scope:   w.Scope,
			Message: w.Message,
		})
	}
	return d, nil
}

func nodeFromDiagram(n *diagram.Node) Node {
	out := Node{
		ID:         n.ID,
		Column:     n.Column,
		Row:        n.Row,
		Width:      n.Width,
		Height:     n.Height,
		Group:      n.Group,
		Label:      n.Label,
		Color:      n.Color,
		Style:      string(n.Style),
		Numbered:   n.Numbered,
		Background: n.Background,
	}
	if n.IsGroup() {
		out.Kind = KindGroup
		out.Members = append([]string(nil), n.Members.Nodes...)
		for _, k := range n.Members.Edges {
			out.MemberEdges = append(out.MemberEdges, Edge{From: k.From, To: k.To})
		}
	}
	return out
}

func edgeFromDiagram(e *diagram.Edge) Edge {
	return Edge{
		From:     e.From,
		To:       e.To,
		Circular: e.Circular,
		NoWeight: e.NoWeight,
		Dir:      string(e.Dir),
		Color:    e.Color,
		Style:    string(e.Style),
	}
}
