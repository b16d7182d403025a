// Package diagram provides the positioned block diagram model.
//
// # Overview
//
// A [Diagram] is an ordered registry of [Node] and [Edge] values. Node order
// is insertion order and is called the order-index; the layout engine uses it
// as the single tie-break authority, so two builds of the same statements
// always produce the same grid.
//
// Groups are ordinary nodes carrying a [Members] payload. Membership is
// recorded on the member as the owning group's identifier rather than a
// pointer, so the model holds no reference cycles.
//
// # Coordinates
//
// Column, Row, Width and Height are grid cells. Mapping cells to pixels is a
// rendering concern; see package render/nodelink.
//
// # Attributes
//
// [Overlay] applies statement attributes to nodes, edges and the diagram. Each
// entity kind has a closed set of attribute names ([NodeAttr], [EdgeAttr],
// [DiagramAttr]); an unknown name is a fatal UNKNOWN_ATTRIBUTE error while an
// invalid value produces a [Warning] and is skipped.
package diagram
