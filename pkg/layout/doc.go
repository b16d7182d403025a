// Package layout assigns grid coordinates to a block diagram.
//
// # Overview
//
// [Layout] runs four passes over a [diagram.Diagram]:
//
//  1. Columns: longest-path layering with deterministic cycle breaking
//  2. Rows: depth-first packing of sibling subtrees
//  3. Translation: outermost groups move their members into diagram space
//  4. Orientation: left-to-right diagrams are transposed
//
// Each pass is also exported on its own so callers and tests can inspect
// intermediate state.
//
// # Units
//
// Layout operates on units: nodes without an owning group, which includes
// outermost groups. A group member is represented by the outermost group that
// contains it. An edge from any member of group G therefore behaves as an edge
// from G, and an edge into a member behaves as an edge into G.
//
// # Cycles
//
// When a unit at column d has a child with a smaller order-index that can
// reach the unit back, the edges into that child are flagged circular and
// stop contributing to layering. Among the edges of a cycle, the one sourced
// at the larger order-index is cut, so the result depends only on
// declaration order.
//
// # Termination
//
// All graph searches use explicit queues and stacks. The column pass fails
// with INTERNAL_ERROR if the frontier passes the sum of all unit widths,
// which no acyclic layering can reach.
package layout
