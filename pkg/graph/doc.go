// Package graph provides the serialization format for positioned diagrams.
//
// This package defines the canonical wire format for blockgrid layouts, used
// for JSON files, API responses, and cache entries (JSON for the file and
// Redis backends, BSON for MongoDB).
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Layout], [Node], [Edge], [Warning]: Serialization types (this package)
//   - pkg/diagram.Diagram: Internal positioned model
//
// Use [FromDiagram]/[ToDiagram] to convert between them.
//
// # Layout Serialization
//
// A layout lists nodes and edges in registry order, so order-index survives
// a round trip:
//
//	{
//	  "orientation": "TB",
//	  "columns": 2,
//	  "rows": 1,
//	  "nodes": [
//	    {"id": "A", "column": 0, "row": 0, "width": 1, "height": 1, "label": "A", "color": "white"},
//	    {"id": "B", "column": 1, "row": 0, "width": 1, "height": 1, "label": "B", "color": "white"}
//	  ],
//	  "edges": [{"from": "A", "to": "B", "dir": "forward"}]
//	}
//
// Groups carry "kind": "group" plus their member lists. Members name their
// owner in "group".
//
// Common operations:
//
//	l := graph.FromDiagram(d)                 // Diagram → Layout
//	graph.WriteLayoutFile(l, "out.json")      // Layout → File
//	l, _ = graph.ReadLayoutFile("out.json")   // File → Layout
//	d, _ = graph.ToDiagram(l)                 // Layout → Diagram
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
