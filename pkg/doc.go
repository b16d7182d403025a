// Package pkg provides the core libraries for blockgrid block diagrams.
//
// # Overview
//
// Blockgrid turns declarative statements (nodes, edges, nested subgraphs and
// diagram attributes) into a grid of positioned blocks. The pkg directory is
// organized by pipeline stage:
//
//  1. [stmt] - Statement AST and JSON/TOML decoding
//  2. [diagram] - Node/edge registry, attributes and warnings
//  3. [builder] - Statement evaluation and group composition
//  4. [layout] - Column, row and group placement on the grid
//  5. [graph] - Layout serialization (JSON and BSON)
//  6. [render/nodelink] - Graphviz DOT, SVG and PNG output
//  7. [pipeline] - Cached orchestration (build → render)
//
// # Architecture
//
//	stmts.json / stmts.toml
//	         ↓
//	    [stmt] package (decode statements)
//	         ↓
//	    [builder] package (registry + groups, calls [layout])
//	         ↓
//	    [graph] package (layout.json)
//	         ↓
//	    [render/nodelink] package (DOT → SVG/PNG)
//
// # Quick Start
//
//	stmts, _ := stmt.ReadFile("arch.json")
//	d, err := builder.Build(stmts)
//	if err != nil {
//	    return err
//	}
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//
// # Supporting Packages
//
// [cache] - Layout and artifact cache with file, Redis and MongoDB backends.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [buildinfo] - Version metadata injected at link time.
//
// [stmt]: github.com/matzehuels/blockgrid/pkg/stmt
// [diagram]: github.com/matzehuels/blockgrid/pkg/diagram
// [builder]: github.com/matzehuels/blockgrid/pkg/builder
// [layout]: github.com/matzehuels/blockgrid/pkg/layout
// [graph]: github.com/matzehuels/blockgrid/pkg/graph
// [render/nodelink]: github.com/matzehuels/blockgrid/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/blockgrid/pkg/pipeline
// [cache]: github.com/matzehuels/blockgrid/pkg/cache
// [errors]: github.com/matzehuels/blockgrid/pkg/errors
// [observability]: github.com/matzehuels/blockgrid/pkg/observability
// [buildinfo]: github.com/matzehuels/blockgrid/pkg/buildinfo
package pkg
