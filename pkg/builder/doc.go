// Package builder turns a statement list into a positioned diagram.
//
// # Overview
//
// [Build] walks the statements in declaration order, registering nodes,
// edges and groups in a [diagram.Diagram] and overlaying their attributes.
// Each subgraph is then built recursively into its own diagram and folded
// back in as a group, after which the [layout] package positions everything.
//
//	stmts, _ := stmt.ReadFile("arch.json")
//	d, err := builder.Build(stmts, builder.WithLogger(logger))
//	if err != nil {
//	    return err // UNKNOWN_ATTRIBUTE, GROUP_CONFLICT, ...
//	}
//	for _, w := range d.Warnings {
//	    fmt.Println(w.Message)
//	}
//
// # Groups
//
// A named subgraph x is registered as "group:x"; anonymous subgraphs become
// "group:#1", "group:#2", ... numbered across the whole build including nested
// passes. Redeclaring a named subgraph appends its statements to the first
// declaration.
//
// Before the nested pass runs, every edge already registered between two
// nodes declared directly inside the subgraph is injected into its statement
// list, so connectivity declared outside the group still shapes the layout
// inside it. The caller's statements are never modified.
//
// A node belongs to at most one group. Folding a node that already has a
// different owner fails with GROUP_CONFLICT.
//
// # Warnings
//
// Invalid attribute values are skipped, recorded on [diagram.Diagram.Warnings]
// and logged at warn level. Unknown attribute names are fatal.
package builder
