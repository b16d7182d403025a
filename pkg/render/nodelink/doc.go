// Package nodelink renders positioned block diagrams with Graphviz.
//
// # Overview
//
// Grid layout is computed by package layout; Graphviz only draws. [ToDOT]
// pins every node to the pixel center of its grid cells with pos="x,y!" and
// fixed sizes, so the neato engine keeps the positions and only routes edges.
//
//	Statements → builder.Build() → Diagram → ToDOT() → DOT → RenderSVG() → SVG
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{NoDoctype: true})
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.Options{Antialias: true})
//
// # Cell Metrics
//
// A node at (column, row) spanning width x height cells occupies
//
//	x = span_w + column*(cell_w+span_w),  w = width*(cell_w+span_w) - span_w
//	y = span_h + row*(cell_h+span_h),     h = height*(cell_h+span_h) - span_h
//
// pixels. Groups are padded by half a span. Defaults are 128x40 cells with
// 64x40 spans.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering;
// no Graphviz installation is required.
package nodelink
