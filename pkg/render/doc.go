// Package render groups the rendering backends for positioned diagrams.
//
// The [nodelink] subpackage converts a diagram into Graphviz DOT with pinned
// node positions and renders it to SVG or PNG.
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//
// [nodelink]: github.com/matzehuels/blockgrid/pkg/render/nodelink
package render
