package nodelink

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/blockgrid/pkg/diagram"
)

// Default cell metrics in pixels.
const (
	DefaultCellWidth  = 128
	DefaultCellHeight = 40
	DefaultSpanWidth  = 64
	DefaultSpanHeight = 40
)

// pointsPerInch converts pixel metrics to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation and rendering.
type Options struct {
	// CellWidth and CellHeight are the pixel size of a 1x1 node.
	CellWidth  int
	CellHeight int
	// SpanWidth and SpanHeight are the pixel gaps between neighboring cells.
	SpanWidth  int
	SpanHeight int

	// Font is a font name or a path to a font file. Only the base name of a
	// path is passed to Graphviz.
	Font string
	// Antialias renders PNG output at double resolution.
	Antialias bool
	// NoDoctype strips the XML declaration and DOCTYPE from SVG output.
	NoDoctype bool
}

// withDefaults fills unset metrics.
func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = DefaultCellHeight
	}
	if o.SpanWidth <= 0 {
		o.SpanWidth = DefaultSpanWidth
	}
	if o.SpanHeight <= 0 {
		o.SpanHeight = DefaultSpanHeight
	}
	return o
}

// box is a rectangle in pixels with the origin at the top-left corner.
type box struct {
	x, y, w, h float64
}

// cellBox maps a node's grid cells to pixels. A node spanning several cells
// also covers the gaps between them.
func (o Options) cellBox(n *diagram.Node) box {
	pitchX := float64(o.CellWidth + o.SpanWidth)
	pitchY := float64(o.CellHeight + o.SpanHeight)
	return box{
		x: float64(o.SpanWidth) + float64(n.Column)*pitchX,
		y: float64(o.SpanHeight) + float64(n.Row)*pitchY,
		w: float64(n.Width)*pitchX - float64(o.SpanWidth),
		h: float64(n.Height)*pitchY - float64(o.SpanHeight),
	}
}

// groupBox pads a group's cell box by half a span on every side.
func (o Options) groupBox(n *diagram.Node) box {
	b := o.cellBox(n)
	padX, padY := float64(o.SpanWidth)/2, float64(o.SpanHeight)/2
	return box{x: b.x - padX, y: b.y - padY, w: b.w + 2*padX, h: b.h + 2*padY}
}

// pos returns the pinned Graphviz center of b. Graphviz y grows upwards.
func (b box) pos() string {
	return fmt.Sprintf("%.3f,%.3f!", (b.x+b.w/2)/pointsPerInch, -(b.y+b.h/2)/pointsPerInch)
}

func (b box) size() (string, string) {
	return fmt.Sprintf("%.3f", b.w/pointsPerInch), fmt.Sprintf("%.3f", b.h/pointsPerInch)
}

// ToDOT converts a positioned diagram to Graphviz DOT with every node pinned
// to its grid cell. The result is meant for the neato engine.
//
// Groups are emitted first as unlabeled filled boxes so blocks and edges are
// drawn on top of them. Circular edges carry class="circular".
func ToDOT(d *diagram.Diagram, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  outputorder=\"nodesfirst\";\n")
	fontAttr := ""
	if opts.Font != "" {
		fontAttr = fmt.Sprintf(", fontname=%q", fontName(opts.Font))
	}
	fmt.Fprintf(&buf, "  node [shape=box, fixedsize=true, style=filled, fontsize=11%s];\n", fontAttr)
	buf.WriteString("  edge [arrowsize=0.8];\n")
	buf.WriteString("\n")

	nodes := d.Nodes()
	for _, n := range nodes {
		if n.IsGroup() {
			fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(groupAttrs(n, opts), ", "))
		}
	}
	for _, n := range nodes {
		if n.Drawable() {
			fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
		}
	}

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func groupAttrs(n *diagram.Node, opts Options) []string {
	b := opts.groupBox(n)
	w, h := b.size()
	return []string{
		`label=""`,
		fmt.Sprintf("pos=%q", b.pos()),
		"width=" + w,
		"height=" + h,
		fmt.Sprintf("fillcolor=%q", colorOr(n.Color, diagram.DefaultGroupColor)),
		"penwidth=0",
		`class="group"`,
	}
}

func nodeAttrs(n *diagram.Node, opts Options) []string {
	b := opts.cellBox(n)
	w, h := b.size()
	attrs := []string{
		fmt.Sprintf("label=%q", n.DisplayLabel()),
		fmt.Sprintf("pos=%q", b.pos()),
		"width=" + w,
		"height=" + h,
		fmt.Sprintf("fillcolor=%q", colorOr(n.Color, diagram.DefaultNodeColor)),
	}
	switch n.Style {
	case diagram.StyleDotted, diagram.StyleDashed:
		attrs = append(attrs, fmt.Sprintf("style=%q", "filled,"+string(n.Style)))
	}
	if n.Numbered != "" {
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", n.Numbered))
	}
	if n.Background != "" {
		attrs = append(attrs, fmt.Sprintf("image=%q", n.Background), "imagescale=true")
	}
	return attrs
}

func edgeAttrs(e *diagram.Edge) []string {
	var attrs []string
	if e.Dir != diagram.DirUnset && e.Dir != diagram.DirForward {
		attrs = append(attrs, "dir="+string(e.Dir))
	}
	if e.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", e.Color))
	}
	if e.Style != diagram.StyleUnset {
		attrs = append(attrs, "style="+string(e.Style))
	}
	if e.Circular {
		attrs = append(attrs, `class="circular"`)
	}
	return attrs
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

// fontName reduces a font path to the name Graphviz looks up.
func fontName(font string) string {
	if !strings.ContainsAny(font, `/\`) && filepath.Ext(font) == "" {
		return font
	}
	base := filepath.Base(font)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
