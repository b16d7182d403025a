package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// honors the pinned node positions produced by [ToDOT].
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	out = normalizeViewBox(out)
	if opts.NoDoctype {
		out = stripDoctype(out)
	}
	return out, nil
}

// RenderPNG renders a DOT graph to PNG. With Options.Antialias the image is
// rendered at double resolution.
func RenderPNG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	if opts.Antialias {
		dot = withDPI(dot, 192)
	}
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
	prologRe  = regexp.MustCompile(`(?s)\A(?:<\?xml[^>]*\?>|<!DOCTYPE[^>]*>|<!--.*?-->|\s+)*`)
	digraphRe = regexp.MustCompile(`digraph G \{\n`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// stripDoctype removes the XML declaration, leading comments and the DOCTYPE
// so the SVG can be inlined into HTML.
func stripDoctype(svg []byte) []byte {
	return prologRe.ReplaceAll(svg, nil)
}

func withDPI(dot string, dpi int) string {
	return digraphRe.ReplaceAllString(dot, fmt.Sprintf("digraph G {\n  dpi=%d;\n", dpi))
}
