package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/render/nodelink"
)

// RenderFromLayout generates output artifacts in the requested formats.
// The DOT source is generated once and shared by the Graphviz formats.
func RenderFromLayout(ctx context.Context, layout graph.Layout, opts Options) (map[string][]byte, error) {
	d, err := graph.ToDiagram(layout)
	if err != nil {
		return nil, fmt.Errorf("restore diagram: %w", err)
	}
	nlOpts := opts.NodelinkOptions()
	dot := nodelink.ToDOT(d, nlOpts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot, nlOpts)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, nlOpts)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = graph.MarshalLayout(layout)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
