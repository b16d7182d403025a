package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.ToLower(strings.TrimPrefix(ext, "."))] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its destination. A single format honors an
// explicit output path verbatim; several formats share a base path.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// artifactWriteParams bundles the inputs of writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	nodes     int
	edges     int
	open      bool
}

// writeArtifacts writes rendered artifacts in format order and reports them.
// With open set, the first written file is opened for viewing.
func writeArtifacts(ctx context.Context, p artifactWriteParams) error {
	paths := outputPaths(p.formats, p.input, p.output)
	toStdout := false

	for _, format := range p.formats {
		path := paths[format]
		out, err := openOutput(path)
		if err != nil {
			return fmt.Errorf("create output %s: %w", path, err)
		}
		_, err = out.Write(p.artifacts[format])
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		if path == "-" {
			toStdout = true
		}
	}

	if toStdout {
		return nil
	}
	printSuccess("Render complete")
	for _, format := range p.formats {
		printFile(paths[format])
	}
	printStats(p.nodes, p.edges, p.cacheHit)

	if p.open {
		if err := openInBrowser(ctx, paths[p.formats[0]]); err != nil {
			loggerFromContext(ctx).Warn("could not open output", "err", err)
		}
	}
	return nil
}

// printLayoutWarnings reports build warnings carried by a layout.
func printLayoutWarnings(l graph.Layout) {
	for _, w := range l.Warnings {
		printWarning("%s", w.Message)
	}
}
