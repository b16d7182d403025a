// Package pipeline provides the build → render pipeline for blockgrid.
//
// This package implements the complete statements → positioned diagram →
// artifact pipeline used by the CLI and the HTTP API. Centralizing it keeps
// caching and option handling identical across entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: Register statements, compose groups and lay out the grid
//  2. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages are cached: layouts by the digest of the statements, artifacts
// by the digest of the layout.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, stmts, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	layout, err := runner.Build(ctx, stmts, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockgrid/pkg/buildinfo"
	"github.com/matzehuels/blockgrid/pkg/cache"
	"github.com/matzehuels/blockgrid/pkg/errors"
	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/render/nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatSVG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Render options
	Formats    []string `json:"formats,omitempty"`
	Font       string   `json:"font,omitempty"`
	Antialias  bool     `json:"antialias,omitempty"`
	NoDoctype  bool     `json:"nodoctype,omitempty"`
	CellWidth  int      `json:"cell_width,omitempty"`
	CellHeight int      `json:"cell_height,omitempty"`
	SpanWidth  int      `json:"span_width,omitempty"`
	SpanHeight int      `json:"span_height,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// FileExists checks background image paths during the build.
	FileExists func(path string) bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// StmtHash is the content hash of the input statements.
	StmtHash string

	// Layout is the positioned diagram in serialization form.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	WarningCount int
	BuildTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// NormalizeFormat lowercases a user-supplied format name.
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetBuildDefaults sets default values for the build stage.
func (o *Options) SetBuildDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering and normalizes format
// names.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats := make([]string, len(o.Formats))
	for i, f := range o.Formats {
		formats[i] = NormalizeFormat(f)
	}
	o.Formats = formats
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
// NoDoctype only applies to SVG and is rejected with any other format.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.NoDoctype {
		for _, f := range o.Formats {
			if f != FormatSVG {
				return errors.New(errors.ErrCodeUnsupported, "nodoctype is only supported for svg output, not %s", f)
			}
		}
	}
	if o.CellWidth < 0 || o.CellHeight < 0 || o.SpanWidth < 0 || o.SpanHeight < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cell and span metrics must not be negative")
	}
	return nil
}

// LayoutKeyOpts returns cache key options for the build stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Version: buildinfo.Version}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		CellWidth:  o.CellWidth,
		CellHeight: o.CellHeight,
		SpanWidth:  o.SpanWidth,
		SpanHeight: o.SpanHeight,
	}
	switch format {
	case FormatSVG, FormatPNG, FormatDOT:
		opts.Font = o.Font
	}
	if format == FormatSVG {
		opts.NoDoctype = o.NoDoctype
	}
	if format == FormatPNG {
		opts.Antialias = o.Antialias
	}
	return opts
}

// NodelinkOptions returns the renderer options.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{
		CellWidth:  o.CellWidth,
		CellHeight: o.CellHeight,
		SpanWidth:  o.SpanWidth,
		SpanHeight: o.SpanHeight,
		Font:       o.Font,
		Antialias:  o.Antialias,
		NoDoctype:  o.NoDoctype,
	}
}
