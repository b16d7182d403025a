package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockgrid/pkg/builder"
	"github.com/matzehuels/blockgrid/pkg/cache"
	"github.com/matzehuels/blockgrid/pkg/graph"
	"github.com/matzehuels/blockgrid/pkg/observability"
	"github.com/matzehuels/blockgrid/pkg/stmt"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, stmts []stmt.Stmt, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	layout, layoutHit, err := r.BuildWithCacheInfo(ctx, stmts, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Layout = layout
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = len(layout.Nodes)
	result.Stats.EdgeCount = len(layout.Edges)
	result.Stats.WarningCount = len(layout.Warnings)
	result.CacheInfo.LayoutHit = layoutHit
	if hash, err := StmtHash(stmts); err == nil {
		result.StmtHash = hash
	}

	r.Logger.Info("built diagram",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"warnings", result.Stats.WarningCount,
		"cached", layoutHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// StmtHash returns the content hash of a statement list.
func StmtHash(stmts []stmt.Stmt) (string, error) {
	data, err := stmt.Marshal(stmts)
	if err != nil {
		return "", fmt.Errorf("serialize statements: %w", err)
	}
	return cache.Hash(data), nil
}

// BuildWithCacheInfo builds and lays out a diagram with caching and returns
// cache hit info. Cached layouts are stored as BSON.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, stmts []stmt.Stmt, opts Options) (graph.Layout, bool, error) {
	opts.SetBuildDefaults()
	r.applyLogger(&opts)

	stmtHash, err := StmtHash(stmts)
	if err != nil {
		return graph.Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(stmtHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graph.UnmarshalLayoutBSON(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to rebuild
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(stmts))
	start := time.Now()

	buildOpts := []builder.Option{builder.WithLogger(opts.Logger)}
	if opts.FileExists != nil {
		buildOpts = append(buildOpts, builder.WithFileExists(opts.FileExists))
	}
	d, err := builder.Build(stmts, buildOpts...)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return graph.Layout{}, false, err
	}
	layout := graph.FromDiagram(d)
	hooks.OnBuildComplete(ctx, d.NodeCount(), len(d.Warnings), time.Since(start), nil)

	// Cache the result
	if data, err := graph.MarshalLayoutBSON(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err != nil {
			r.Logger.Debug("cache write failed", "stage", "layout", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, stmts []stmt.Stmt, opts Options) (graph.Layout, error) {
	layout, _, err := r.BuildWithCacheInfo(ctx, stmts, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := graph.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := RenderFromLayout(ctx, layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err != nil {
			r.Logger.Debug("cache write failed", "stage", "render", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
