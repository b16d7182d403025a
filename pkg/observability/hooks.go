// Package observability exposes instrumentation points for blockgrid.
//
// The pipeline, cache and HTTP server report events through three hook
// interfaces. Each starts out as a no-op; a binary that wants metrics or
// tracing registers its own implementation once at startup:
//
//	observability.SetCacheHooks(promCacheHooks{})
//	observability.SetHTTPHooks(otelHTTPHooks{tracer})
//
// Library code never imports a metrics backend. It fetches the current
// hooks at the call site:
//
//	observability.Pipeline().OnBuildStart(ctx, len(stmts))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// Build events cover registration, group composition and layout.
	OnBuildStart(ctx context.Context, stmtCount int)
	OnBuildComplete(ctx context.Context, nodeCount, warningCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a request that failed with an error.
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// slot holds one registered hook implementation and its no-op default.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] {
	return &slot[T]{cur: def, def: def}
}

// set ignores nil so a missing implementation never disables the default.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.def
	s.mu.Unlock()
}

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks registers hooks around layout builds and renders.
// Call it at startup, before the first pipeline run.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }

// SetCacheHooks registers hooks for layout and artifact cache traffic.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks registers hooks for requests handled by the HTTP server.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores every hook to its no-op default. Tests use it to undo
// registrations.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
