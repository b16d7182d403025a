package cache

import (
	"context"
	"time"
)

// Time-to-live values for cached pipeline results.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil);
	// expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 stores the entry without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey keys a positioned diagram by the digest of its statements.
	LayoutKey(stmtHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by the digest of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the inputs besides the statements that affect layout.
type LayoutKeyOpts struct {
	// Version is the engine version; upgrading invalidates cached layouts.
	Version string `json:"version"`
}

// ArtifactKeyOpts holds the render options that affect the artifact bytes.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Font       string `json:"font,omitempty"`
	Antialias  bool   `json:"antialias,omitempty"`
	NoDoctype  bool   `json:"nodoctype,omitempty"`
	CellWidth  int    `json:"cell_width,omitempty"`
	CellHeight int    `json:"cell_height,omitempty"`
	SpanWidth  int    `json:"span_width,omitempty"`
	SpanHeight int    `json:"span_height,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(stmtHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", stmtHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
