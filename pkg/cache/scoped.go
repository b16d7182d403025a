package cache

// ScopedKeyer namespaces the keys of another Keyer. The CLI installs one
// when cache.namespace is configured, so deployments sharing a Redis or
// MongoDB instance never read each other's layouts.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes every key produced by inner. A nil inner means
// the [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(stmtHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(stmtHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
