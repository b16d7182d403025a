// Package cache provides the key/value stores behind the layout pipeline.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, used by the CLI
//   - [RedisCache]: Redis with native key expiry, for shared server caches
//   - [MongoCache]: MongoDB documents with a TTL index
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] derives keys from content digests. Layout keys hash the
// statement digest (see [Hash]) together with [LayoutKeyOpts]; artifact keys
// hash the layout digest with [ArtifactKeyOpts]. [ScopedKeyer] adds a
// namespace prefix.
//
// Remote backends retry their initial connection with [RetryWithBackoff].
package cache
