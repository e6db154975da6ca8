// Package cache provides the artifact cache for rendered pedigree output.
//
// Rendering a large pedigree (deep wheel SVGs, graphviz PNGs) is the slow
// part of the pipeline, so rendered bytes are cached keyed by everything that
// determines them: the record-source fingerprint, the subject, the generation
// count, the visualization type, the output format, and any renderer options
// that shape the bytes. Computed trees and
// reports are never cached: recomputing them is cheap and keeping them out
// of storage keeps the analysis side-effect-free.
//
// Three backends are provided:
//
//   - [FileCache]: JSON entries under a directory, for CLI use
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching entirely
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached artifacts stay valid. Record files change
// rarely and the fingerprint already invalidates stale data, so the TTL only
// bounds disk growth.
const DefaultTTL = 30 * 24 * time.Hour

// Cache stores rendered artifacts as opaque bytes.
type Cache interface {
	// Get retrieves the value for key. The second return value reports
	// whether the key was present; an expired or corrupt entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl stores the entry
	// without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// ArtifactKey builds the cache key for one rendered artifact.
// fingerprint is the record-source fingerprint from pkg/store; viz and
// format are the pipeline's visualization type and output format.
// renderOpts carries every renderer parameter that changes the output
// bytes, so that two renders of the same subject with different options
// never share an entry.
func ArtifactKey(fingerprint, subject string, generations int, viz, format string, renderOpts ...any) string {
	parts := append([]any{fingerprint, subject, generations, viz, format}, renderOpts...)
	return hashKey("artifact", parts...)
}

// ReportKey builds the cache key for a serialized inbreeding report.
func ReportKey(fingerprint, subject string, bound int) string {
	return hashKey("report", fingerprint, subject, bound)
}
