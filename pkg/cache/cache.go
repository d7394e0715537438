// Package cache provides pluggable byte caches keyed by content hashes.
// The CLI uses it to skip re-reading unchanged packages: a manifest is
// cached under the source file's digest, so any byte change invalidates
// the entry naturally. Backends: file (default), redis, null (disabled).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the backend interface. Get reports a miss with ok=false and a
// nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ManifestKey builds the cache key for a package's manifest from the
// digest of its raw bytes. The full hash is kept to avoid collisions.
func ManifestKey(pkgHash string) string {
	return fmt.Sprintf("manifest:%s", pkgHash)
}

// RenderKey builds the cache key for a rendered diagram: the package
// digest plus the output format and the option fingerprint.
func RenderKey(pkgHash, format, opts string) string {
	return fmt.Sprintf("render:%s:%s:%s", pkgHash, format, opts)
}
