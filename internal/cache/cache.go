// Package cache is the location result cache: a TTL-bounded, size-bounded
// persistent store of aggregated+scored bundles keyed by normalized
// address. The cache is best-effort by contract — storage failures degrade
// to cache-miss behavior and are never surfaced to callers.
package cache

import (
	"context"
	"time"

	"github.com/sells-group/locintel/internal/model"
)

const (
	// DefaultTTL bounds how long an entry is served before it expires.
	DefaultTTL = 24 * time.Hour
	// DefaultMaxBytes is the total cache size ceiling.
	DefaultMaxBytes = 5 * 1024 * 1024
	// DefaultEvictBatch is how many oldest entries one eviction pass
	// removes before the write is retried.
	DefaultEvictBatch = 5
)

// Stats is the management view of the cache.
type Stats struct {
	TotalEntries    int      `json:"total_entries"`
	ValidEntries    int      `json:"valid_entries"`
	ExpiredEntries  int      `json:"expired_entries"`
	CacheSizeBytes  int64    `json:"cache_size_bytes"`
	CachedAddresses []string `json:"cached_addresses"`
}

// Cache stores scored location bundles by address. No method returns an
// error: a failing backend logs and behaves as a miss or no-op, so a
// broken cache never interrupts a scoring request.
type Cache interface {
	// Get returns the bundle for an address, or nil on miss. An entry
	// whose age exceeds its TTL is evicted and reported as a miss.
	Get(ctx context.Context, address string) *model.UnifiedLocationData
	// Set stores a bundle under the address with the given TTL (zero
	// means DefaultTTL). It reports whether the write happened: an entry
	// larger than the size ceiling is rejected outright, and a full cache
	// evicts its oldest entries once before giving up.
	Set(ctx context.Context, address string, bundle *model.UnifiedLocationData, ttl time.Duration) bool
	// Remove deletes one address's entry.
	Remove(ctx context.Context, address string)
	// ClearAll empties the cache.
	ClearAll(ctx context.Context)
	// CleanupExpired removes every expired entry, returning how many.
	CleanupExpired(ctx context.Context) int
	// Stats reports entry counts, total size and the cached addresses.
	Stats(ctx context.Context) Stats
	// Close releases the backing store.
	Close() error
}

// Options tunes a cache backend. The zero value gets the defaults; Now is
// injectable so expiry tests control the clock.
type Options struct {
	TTL        time.Duration
	MaxBytes   int64
	EvictBatch int
	Now        func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.EvictBatch <= 0 {
		o.EvictBatch = DefaultEvictBatch
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
