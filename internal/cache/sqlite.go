package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/locintel/internal/model"
)

// SQLiteCache implements Cache on modernc.org/sqlite. This is the default
// backend: a single local file, WAL mode, no server.
type SQLiteCache struct {
	db   *sql.DB
	opts Options
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS location_cache (
	key         TEXT PRIMARY KEY,
	id          TEXT NOT NULL,
	address     TEXT NOT NULL,
	bundle      TEXT NOT NULL,
	size_bytes  INTEGER NOT NULL,
	cached_at   DATETIME NOT NULL,
	ttl_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_location_cache_cached_at ON location_cache(cached_at);
`

// NewSQLite opens (and migrates) a SQLite-backed cache at the given DSN.
func NewSQLite(dsn string, opts Options) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "cache: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "cache: exec %s", pragma)
		}
	}
	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "cache: migrate")
	}
	return &SQLiteCache{db: db, opts: opts.withDefaults()}, nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteCache) Get(ctx context.Context, address string) *model.UnifiedLocationData {
	key := NormalizeKey(address)

	var bundleJSON string
	var cachedAt time.Time
	var ttlMs int64
	err := c.db.QueryRowContext(ctx,
		`SELECT bundle, cached_at, ttl_ms FROM location_cache WHERE key = ?`, key,
	).Scan(&bundleJSON, &cachedAt, &ttlMs)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		zap.L().Warn("cache: get failed, treating as miss", zap.String("key", key), zap.Error(err))
		return nil
	}

	if expired(c.opts.Now(), cachedAt, ttlMs) {
		c.deleteKey(ctx, key)
		return nil
	}

	var bundle model.UnifiedLocationData
	if err := json.Unmarshal([]byte(bundleJSON), &bundle); err != nil {
		// Corrupt entry: drop it rather than serving garbage.
		zap.L().Warn("cache: corrupt entry evicted", zap.String("key", key), zap.Error(err))
		c.deleteKey(ctx, key)
		return nil
	}
	return &bundle
}

func (c *SQLiteCache) Set(ctx context.Context, address string, bundle *model.UnifiedLocationData, ttl time.Duration) bool {
	if bundle == nil {
		return false
	}
	if ttl <= 0 {
		ttl = c.opts.TTL
	}
	key := NormalizeKey(address)

	bundleJSON, err := json.Marshal(bundle)
	if err != nil {
		zap.L().Warn("cache: marshal bundle failed", zap.String("key", key), zap.Error(err))
		return false
	}
	size := int64(len(bundleJSON))
	if size > c.opts.MaxBytes {
		zap.L().Warn("cache: entry exceeds size ceiling, rejected",
			zap.String("key", key),
			zap.Int64("size_bytes", size),
			zap.Int64("max_bytes", c.opts.MaxBytes),
		)
		return false
	}

	// One eviction pass, then one retry.
	for attempt := 0; attempt < 2; attempt++ {
		if c.totalSize(ctx, key)+size <= c.opts.MaxBytes {
			break
		}
		if attempt == 1 {
			zap.L().Warn("cache: no room after eviction, write skipped", zap.String("key", key))
			return false
		}
		c.evictOldest(ctx)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO location_cache (key, id, address, bundle, size_bytes, cached_at, ttl_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   id = excluded.id, address = excluded.address, bundle = excluded.bundle,
		   size_bytes = excluded.size_bytes, cached_at = excluded.cached_at,
		   ttl_ms = excluded.ttl_ms`,
		key, uuid.New().String(), address, string(bundleJSON), size,
		c.opts.Now().UTC(), ttl.Milliseconds(),
	)
	if err != nil {
		zap.L().Warn("cache: set failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *SQLiteCache) Remove(ctx context.Context, address string) {
	c.deleteKey(ctx, NormalizeKey(address))
}

func (c *SQLiteCache) ClearAll(ctx context.Context) {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM location_cache`); err != nil {
		zap.L().Warn("cache: clear failed", zap.Error(err))
	}
}

func (c *SQLiteCache) CleanupExpired(ctx context.Context) int {
	rows, err := c.db.QueryContext(ctx, `SELECT key, cached_at, ttl_ms FROM location_cache`)
	if err != nil {
		zap.L().Warn("cache: cleanup scan failed", zap.Error(err))
		return 0
	}
	defer rows.Close()

	now := c.opts.Now()
	var stale []string
	for rows.Next() {
		var key string
		var cachedAt time.Time
		var ttlMs int64
		if err := rows.Scan(&key, &cachedAt, &ttlMs); err != nil {
			continue
		}
		if expired(now, cachedAt, ttlMs) {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		c.deleteKey(ctx, key)
	}
	return len(stale)
}

func (c *SQLiteCache) Stats(ctx context.Context) Stats {
	var stats Stats
	rows, err := c.db.QueryContext(ctx,
		`SELECT address, size_bytes, cached_at, ttl_ms FROM location_cache ORDER BY address`)
	if err != nil {
		zap.L().Warn("cache: stats failed", zap.Error(err))
		return stats
	}
	defer rows.Close()

	now := c.opts.Now()
	for rows.Next() {
		var address string
		var size int64
		var cachedAt time.Time
		var ttlMs int64
		if err := rows.Scan(&address, &size, &cachedAt, &ttlMs); err != nil {
			continue
		}
		stats.TotalEntries++
		stats.CacheSizeBytes += size
		if expired(now, cachedAt, ttlMs) {
			stats.ExpiredEntries++
			continue
		}
		stats.ValidEntries++
		stats.CachedAddresses = append(stats.CachedAddresses, address)
	}
	return stats
}

func (c *SQLiteCache) deleteKey(ctx context.Context, key string) {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM location_cache WHERE key = ?`, key); err != nil {
		zap.L().Warn("cache: delete failed", zap.String("key", key), zap.Error(err))
	}
}

// totalSize sums stored bytes excluding the key about to be replaced.
func (c *SQLiteCache) totalSize(ctx context.Context, excludeKey string) int64 {
	var total int64
	err := c.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(size_bytes), 0) FROM location_cache WHERE key != ?`, excludeKey,
	).Scan(&total)
	if err != nil {
		zap.L().Warn("cache: size check failed", zap.Error(err))
		return 0
	}
	return total
}

func (c *SQLiteCache) evictOldest(ctx context.Context) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM location_cache WHERE key IN (
			SELECT key FROM location_cache ORDER BY cached_at ASC LIMIT ?
		)`, c.opts.EvictBatch)
	if err != nil {
		zap.L().Warn("cache: eviction failed", zap.Error(err))
		return
	}
	if n, err := res.RowsAffected(); err == nil {
		zap.L().Info("cache: evicted oldest entries", zap.Int64("count", n))
	}
}

// expired reports whether an entry's age exceeds its TTL at the given
// instant. TTLs are stored in milliseconds so sub-second values survive.
func expired(now, cachedAt time.Time, ttlMs int64) bool {
	return now.Sub(cachedAt) > time.Duration(ttlMs)*time.Millisecond
}
