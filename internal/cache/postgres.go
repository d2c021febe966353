package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/model"
)

// Pool is the subset of pgxpool.Pool the cache uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresCache implements Cache on pgxpool, for deployments where several
// dashboard instances share one cache.
type PostgresCache struct {
	pool Pool
	opts Options
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS location_cache (
	key         TEXT PRIMARY KEY,
	id          UUID NOT NULL,
	address     TEXT NOT NULL,
	bundle      JSONB NOT NULL,
	size_bytes  BIGINT NOT NULL,
	cached_at   TIMESTAMPTZ NOT NULL,
	ttl_ms BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_location_cache_cached_at ON location_cache(cached_at);
`

// NewPostgres connects a Postgres-backed cache and runs its migration.
func NewPostgres(ctx context.Context, connString string, opts Options) (*PostgresCache, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "cache: parse postgres config")
	}
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "cache: connect postgres")
	}
	if _, err := pool.Exec(ctx, postgresMigration); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "cache: migrate postgres")
	}
	return &PostgresCache{pool: pool, opts: opts.withDefaults()}, nil
}

// NewPostgresWithPool wraps an existing pool (or a pgxmock stand-in).
// The caller is responsible for the schema.
func NewPostgresWithPool(pool Pool, opts Options) *PostgresCache {
	return &PostgresCache{pool: pool, opts: opts.withDefaults()}
}

func (c *PostgresCache) Close() error {
	c.pool.Close()
	return nil
}

func (c *PostgresCache) Get(ctx context.Context, address string) *model.UnifiedLocationData {
	key := NormalizeKey(address)

	var bundleJSON []byte
	var cachedAt time.Time
	var ttlMs int64
	err := c.pool.QueryRow(ctx,
		`SELECT bundle, cached_at, ttl_ms FROM location_cache WHERE key = $1`, key,
	).Scan(&bundleJSON, &cachedAt, &ttlMs)
	if err != nil {
		if !eris.Is(err, pgx.ErrNoRows) {
			zap.L().Warn("cache: get failed, treating as miss", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	if expired(c.opts.Now(), cachedAt, ttlMs) {
		c.deleteKey(ctx, key)
		return nil
	}

	var bundle model.UnifiedLocationData
	if err := json.Unmarshal(bundleJSON, &bundle); err != nil {
		zap.L().Warn("cache: corrupt entry evicted", zap.String("key", key), zap.Error(err))
		c.deleteKey(ctx, key)
		return nil
	}
	return &bundle
}

func (c *PostgresCache) Set(ctx context.Context, address string, bundle *model.UnifiedLocationData, ttl time.Duration) bool {
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

	_, err = c.pool.Exec(ctx,
		`INSERT INTO location_cache (key, id, address, bundle, size_bytes, cached_at, ttl_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (key) DO UPDATE SET
		   id = EXCLUDED.id, address = EXCLUDED.address, bundle = EXCLUDED.bundle,
		   size_bytes = EXCLUDED.size_bytes, cached_at = EXCLUDED.cached_at,
		   ttl_ms = EXCLUDED.ttl_ms`,
		key, uuid.New().String(), address, bundleJSON, size,
		c.opts.Now().UTC(), ttl.Milliseconds(),
	)
	if err != nil {
		zap.L().Warn("cache: set failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *PostgresCache) Remove(ctx context.Context, address string) {
	c.deleteKey(ctx, NormalizeKey(address))
}

func (c *PostgresCache) ClearAll(ctx context.Context) {
	if _, err := c.pool.Exec(ctx, `DELETE FROM location_cache`); err != nil {
		zap.L().Warn("cache: clear failed", zap.Error(err))
	}
}

func (c *PostgresCache) CleanupExpired(ctx context.Context) int {
	rows, err := c.pool.Query(ctx, `SELECT key, cached_at, ttl_ms FROM location_cache`)
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

func (c *PostgresCache) Stats(ctx context.Context) Stats {
	var stats Stats
	rows, err := c.pool.Query(ctx,
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

func (c *PostgresCache) deleteKey(ctx context.Context, key string) {
	if _, err := c.pool.Exec(ctx, `DELETE FROM location_cache WHERE key = $1`, key); err != nil {
		zap.L().Warn("cache: delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *PostgresCache) totalSize(ctx context.Context, excludeKey string) int64 {
	var total int64
	err := c.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(size_bytes), 0) FROM location_cache WHERE key != $1`, excludeKey,
	).Scan(&total)
	if err != nil {
		zap.L().Warn("cache: size check failed", zap.Error(err))
		return 0
	}
	return total
}

func (c *PostgresCache) evictOldest(ctx context.Context) {
	tag, err := c.pool.Exec(ctx,
		`DELETE FROM location_cache WHERE key IN (
			SELECT key FROM location_cache ORDER BY cached_at ASC LIMIT $1
		)`, c.opts.EvictBatch)
	if err != nil {
		zap.L().Warn("cache: eviction failed", zap.Error(err))
		return
	}
	zap.L().Info("cache: evicted oldest entries", zap.Int64("count", tag.RowsAffected()))
}
