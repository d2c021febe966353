package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgres creates a PostgresCache backed by pgxmock.
func newMockPostgres(t *testing.T, opts Options) (*PostgresCache, pgxmock.PgxPoolIface, *fakeClock) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts.Now = clock.Now
	return NewPostgresWithPool(mock, opts), mock, clock
}

func TestPostgresCache_GetMiss(t *testing.T) {
	c, mock, _ := newMockPostgres(t, Options{})

	mock.ExpectQuery(`SELECT bundle, cached_at, ttl_ms FROM location_cache WHERE key = \$1`).
		WithArgs("location_nergensweg_1").
		WillReturnError(pgx.ErrNoRows)

	assert.Nil(t, c.Get(context.Background(), "Nergensweg 1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_GetHit(t *testing.T) {
	c, mock, clock := newMockPostgres(t, Options{})

	bundle := testBundle("Hoofdstraat 1, Amsterdam")
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT bundle, cached_at, ttl_ms FROM location_cache WHERE key = \$1`).
		WithArgs("location_hoofdstraat_1_amsterdam").
		WillReturnRows(pgxmock.NewRows([]string{"bundle", "cached_at", "ttl_ms"}).
			AddRow(raw, clock.Now().Add(-time.Hour), int64(86400000)))

	got := c.Get(context.Background(), "Hoofdstraat 1, Amsterdam")
	require.NotNil(t, got)
	assert.Equal(t, "Hoofdstraat 1, Amsterdam", got.Location.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_GetExpiredEvicts(t *testing.T) {
	c, mock, clock := newMockPostgres(t, Options{})

	bundle := testBundle("Dorpsstraat 5, Utrecht")
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)

	key := "location_dorpsstraat_5_utrecht"
	mock.ExpectQuery(`SELECT bundle, cached_at, ttl_ms FROM location_cache WHERE key = \$1`).
		WithArgs(key).
		WillReturnRows(pgxmock.NewRows([]string{"bundle", "cached_at", "ttl_ms"}).
			AddRow(raw, clock.Now().Add(-2*time.Hour), int64(3600000)))
	mock.ExpectExec(`DELETE FROM location_cache WHERE key = \$1`).
		WithArgs(key).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.Nil(t, c.Get(context.Background(), "Dorpsstraat 5, Utrecht"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_GetCorruptEvicts(t *testing.T) {
	c, mock, clock := newMockPostgres(t, Options{})

	key := "location_kerkstraat_2_leiden"
	mock.ExpectQuery(`SELECT bundle, cached_at, ttl_ms FROM location_cache WHERE key = \$1`).
		WithArgs(key).
		WillReturnRows(pgxmock.NewRows([]string{"bundle", "cached_at", "ttl_ms"}).
			AddRow([]byte(`{not json`), clock.Now(), int64(86400000)))
	mock.ExpectExec(`DELETE FROM location_cache WHERE key = \$1`).
		WithArgs(key).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.Nil(t, c.Get(context.Background(), "Kerkstraat 2, Leiden"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Set(t *testing.T) {
	c, mock, _ := newMockPostgres(t, Options{})

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(size_bytes\), 0\) FROM location_cache WHERE key != \$1`).
		WithArgs("location_hoofdstraat_1_amsterdam").
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))
	mock.ExpectExec(`INSERT INTO location_cache`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ok := c.Set(context.Background(), "Hoofdstraat 1, Amsterdam", testBundle("Hoofdstraat 1, Amsterdam"), time.Hour)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_SetRejectsOversized(t *testing.T) {
	bundle := testBundle("Grote Markt 1, Groningen")
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)

	// No queries expected: the ceiling check rejects before touching the pool.
	c, mock, _ := newMockPostgres(t, Options{MaxBytes: int64(len(raw)) - 1})
	assert.False(t, c.Set(context.Background(), bundle.Location.Address, bundle, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_SetEvictsWhenFull(t *testing.T) {
	bundle := testBundle("Adres C 1, Amsterdam")
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	size := int64(len(raw))

	c, mock, _ := newMockPostgres(t, Options{MaxBytes: size * 2, EvictBatch: 5})
	key := "location_adres_c_1_amsterdam"

	// First size check reports a full cache, triggering one eviction pass.
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(size_bytes\), 0\) FROM location_cache WHERE key != \$1`).
		WithArgs(key).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(size * 2))
	mock.ExpectExec(`DELETE FROM location_cache WHERE key IN`).
		WithArgs(5).
		WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(size_bytes\), 0\) FROM location_cache WHERE key != \$1`).
		WithArgs(key).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))
	mock.ExpectExec(`INSERT INTO location_cache`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.True(t, c.Set(context.Background(), "Adres C 1, Amsterdam", bundle, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_SetGivesUpAfterEviction(t *testing.T) {
	bundle := testBundle("Adres D 1, Amsterdam")
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	size := int64(len(raw))

	c, mock, _ := newMockPostgres(t, Options{MaxBytes: size * 2, EvictBatch: 5})
	key := "location_adres_d_1_amsterdam"

	full := pgxmock.NewRows([]string{"coalesce"}).AddRow(size * 2)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(size_bytes\), 0\)`).WithArgs(key).WillReturnRows(full)
	mock.ExpectExec(`DELETE FROM location_cache WHERE key IN`).
		WithArgs(5).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	stillFull := pgxmock.NewRows([]string{"coalesce"}).AddRow(size * 2)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(size_bytes\), 0\)`).WithArgs(key).WillReturnRows(stillFull)

	assert.False(t, c.Set(context.Background(), "Adres D 1, Amsterdam", bundle, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_CleanupExpired(t *testing.T) {
	c, mock, clock := newMockPostgres(t, Options{})

	mock.ExpectQuery(`SELECT key, cached_at, ttl_ms FROM location_cache`).
		WillReturnRows(pgxmock.NewRows([]string{"key", "cached_at", "ttl_ms"}).
			AddRow("location_oud", clock.Now().Add(-2*time.Hour), int64(3600000)).
			AddRow("location_vers", clock.Now().Add(-time.Minute), int64(3600000)))
	mock.ExpectExec(`DELETE FROM location_cache WHERE key = \$1`).
		WithArgs("location_oud").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.Equal(t, 1, c.CleanupExpired(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCache_Stats(t *testing.T) {
	c, mock, clock := newMockPostgres(t, Options{})

	mock.ExpectQuery(`SELECT address, size_bytes, cached_at, ttl_ms FROM location_cache ORDER BY address`).
		WillReturnRows(pgxmock.NewRows([]string{"address", "size_bytes", "cached_at", "ttl_ms"}).
			AddRow("Adres A 1", int64(100), clock.Now().Add(-2*time.Hour), int64(3600000)).
			AddRow("Adres B 1", int64(250), clock.Now(), int64(3600000)))

	stats := c.Stats(context.Background())
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 1, stats.ValidEntries)
	assert.Equal(t, 1, stats.ExpiredEntries)
	assert.Equal(t, int64(350), stats.CacheSizeBytes)
	assert.Equal(t, []string{"Adres B 1"}, stats.CachedAddresses)
	assert.NoError(t, mock.ExpectationsWereMet())
}
