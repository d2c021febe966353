package cache

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/locintel/internal/model"
)

// fakeClock is an adjustable Now source for expiry tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testBundle(address string) *model.UnifiedLocationData {
	return &model.UnifiedLocationData{
		Location: model.LocationData{
			Address:      address,
			Municipality: model.Area{Code: "GM0363", Name: "Amsterdam"},
		},
		Demographics: map[model.GeoLevel][]model.UnifiedRow{
			model.LevelMunicipality: {
				{Key: "aantal_inwoners", Absolute: model.Float64(900000)},
			},
		},
		ScoringVersion: "2.1.0",
	}
}

func newTestSQLite(t *testing.T, opts Options) (*SQLiteCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts.Now = clock.Now

	c, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

func TestSQLiteCache_SetGet(t *testing.T) {
	c, _ := newTestSQLite(t, Options{})
	ctx := context.Background()

	addr := "Hoofdstraat 1, Amsterdam"
	require.True(t, c.Set(ctx, addr, testBundle(addr), 0))

	got := c.Get(ctx, addr)
	require.NotNil(t, got)
	assert.Equal(t, addr, got.Location.Address)
	assert.Equal(t, "2.1.0", got.ScoringVersion)

	// Gettable under a spelling variant of the same address.
	variant := c.Get(ctx, "hoofdstraat   1,  amsterdam")
	require.NotNil(t, variant)
	assert.Equal(t, addr, variant.Location.Address)
}

func TestSQLiteCache_Miss(t *testing.T) {
	c, _ := newTestSQLite(t, Options{})
	assert.Nil(t, c.Get(context.Background(), "Nergensweg 1, Nergenshuizen"))
}

func TestSQLiteCache_TTLBoundary(t *testing.T) {
	c, clock := newTestSQLite(t, Options{})
	ctx := context.Background()

	addr := "Dorpsstraat 5, Utrecht"
	require.True(t, c.Set(ctx, addr, testBundle(addr), time.Second))

	// At exactly the TTL the entry still serves.
	clock.Advance(1000 * time.Millisecond)
	assert.NotNil(t, c.Get(ctx, addr))

	// One millisecond past, it expires and evicts.
	clock.Advance(time.Millisecond)
	assert.Nil(t, c.Get(ctx, addr))
	assert.Nil(t, c.Get(ctx, addr), "expired entry was deleted, not just hidden")
}

func TestSQLiteCache_SubSecondTTL(t *testing.T) {
	c, clock := newTestSQLite(t, Options{})
	ctx := context.Background()

	addr := "Molenweg 3, Zwolle"
	require.True(t, c.Set(ctx, addr, testBundle(addr), 500*time.Millisecond))

	// A sub-second TTL must not round down to zero and expire instantly.
	clock.Advance(400 * time.Millisecond)
	assert.NotNil(t, c.Get(ctx, addr))

	clock.Advance(101 * time.Millisecond)
	assert.Nil(t, c.Get(ctx, addr))
}

func TestSQLiteCache_SetOverwrites(t *testing.T) {
	c, _ := newTestSQLite(t, Options{})
	ctx := context.Background()

	addr := "Kerkstraat 2, Leiden"
	first := testBundle(addr)
	require.True(t, c.Set(ctx, addr, first, 0))

	second := testBundle(addr)
	second.ScoringVersion = "2.2.0"
	require.True(t, c.Set(ctx, addr, second, 0))

	got := c.Get(ctx, addr)
	require.NotNil(t, got)
	assert.Equal(t, "2.2.0", got.ScoringVersion)

	stats := c.Stats(ctx)
	assert.Equal(t, 1, stats.TotalEntries, "overwrite, not a second entry")
}

func TestSQLiteCache_RejectsOversizedEntry(t *testing.T) {
	bundle := testBundle("Grote Markt 1, Groningen")
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)

	c, _ := newTestSQLite(t, Options{MaxBytes: int64(len(raw)) - 1})
	assert.False(t, c.Set(context.Background(), bundle.Location.Address, bundle, 0))
	assert.Nil(t, c.Get(context.Background(), bundle.Location.Address))
}

func TestSQLiteCache_EvictsOldestWhenFull(t *testing.T) {
	a := testBundle("Adres A 1, Amsterdam")
	size := func(b *model.UnifiedLocationData) int64 {
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		return int64(len(raw))
	}

	// Room for roughly two entries; the third write evicts the oldest.
	c, clock := newTestSQLite(t, Options{
		MaxBytes:   size(a)*2 + size(a)/2,
		EvictBatch: 1,
	})
	ctx := context.Background()

	require.True(t, c.Set(ctx, "Adres A 1, Amsterdam", testBundle("Adres A 1, Amsterdam"), 0))
	clock.Advance(time.Minute)
	require.True(t, c.Set(ctx, "Adres B 1, Amsterdam", testBundle("Adres B 1, Amsterdam"), 0))
	clock.Advance(time.Minute)
	require.True(t, c.Set(ctx, "Adres C 1, Amsterdam", testBundle("Adres C 1, Amsterdam"), 0))

	assert.Nil(t, c.Get(ctx, "Adres A 1, Amsterdam"), "oldest entry evicted")
	assert.NotNil(t, c.Get(ctx, "Adres B 1, Amsterdam"))
	assert.NotNil(t, c.Get(ctx, "Adres C 1, Amsterdam"))
}

func TestSQLiteCache_RemoveAndClear(t *testing.T) {
	c, _ := newTestSQLite(t, Options{})
	ctx := context.Background()

	require.True(t, c.Set(ctx, "Adres A 1, Amsterdam", testBundle("Adres A 1, Amsterdam"), 0))
	require.True(t, c.Set(ctx, "Adres B 1, Amsterdam", testBundle("Adres B 1, Amsterdam"), 0))

	c.Remove(ctx, "Adres A 1, Amsterdam")
	assert.Nil(t, c.Get(ctx, "Adres A 1, Amsterdam"))
	assert.NotNil(t, c.Get(ctx, "Adres B 1, Amsterdam"))

	c.ClearAll(ctx)
	assert.Nil(t, c.Get(ctx, "Adres B 1, Amsterdam"))
	assert.Equal(t, 0, c.Stats(ctx).TotalEntries)
}

func TestSQLiteCache_CleanupExpired(t *testing.T) {
	c, clock := newTestSQLite(t, Options{})
	ctx := context.Background()

	require.True(t, c.Set(ctx, "Kort 1, Breda", testBundle("Kort 1, Breda"), time.Minute))
	require.True(t, c.Set(ctx, "Lang 1, Breda", testBundle("Lang 1, Breda"), time.Hour))

	clock.Advance(10 * time.Minute)
	assert.Equal(t, 1, c.CleanupExpired(ctx))
	assert.Equal(t, 0, c.CleanupExpired(ctx), "second pass finds nothing")

	stats := c.Stats(ctx)
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, []string{"Lang 1, Breda"}, stats.CachedAddresses)
}

func TestSQLiteCache_Stats(t *testing.T) {
	c, clock := newTestSQLite(t, Options{})
	ctx := context.Background()

	require.True(t, c.Set(ctx, "Adres A 1, Amsterdam", testBundle("Adres A 1, Amsterdam"), time.Minute))
	require.True(t, c.Set(ctx, "Adres B 1, Amsterdam", testBundle("Adres B 1, Amsterdam"), time.Hour))
	clock.Advance(5 * time.Minute)

	stats := c.Stats(ctx)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 1, stats.ValidEntries)
	assert.Equal(t, 1, stats.ExpiredEntries)
	assert.Positive(t, stats.CacheSizeBytes)
	assert.Equal(t, []string{"Adres B 1, Amsterdam"}, stats.CachedAddresses)
}
