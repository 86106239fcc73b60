package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportbeacon/eventparse/internal/venues"
	"github.com/sportbeacon/eventparse/pkg/logger"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestVenueStorage(t *testing.T) *VenueStorage {
	t.Helper()
	storage, err := NewVenueStorage(newTestDB(t), logger.NewTest(t))
	require.NoError(t, err)
	return storage
}

func TestVenueStorageUpsertAndLookup(t *testing.T) {
	storage := newTestVenueStorage(t)
	ctx := context.Background()

	err := storage.UpsertVenue(ctx, venues.Venue{
		ID:        "venue_001",
		Name:      "Cary Community Center",
		Type:      "court",
		Surface:   "rubber",
		Latitude:  35.7915,
		Longitude: -78.7811,
		Amenities: []string{"indoor", "parking"},
	})
	require.NoError(t, err)

	found, err := storage.LookupByNamePrefix(ctx, "cary")
	require.NoError(t, err)
	require.Len(t, found, 1)

	v := found[0]
	assert.Equal(t, "venue_001", v.ID)
	assert.Equal(t, "Cary Community Center", v.Name)
	assert.Equal(t, "court", v.Type)
	assert.Equal(t, "rubber", v.Surface)
	assert.InDelta(t, 35.7915, v.Latitude, 1e-9)
	assert.InDelta(t, -78.7811, v.Longitude, 1e-9)
	assert.Equal(t, []string{"indoor", "parking"}, v.Amenities)
}

func TestVenueStorageUpsertReplacesExisting(t *testing.T) {
	storage := newTestVenueStorage(t)
	ctx := context.Background()

	base := venues.Venue{ID: "venue_001", Name: "Old Name", Latitude: 1, Longitude: 2}
	require.NoError(t, storage.UpsertVenue(ctx, base))

	base.Name = "New Name"
	require.NoError(t, storage.UpsertVenue(ctx, base))

	n, err := storage.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	found, err := storage.LookupByNamePrefix(ctx, "new")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "New Name", found[0].Name)
}

func TestVenueStorageFirstWordFallback(t *testing.T) {
	storage := newTestVenueStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.UpsertVenue(ctx, venues.Venue{
		ID: "venue_003", Name: "Central City Park", Latitude: 35.7880, Longitude: -78.7850,
	}))

	// "central park" is no name prefix, but its first word is
	found, err := storage.LookupByNamePrefix(ctx, "central park")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Central City Park", found[0].Name)
}

func TestVenueStorageLookupEmptyQuery(t *testing.T) {
	storage := newTestVenueStorage(t)

	found, err := storage.LookupByNamePrefix(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestVenueStorageScanAllAndCount(t *testing.T) {
	storage := newTestVenueStorage(t)
	ctx := context.Background()

	for _, v := range []venues.Venue{
		{ID: "venue_002", Name: "Bond Park Field A", Latitude: 35.7862, Longitude: -78.8005},
		{ID: "venue_001", Name: "Cary Community Center", Latitude: 35.7915, Longitude: -78.7811},
		{ID: "venue_003", Name: "Central City Park", Latitude: 35.7880, Longitude: -78.7850},
	} {
		require.NoError(t, storage.UpsertVenue(ctx, v))
	}

	all, err := storage.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// ScanAll orders by id
	assert.Equal(t, "venue_001", all[0].ID)
	assert.Equal(t, "venue_002", all[1].ID)
	assert.Equal(t, "venue_003", all[2].ID)

	n, err := storage.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestVenueStorageSeedDemoVenues(t *testing.T) {
	storage := newTestVenueStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.SeedDemoVenues(ctx))

	n, err := storage.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	found, err := storage.LookupByNamePrefix(ctx, "central")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Central City Park", found[0].Name)

	// seeding again must not duplicate or overwrite
	require.NoError(t, storage.SeedDemoVenues(ctx))
	n, err = storage.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
