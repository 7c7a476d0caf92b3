package cache

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresSaveAndLoadRoundTripsEntities exercises PostgresStore
// against a real server, since lib/pq has no in-memory mode the way
// go-sqlite3 does. Skipped unless TRANSITCORE_TEST_POSTGRES_DSN is
// set, matching the pattern of external-service-gated Go tests.
func TestPostgresSaveAndLoadRoundTripsEntities(t *testing.T) {
	dsn := os.Getenv("TRANSITCORE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TRANSITCORE_TEST_POSTGRES_DSN to run this test against a live postgres")
	}

	store, err := OpenPostgresStore(dsn, true)
	require.NoError(t, err)
	defer store.Close()

	original := buildRoundTripSnapshot(t)
	require.NoError(t, store.Save(original))

	reloaded, err := store.Load()
	require.NoError(t, err)

	require.Len(t, reloaded.StopAreas, 1)
	assert.Equal(t, "Gare de Lyon", reloaded.StopAreas[0].Name)
	require.Len(t, reloaded.VehicleJourneys, 1)
}
