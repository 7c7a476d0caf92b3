package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitkernel.dev/core/model"
	"transitkernel.dev/core/snapshot"
)

func buildRoundTripSnapshot(t *testing.T) *snapshot.Data {
	b := snapshot.NewBuilder()
	admin := b.AddAdmin(&model.Admin{URI: "admin:paris", Name: "Paris", Coord: model.Coord{Lon: 2.3, Lat: 48.8}})
	sa := b.AddStopArea(&model.StopArea{URI: "sa:lyon", Name: "Gare de Lyon", AdminList: []int{admin}})
	spA := b.AddStopPoint(&model.StopPoint{URI: "sp:a", Name: "A", StopAreaIdx: sa, Properties: model.AccessibilityProperties{Wheelchair: true}})
	spB := b.AddStopPoint(&model.StopPoint{URI: "sp:b", Name: "B", StopAreaIdx: sa})

	jp := b.AddJourneyPattern()
	b.AddJourneyPatternPoint(jp, spA)
	b.AddJourneyPatternPoint(jp, spB)

	vj := b.AddVehicleJourney(&model.VehicleJourney{Properties: model.VehicleProperties{Wheelchair: true}})
	always := model.NewValidityPattern(1)
	always.Add(0)
	require.NoError(t, b.AddTrip(jp, vj, []*model.StopTime{
		{DepartureTime: 28800, ArrivalTime: 28800, Flags: model.FlagPickUpAllowed | model.FlagDropOffAllowed,
			DepartureValidityPattern: always, ArrivalValidityPattern: always},
		{DepartureTime: 32400, ArrivalTime: 32400, Flags: model.FlagPickUpAllowed | model.FlagDropOffAllowed,
			DepartureValidityPattern: always, ArrivalValidityPattern: always},
	}))

	data, err := b.Freeze()
	require.NoError(t, err)
	return data
}

func TestSQLiteSaveAndLoadRoundTripsEntities(t *testing.T) {
	store, err := OpenSQLiteStore(SQLiteConfig{})
	require.NoError(t, err)
	defer store.Close()

	original := buildRoundTripSnapshot(t)
	require.NoError(t, store.Save(original))

	reloaded, err := store.Load()
	require.NoError(t, err)

	require.Len(t, reloaded.StopAreas, 1)
	assert.Equal(t, "Gare de Lyon", reloaded.StopAreas[0].Name)
	require.Len(t, reloaded.StopAreas[0].AdminList, 1)
	assert.Equal(t, "Paris", reloaded.Admins[reloaded.StopAreas[0].AdminList[0]].Name)

	require.Len(t, reloaded.StopPoints, 2)
	assert.True(t, reloaded.StopPoints[0].Properties.Wheelchair)
	assert.False(t, reloaded.StopPoints[1].Properties.Wheelchair)

	require.Len(t, reloaded.JourneyPatterns, 1)
	require.Len(t, reloaded.VehicleJourneys, 1)
	assert.True(t, reloaded.VehicleJourneys[0].Properties.Wheelchair)

	begin, end := reloaded.Segment(0, 0)
	assert.Equal(t, 1, end-begin)
	assert.Equal(t, 28800, reloaded.DepartureTimes[begin])
}

func TestSQLiteSaveReplacesPriorContent(t *testing.T) {
	store, err := OpenSQLiteStore(SQLiteConfig{})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(buildRoundTripSnapshot(t)))

	b := snapshot.NewBuilder()
	b.AddStopArea(&model.StopArea{URI: "sa:only", Name: "Only Stop"})
	onlyOne, err := b.Freeze()
	require.NoError(t, err)
	require.NoError(t, store.Save(onlyOne))

	reloaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, reloaded.StopAreas, 1)
	assert.Equal(t, "Only Stop", reloaded.StopAreas[0].Name)
	assert.Empty(t, reloaded.JourneyPatterns)
	assert.Empty(t, reloaded.VehicleJourneys)
}
