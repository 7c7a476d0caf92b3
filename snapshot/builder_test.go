package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitkernel.dev/core/model"
)

func validStopTime(dep, arr int) *model.StopTime {
	return &model.StopTime{
		DepartureTime:            dep,
		ArrivalTime:              arr,
		Flags:                    model.FlagPickUpAllowed | model.FlagDropOffAllowed,
		DepartureValidityPattern: model.NewValidityPattern(1),
		ArrivalValidityPattern:   model.NewValidityPattern(1),
	}
}

func TestFreezeBuildsRAPTORTables(t *testing.T) {
	b := NewBuilder()
	sp1 := b.AddStopPoint(&model.StopPoint{})
	sp2 := b.AddStopPoint(&model.StopPoint{})

	jp := b.AddJourneyPattern()
	b.AddJourneyPatternPoint(jp, sp1)
	b.AddJourneyPatternPoint(jp, sp2)

	vj1 := b.AddVehicleJourney(&model.VehicleJourney{})
	require.NoError(t, b.AddTrip(jp, vj1, []*model.StopTime{
		validStopTime(100, 100),
		validStopTime(200, 200),
	}))

	vj2 := b.AddVehicleJourney(&model.VehicleJourney{})
	require.NoError(t, b.AddTrip(jp, vj2, []*model.StopTime{
		validStopTime(50, 50),
		validStopTime(150, 150),
	}))

	data, err := b.Freeze()
	require.NoError(t, err)

	begin, end := data.Segment(jp, 0)
	assert.Equal(t, 2, end-begin)
	assert.Equal(t, []int{50, 100}, data.DepartureTimes[begin:end])
}

func TestAddTripRejectsMismatchedTripShape(t *testing.T) {
	b := NewBuilder()
	sp1 := b.AddStopPoint(&model.StopPoint{})
	sp2 := b.AddStopPoint(&model.StopPoint{})

	jp := b.AddJourneyPattern()
	b.AddJourneyPatternPoint(jp, sp1)
	b.AddJourneyPatternPoint(jp, sp2)

	vj := b.AddVehicleJourney(&model.VehicleJourney{})
	err := b.AddTrip(jp, vj, []*model.StopTime{validStopTime(100, 100)})
	require.Error(t, err)
}

func TestFreezeRejectsOutOfRangeAdmin(t *testing.T) {
	b := NewBuilder()
	b.AddStopArea(&model.StopArea{AdminList: []int{0}})

	_, err := b.Freeze()
	require.Error(t, err)
}

func TestFreezeRejectsNonMonotoneTrip(t *testing.T) {
	b := NewBuilder()
	sp1 := b.AddStopPoint(&model.StopPoint{})
	sp2 := b.AddStopPoint(&model.StopPoint{})

	jp := b.AddJourneyPattern()
	b.AddJourneyPatternPoint(jp, sp1)
	b.AddJourneyPatternPoint(jp, sp2)

	vj := b.AddVehicleJourney(&model.VehicleJourney{})
	require.NoError(t, b.AddTrip(jp, vj, []*model.StopTime{
		validStopTime(500, 500),
		validStopTime(100, 100),
	}))

	_, err := b.Freeze()
	require.Error(t, err)
}
