// Package testutil provides fixture builders for tests: a small
// always-valid snapshot.Data (BuildSnapshot), and CSV-driven fixture
// loading for tests that want to express places (stop areas) as
// tabular data rather than Go struct literals. Grounded on the teacher's
// testutil/testutil.go (BuildStorage/BuildStatic/BuildZip) and
// parse/calendar.go's gocsv usage (see DESIGN.md).
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"transitkernel.dev/core/model"
	"transitkernel.dev/core/snapshot"
)

// AlwaysValid returns a ValidityPattern that answers true for every
// day in [0, numDays).
func AlwaysValid(numDays int) *model.ValidityPattern {
	vp := model.NewValidityPattern(numDays)
	for d := 0; d < numDays; d++ {
		vp.Add(d)
	}
	return vp
}

// Stop is one stop-point's departure/arrival offsets (in seconds from
// midnight) within a single trip.
type Stop struct {
	StopPointIdx int
	Departure    int
	Arrival      int
}

// BuildLinearJourneyPattern builds one journey pattern visiting stops
// in order, with one trip per entry in departures (each value is the
// first stop's departure time; later stops are offset by legSeconds).
// Every stop time is valid every day of numDays and allows both
// pickup and drop-off. Returns the journey pattern index and the
// journey-pattern-point index of each stop, in order.
func BuildLinearJourneyPattern(
	t testing.TB,
	b *snapshot.Builder,
	stopPointIdxs []int,
	legSeconds int,
	departures []int,
	numDays int,
) (jp int, jpps []int) {
	jp = b.AddJourneyPattern()
	for _, spIdx := range stopPointIdxs {
		jpps = append(jpps, b.AddJourneyPatternPoint(jp, spIdx))
	}

	for _, firstDeparture := range departures {
		vj := &model.VehicleJourney{}
		vjIdx := b.AddVehicleJourney(vj)

		sts := make([]*model.StopTime, len(stopPointIdxs))
		for i := range stopPointIdxs {
			offset := firstDeparture + i*legSeconds
			sts[i] = &model.StopTime{
				DepartureTime:            offset,
				ArrivalTime:              offset,
				Flags:                    model.FlagPickUpAllowed | model.FlagDropOffAllowed,
				DepartureValidityPattern: AlwaysValid(numDays),
				ArrivalValidityPattern:   AlwaysValid(numDays),
			}
		}
		require.NoError(t, b.AddTrip(jp, vjIdx, sts))
	}

	return jp, jpps
}

// BuildSnapshot builds and freezes a snapshot.Data via fn, failing the
// test immediately if Freeze rejects it.
func BuildSnapshot(t testing.TB, fn func(b *snapshot.Builder)) *snapshot.Data {
	b := snapshot.NewBuilder()
	fn(b)
	data, err := b.Freeze()
	require.NoError(t, err)
	return data
}
