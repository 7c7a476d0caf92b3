// Package routing implements the stop-time resolution kernel used by
// a RAPTOR-style router: given a journey-pattern point and a reference
// instant, find the next (or previous) valid vehicle departure or
// arrival honoring accessibility, service-calendar and
// boarding/alighting constraints. Ported from
// original_source/source/routing/best_stoptime.cpp (see DESIGN.md).
package routing

import (
	"sort"

	"transitkernel.dev/core/model"
	"transitkernel.dev/core/snapshot"
)

// AccessibilityParams is the per-query accessibility requirement set:
// which stop-point properties and vehicle properties a result must
// satisfy.
type AccessibilityParams = model.AccessibilityParams

// BestStopTime dispatches to EarliestStopTime when clockwise, or
// TardiestStopTime otherwise. found is false when no compatible trip
// exists, mirroring the original's (nullptr, 0) sentinel.
func BestStopTime(
	data *snapshot.Data,
	jpp int,
	dt model.DateTime,
	access AccessibilityParams,
	clockwise bool,
	reconstructing bool,
) (st *model.StopTime, result model.DateTime, found bool) {
	if clockwise {
		return EarliestStopTime(data, jpp, dt, access, reconstructing)
	}
	return TardiestStopTime(data, jpp, dt, access, reconstructing)
}

// EarliestStopTime finds the first trip on jpp's journey pattern that
// departs at or after dt, honoring accessibility and calendar
// constraints. See SPEC_FULL §4.2 for the full algorithm description;
// this is a direct port of the original's earliest_stop_time.
func EarliestStopTime(
	data *snapshot.Data,
	jpp int,
	dt model.DateTime,
	access AccessibilityParams,
	reconstructing bool,
) (*model.StopTime, model.DateTime, bool) {
	point := data.JourneyPatternPoint(jpp)
	stopPoint := data.StopPoint(point.StopPointIdx)
	if !stopPoint.Properties.Satisfies(access.Properties) {
		return nil, 0, false
	}

	jp := point.JourneyPattern
	begin, end := data.Segment(jp, point.Order)

	// Lower-bound: smallest index in [begin, end) with
	// DepartureTimes[idx] >= hour(dt).
	hour := dt.Hour()
	idx := begin + sort.Search(end-begin, func(i int) bool {
		return data.DepartureTimes[begin+i] >= hour
	})

	st := validPickUp(data, idx, end, dt.Date(), hour, reconstructing, access.VehicleProperties)
	working := dt

	if st == nil {
		// No trip found today: roll over to day+1, hour 0.
		working = model.NewDateTime(dt.Date()+1, 0)
		st = validPickUp(data, begin, end, working.Date(), 0, reconstructing, access.VehicleProperties)
	}

	if st == nil {
		return nil, 0, false
	}

	if !st.IsFrequency() {
		working = working.Update(st.DepartureTime, true)
	} else {
		// Per SPEC_FULL §4.2 step 6: the frequency window is
		// evaluated against the *original* dt's hour, then applied
		// on top of working (which may already carry a rollover
		// date from the day-rollover branch above).
		next := st.FrequencyDeparture(dt.Hour())
		working = working.Update(next, true)
	}
	return st, working, true
}

// TardiestStopTime finds the last trip on jpp's journey pattern that
// arrives at or before dt, honoring accessibility and calendar
// constraints. Direct port of the original's tardiest_stop_time.
func TardiestStopTime(
	data *snapshot.Data,
	jpp int,
	dt model.DateTime,
	access AccessibilityParams,
	reconstructing bool,
) (*model.StopTime, model.DateTime, bool) {
	point := data.JourneyPatternPoint(jpp)
	stopPoint := data.StopPoint(point.StopPointIdx)
	if !stopPoint.Properties.Satisfies(access.Properties) {
		return nil, 0, false
	}

	jp := point.JourneyPattern
	begin, end := data.Segment(jp, point.Order)

	// Reverse lower-bound: smallest index in [begin, end) with
	// ArrivalTimes[idx] > hour(dt). Every index below that bound has
	// ArrivalTimes[idx] <= hour(dt); we then scan those downward
	// (largest-first) so the first acceptor is the latest compatible
	// arrival.
	hour := dt.Hour()
	bound := begin + sort.Search(end-begin, func(i int) bool {
		return data.ArrivalTimes[begin+i] > hour
	})

	st := validDropOff(data, bound-1, begin, dt.Date(), hour, reconstructing, access.VehicleProperties)
	working := dt

	if st == nil && dt.Date() > 0 {
		working = model.NewDateTime(dt.Date()-1, model.SecondsPerDay-1)
		st = validDropOff(data, end-1, begin, working.Date(), model.SecondsPerDay-1, reconstructing, access.VehicleProperties)
	}

	if st == nil {
		return nil, 0, false
	}

	if !st.IsFrequency() {
		working = working.Update(st.ArrivalTime, false)
	} else {
		prev := st.FrequencyArrival(dt.Hour())
		working = working.Update(prev, false)
	}
	return st, working, true
}

// validPickUp scans data.StIdxForward[idx:end] (in ascending departure
// order, since idx/end index into DepartureTimes) for the first stop
// time that is valid on date, allows the requested boarding end,
// matches hour in the forward direction, and whose vehicle is
// accessible.
func validPickUp(
	data *snapshot.Data,
	idx, end int,
	date, hour int,
	reconstructing bool,
	requiredVehicle model.VehicleProperties,
) *model.StopTime {
	for ; idx < end; idx++ {
		st := data.StopTime(data.StIdxForward[idx])
		if !st.DepartureValidityPattern.Check(date) {
			continue
		}
		if !st.ValidEnd(reconstructing) {
			continue
		}
		if !st.ValidHour(hour, true) {
			continue
		}
		vj := data.VehicleJourney(st.VehicleJourneyIdx)
		if !vj.Accessible(requiredVehicle) {
			continue
		}
		return st
	}
	return nil
}

// validDropOff scans data.StIdxBackward downward from hi to lo
// (inclusive, hi >= lo, in descending arrival order since the
// underlying table is ascending) for the first stop time that is
// valid on date, allows the requested alighting end, matches hour in
// the backward direction, and whose vehicle is accessible. Pickup/
// drop-off roles are inverted relative to reconstructing, mirroring
// the original.
func validDropOff(
	data *snapshot.Data,
	hi, lo int,
	date, hour int,
	reconstructing bool,
	requiredVehicle model.VehicleProperties,
) *model.StopTime {
	for idx := hi; idx >= lo; idx-- {
		st := data.StopTime(data.StIdxBackward[idx])
		if !st.ArrivalValidityPattern.Check(date) {
			continue
		}
		if !st.ValidEnd(!reconstructing) {
			continue
		}
		if !st.ValidHour(hour, false) {
			continue
		}
		vj := data.VehicleJourney(st.VehicleJourneyIdx)
		if !vj.Accessible(requiredVehicle) {
			continue
		}
		return st
	}
	return nil
}
