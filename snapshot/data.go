// Package snapshot holds the frozen, immutable in-memory transit
// graph (the L0 data model). A Data value is built once by a Builder,
// then shared read-only across concurrent queries for the lifetime of
// the engine: see SPEC_FULL.md §5.
package snapshot

import "transitkernel.dev/core/model"

// Data is the complete frozen graph: entity arrays, admin
// back-references and the pre-computed RAPTOR tables that the
// stop-time kernel scans. Nothing in this package (or any consumer)
// may mutate a Data after Builder.Freeze returns it.
type Data struct {
	StopAreas  []*model.StopArea
	StopPoints []*model.StopPoint
	POIs       []*model.POI
	Ways       []*model.Way
	Admins     []*model.Admin
	Lines      []*model.Line

	JourneyPatterns      []*model.JourneyPattern
	JourneyPatternPoints []*model.JourneyPatternPoint
	VehicleJourneys      []*model.VehicleJourney
	StopTimes            []*model.StopTime

	// RAPTOR tables, one slot per journey pattern.
	FirstStopTime []int // base offset into DepartureTimes/ArrivalTimes
	NbTrips       []int // number of trips served by this journey pattern

	// Flattened [jp][order][trip] tables, sorted ascending within
	// each (jp, order) segment per SPEC_FULL §3 invariant 1.
	DepartureTimes []int
	ArrivalTimes   []int

	// Parallel to DepartureTimes/ArrivalTimes: the concrete StopTime
	// backing each slot, indexed by StopTime.Idx into StopTimes.
	StIdxForward  []int
	StIdxBackward []int
}

// Segment returns the [begin, end) index range into DepartureTimes /
// ArrivalTimes for the journey pattern point at jp, order.
func (d *Data) Segment(jp, order int) (begin, end int) {
	begin = d.FirstStopTime[jp] + order*d.NbTrips[jp]
	end = begin + d.NbTrips[jp]
	return begin, end
}

// StopTime resolves a StopTimes-array index, or nil if out of range.
func (d *Data) StopTime(idx int) *model.StopTime {
	if idx < 0 || idx >= len(d.StopTimes) {
		return nil
	}
	return d.StopTimes[idx]
}

// JourneyPatternPoint resolves a JourneyPatternPoints-array index, or
// nil if out of range.
func (d *Data) JourneyPatternPoint(idx int) *model.JourneyPatternPoint {
	if idx < 0 || idx >= len(d.JourneyPatternPoints) {
		return nil
	}
	return d.JourneyPatternPoints[idx]
}

// VehicleJourney resolves a VehicleJourneys-array index, or nil if out
// of range.
func (d *Data) VehicleJourney(idx int) *model.VehicleJourney {
	if idx < 0 || idx >= len(d.VehicleJourneys) {
		return nil
	}
	return d.VehicleJourneys[idx]
}

// StopPoint resolves a StopPoints-array index, or nil if out of range.
func (d *Data) StopPoint(idx int) *model.StopPoint {
	if idx < 0 || idx >= len(d.StopPoints) {
		return nil
	}
	return d.StopPoints[idx]
}
