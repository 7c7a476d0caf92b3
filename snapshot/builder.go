package snapshot

import (
	"sort"

	"transitkernel.dev/core/model"
)

// Builder assembles a Data graph. It is the only code path allowed to
// populate entity arrays and RAPTOR tables; once Freeze returns, the
// resulting *Data is never mutated again (SPEC_FULL §3 ADDED note).
//
// A Builder is not safe for concurrent use; it is meant to be driven
// single-threaded at startup, then discarded.
type Builder struct {
	data *Data

	pendingTrips map[int][]pendingTrip
}

type pendingTrip struct {
	vjIdx     int
	stopTimes []*model.StopTime
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		data:         &Data{},
		pendingTrips: map[int][]pendingTrip{},
	}
}

// AddStopArea appends sa, assigning its Idx.
func (b *Builder) AddStopArea(sa *model.StopArea) int {
	sa.Idx = len(b.data.StopAreas)
	b.data.StopAreas = append(b.data.StopAreas, sa)
	return sa.Idx
}

// AddStopPoint appends sp, assigning its Idx.
func (b *Builder) AddStopPoint(sp *model.StopPoint) int {
	sp.Idx = len(b.data.StopPoints)
	b.data.StopPoints = append(b.data.StopPoints, sp)
	return sp.Idx
}

// AddPOI appends p, assigning its Idx.
func (b *Builder) AddPOI(p *model.POI) int {
	p.Idx = len(b.data.POIs)
	b.data.POIs = append(b.data.POIs, p)
	return p.Idx
}

// AddWay appends w, assigning its Idx.
func (b *Builder) AddWay(w *model.Way) int {
	w.Idx = len(b.data.Ways)
	b.data.Ways = append(b.data.Ways, w)
	return w.Idx
}

// AddAdmin appends a, assigning its Idx.
func (b *Builder) AddAdmin(a *model.Admin) int {
	a.Idx = len(b.data.Admins)
	b.data.Admins = append(b.data.Admins, a)
	return a.Idx
}

// AddLine appends l, assigning its Idx.
func (b *Builder) AddLine(l *model.Line) int {
	l.Idx = len(b.data.Lines)
	b.data.Lines = append(b.data.Lines, l)
	return l.Idx
}

// AddJourneyPattern creates a new, initially empty journey pattern and
// returns its index. Use AddJourneyPatternPoint to populate it.
func (b *Builder) AddJourneyPattern() int {
	jp := &model.JourneyPattern{Idx: len(b.data.JourneyPatterns)}
	b.data.JourneyPatterns = append(b.data.JourneyPatterns, jp)
	return jp.Idx
}

// AddJourneyPatternPoint appends a point to journey pattern jp,
// bound to the given stop point, at the next 0-based order.
func (b *Builder) AddJourneyPatternPoint(jp int, stopPointIdx int) int {
	jpp := &model.JourneyPatternPoint{
		Idx:          len(b.data.JourneyPatternPoints),
		JourneyPattern: jp,
		StopPointIdx: stopPointIdx,
		Order:        len(b.data.JourneyPatterns[jp].Points),
	}
	b.data.JourneyPatternPoints = append(b.data.JourneyPatternPoints, jpp)
	b.data.JourneyPatterns[jp].Points = append(b.data.JourneyPatterns[jp].Points, jpp.Idx)
	return jpp.Idx
}

// AddVehicleJourney appends vj, assigning its Idx. Call AddTrip
// afterwards to give it stop times on a journey pattern.
func (b *Builder) AddVehicleJourney(vj *model.VehicleJourney) int {
	vj.Idx = len(b.data.VehicleJourneys)
	b.data.VehicleJourneys = append(b.data.VehicleJourneys, vj)
	return vj.Idx
}

// AddTrip records vj's passage through journey pattern jp: stopTimes
// must have exactly one entry per point of jp, in point order. Each
// StopTime's Idx, JourneyPatternPointIdx and VehicleJourneyIdx fields
// are set here; callers only need to fill in the time/flags/validity
// fields.
func (b *Builder) AddTrip(jp int, vjIdx int, stopTimes []*model.StopTime) error {
	points := b.data.JourneyPatterns[jp].Points
	if len(stopTimes) != len(points) {
		return invariantErrorf(
			"AddTrip: journey pattern %d has %d points, got %d stop times",
			jp, len(points), len(stopTimes))
	}

	for order, st := range stopTimes {
		st.Idx = len(b.data.StopTimes)
		st.JourneyPatternPointIdx = points[order]
		st.VehicleJourneyIdx = vjIdx
		b.data.StopTimes = append(b.data.StopTimes, st)
	}

	b.pendingTrips[jp] = append(b.pendingTrips[jp], pendingTrip{vjIdx: vjIdx, stopTimes: stopTimes})
	return nil
}

// JourneyPatternOf returns the journey pattern index that journey
// pattern point jppIdx belongs to. Used by snapshot/cache when
// replaying persisted stop times, which are keyed by journey pattern
// point rather than journey pattern directly.
func (b *Builder) JourneyPatternOf(jppIdx int) int {
	return b.data.JourneyPatternPoints[jppIdx].JourneyPattern
}

// AttachAdminRefs sets the AdminList field on every already-added
// entity named in refs, keyed by entity kind ("stop_area",
// "stop_point", "poi", "way") and that entity's index. Used by
// snapshot/cache to re-attach admin references after reloading
// entities whose indexes were reassigned by the builder.
func (b *Builder) AttachAdminRefs(refs map[string]map[int][]int) {
	apply := func(kind string, set func(idx int, list []int)) {
		for idx, list := range refs[kind] {
			set(idx, list)
		}
	}
	apply("stop_area", func(idx int, list []int) { b.data.StopAreas[idx].AdminList = list })
	apply("stop_point", func(idx int, list []int) { b.data.StopPoints[idx].AdminList = list })
	apply("poi", func(idx int, list []int) { b.data.POIs[idx].AdminList = list })
	apply("way", func(idx int, list []int) { b.data.Ways[idx].AdminList = list })
}

// Freeze validates the §3 invariants and computes the RAPTOR tables,
// returning the immutable Data. After Freeze returns successfully,
// the Builder must not be used again.
func (b *Builder) Freeze() (*Data, error) {
	if err := b.validateAdminRefs(); err != nil {
		return nil, err
	}
	if err := b.validateTripShape(); err != nil {
		return nil, err
	}

	d := b.data
	d.FirstStopTime = make([]int, len(d.JourneyPatterns))
	d.NbTrips = make([]int, len(d.JourneyPatterns))

	offset := 0
	for jp, jpObj := range d.JourneyPatterns {
		trips := b.pendingTrips[jp]
		nb := len(trips)
		d.FirstStopTime[jp] = offset
		d.NbTrips[jp] = nb

		for order := range jpObj.Points {
			type slot struct {
				st *model.StopTime
			}
			slots := make([]slot, nb)
			for t, trip := range trips {
				slots[t] = slot{st: trip.stopTimes[order]}
			}

			byDeparture := append([]slot(nil), slots...)
			sort.SliceStable(byDeparture, func(i, j int) bool {
				return sortDeparture(byDeparture[i].st) < sortDeparture(byDeparture[j].st)
			})

			byArrival := append([]slot(nil), slots...)
			sort.SliceStable(byArrival, func(i, j int) bool {
				return sortArrival(byArrival[i].st) < sortArrival(byArrival[j].st)
			})

			for _, s := range byDeparture {
				d.DepartureTimes = append(d.DepartureTimes, sortDeparture(s.st))
				d.StIdxForward = append(d.StIdxForward, s.st.Idx)
			}
			for _, s := range byArrival {
				d.ArrivalTimes = append(d.ArrivalTimes, sortArrival(s.st))
				d.StIdxBackward = append(d.StIdxBackward, s.st.Idx)
			}
		}

		offset += nb * len(jpObj.Points)
	}

	return d, nil
}

// sortDeparture returns the value a stop time sorts by in the
// departure table: its concrete departure second for a timetabled
// stop time, or the earliest second its frequency window can produce
// a departure for a frequency stop time. A frequency row's raw
// DepartureTime field is always 0 (it has no single departure), so
// sorting by that field directly would place every frequency trip
// before every timetabled one regardless of when it actually runs.
func sortDeparture(st *model.StopTime) int {
	if st.IsFrequency() {
		return st.FrequencyStart
	}
	return st.DepartureTime
}

// sortArrival is sortDeparture's counterpart for the arrival table:
// the concrete arrival second, or a frequency stop time's latest
// possible arrival (its window's end).
func sortArrival(st *model.StopTime) int {
	if st.IsFrequency() {
		return st.FrequencyEnd
	}
	return st.ArrivalTime
}

// validateAdminRefs enforces §3 invariant 4: admin_list indices always
// resolve into the global admin array.
func (b *Builder) validateAdminRefs() error {
	n := len(b.data.Admins)
	check := func(kind string, idx int, list []int) error {
		for _, a := range list {
			if a < 0 || a >= n {
				return invariantErrorf("%s[%d]: admin_list references out-of-range admin idx %d", kind, idx, a)
			}
		}
		return nil
	}
	for _, sa := range b.data.StopAreas {
		if err := check("StopArea", sa.Idx, sa.AdminList); err != nil {
			return err
		}
	}
	for _, sp := range b.data.StopPoints {
		if err := check("StopPoint", sp.Idx, sp.AdminList); err != nil {
			return err
		}
	}
	for _, p := range b.data.POIs {
		if err := check("POI", p.Idx, p.AdminList); err != nil {
			return err
		}
	}
	for _, w := range b.data.Ways {
		if err := check("Way", w.Idx, w.AdminList); err != nil {
			return err
		}
	}
	return nil
}

// validateTripShape enforces §3 invariant 2 on the raw per-trip
// stop times, before they are reshuffled into the sorted RAPTOR
// tables: arrival[k] <= departure[k] <= arrival[k+1] for the same trip.
func (b *Builder) validateTripShape() error {
	for jp, trips := range b.pendingTrips {
		for _, trip := range trips {
			sts := trip.stopTimes
			for k, st := range sts {
				if st.IsFrequency() {
					continue
				}
				if st.ArrivalTime > st.DepartureTime {
					return invariantErrorf(
						"journey pattern %d, vehicle journey %d, point %d: arrival %d > departure %d",
						jp, trip.vjIdx, k, st.ArrivalTime, st.DepartureTime)
				}
				if k+1 < len(sts) && !sts[k+1].IsFrequency() && st.DepartureTime > sts[k+1].ArrivalTime {
					return invariantErrorf(
						"journey pattern %d, vehicle journey %d, point %d->%d: departure %d > next arrival %d",
						jp, trip.vjIdx, k, k+1, st.DepartureTime, sts[k+1].ArrivalTime)
				}
			}
		}
	}
	return nil
}
