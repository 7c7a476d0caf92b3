package model

// Coord is a (longitude, latitude) pair.
type Coord struct {
	Lon float64
	Lat float64
}

// AccessibilityProperties is the capability set carried by a stop
// point: which accessibility features it actually offers.
type AccessibilityProperties struct {
	Wheelchair bool
	Escalator  bool
	TTS        bool // text-to-speech announcements
	Elevator   bool
	Audible    bool
	Visual     bool
}

// Satisfies reports whether this stop point's properties satisfy every
// property the caller requires.
func (have AccessibilityProperties) Satisfies(required AccessibilityProperties) bool {
	if required.Wheelchair && !have.Wheelchair {
		return false
	}
	if required.Escalator && !have.Escalator {
		return false
	}
	if required.TTS && !have.TTS {
		return false
	}
	if required.Elevator && !have.Elevator {
		return false
	}
	if required.Audible && !have.Audible {
		return false
	}
	if required.Visual && !have.Visual {
		return false
	}
	return true
}

// VehicleProperties is the capability set carried by a vehicle
// journey: wheelchair-accessible vehicle, bike storage, etc.
type VehicleProperties struct {
	Wheelchair bool
	Bike       bool
	AirConditioned bool
}

// Accessible reports whether this vehicle satisfies every property the
// caller requires.
func (have VehicleProperties) Accessible(required VehicleProperties) bool {
	if required.Wheelchair && !have.Wheelchair {
		return false
	}
	if required.Bike && !have.Bike {
		return false
	}
	if required.AirConditioned && !have.AirConditioned {
		return false
	}
	return true
}

// AccessibilityParams bundles the stop-point-side and vehicle-side
// accessibility requirements of a single query.
type AccessibilityParams struct {
	Properties        AccessibilityProperties
	VehicleProperties VehicleProperties
}

// StopArea groups one or more StopPoints under a common name (a
// "station" in the loose sense).
type StopArea struct {
	Idx       int
	URI       string
	Name      string
	Coord     Coord
	AdminList []int
}

// StopPoint is a single boarding location, belonging to a StopArea.
type StopPoint struct {
	Idx        int
	URI        string
	Name       string
	Coord      Coord
	AdminList  []int
	StopAreaIdx int
	Properties AccessibilityProperties
}

// POI is a point of interest (not a transit stop).
type POI struct {
	Idx       int
	URI       string
	Name      string
	Coord     Coord
	AdminList []int
	Weight    int
}

// HouseNumberRange associates a contiguous range of house numbers
// along a Way with an interpolated coordinate at each end.
type HouseNumberRange struct {
	Low, High int
	LowCoord  Coord
	HighCoord Coord
}

// Way is a named street; addresses are resolved against its house
// number ranges.
type Way struct {
	Idx       int
	URI       string
	Name      string
	Coord     Coord
	AdminList []int
	Houses    []HouseNumberRange
}

// InterpolateHouseNumber returns the coordinate for the given house
// number along this way, linearly interpolating within whichever
// range contains it. ok is false if no range contains the number.
func (w *Way) InterpolateHouseNumber(number int) (coord Coord, ok bool) {
	for _, r := range w.Houses {
		lo, hi := r.Low, r.High
		if lo > hi {
			lo, hi = hi, lo
		}
		if number < lo || number > hi {
			continue
		}
		if hi == lo {
			return r.LowCoord, true
		}
		frac := float64(number-r.Low) / float64(r.High-r.Low)
		if r.Low > r.High {
			frac = 1 - frac
		}
		return Coord{
			Lon: r.LowCoord.Lon + frac*(r.HighCoord.Lon-r.LowCoord.Lon),
			Lat: r.LowCoord.Lat + frac*(r.HighCoord.Lat-r.LowCoord.Lat),
		}, true
	}
	return Coord{}, false
}

// Admin is an administrative region (city, district, ...) used for
// geographic disambiguation.
type Admin struct {
	Idx       int
	URI       string
	Name      string
	Coord     Coord
	AdminList []int
}

// Line is a public-transport line (a family of routes).
type Line struct {
	Idx       int
	URI       string
	Name      string
	Coord     Coord
	AdminList []int
}

// JourneyPatternPoint is one position within a JourneyPattern, bound
// to a concrete stop point.
type JourneyPatternPoint struct {
	Idx             int
	JourneyPattern  int // index into the JourneyPattern array
	StopPointIdx    int
	Order           int // 0-based position within the pattern
}

// JourneyPattern is an ordered sequence of JourneyPatternPoints shared
// by a family of VehicleJourneys.
type JourneyPattern struct {
	Idx    int
	Points []int // indices into the JourneyPatternPoint array, ordered
}

// ValidityPattern is a day-of-service bitmap keyed by day offset from
// the engine's reference date.
type ValidityPattern struct {
	bits []uint64
}

// NewValidityPattern builds a ValidityPattern spanning at least
// numDays days, all initially invalid.
func NewValidityPattern(numDays int) *ValidityPattern {
	words := (numDays + 63) / 64
	if words == 0 {
		words = 1
	}
	return &ValidityPattern{bits: make([]uint64, words)}
}

// Add marks date as a valid service day.
func (vp *ValidityPattern) Add(date int) {
	if date < 0 {
		return
	}
	word := date / 64
	if word >= len(vp.bits) {
		grown := make([]uint64, word+1)
		copy(grown, vp.bits)
		vp.bits = grown
	}
	vp.bits[word] |= 1 << uint(date%64)
}

// Check reports whether date is a valid service day. Out-of-range
// (including negative) dates are never valid.
func (vp *ValidityPattern) Check(date int) bool {
	if date < 0 {
		return false
	}
	word := date / 64
	if word >= len(vp.bits) {
		return false
	}
	return vp.bits[word]&(1<<uint(date%64)) != 0
}

// VehicleJourney is a concrete trip realizing a JourneyPattern on
// specific days, with a capability set.
type VehicleJourney struct {
	Idx        int
	Properties VehicleProperties
}

// Accessible reports whether this vehicle journey satisfies the given
// vehicle-side requirements.
func (vj *VehicleJourney) Accessible(required VehicleProperties) bool {
	return vj.Properties.Accessible(required)
}

// StopTimeFlags encodes boarding/alighting/frequency bits for a StopTime.
type StopTimeFlags uint8

const (
	FlagPickUpAllowed StopTimeFlags = 1 << iota
	FlagDropOffAllowed
	FlagIsFrequency
)

// StopTime is the arrival/departure pair for one (vehicle journey,
// journey pattern point) cell, plus the flags and validity patterns
// that gate whether it can actually be used.
type StopTime struct {
	Idx                      int
	VehicleJourneyIdx        int
	JourneyPatternPointIdx   int
	DepartureTime            int // seconds since midnight; 0 for frequency stop times
	ArrivalTime               int
	Flags                    StopTimeFlags
	DepartureValidityPattern *ValidityPattern
	ArrivalValidityPattern   *ValidityPattern

	// Frequency window, only meaningful when Flags&FlagIsFrequency != 0.
	FrequencyHeadway int // seconds between departures
	FrequencyStart   int // seconds since midnight
	FrequencyEnd     int // seconds since midnight
}

// IsFrequency reports whether this StopTime describes a
// headway-based frequency trip rather than a fixed timetable entry.
func (st *StopTime) IsFrequency() bool {
	return st.Flags&FlagIsFrequency != 0
}

// ValidEnd reports whether this StopTime may be used for the
// requested end of a leg: pickup (boarding) when reconstructing is
// false, drop-off (alighting) when reconstructing is true. This
// mirrors the original's st->valid_end(reconstructing_path).
func (st *StopTime) ValidEnd(reconstructing bool) bool {
	if reconstructing {
		return st.Flags&FlagDropOffAllowed != 0
	}
	return st.Flags&FlagPickUpAllowed != 0
}

// ValidHour reports whether this StopTime's time is compatible with
// hour in the given scan direction. For concrete (non-frequency) stop
// times, any pre-filtered candidate always matches: the binary search
// plus linear scan have already restricted the candidate set to times
// on the correct side of hour, so there is nothing further to check
// here. For frequency stop times, the candidate must fall within the
// [FrequencyStart, FrequencyEnd] window (forward scan: hour at or
// before the window's end; backward scan: hour at or after the
// window's start), since a frequency row's table entry is only its
// window start (departure table) or window end (arrival table), not a
// concrete time of its own.
func (st *StopTime) ValidHour(hour int, forward bool) bool {
	if !st.IsFrequency() {
		return true
	}
	if forward {
		return hour <= st.FrequencyEnd
	}
	return hour >= st.FrequencyStart
}
