package model

// SecondsPerDay is the number of seconds in a civil day, used as the
// wrap-around bound for DateTime's hour component.
const SecondsPerDay = 86400

// DateTime packs a day offset (from the engine's reference date) and
// a second-of-day offset into a single comparable value. It carries
// no timezone or wall-clock notion; callers own the mapping from
// reference date to a calendar date.
//
// The packing is private: callers use NewDateTime/Date/Hour/Update,
// never arithmetic on the raw value.
type DateTime int64

// NewDateTime packs date (a day offset, may be any int, including
// negative during backward scans) and hour (seconds within day, should
// be in [0, SecondsPerDay) but is not clamped) into a DateTime.
func NewDateTime(date int, hour int) DateTime {
	return DateTime(int64(date)*SecondsPerDay + int64(hour))
}

// Date returns the day offset component.
func (dt DateTime) Date() int {
	d := int64(dt)
	// floor division so negative hours still resolve to the
	// correct (possibly negative) day.
	day := d / SecondsPerDay
	if d%SecondsPerDay < 0 {
		day--
	}
	return int(day)
}

// Hour returns the second-of-day component, always in [0, SecondsPerDay).
func (dt DateTime) Hour() int {
	h := int64(dt) % SecondsPerDay
	if h < 0 {
		h += SecondsPerDay
	}
	return int(h)
}

// Update sets dt's hour to the given value. If the new hour moves
// backward relative to the current hour (forward=true), or moves
// forward relative to the current hour (forward=false), the date is
// carried one day in the corresponding direction. This models a
// concrete stop time being applied to a working DateTime that may have
// rolled over midnight during the kernel's scan.
func (dt DateTime) Update(hour int, forward bool) DateTime {
	curHour := dt.Hour()
	date := dt.Date()

	if forward && hour < curHour {
		date++
	} else if !forward && hour > curHour {
		date--
	}

	return NewDateTime(date, hour)
}
