package model

import "testing"

func TestValidityPatternAddCheck(t *testing.T) {
	vp := NewValidityPattern(10)
	vp.Add(3)
	vp.Add(9)

	for d := 0; d < 10; d++ {
		want := d == 3 || d == 9
		if got := vp.Check(d); got != want {
			t.Errorf("Check(%d) = %v, want %v", d, got, want)
		}
	}
}

func TestValidityPatternNegativeAlwaysInvalid(t *testing.T) {
	vp := NewValidityPattern(10)
	vp.Add(0)
	if vp.Check(-1) {
		t.Error("Check(-1) = true, want false")
	}
}

func TestValidityPatternGrowsBeyondInitialSize(t *testing.T) {
	vp := NewValidityPattern(1)
	vp.Add(200)
	if !vp.Check(200) {
		t.Error("Check(200) = false after Add(200), want true")
	}
	if vp.Check(199) {
		t.Error("Check(199) = true, want false")
	}
}

func TestAccessibilityPropertiesSatisfies(t *testing.T) {
	have := AccessibilityProperties{Wheelchair: true, Audible: true}
	cases := []struct {
		required AccessibilityProperties
		want     bool
	}{
		{AccessibilityProperties{}, true},
		{AccessibilityProperties{Wheelchair: true}, true},
		{AccessibilityProperties{Wheelchair: true, Audible: true}, true},
		{AccessibilityProperties{Elevator: true}, false},
		{AccessibilityProperties{Visual: true}, false},
	}
	for _, c := range cases {
		if got := have.Satisfies(c.required); got != c.want {
			t.Errorf("Satisfies(%+v) = %v, want %v", c.required, got, c.want)
		}
	}
}

func TestVehiclePropertiesAccessible(t *testing.T) {
	have := VehicleProperties{Bike: true}
	if have.Accessible(VehicleProperties{Wheelchair: true}) {
		t.Error("expected non-wheelchair vehicle to fail a wheelchair requirement")
	}
	if !have.Accessible(VehicleProperties{Bike: true}) {
		t.Error("expected bike-carrying vehicle to satisfy a bike requirement")
	}
}

func TestWayInterpolateHouseNumber(t *testing.T) {
	way := &Way{
		Houses: []HouseNumberRange{
			{Low: 1, High: 11, LowCoord: Coord{Lon: 0, Lat: 0}, HighCoord: Coord{Lon: 10, Lat: 0}},
		},
	}

	coord, ok := way.InterpolateHouseNumber(6)
	if !ok {
		t.Fatal("expected house number 6 to interpolate within [1, 11]")
	}
	if coord.Lon < 4.9 || coord.Lon > 5.1 {
		t.Errorf("interpolated Lon = %f, want ~5.0", coord.Lon)
	}

	if _, ok := way.InterpolateHouseNumber(50); ok {
		t.Error("expected house number 50 to not interpolate, out of range")
	}
}

func TestStopTimeValidEnd(t *testing.T) {
	st := &StopTime{Flags: FlagPickUpAllowed}
	if !st.ValidEnd(false) {
		t.Error("expected pickup-only stop time to be valid for boarding")
	}
	if st.ValidEnd(true) {
		t.Error("expected pickup-only stop time to be invalid for alighting")
	}
}

func TestStopTimeValidHourConcreteAlwaysValid(t *testing.T) {
	st := &StopTime{}
	if !st.ValidHour(0, true) || !st.ValidHour(86399, false) {
		t.Error("expected non-frequency stop time to always report ValidHour true")
	}
}

func TestStopTimeValidHourFrequencyWindow(t *testing.T) {
	st := &StopTime{
		Flags:        FlagIsFrequency,
		FrequencyStart: 1000,
		FrequencyEnd:   2000,
	}
	if !st.ValidHour(1500, true) {
		t.Error("expected hour inside window to be valid forward")
	}
	if st.ValidHour(2500, true) {
		t.Error("expected hour past window end to be invalid forward")
	}
	if !st.ValidHour(1500, false) {
		t.Error("expected hour inside window to be valid backward")
	}
	if st.ValidHour(500, false) {
		t.Error("expected hour before window start to be invalid backward")
	}
}
