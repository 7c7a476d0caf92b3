package model

import "testing"

func TestFrequencyDeparture(t *testing.T) {
	st := &StopTime{FrequencyStart: 1000, FrequencyEnd: 2000, FrequencyHeadway: 300}

	cases := []struct {
		hour int
		want int
	}{
		{500, 1000},  // before window: first departure
		{1000, 1000}, // exactly at start
		{1001, 1300}, // just past a departure: next multiple
		{1300, 1300}, // exactly on a departure
		{1950, 2000}, // would be 2200 but clamped to window end
	}
	for _, c := range cases {
		if got := st.FrequencyDeparture(c.hour); got != c.want {
			t.Errorf("FrequencyDeparture(%d) = %d, want %d", c.hour, got, c.want)
		}
	}
}

func TestFrequencyArrival(t *testing.T) {
	st := &StopTime{FrequencyStart: 1000, FrequencyEnd: 2000, FrequencyHeadway: 300}

	cases := []struct {
		hour int
		want int
	}{
		{2500, 2000}, // after window: last departure
		{2000, 2000}, // exactly at end
		{1899, 1600}, // last departure before 1899
		{1600, 1600}, // exactly on a departure
		{1050, 1000}, // would be 1000 - clamped at window start
	}
	for _, c := range cases {
		if got := st.FrequencyArrival(c.hour); got != c.want {
			t.Errorf("FrequencyArrival(%d) = %d, want %d", c.hour, got, c.want)
		}
	}
}
