package testutil

import (
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"
	"github.com/stretchr/testify/require"

	"transitkernel.dev/core/model"
)

// PlaceCSV is one row of a tabular place fixture: enough fields to
// populate a StopArea, Admin, POI, Way or Line for autocomplete
// tests without hand-writing struct literals per place.
type PlaceCSV struct {
	URI  string  `csv:"uri"`
	Name string  `csv:"name"`
	Lon  float64 `csv:"lon"`
	Lat  float64 `csv:"lat"`
}

// ParsePlacesCSV reads a places fixture, stripping a UTF-8 BOM if
// present (the teacher's parse package does the same for GTFS feed
// files pulled from arbitrary external sources).
func ParsePlacesCSV(t testing.TB, csvText string) []PlaceCSV {
	rows := []PlaceCSV{}
	reader := bom.NewReader(strings.NewReader(csvText))
	require.NoError(t, gocsv.Unmarshal(reader, &rows))
	return rows
}

// StopAreasFromCSV converts parsed place rows into model.StopArea
// values, ready for snapshot.Builder.AddStopArea.
func StopAreasFromCSV(rows []PlaceCSV) []*model.StopArea {
	out := make([]*model.StopArea, len(rows))
	for i, r := range rows {
		out[i] = &model.StopArea{
			URI:  r.URI,
			Name: r.Name,
			Coord: model.Coord{Lon: r.Lon, Lat: r.Lat},
		}
	}
	return out
}
